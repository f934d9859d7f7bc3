package models

import "time"

// Project status values.
const (
	StatusPlanning   = "planning"
	StatusQuoting    = "quoting"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Project is a fence-installation job site. UserID is nil for guest
// projects created without a session; it is set exactly once, when a new
// account claims the project at registration.
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Address     *string   `gorm:"size:500" json:"address"`
	Description *string   `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:20;not null;default:planning" json:"status"`
	UserID      *string   `gorm:"size:36;index" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`

	FenceLines []FenceLine `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"fenceLines"`
}

func (Project) TableName() string { return "projects" }
