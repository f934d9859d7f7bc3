package models

import "time"

// FenceLine is one drawn run of fence within a project. Length is derived
// from the coordinate polyline at save time, never trusted from the client.
type FenceLine struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	ProjectID uint     `gorm:"not null;index" json:"projectId"`
	Name      string   `gorm:"size:200;not null" json:"name"`
	Material  *string  `gorm:"size:100" json:"material"` // e.g. Cedar, Vinyl, Chain Link
	Height    *float64 `json:"height"`                   // feet
	Length    *float64 `json:"length"`                   // feet, recomputed server-side
	Color     *string  `gorm:"size:50" json:"color"`
	CreatedAt time.Time `json:"createdAt"`

	Project     Project      `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Coordinates []Coordinate `gorm:"foreignKey:FenceLineID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"coordinates"`
}

func (FenceLine) TableName() string { return "fence_lines" }
