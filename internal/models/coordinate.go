package models

// Coordinate is one vertex of a fence line polyline. Order is zero-based
// and contiguous within a line; traversal order comes from sorting on it,
// not from insertion sequence.
type Coordinate struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	FenceLineID uint    `gorm:"not null;index" json:"fenceLineId"`
	Order       int     `gorm:"column:order;not null" json:"order"`
	Lat         float64 `gorm:"not null" json:"lat"`
	Lng         float64 `gorm:"not null" json:"lng"`

	FenceLine FenceLine `gorm:"foreignKey:FenceLineID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Coordinate) TableName() string { return "coordinates" }
