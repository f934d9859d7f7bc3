package services

import (
	"errors"
	"math"

	"github.com/fenceplan/fenceplan/internal/geo"
	"github.com/fenceplan/fenceplan/internal/models"
	"github.com/fenceplan/fenceplan/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FenceLineService struct {
	db *gorm.DB
}

func NewFenceLineService(db *gorm.DB) *FenceLineService {
	return &FenceLineService{db: db}
}

// CoordinateInput is one polyline vertex as submitted by the client. The
// order field is accepted for contract compatibility but persistence always
// uses the array position, so gaps or duplicates cannot reach the store.
type CoordinateInput struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Order int     `json:"order"`
}

type CreateFenceLineRequest struct {
	Name        string            `json:"name" binding:"required"`
	Material    *string           `json:"material"`
	Height      *float64          `json:"height"`
	Length      *float64          `json:"length"` // ignored; recomputed server-side
	Color       *string           `json:"color"`
	Coordinates []CoordinateInput `json:"coordinates"`
}

type UpdateFenceLineRequest struct {
	Name        *string           `json:"name"`
	Material    *string           `json:"material"`
	Height      *float64          `json:"height"`
	Length      *float64          `json:"length"` // ignored; recomputed server-side
	Color       *string           `json:"color"`
	Coordinates []CoordinateInput `json:"coordinates"` // nil = keep existing points
}

// validateCoordinates enforces the store-level polyline rules: at least one
// segment, finite values, lat/lng within world bounds.
func validateCoordinates(coords []CoordinateInput) error {
	if len(coords) < 2 {
		return response.NewValidation("coordinates", "A fence line needs at least 2 points")
	}
	for _, c := range coords {
		if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
			return response.NewValidation("coordinates", "Coordinates must be finite numbers")
		}
		if c.Lat < -90 || c.Lat > 90 {
			return response.NewValidation("coordinates", "Latitude must be between -90 and 90")
		}
		if c.Lng < -180 || c.Lng > 180 {
			return response.NewValidation("coordinates", "Longitude must be between -180 and 180")
		}
	}
	return nil
}

func toPoints(coords []CoordinateInput) []geo.Point {
	points := make([]geo.Point, len(coords))
	for i, c := range coords {
		points[i] = geo.Point{Lat: c.Lat, Lng: c.Lng}
	}
	return points
}

// Create inserts a fence line and its coordinate polyline in one
// transaction. The parent project must exist and be owned by ownerID.
// Length is recomputed from the polyline; the client value is discarded.
func (s *FenceLineService) Create(projectID uint, req *CreateFenceLineRequest, ownerID string) (*models.FenceLine, error) {
	if err := validateCoordinates(req.Coordinates); err != nil {
		return nil, err
	}

	var project models.Project
	err := s.db.Where("id = ? AND user_id = ?", projectID, ownerID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Project not found")
		}
		return nil, err
	}

	length := geo.LengthFeet(toPoints(req.Coordinates))

	line := models.FenceLine{
		ProjectID: projectID,
		Name:      req.Name,
		Material:  req.Material,
		Height:    req.Height,
		Length:    &length,
		Color:     req.Color,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&line).Error; err != nil {
			return err
		}
		coords := make([]models.Coordinate, len(req.Coordinates))
		for i, c := range req.Coordinates {
			coords[i] = models.Coordinate{
				FenceLineID: line.ID,
				Order:       i,
				Lat:         c.Lat,
				Lng:         c.Lng,
			}
		}
		return tx.Create(&coords).Error
	})
	if err != nil {
		return nil, err
	}

	return s.get(line.ID)
}

// Update applies scalar changes and, when a coordinate set is supplied,
// replaces the whole polyline. Replacement is delete-all-then-insert inside
// one transaction so a partially replaced line is never observable.
func (s *FenceLineService) Update(id uint, req *UpdateFenceLineRequest, ownerID string) (*models.FenceLine, error) {
	line, err := s.authorize(id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Coordinates != nil {
		if err := validateCoordinates(req.Coordinates); err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Material != nil {
		updates["material"] = req.Material
	}
	if req.Height != nil {
		updates["height"] = req.Height
	}
	if req.Color != nil {
		updates["color"] = req.Color
	}
	if req.Coordinates != nil {
		length := geo.LengthFeet(toPoints(req.Coordinates))
		updates["length"] = length
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.FenceLine{}).Where("id = ?", line.ID).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Coordinates != nil {
			if err := tx.Where("fence_line_id = ?", line.ID).Delete(&models.Coordinate{}).Error; err != nil {
				return err
			}
			coords := make([]models.Coordinate, len(req.Coordinates))
			for i, c := range req.Coordinates {
				coords[i] = models.Coordinate{
					FenceLineID: line.ID,
					Order:       i,
					Lat:         c.Lat,
					Lng:         c.Lng,
				}
			}
			if err := tx.Create(&coords).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.get(line.ID)
}

// Delete removes a fence line owned (via its project) by ownerID.
// Coordinates cascade-delete by foreign key.
func (s *FenceLineService) Delete(id uint, ownerID string) error {
	line, err := s.authorize(id, ownerID)
	if err != nil {
		return err
	}
	return s.db.Delete(&models.FenceLine{}, line.ID).Error
}

// authorize loads the line and verifies the parent project belongs to
// ownerID. A line that exists but is not owned reads as not-found.
func (s *FenceLineService) authorize(id uint, ownerID string) (*models.FenceLine, error) {
	var line models.FenceLine
	err := s.db.
		Joins("JOIN projects ON projects.id = fence_lines.project_id").
		Where("fence_lines.id = ? AND projects.user_id = ?", id, ownerID).
		First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Fence line not found")
		}
		return nil, err
	}
	return &line, nil
}

func (s *FenceLineService) get(id uint) (*models.FenceLine, error) {
	var line models.FenceLine
	err := s.db.
		Preload("Coordinates", func(db *gorm.DB) *gorm.DB {
			return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}})
		}).
		First(&line, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Fence line not found")
		}
		return nil, err
	}
	return &line, nil
}
