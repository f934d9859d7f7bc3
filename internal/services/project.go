package services

import (
	"errors"
	"strings"

	"github.com/fenceplan/fenceplan/internal/geo"
	"github.com/fenceplan/fenceplan/internal/models"
	"github.com/fenceplan/fenceplan/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	Status      string  `json:"status" binding:"omitempty,oneof=planning quoting in-progress completed"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=planning quoting in-progress completed"`
}

// ProjectStats summarizes a project's fence lines for quoting.
type ProjectStats struct {
	TotalLengthFeet   float64            `json:"totalLength"`
	EstimatedCost     float64            `json:"estimatedCost"`
	PostCount         int                `json:"postCount"`
	MaterialBreakdown map[string]float64 `json:"materialBreakdown"`
}

// Per-foot installed cost estimates by material, lowercased keys.
var materialRates = map[string]float64{
	"cedar":        35,
	"vinyl":        30,
	"chain link":   20,
	"wrought iron": 55,
}

const defaultMaterialRate = 25

// coordinateOrder sorts a coordinate preload by the "order" column with
// dialect-appropriate quoting (the column name is a SQL keyword).
func coordinateOrder(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}})
}

// List returns every project owned by userID with fence lines and ordered
// coordinates attached. Preload batches one query per association level, so
// the result is fully materialized without per-line queries.
func (s *ProjectService) List(userID string) ([]models.Project, error) {
	projects := []models.Project{}
	err := s.db.
		Preload("FenceLines").
		Preload("FenceLines.Coordinates", coordinateOrder).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Get returns one project with its lines and coordinates. With a userID the
// project must be owned by that user; with nil only an unowned guest project
// matches. Both misses surface as not-found so existence is never leaked.
func (s *ProjectService) Get(id uint, userID *string) (*models.Project, error) {
	query := s.db.
		Preload("FenceLines").
		Preload("FenceLines.Coordinates", coordinateOrder)

	if userID != nil {
		query = query.Where("id = ? AND user_id = ?", id, *userID)
	} else {
		query = query.Where("id = ? AND user_id IS NULL", id)
	}

	var project models.Project
	if err := query.First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Project not found")
		}
		return nil, err
	}
	return &project, nil
}

// Create inserts a new project. userID is nil for guest creation.
func (s *ProjectService) Create(req *CreateProjectRequest, userID *string) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidation("name", "Name is required")
	}

	status := req.Status
	if status == "" {
		status = models.StatusPlanning
	}

	project := models.Project{
		Name:        name,
		Address:     req.Address,
		Description: req.Description,
		Status:      status,
		UserID:      userID,
	}

	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	project.FenceLines = []models.FenceLine{}
	return &project, nil
}

// Update applies the supplied fields to a project owned by userID. The
// owner itself is immutable here; a claim at registration is the only write
// path for user_id. Matching zero rows reads as not-found.
func (s *ProjectService) Update(id uint, req *UpdateProjectRequest, userID string) (*models.Project, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, response.NewValidation("name", "Name is required")
		}
		updates["name"] = name
	}
	if req.Address != nil {
		updates["address"] = req.Address
	}
	if req.Description != nil {
		updates["description"] = req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		result := s.db.Model(&models.Project{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, response.NewNotFound("Project not found")
		}
	}

	return s.Get(id, &userID)
}

// Delete removes a project owned by userID. Fence lines and coordinates go
// with it via the foreign-key cascade, not application code.
func (s *ProjectService) Delete(id uint, userID string) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("Project not found")
	}
	return nil
}

// ClaimPending reassigns a guest project to a newly registered user. The
// `user_id IS NULL` guard makes the claim one-shot: a project that is gone
// or already owned is skipped (returns false), never transferred.
func (s *ProjectService) ClaimPending(tx *gorm.DB, projectID uint, userID string) (bool, error) {
	result := tx.Model(&models.Project{}).
		Where("id = ? AND user_id IS NULL", projectID).
		Update("user_id", userID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Stats computes quoting totals across a project's fence lines. The same
// owner/guest visibility rules as Get apply.
func (s *ProjectService) Stats(id uint, userID *string) (*ProjectStats, error) {
	project, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	stats := &ProjectStats{MaterialBreakdown: make(map[string]float64)}

	for _, line := range project.FenceLines {
		points := make([]geo.Point, len(line.Coordinates))
		for i, c := range line.Coordinates {
			points[i] = geo.Point{Lat: c.Lat, Lng: c.Lng}
		}

		length := geo.LengthFeet(points)
		stats.TotalLengthFeet += length
		stats.PostCount += geo.PostCount(points)

		material := "unspecified"
		if line.Material != nil && strings.TrimSpace(*line.Material) != "" {
			material = strings.ToLower(strings.TrimSpace(*line.Material))
		}
		stats.MaterialBreakdown[material] += length

		rate, ok := materialRates[material]
		if !ok {
			rate = defaultMaterialRate
		}
		stats.EstimatedCost += length * rate
	}

	return stats, nil
}
