package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fenceplan/fenceplan/internal/middleware"
	"github.com/fenceplan/fenceplan/internal/services"
	"github.com/fenceplan/fenceplan/pkg/response"
)

type FenceLineHandler struct {
	fenceLineService *services.FenceLineService
}

func NewFenceLineHandler(db *gorm.DB) *FenceLineHandler {
	return &FenceLineHandler{
		fenceLineService: services.NewFenceLineService(db),
	}
}

// Create adds a fence line to a project owned by the signed-in user.
// POST /api/projects/:id/fence-lines
func (h *FenceLineHandler) Create(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.CreateFenceLineRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID := middleware.CurrentUserID(c)
	line, err := h.fenceLineService.Create(projectID, &req, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, line)
}

// Update modifies a fence line, replacing its polyline when coordinates
// are supplied.
// PUT /api/fence-lines/:id
func (h *FenceLineHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateFenceLineRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID := middleware.CurrentUserID(c)
	line, err := h.fenceLineService.Update(id, &req, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, line)
}

// Delete removes a fence line and its coordinates.
// DELETE /api/fence-lines/:id
func (h *FenceLineHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c)
	if err := h.fenceLineService.Delete(id, *userID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
