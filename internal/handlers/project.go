package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fenceplan/fenceplan/internal/middleware"
	"github.com/fenceplan/fenceplan/internal/services"
	"github.com/fenceplan/fenceplan/pkg/response"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
	}
}

// List returns the signed-in user's projects.
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	projects, err := h.projectService.List(*userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, projects)
}

// Get returns one project. Signed-in users see their own projects;
// anonymous requests may read unclaimed guest projects by passing
// ?guest=true. Anything else is unauthorized.
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c)
	if userID == nil && c.Query("guest") != "true" {
		response.Unauthorized(c, "Authentication required")
		return
	}

	project, err := h.projectService.Get(id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, project)
}

// Create makes a new project. Anonymous requests produce an unclaimed
// guest project that registration can pick up later.
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID := middleware.CurrentUserID(c)
	project, err := h.projectService.Create(&req, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

// Update modifies a project owned by the signed-in user.
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID := middleware.CurrentUserID(c)
	project, err := h.projectService.Update(id, &req, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, project)
}

// Delete removes a project and, through the schema, its fence lines and
// coordinates.
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c)
	if err := h.projectService.Delete(id, *userID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats summarizes a project's fence lines for quoting. Access follows
// the same owner-or-guest rule as Get.
// GET /api/projects/:id/stats
func (h *ProjectHandler) Stats(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c)
	if userID == nil && c.Query("guest") != "true" {
		response.Unauthorized(c, "Authentication required")
		return
	}

	stats, err := h.projectService.Stats(id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}
