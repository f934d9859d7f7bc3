package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fenceplan/fenceplan/internal/services"
	"github.com/fenceplan/fenceplan/pkg/response"
)

type GeocodeHandler struct {
	geocodeService *services.GeocodeService
}

func NewGeocodeHandler(svc *services.GeocodeService) *GeocodeHandler {
	return &GeocodeHandler{geocodeService: svc}
}

// Search resolves a freeform address query to candidate coordinates.
// GET /api/geocode?q=
func (h *GeocodeHandler) Search(c *gin.Context) {
	results, err := h.geocodeService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, results)
}
