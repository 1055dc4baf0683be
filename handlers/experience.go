package handlers

import (
	"net/http"

	"hufbook/services/catalog"
	"hufbook/utils"

	"github.com/gin-gonic/gin"
)

// ExperienceHandler serves the browsable catalog endpoints.
type ExperienceHandler struct {
	Service catalog.CatalogService
}

// NewExperienceHandler creates a new ExperienceHandler.
func NewExperienceHandler(service catalog.CatalogService) *ExperienceHandler {
	return &ExperienceHandler{Service: service}
}

// ListHandler handles GET /api/experiences?search=.
func (h *ExperienceHandler) ListHandler(c *gin.Context) {
	experiences, err := h.Service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, experiences, len(experiences))
}

// GetHandler handles GET /api/experiences/:id.
func (h *ExperienceHandler) GetHandler(c *gin.Context) {
	exp, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, exp)
}

// AvailabilityHandler handles GET /api/experiences/:id/availability?date=&time=.
func (h *ExperienceHandler) AvailabilityHandler(c *gin.Context) {
	date := c.Query("date")
	slotTime := c.Query("time")
	if date == "" || slotTime == "" {
		utils.RespondBadRequest(c, "Date and time are required")
		return
	}

	availability, err := h.Service.Availability(c.Request.Context(), c.Param("id"), date, slotTime)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, availability)
}
