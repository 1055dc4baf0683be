package handlers

import (
	"net/http"

	"hufbook/models"
	"hufbook/services/booking"
	"hufbook/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the booking lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: service}
}

// CreateHandler handles POST /api/bookings.
func (h *BookingHandler) CreateHandler(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(c, "All fields are required")
		return
	}

	created, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondDataMessage(c, http.StatusCreated, created, "Booking created successfully")
}

// GetHandler handles GET /api/bookings/:ref.
func (h *BookingHandler) GetHandler(c *gin.Context) {
	found, err := h.Service.GetByRef(c.Request.Context(), c.Param("ref"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, found)
}

// CancelHandler handles PUT /api/bookings/:ref/cancel.
func (h *BookingHandler) CancelHandler(c *gin.Context) {
	cancelled, err := h.Service.Cancel(c.Request.Context(), c.Param("ref"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondDataMessage(c, http.StatusOK, cancelled, "Booking cancelled successfully")
}
