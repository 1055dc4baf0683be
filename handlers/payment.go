package handlers

import (
	"net/http"

	"hufbook/models"
	"hufbook/services/payment"
	"hufbook/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler serves order creation and payment verification.
type PaymentHandler struct {
	Service payment.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: service}
}

// CreateOrderHandler handles POST /api/payments/create-order.
func (h *PaymentHandler) CreateOrderHandler(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(c, "Amount and booking reference are required")
		return
	}

	order, err := h.Service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, order)
}

// VerifyHandler handles POST /api/payments/verify.
func (h *PaymentHandler) VerifyHandler(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(c, "All payment details are required")
		return
	}

	confirmation, err := h.Service.VerifyAndConfirm(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondDataMessage(c, http.StatusOK, confirmation, "Payment verified and booking confirmed successfully")
}
