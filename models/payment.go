package models

import "time"

// Payment statuses.
const (
	PaymentStatusCreated  = "created"
	PaymentStatusCaptured = "captured"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Payment records a captured gateway payment. One payment belongs to exactly
// one booking and is only written inside the confirmation transaction.
type Payment struct {
	ID                string    `bson:"id" json:"id"`
	BookingID         string    `bson:"bookingId" json:"bookingId"`
	RazorpayPaymentID string    `bson:"razorpayPaymentId" json:"razorpayPaymentId"`
	RazorpayOrderID   string    `bson:"razorpayOrderId" json:"razorpayOrderId"`
	RazorpaySignature string    `bson:"razorpaySignature" json:"razorpaySignature"`
	Amount            float64   `bson:"amount" json:"amount"` // equals the booking total
	Status            string    `bson:"status" json:"status"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}

// PaymentOrder is the gateway order handed back to the client for checkout.
type PaymentOrder struct {
	OrderID  string `json:"id"`
	Amount   int64  `json:"amount"` // minor currency units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrderRequest is the payload for POST /api/payments/create-order.
type CreateOrderRequest struct {
	Amount     float64 `json:"amount" binding:"required"`
	BookingRef string  `json:"bookingRef" binding:"required"`
}

// VerifyPaymentRequest carries the gateway callback proof for POST /api/payments/verify.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	BookingRef        string `json:"bookingRef"`
}

// Confirmation is the success payload of the verify endpoint.
type Confirmation struct {
	BookingRef string `json:"bookingRef"`
	Status     string `json:"status"`
}
