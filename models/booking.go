package models

import "time"

// Booking lifecycle statuses.
const (
	BookingStatusPending       = "pending"
	BookingStatusConfirmed     = "confirmed"
	BookingStatusCancelled     = "cancelled"
	BookingStatusPaymentFailed = "payment_failed"
)

// Booking is a customer's reservation of slot capacity on one experience.
// It is created as pending and only becomes confirmed inside the payment
// confirmation transaction.
type Booking struct {
	ID              string      `bson:"id" json:"id"`
	ExperienceID    string      `bson:"experienceId" json:"experienceId"`
	BookingRef      string      `bson:"bookingRef" json:"bookingRef"` // customer-facing reference, unique index
	FullName        string      `bson:"fullName" json:"fullName"`
	Email           string      `bson:"email" json:"email"`
	Date            string      `bson:"date" json:"date"`
	Time            string      `bson:"time" json:"time"`
	Quantity        int         `bson:"quantity" json:"quantity"` // 1..10
	Subtotal        float64     `bson:"subtotal" json:"subtotal"`
	Tax             float64     `bson:"tax" json:"tax"`
	Total           float64     `bson:"total" json:"total"`
	Status          string      `bson:"status" json:"status"`
	RazorpayOrderID string      `bson:"razorpayOrderId,omitempty" json:"razorpayOrderId,omitempty"`
	CreatedAt       time.Time   `bson:"createdAt" json:"createdAt"`
	Experience      *Experience `bson:"-" json:"experience,omitempty"` // joined on reads, never persisted
}

// CreateBookingRequest is the checkout payload for POST /api/bookings.
type CreateBookingRequest struct {
	ExperienceID string  `json:"experienceId" binding:"required"`
	FullName     string  `json:"fullName" binding:"required"`
	Email        string  `json:"email" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	Time         string  `json:"time" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required"`
	Subtotal     float64 `json:"subtotal"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
}
