package bookingRepo

import (
	"context"
	"errors"

	"hufbook/models"
)

// Sentinel errors surfaced by booking persistence.
var (
	// ErrNotFound means no booking matches the given reference.
	ErrNotFound = errors.New("booking not found")
	// ErrDuplicateRef means the generated booking reference collided with an
	// existing one; the caller should retry with a fresh reference.
	ErrDuplicateRef = errors.New("booking reference already exists")
)

// BookingRepository defines methods for booking data access, including the
// two multi-document transitions (confirmation and cancellation) that must
// commit atomically with slot inventory changes.
type BookingRepository interface {
	// Create inserts a new booking record. Fails with ErrDuplicateRef when
	// the reference is already taken.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByRef retrieves a booking by its customer-facing reference.
	GetByRef(ctx context.Context, ref string) (*models.Booking, error)
	// UpdateStatus sets the booking's lifecycle status.
	UpdateStatus(ctx context.Context, ref, status string) error
	// SetOrderID records the external payment order id on the booking.
	SetOrderID(ctx context.Context, ref, orderID string) error
	// ConfirmWithPayment reserves the booking's slots, flips its status to
	// confirmed and inserts the payment record as one transaction. A capacity
	// failure aborts the transaction and returns the inventory error.
	ConfirmWithPayment(ctx context.Context, booking *models.Booking, payment *models.Payment) error
	// CancelWithRelease releases the booking's slots and flips its status to
	// cancelled as one transaction.
	CancelWithRelease(ctx context.Context, booking *models.Booking) error
}
