package payment

import (
	"context"
	"errors"
	"math"
	"time"

	bookingRepo "hufbook/database/repository/booking"
	experienceRepo "hufbook/database/repository/experience"
	"hufbook/models"
	"hufbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const orderCurrency = "INR"

// PaymentService creates gateway orders for pending bookings and confirms
// bookings from payment callbacks.
type PaymentService interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.PaymentOrder, error)
	VerifyAndConfirm(ctx context.Context, req models.VerifyPaymentRequest) (*models.Confirmation, error)
}

// DefaultPaymentService implements PaymentService. KeySecret doubles as the
// signature verification secret; when it is empty the payment endpoints
// fail at call time while the rest of the API keeps working.
type DefaultPaymentService struct {
	Bookings    bookingRepo.BookingRepository
	Experiences experienceRepo.ExperienceRepository
	Gateway     Gateway
	KeySecret   string
	Logger      *zap.Logger
}

// CreateOrder creates an external payment order for a pending booking and
// records the order id on the booking.
func (s *DefaultPaymentService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.PaymentOrder, error) {
	if s.Gateway == nil || s.KeySecret == "" {
		s.Logger.Error("payment gateway keys are not configured")
		return nil, utils.ServerError("Payment gateway is not configured")
	}

	booking, err := s.Bookings.GetByRef(ctx, req.BookingRef)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundError("Booking not found")
		}
		s.Logger.Error("failed to fetch booking", zap.String("bookingRef", req.BookingRef), zap.Error(err))
		return nil, utils.ServerError("Error creating payment order")
	}
	if booking.Status != models.BookingStatusPending {
		return nil, utils.StateConflictError("Booking not found or already processed")
	}

	amountMinor := int64(math.Round(req.Amount * 100))
	order, err := s.Gateway.CreateOrder(amountMinor, orderCurrency, "receipt_"+req.BookingRef, map[string]interface{}{
		"bookingRef": req.BookingRef,
	})
	if err != nil {
		s.Logger.Error("gateway order creation failed", zap.String("bookingRef", req.BookingRef), zap.Error(err))
		return nil, utils.ServerError("Error creating payment order")
	}

	if err := s.Bookings.SetOrderID(ctx, req.BookingRef, order.OrderID); err != nil {
		s.Logger.Error("failed to record order id", zap.String("bookingRef", req.BookingRef), zap.Error(err))
		return nil, utils.ServerError("Error creating payment order")
	}

	s.Logger.Info("payment order created",
		zap.String("bookingRef", req.BookingRef),
		zap.String("orderId", order.OrderID),
		zap.Int64("amount", amountMinor))
	return order, nil
}

// VerifyAndConfirm validates the payment proof, re-checks slot availability
// and commits reservation, confirmation and the payment record as one unit.
//
// Signature and availability checks have no side effects until the
// transaction starts, so a caller whose request timed out can safely retry
// with the same proof. A booking that is already confirmed is treated as a
// no-op success rather than an error.
func (s *DefaultPaymentService) VerifyAndConfirm(ctx context.Context, req models.VerifyPaymentRequest) (*models.Confirmation, error) {
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" || req.BookingRef == "" {
		return nil, utils.ValidationError("All payment details are required")
	}

	if !VerifySignature(s.KeySecret, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		s.markPaymentFailed(ctx, req.BookingRef)
		s.Logger.Warn("payment signature mismatch", zap.String("bookingRef", req.BookingRef))
		return nil, utils.PaymentFailedError("Payment verification failed")
	}

	booking, err := s.Bookings.GetByRef(ctx, req.BookingRef)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundError("Booking not found")
		}
		s.Logger.Error("failed to fetch booking", zap.String("bookingRef", req.BookingRef), zap.Error(err))
		return nil, utils.ServerError("Server error while verifying payment")
	}

	switch booking.Status {
	case models.BookingStatusConfirmed:
		// Double submission of a valid proof: the first attempt already
		// decremented inventory, so answer success without touching anything.
		s.Logger.Info("duplicate payment verification, booking already confirmed",
			zap.String("bookingRef", booking.BookingRef))
		return &models.Confirmation{BookingRef: booking.BookingRef, Status: booking.Status}, nil
	case models.BookingStatusCancelled:
		return nil, utils.StateConflictError("Booking has been cancelled")
	}

	// Authoritative availability check: the one at booking creation was
	// advisory and time has passed while the customer paid.
	exp, err := s.Experiences.GetByID(ctx, booking.ExperienceID)
	if err != nil {
		if errors.Is(err, experienceRepo.ErrNotFound) {
			s.markPaymentFailed(ctx, req.BookingRef)
			return nil, utils.PaymentFailedError("Slots no longer available. Payment will be refunded.")
		}
		s.Logger.Error("failed to load experience", zap.String("experienceId", booking.ExperienceID), zap.Error(err))
		return nil, utils.ServerError("Server error while verifying payment")
	}
	if availability := exp.CheckAvailability(booking.Date, booking.Time, booking.Quantity); !availability.Available {
		s.markPaymentFailed(ctx, req.BookingRef)
		s.Logger.Warn("slots vanished between order creation and confirmation",
			zap.String("bookingRef", booking.BookingRef),
			zap.Int("availableSlots", availability.AvailableSlots))
		return nil, utils.PaymentFailedError("Slots no longer available. Payment will be refunded.")
	}

	payment := &models.Payment{
		ID:                uuid.New().String(),
		BookingID:         booking.ID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpaySignature: req.RazorpaySignature,
		Amount:            booking.Total,
		Status:            models.PaymentStatusCaptured,
		CreatedAt:         time.Now(),
	}

	if err := s.Bookings.ConfirmWithPayment(ctx, booking, payment); err != nil {
		if errors.Is(err, experienceRepo.ErrInsufficientCapacity) || errors.Is(err, experienceRepo.ErrSlotNotFound) {
			// Lost the race for the last units inside the transaction.
			s.markPaymentFailed(ctx, req.BookingRef)
			return nil, utils.PaymentFailedError("Slots no longer available. Payment will be refunded.")
		}
		// Infrastructure failure: the transaction rolled back, the booking
		// keeps its previous status and the caller may retry.
		s.Logger.Error("confirmation transaction failed", zap.String("bookingRef", req.BookingRef), zap.Error(err))
		return nil, utils.ServerError("Server error while verifying payment")
	}

	s.Logger.Info("payment verified and booking confirmed",
		zap.String("bookingRef", booking.BookingRef),
		zap.String("paymentId", payment.RazorpayPaymentID))
	return &models.Confirmation{BookingRef: booking.BookingRef, Status: models.BookingStatusConfirmed}, nil
}

// markPaymentFailed is best effort: the payment-domain failure is what gets
// reported to the caller even if the status write itself fails.
func (s *DefaultPaymentService) markPaymentFailed(ctx context.Context, ref string) {
	if err := s.Bookings.UpdateStatus(ctx, ref, models.BookingStatusPaymentFailed); err != nil &&
		!errors.Is(err, bookingRepo.ErrNotFound) {
		s.Logger.Error("failed to mark booking payment_failed", zap.String("bookingRef", ref), zap.Error(err))
	}
}
