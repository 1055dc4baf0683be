package booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	bookingRepo "hufbook/database/repository/booking"
	experienceRepo "hufbook/database/repository/experience"
	"hufbook/models"
	"hufbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	minQuantity = 1
	maxQuantity = 10
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// Create validates the checkout details, runs the advisory availability
// check and persists a pending booking with a fresh unique reference. Final
// capacity is re-validated at confirmation time; the check here only keeps
// obviously hopeless bookings out.
func (s *DefaultBookingService) Create(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)

	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	exp, err := s.Experiences.GetByID(ctx, req.ExperienceID)
	if err != nil {
		if errors.Is(err, experienceRepo.ErrNotFound) {
			return nil, utils.NotFoundError("Experience not found")
		}
		s.Logger.Error("failed to load experience", zap.String("experienceId", req.ExperienceID), zap.Error(err))
		return nil, utils.ServerError("Server error while creating booking")
	}

	if exp.MaxQuantity > 0 && req.Quantity > exp.MaxQuantity {
		return nil, utils.ValidationError(fmt.Sprintf("Cannot book more than %d tickets", exp.MaxQuantity))
	}

	availability := exp.CheckAvailability(req.Date, req.Time, req.Quantity)
	if !availability.Available {
		return nil, utils.ValidationError(fmt.Sprintf("Only %d slots available for selected time", availability.AvailableSlots))
	}

	booking := &models.Booking{
		ID:           uuid.New().String(),
		ExperienceID: req.ExperienceID,
		FullName:     req.FullName,
		Email:        req.Email,
		Date:         req.Date,
		Time:         req.Time,
		Quantity:     req.Quantity,
		Subtotal:     req.Subtotal,
		Tax:          req.Tax,
		Total:        req.Total,
		Status:       models.BookingStatusPending,
		CreatedAt:    time.Now(),
	}

	// One retry on reference collision; a second collision in a row means
	// something is wrong beyond bad luck.
	for attempt := 0; attempt < 2; attempt++ {
		ref, err := NewBookingRef()
		if err != nil {
			s.Logger.Error("failed to generate booking reference", zap.Error(err))
			return nil, utils.ServerError("Server error while creating booking")
		}
		booking.BookingRef = ref

		err = s.Repo.Create(ctx, booking)
		if err == nil {
			booking.Experience = exp
			s.Logger.Info("booking created",
				zap.String("bookingRef", booking.BookingRef),
				zap.String("experienceId", booking.ExperienceID),
				zap.Int("quantity", booking.Quantity))
			return booking, nil
		}
		if !errors.Is(err, bookingRepo.ErrDuplicateRef) {
			s.Logger.Error("failed to persist booking", zap.Error(err))
			return nil, utils.ServerError("Server error while creating booking")
		}
		s.Logger.Warn("booking reference collision, retrying", zap.String("bookingRef", ref))
	}
	return nil, utils.ServerError("Server error while creating booking")
}

// GetByRef returns the booking joined with its experience.
func (s *DefaultBookingService) GetByRef(ctx context.Context, ref string) (*models.Booking, error) {
	booking, err := s.Repo.GetByRef(ctx, ref)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundError("Booking not found")
		}
		s.Logger.Error("failed to fetch booking", zap.String("bookingRef", ref), zap.Error(err))
		return nil, utils.ServerError("Server error while fetching booking")
	}

	if exp, err := s.Experiences.GetByID(ctx, booking.ExperienceID); err == nil {
		booking.Experience = exp
	}
	return booking, nil
}

// Cancel releases the slots held by a confirmed booking and marks it
// cancelled, both inside one transaction.
func (s *DefaultBookingService) Cancel(ctx context.Context, ref string) (*models.Booking, error) {
	booking, err := s.Repo.GetByRef(ctx, ref)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundError("Booking not found")
		}
		s.Logger.Error("failed to fetch booking", zap.String("bookingRef", ref), zap.Error(err))
		return nil, utils.ServerError("Server error while cancelling booking")
	}

	if booking.Status != models.BookingStatusConfirmed {
		return nil, utils.StateConflictError("Only confirmed bookings can be cancelled")
	}

	err = s.Repo.CancelWithRelease(ctx, booking)
	if errors.Is(err, experienceRepo.ErrSlotNotFound) {
		// The slot (or the whole experience) is gone, so there is no
		// capacity left to return; the status flip alone is correct.
		s.Logger.Warn("cancelling booking whose slot no longer exists", zap.String("bookingRef", ref))
		err = s.Repo.UpdateStatus(ctx, ref, models.BookingStatusCancelled)
	}
	if err != nil {
		s.Logger.Error("failed to cancel booking", zap.String("bookingRef", ref), zap.Error(err))
		return nil, utils.ServerError("Server error while cancelling booking")
	}

	booking.Status = models.BookingStatusCancelled
	s.Logger.Info("booking cancelled", zap.String("bookingRef", ref))
	return booking, nil
}

func validateCreateRequest(req models.CreateBookingRequest) error {
	if req.ExperienceID == "" || req.FullName == "" || req.Email == "" || req.Date == "" || req.Time == "" || req.Quantity == 0 {
		return utils.ValidationError("All fields are required")
	}
	if !emailPattern.MatchString(req.Email) {
		return utils.ValidationError("Please enter a valid email")
	}
	if req.Quantity < minQuantity {
		return utils.ValidationError("Quantity must be at least 1")
	}
	if req.Quantity > maxQuantity {
		return utils.ValidationError("Cannot book more than 10 tickets")
	}

	selected, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return utils.ValidationError("Invalid date format, expected YYYY-MM-DD")
	}
	y, m, d := time.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if selected.Before(today) {
		return utils.ValidationError("Cannot book for past dates")
	}
	return nil
}
