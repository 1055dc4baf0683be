package booking

import (
	"context"

	bookingRepo "hufbook/database/repository/booking"
	experienceRepo "hufbook/database/repository/experience"
	"hufbook/models"

	"go.uber.org/zap"
)

// BookingService manages the booking lifecycle: creation of pending records,
// lookup by reference and cancellation of confirmed bookings.
type BookingService interface {
	Create(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
	GetByRef(ctx context.Context, ref string) (*models.Booking, error)
	Cancel(ctx context.Context, ref string) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo        bookingRepo.BookingRepository
	Experiences experienceRepo.ExperienceRepository
	Logger      *zap.Logger
}
