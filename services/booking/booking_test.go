package booking

import (
	"context"
	"net/http"
	"testing"
	"time"

	bookingRepo "hufbook/database/repository/booking"
	experienceRepo "hufbook/database/repository/experience"
	"hufbook/models"
	"hufbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeExperienceRepo struct {
	exp *models.Experience
}

func (f *fakeExperienceRepo) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	if f.exp == nil || f.exp.ID != id {
		return nil, experienceRepo.ErrNotFound
	}
	copied := *f.exp
	return &copied, nil
}

func (f *fakeExperienceRepo) Search(ctx context.Context, search string) ([]models.Experience, error) {
	if f.exp == nil {
		return nil, nil
	}
	return []models.Experience{*f.exp}, nil
}

func (f *fakeExperienceRepo) Create(ctx context.Context, exp *models.Experience) error {
	f.exp = exp
	return nil
}

func (f *fakeExperienceRepo) Reserve(ctx context.Context, experienceID, date, slotTime string, quantity int) error {
	slot := f.exp.Slot(date, slotTime)
	if slot == nil {
		return experienceRepo.ErrSlotNotFound
	}
	if slot.BookedSlots+quantity > slot.TotalSlots {
		return experienceRepo.ErrInsufficientCapacity
	}
	slot.BookedSlots += quantity
	return nil
}

func (f *fakeExperienceRepo) Release(ctx context.Context, experienceID, date, slotTime string, quantity int) error {
	slot := f.exp.Slot(date, slotTime)
	if slot == nil {
		return experienceRepo.ErrSlotNotFound
	}
	slot.BookedSlots -= quantity
	if slot.BookedSlots < 0 {
		slot.BookedSlots = 0
	}
	return nil
}

type fakeBookingRepo struct {
	bookings      map[string]*models.Booking
	experiences   *fakeExperienceRepo
	failDupeTimes int // force ErrDuplicateRef this many times
	createCalls   int
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	f.createCalls++
	if f.failDupeTimes > 0 {
		f.failDupeTimes--
		return bookingRepo.ErrDuplicateRef
	}
	copied := *b
	f.bookings[b.BookingRef] = &copied
	return nil
}

func (f *fakeBookingRepo) GetByRef(ctx context.Context, ref string) (*models.Booking, error) {
	b, ok := f.bookings[ref]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, ref, status string) error {
	b, ok := f.bookings[ref]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) SetOrderID(ctx context.Context, ref, orderID string) error {
	b, ok := f.bookings[ref]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.RazorpayOrderID = orderID
	return nil
}

func (f *fakeBookingRepo) ConfirmWithPayment(ctx context.Context, booking *models.Booking, payment *models.Payment) error {
	if err := f.experiences.Reserve(ctx, booking.ExperienceID, booking.Date, booking.Time, booking.Quantity); err != nil {
		return err
	}
	f.bookings[booking.BookingRef].Status = models.BookingStatusConfirmed
	return nil
}

func (f *fakeBookingRepo) CancelWithRelease(ctx context.Context, booking *models.Booking) error {
	if err := f.experiences.Release(ctx, booking.ExperienceID, booking.Date, booking.Time, booking.Quantity); err != nil {
		return err
	}
	f.bookings[booking.BookingRef].Status = models.BookingStatusCancelled
	return nil
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func newTestService(total, booked int) (*DefaultBookingService, *fakeBookingRepo, *fakeExperienceRepo) {
	exps := &fakeExperienceRepo{exp: &models.Experience{
		ID:          "exp-1",
		Title:       "Kayaking",
		Location:    "Udupi",
		Price:       999,
		MaxQuantity: 6,
		TimeSlots: []models.TimeSlot{
			{Date: futureDate(), Time: "10:00", TotalSlots: total, BookedSlots: booked},
		},
	}}
	books := &fakeBookingRepo{bookings: map[string]*models.Booking{}, experiences: exps}
	svc := &DefaultBookingService{Repo: books, Experiences: exps, Logger: zap.NewNop()}
	return svc, books, exps
}

func validRequest() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		ExperienceID: "exp-1",
		FullName:     "Asha Rao",
		Email:        "asha@example.com",
		Date:         futureDate(),
		Time:         "10:00",
		Quantity:     2,
		Subtotal:     1998,
		Tax:          120,
		Total:        2118,
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr.StatusCode()
}

func TestCreate_Success(t *testing.T) {
	svc, books, _ := newTestService(5, 0)

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusPending, created.Status)
	assert.Regexp(t, `^HUF[A-Z0-9]{9}$`, created.BookingRef)
	assert.NotNil(t, created.Experience)
	assert.Equal(t, "Kayaking", created.Experience.Title)
	assert.Contains(t, books.bookings, created.BookingRef)
	// The advisory check reserves nothing.
	assert.Equal(t, 0, books.experiences.exp.TimeSlots[0].BookedSlots)
}

func TestCreate_MissingFields(t *testing.T) {
	svc, _, _ := newTestService(5, 0)

	req := validRequest()
	req.Email = ""
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.EqualError(t, err, "All fields are required")
}

func TestCreate_InvalidEmail(t *testing.T) {
	svc, _, _ := newTestService(5, 0)

	for _, email := range []string{"not-an-email", "a@b", "a b@c.de", "@x.com"} {
		req := validRequest()
		req.Email = email
		_, err := svc.Create(context.Background(), req)
		require.Error(t, err, "email %q should be rejected", email)
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	}
}

func TestCreate_QuantityBounds(t *testing.T) {
	svc, _, _ := newTestService(50, 0)

	req := validRequest()
	req.Quantity = 11
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	req.Quantity = -1
	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestCreate_ExceedsExperienceCap(t *testing.T) {
	svc, _, _ := newTestService(50, 0)

	req := validRequest()
	req.Quantity = 7 // experience caps at 6
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestCreate_PastDateRejected(t *testing.T) {
	svc, _, _ := newTestService(5, 0)

	req := validRequest()
	req.Date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.EqualError(t, err, "Cannot book for past dates")
}

func TestCreate_ExperienceNotFound(t *testing.T) {
	svc, _, _ := newTestService(5, 0)

	req := validRequest()
	req.ExperienceID = "exp-missing"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestCreate_SlotUnavailable(t *testing.T) {
	svc, books, _ := newTestService(3, 2)

	req := validRequest() // quantity 2 against 1 remaining
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.EqualError(t, err, "Only 1 slots available for selected time")
	assert.Empty(t, books.bookings)
}

func TestCreate_RetriesOnDuplicateReference(t *testing.T) {
	svc, books, _ := newTestService(5, 0)
	books.failDupeTimes = 1

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, books.createCalls)
	assert.Contains(t, books.bookings, created.BookingRef)
}

func TestCreate_GivesUpAfterRepeatedCollisions(t *testing.T) {
	svc, books, _ := newTestService(5, 0)
	books.failDupeTimes = 2

	_, err := svc.Create(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}

func TestGetByRef_JoinsExperience(t *testing.T) {
	svc, _, _ := newTestService(5, 0)
	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	found, err := svc.GetByRef(context.Background(), created.BookingRef)
	require.NoError(t, err)
	require.NotNil(t, found.Experience)
	assert.Equal(t, "exp-1", found.Experience.ID)
	assert.Equal(t, created.BookingRef, found.BookingRef)
}

func TestGetByRef_NotFound(t *testing.T) {
	svc, _, _ := newTestService(5, 0)

	_, err := svc.GetByRef(context.Background(), "HUFMISSING1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestCancel_PendingRejected(t *testing.T) {
	svc, _, _ := newTestService(5, 0)
	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), created.BookingRef)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.EqualError(t, err, "Only confirmed bookings can be cancelled")
}

func TestCancel_NotFound(t *testing.T) {
	svc, _, _ := newTestService(5, 0)

	_, err := svc.Cancel(context.Background(), "HUFMISSING1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestConfirmThenCancel_RoundTrip(t *testing.T) {
	svc, books, exps := newTestService(5, 0)
	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	// Confirm through the repo the way the orchestrator would.
	err = books.ConfirmWithPayment(context.Background(), books.bookings[created.BookingRef], &models.Payment{})
	require.NoError(t, err)
	assert.Equal(t, 2, exps.exp.TimeSlots[0].BookedSlots)

	cancelled, err := svc.Cancel(context.Background(), created.BookingRef)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, 0, exps.exp.TimeSlots[0].BookedSlots)
}
