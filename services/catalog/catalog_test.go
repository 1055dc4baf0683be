package catalog

import (
	"context"
	"net/http"
	"strings"
	"testing"

	experienceRepo "hufbook/database/repository/experience"
	"hufbook/models"
	"hufbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeExperienceRepo struct {
	experiences []models.Experience
	searchCalls int
	searchErr   error
}

func (f *fakeExperienceRepo) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	for i := range f.experiences {
		if f.experiences[i].ID == id {
			copied := f.experiences[i]
			return &copied, nil
		}
	}
	return nil, experienceRepo.ErrNotFound
}

func (f *fakeExperienceRepo) Search(ctx context.Context, search string) ([]models.Experience, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if search == "" {
		return f.experiences, nil
	}
	var out []models.Experience
	needle := strings.ToLower(search)
	for _, exp := range f.experiences {
		if strings.Contains(strings.ToLower(exp.Title), needle) || strings.Contains(strings.ToLower(exp.Location), needle) {
			out = append(out, exp)
		}
	}
	return out, nil
}

func (f *fakeExperienceRepo) Create(ctx context.Context, exp *models.Experience) error {
	f.experiences = append(f.experiences, *exp)
	return nil
}

func (f *fakeExperienceRepo) Reserve(ctx context.Context, experienceID, date, slotTime string, quantity int) error {
	return nil
}

func (f *fakeExperienceRepo) Release(ctx context.Context, experienceID, date, slotTime string, quantity int) error {
	return nil
}

func newTestService() (*DefaultCatalogService, *fakeExperienceRepo) {
	repo := &fakeExperienceRepo{experiences: []models.Experience{
		{
			ID:       "exp-1",
			Title:    "Kayaking",
			Location: "Udupi",
			Price:    999,
			TimeSlots: []models.TimeSlot{
				{Date: "2026-09-10", Time: "10:00", TotalSlots: 3, BookedSlots: 2},
			},
		},
		{ID: "exp-2", Title: "Coffee Trail", Location: "Coorg", Price: 1299},
	}}
	return &DefaultCatalogService{Repo: repo, Logger: zap.NewNop()}, repo
}

func TestList_All(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestList_FiltersByTitleOrLocation(t *testing.T) {
	svc, _ := newTestService()

	byTitle, err := svc.List(context.Background(), "kayak")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "exp-1", byTitle[0].ID)

	byLocation, err := svc.List(context.Background(), "coorg")
	require.NoError(t, err)
	require.Len(t, byLocation, 1)
	assert.Equal(t, "exp-2", byLocation[0].ID)
}

func TestList_TrimsSearchText(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.List(context.Background(), "  kayak  ")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestList_RepositoryError(t *testing.T) {
	svc, repo := newTestService()
	repo.searchErr = assert.AnError

	_, err := svc.List(context.Background(), "")
	require.Error(t, err)
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode())
}

func TestGet_Found(t *testing.T) {
	svc, _ := newTestService()

	exp, err := svc.Get(context.Background(), "exp-1")
	require.NoError(t, err)
	assert.Equal(t, "Kayaking", exp.Title)
	assert.Len(t, exp.TimeSlots, 1)
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), "exp-missing")
	require.Error(t, err)
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode())
}

func TestAvailability_OneSlotLeft(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.Availability(context.Background(), "exp-1", "2026-09-10", "10:00")
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Equal(t, 1, got.AvailableSlots)
}

func TestAvailability_FullSlot(t *testing.T) {
	svc, repo := newTestService()
	repo.experiences[0].TimeSlots[0].BookedSlots = 3

	got, err := svc.Availability(context.Background(), "exp-1", "2026-09-10", "10:00")
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, 0, got.AvailableSlots)
}

func TestAvailability_UnknownSlot(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.Availability(context.Background(), "exp-1", "2026-09-10", "23:00")
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, "Slot not found", got.Message)
}

func TestAvailability_UnknownExperience(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Availability(context.Background(), "exp-missing", "2026-09-10", "10:00")
	require.Error(t, err)
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode())
}
