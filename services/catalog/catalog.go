package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	experienceRepo "hufbook/database/repository/experience"
	"hufbook/models"
	"hufbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CatalogService exposes the browsable experience catalog and single-slot
// availability checks.
type CatalogService interface {
	List(ctx context.Context, search string) ([]models.Experience, error)
	Get(ctx context.Context, id string) (*models.Experience, error)
	Availability(ctx context.Context, id, date, slotTime string) (*models.Availability, error)
}

// DefaultCatalogService implements CatalogService. Cache is optional; when
// nil every read goes straight to the repository.
type DefaultCatalogService struct {
	Repo     experienceRepo.ExperienceRepository
	Cache    *redis.Client
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// List returns the catalog, filtered by a case-insensitive substring match
// on title or location. Results are cached per search text; slot counts are
// not part of the list view so short staleness is harmless.
func (s *DefaultCatalogService) List(ctx context.Context, search string) ([]models.Experience, error) {
	search = strings.TrimSpace(search)
	cacheKey := fmt.Sprintf("experiences:list:%s", strings.ToLower(search))

	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached []models.Experience
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	experiences, err := s.Repo.Search(ctx, search)
	if err != nil {
		s.Logger.Error("failed to list experiences", zap.Error(err))
		return nil, utils.ServerError("Server error while fetching experiences")
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(experiences); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, raw, s.CacheTTL).Err(); err != nil {
				s.Logger.Warn("failed to cache experience list", zap.Error(err))
			}
		}
	}
	return experiences, nil
}

// Get returns a full experience including its slots.
func (s *DefaultCatalogService) Get(ctx context.Context, id string) (*models.Experience, error) {
	exp, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, experienceRepo.ErrNotFound) {
			return nil, utils.NotFoundError("Experience not found")
		}
		s.Logger.Error("failed to fetch experience", zap.String("id", id), zap.Error(err))
		return nil, utils.ServerError("Server error while fetching experience")
	}
	return exp, nil
}

// Availability checks whether a single unit can be booked at (date, slotTime).
func (s *DefaultCatalogService) Availability(ctx context.Context, id, date, slotTime string) (*models.Availability, error) {
	exp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	availability := exp.CheckAvailability(date, slotTime, 1)
	return &availability, nil
}
