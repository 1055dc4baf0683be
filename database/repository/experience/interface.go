package experienceRepo

import (
	"context"
	"errors"

	"hufbook/models"
)

// Sentinel errors surfaced by the slot inventory.
var (
	// ErrNotFound means no experience matches the given id.
	ErrNotFound = errors.New("experience not found")
	// ErrSlotNotFound means the experience has no slot at the (date, time) key.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrInsufficientCapacity means the slot cannot take the requested quantity.
	ErrInsufficientCapacity = errors.New("not enough slots available")
)

// ExperienceRepository defines methods for experience data access and the
// slot inventory ledger.
type ExperienceRepository interface {
	// GetByID retrieves a full experience including its slots.
	GetByID(ctx context.Context, id string) (*models.Experience, error)
	// Search retrieves experiences whose title or location matches the search
	// text (case-insensitive substring; empty matches all). Slot detail is
	// omitted from the result.
	Search(ctx context.Context, search string) ([]models.Experience, error)
	// Create inserts a new experience document.
	Create(ctx context.Context, exp *models.Experience) error
	// Reserve atomically increments the booked count of exactly the targeted
	// slot, failing with ErrSlotNotFound or ErrInsufficientCapacity. It runs
	// inside a transaction when ctx carries a Mongo session.
	Reserve(ctx context.Context, experienceID, date, slotTime string, quantity int) error
	// Release decrements the booked count of the targeted slot, floored at
	// zero. Session-aware like Reserve.
	Release(ctx context.Context, experienceID, date, slotTime string, quantity int) error
}
