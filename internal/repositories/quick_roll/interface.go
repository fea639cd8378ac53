package quick_roll

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/PedroPerillo/dndice/internal/repositories/quick_roll Repository,Storage

import (
	"context"
	"time"

	"github.com/PedroPerillo/dndice/internal/models"
)

// Repository defines the interface for quick roll persistence. Every
// operation is scoped to a single owner.
type Repository interface {
	// ListQuickRolls returns the owner's presets, newest first
	ListQuickRolls(ctx context.Context, input *ListQuickRollsInput) (*ListQuickRollsOutput, error)

	// CreateQuickRoll stores a new preset and returns it with its id and creation time
	CreateQuickRoll(ctx context.Context, input *CreateQuickRollInput) (*models.QuickRoll, error)

	// GetQuickRoll retrieves one preset by id
	GetQuickRoll(ctx context.Context, input *GetQuickRollInput) (*models.QuickRoll, error)

	// UpdateQuickRoll replaces the dice fields and name of an existing preset
	UpdateQuickRoll(ctx context.Context, input *UpdateQuickRollInput) (*models.QuickRoll, error)

	// DeleteQuickRoll removes a preset. Removing a missing preset is not an error.
	DeleteQuickRoll(ctx context.Context, input *DeleteQuickRollInput) error

	// Ping reports whether the backend is reachable
	Ping(ctx context.Context) error
}

// Storage is a small key/value area owned by one client, such as a cookie jar or a file
type Storage interface {
	// Get returns the value for key and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key for ttl
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
