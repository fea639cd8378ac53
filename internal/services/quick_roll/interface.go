package quick_roll

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/PedroPerillo/dndice/internal/services/quick_roll Service

import "context"

// Service defines the quick roll preset lifecycle. Each call picks the
// remote or local store from the caller's Scope.
type Service interface {
	// ListQuickRolls returns the scope's presets, newest first
	ListQuickRolls(ctx context.Context, input *ListQuickRollsInput) (*ListQuickRollsOutput, error)

	// CreateQuickRoll normalizes, validates and stores a new preset
	CreateQuickRoll(ctx context.Context, input *CreateQuickRollInput) (*CreateQuickRollOutput, error)

	// GetQuickRoll retrieves one preset by id
	GetQuickRoll(ctx context.Context, input *GetQuickRollInput) (*GetQuickRollOutput, error)

	// UpdateQuickRoll replaces every field of an existing preset
	UpdateQuickRoll(ctx context.Context, input *UpdateQuickRollInput) (*UpdateQuickRollOutput, error)

	// DeleteQuickRoll removes a preset; missing presets are not an error
	DeleteQuickRoll(ctx context.Context, input *DeleteQuickRollInput) error
}
