package dice

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/PedroPerillo/dndice/internal/services/dice Service

import "context"

// Service defines the interface for roll operations
type Service interface {
	// Roll throws count dice of the given size and applies the modifier
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)
}
