package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/PedroPerillo/dndice/internal/services/messaging Service

import "context"

// Service picks flavor text for notable rolls
type Service interface {
	// GetRollCommentary returns a title and message for a crit, a fumble or
	// a maxed roll. Ordinary rolls get an empty output with MomentNone.
	GetRollCommentary(ctx context.Context, input *GetRollCommentaryInput) (*GetRollCommentaryOutput, error)
}
