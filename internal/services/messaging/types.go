package messaging

import "github.com/PedroPerillo/dndice/internal/models"

// Moment is what made a roll worth commenting on
type Moment string

const (
	// MomentNone is an ordinary roll
	MomentNone Moment = ""

	// MomentCritical is a natural 20 on any d20 thrown
	MomentCritical Moment = "critical"

	// MomentFumble is every d20 thrown landing on 1
	MomentFumble Moment = "fumble"

	// MomentMaxed is every die of another size landing on its highest face
	MomentMaxed Moment = "maxed"
)

// Config contains configuration for the messaging service
type Config struct {
	// Pick returns an index in [0, n). Defaults to a time-seeded generator.
	Pick func(n int) int
}

// GetRollCommentaryInput contains the roll to comment on
type GetRollCommentaryInput struct {
	Result *models.RollResult

	// RollerName is used in the message, blank addresses the reader as "you"
	RollerName string
}

// GetRollCommentaryOutput contains the chosen commentary
type GetRollCommentaryOutput struct {
	Moment  Moment
	Title   string
	Message string
}
