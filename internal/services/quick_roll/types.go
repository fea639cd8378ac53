package quick_roll

import (
	"log/slog"

	"github.com/PedroPerillo/dndice/internal/models"
	quickRollRepo "github.com/PedroPerillo/dndice/internal/repositories/quick_roll"
)

// Config holds configuration for the quick roll service
type Config struct {
	// Remote is the owner-scoped store used for authenticated callers.
	// Nil means only local scopes are served.
	Remote quickRollRepo.Repository

	// RemoteName labels metrics for the remote store, e.g. "redis"
	RemoteName string

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Scope identifies whose presets an operation touches
type Scope struct {
	// Identity is the signed-in caller, nil when anonymous
	Identity *models.Identity

	// Local is the caller's own storage, used when Identity is nil
	Local quickRollRepo.Repository
}

// Draft holds the user-editable fields of a preset
type Draft struct {
	Name     string
	Count    int
	DieSize  int
	Modifier int
}

// ListQuickRollsInput contains parameters for listing presets
type ListQuickRollsInput struct {
	Scope Scope
}

// ListQuickRollsOutput contains the scope's presets, newest first
type ListQuickRollsOutput struct {
	QuickRolls []*models.QuickRoll
}

// CreateQuickRollInput contains parameters for creating a preset
type CreateQuickRollInput struct {
	Scope Scope
	Draft Draft
}

// CreateQuickRollOutput contains the stored preset
type CreateQuickRollOutput struct {
	QuickRoll *models.QuickRoll
}

// GetQuickRollInput contains parameters for retrieving a preset
type GetQuickRollInput struct {
	Scope Scope
	ID    string
}

// GetQuickRollOutput contains the requested preset
type GetQuickRollOutput struct {
	QuickRoll *models.QuickRoll
}

// UpdateQuickRollInput contains parameters for replacing a preset's fields
type UpdateQuickRollInput struct {
	Scope Scope
	ID    string
	Draft Draft
}

// UpdateQuickRollOutput contains the preset after the update
type UpdateQuickRollOutput struct {
	QuickRoll *models.QuickRoll
}

// DeleteQuickRollInput contains parameters for removing a preset
type DeleteQuickRollInput struct {
	Scope Scope
	ID    string
}
