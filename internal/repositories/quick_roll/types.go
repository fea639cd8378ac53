package quick_roll

import "github.com/PedroPerillo/dndice/internal/models"

// ListQuickRollsInput contains parameters for listing an owner's presets
type ListQuickRollsInput struct {
	OwnerID string
}

// ListQuickRollsOutput contains the owner's presets, newest first
type ListQuickRollsOutput struct {
	QuickRolls []*models.QuickRoll
}

// CreateQuickRollInput contains parameters for storing a preset.
// ID and CreatedAt on the preset are assigned by the repository.
type CreateQuickRollInput struct {
	QuickRoll *models.QuickRoll
}

// GetQuickRollInput contains parameters for retrieving a preset
type GetQuickRollInput struct {
	OwnerID string
	ID      string
}

// UpdateQuickRollInput contains parameters for replacing a preset's fields.
// QuickRoll.ID and QuickRoll.OwnerID select the row.
type UpdateQuickRollInput struct {
	QuickRoll *models.QuickRoll
}

// DeleteQuickRollInput contains parameters for removing a preset
type DeleteQuickRollInput struct {
	OwnerID string
	ID      string
}
