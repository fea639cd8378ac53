package dice

import (
	"time"

	"github.com/PedroPerillo/dndice/internal/common/clock"
	"github.com/PedroPerillo/dndice/internal/dice"
	"github.com/PedroPerillo/dndice/internal/models"
)

// QuickD20Counts are the one-tap d20 rolls offered next to saved presets
var QuickD20Counts = []int{1, 2, 3, 6}

// Config holds configuration for the dice service
type Config struct {
	// DiceRoller draws individual faces
	DiceRoller dice.Roller
}

// RollInput contains parameters for a roll. Callers clamp Count and
// Modifier and pick DieSize from models.DieSizes.
type RollInput struct {
	Count    int
	DieSize  int
	Modifier int
}

// RollOutput contains the result of a roll
type RollOutput struct {
	Result *models.RollResult
}

// TableState is the phase of the roll interaction
type TableState string

const (
	// TableIdle accepts new roll requests
	TableIdle TableState = "idle"

	// TableRolling rejects new roll requests until the result is published
	TableRolling TableState = "rolling"
)

// TableConfig holds configuration for a roll table
type TableConfig struct {
	// Service computes results
	Service Service

	// Clock drives the display delay, defaults to the system clock
	Clock clock.Clock

	// DisplayDelay is how long a roll stays in the rolling state. Zero publishes immediately.
	DisplayDelay time.Duration

	// OnPublish is called with every published result
	OnPublish func(result *models.RollResult)
}

// Notation is a parsed dice expression such as 2d20+3
type Notation struct {
	Count    int
	DieSize  int
	Modifier int
}

// Label renders the notation back to text
func (n *Notation) Label() string {
	return models.FormatLabel(n.Count, n.DieSize, n.Modifier)
}
