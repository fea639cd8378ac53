package dice

import (
	"context"
	"strconv"

	"github.com/PedroPerillo/dndice/internal/dice"
	"github.com/PedroPerillo/dndice/internal/metrics"
	"github.com/PedroPerillo/dndice/internal/models"
)

// service implements the Service interface
type service struct {
	roller dice.Roller
}

// New creates a new dice service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.DiceRoller == nil {
		return nil, ErrNilRoller
	}

	return &service{
		roller: cfg.DiceRoller,
	}, nil
}

// Roll throws the requested dice
func (s *service) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	result := Roll(s.roller, input.Count, input.DieSize, input.Modifier)

	metrics.RollsTotal.WithLabelValues(strconv.Itoa(input.DieSize)).Inc()
	metrics.DiceThrownTotal.Add(float64(len(result.IndividualRolls)))

	return &RollOutput{
		Result: result,
	}, nil
}

// Roll draws count faces from the roller and aggregates them. A count of
// zero or less yields no faces, a zero sum and a zero highest.
func Roll(roller dice.Roller, count, dieSize, modifier int) *models.RollResult {
	if count < 0 {
		count = 0
	}

	result := &models.RollResult{
		Count:           count,
		DieSize:         dieSize,
		IndividualRolls: make([]int, 0, count),
		ModifierApplied: modifier,
	}

	for i := 0; i < count; i++ {
		face := roller.Roll(dieSize)
		result.IndividualRolls = append(result.IndividualRolls, face)
		result.DiceSum += face
		if face > result.Highest {
			result.Highest = face
		}
	}

	result.Total = result.DiceSum + modifier

	return result
}
