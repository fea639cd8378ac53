package models

// RollResult is the outcome of one roll request. It is never stored and is
// replaced wholesale by the next roll.
type RollResult struct {
	// Count and DieSize describe the dice that were thrown
	Count   int
	DieSize int

	// IndividualRolls holds each face in the order it was drawn
	IndividualRolls []int

	// DiceSum is the sum of IndividualRolls
	DiceSum int

	// ModifierApplied is the flat modifier added to the sum
	ModifierApplied int

	// Total is DiceSum + ModifierApplied
	Total int

	// Highest is the largest face, 0 when no dice were thrown
	Highest int
}

// Label renders the notation that produced the result
func (r *RollResult) Label() string {
	return FormatLabel(r.Count, r.DieSize, r.ModifierApplied)
}
