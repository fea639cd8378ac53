package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PedroPerillo/dndice/internal/models"
)

var notationPattern = regexp.MustCompile(`^(\d*)d(\d+)([+-]\d+)?$`)

// ParseNotation reads expressions like "d20", "2d6", "1d20+5" or "3d8-2".
// Count and modifier are clamped into range; unknown die sizes are rejected.
func ParseNotation(s string) (*Notation, error) {
	compact := strings.ToLower(strings.Join(strings.Fields(s), ""))

	match := notationPattern.FindStringSubmatch(compact)
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	count := 1
	if match[1] != "" {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, fmt.Errorf("%w: count %q", ErrInvalidNotation, match[1])
		}
		count = n
	}

	dieSize, err := strconv.Atoi(match[2])
	if err != nil || !models.IsValidDieSize(dieSize) {
		return nil, fmt.Errorf("%w: d%s is not a supported die", ErrInvalidNotation, match[2])
	}

	modifier := 0
	if match[3] != "" {
		n, err := strconv.Atoi(match[3])
		if err != nil {
			return nil, fmt.Errorf("%w: modifier %q", ErrInvalidNotation, match[3])
		}
		modifier = n
	}

	return &Notation{
		Count:    models.ClampCount(count),
		DieSize:  dieSize,
		Modifier: models.ClampModifier(modifier),
	}, nil
}
