package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/PedroPerillo/dndice/internal/models"
)

var (
	criticalTitles = []string{"CRIT!", "Nat 20!", "BOOM! Critical Hit!", "MAXIMUM DAMAGE!", "The dice gods smile!"}
	fumbleTitles   = []string{"CRITICAL FAIL!", "Nat 1!", "Ouch!", "Better luck next time!", "Sad trumpet"}
	maxedTitles    = []string{"Max roll!", "Perfect Roll!", "Every die maxed!"}

	// %s is the roller, %d the total
	criticalMessages = []string{
		"%s rolled a natural 20! That's %d.",
		"Incredible! %s just landed a 20 for %d.",
		"%s is on fire! A natural 20, total %d.",
		"The dice favor %s today. Natural 20, %d all told.",
	}
	fumbleMessages = []string{
		"%s rolled a natural 1. That's %d.",
		"Oof! %s angered the dice gods with a 1. Total %d.",
		"%s rolled a 1. Let's pretend nobody saw that %d.",
		"Nooope! A 1 for %s, %d total.",
	}
	maxedMessages = []string{
		"%s maxed every die for %d!",
		"Highest face on every die. %s hits for %d.",
		"%s couldn't have rolled better: %d.",
	}
)

// service implements the Service interface
type service struct {
	pick func(n int) int
}

// NewService creates a new messaging service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	pick := cfg.Pick
	if pick == nil {
		var mu sync.Mutex
		random := rand.New(rand.NewSource(time.Now().UnixNano()))
		pick = func(n int) int {
			mu.Lock()
			defer mu.Unlock()
			return random.Intn(n)
		}
	}

	return &service{pick: pick}, nil
}

// ClassifyRoll reports which moment, if any, a result represents
func ClassifyRoll(result *models.RollResult) Moment {
	if result == nil || len(result.IndividualRolls) == 0 {
		return MomentNone
	}

	if result.DieSize == 20 {
		if result.Highest == 20 {
			return MomentCritical
		}
		if result.Highest == 1 {
			return MomentFumble
		}
		return MomentNone
	}

	for _, face := range result.IndividualRolls {
		if face != result.DieSize {
			return MomentNone
		}
	}
	return MomentMaxed
}

// GetRollCommentary returns flavor text for notable rolls
func (s *service) GetRollCommentary(ctx context.Context, input *GetRollCommentaryInput) (*GetRollCommentaryOutput, error) {
	if input == nil || input.Result == nil {
		return nil, errors.New("input cannot be nil")
	}

	moment := ClassifyRoll(input.Result)

	var titles, messages []string
	switch moment {
	case MomentCritical:
		titles, messages = criticalTitles, criticalMessages
	case MomentFumble:
		titles, messages = fumbleTitles, fumbleMessages
	case MomentMaxed:
		titles, messages = maxedTitles, maxedMessages
	default:
		return &GetRollCommentaryOutput{Moment: MomentNone}, nil
	}

	name := input.RollerName
	if name == "" {
		name = "You"
	}

	return &GetRollCommentaryOutput{
		Moment:  moment,
		Title:   titles[s.pick(len(titles))],
		Message: fmt.Sprintf(messages[s.pick(len(messages))], name, input.Result.Total),
	}, nil
}
