package dice

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/PedroPerillo/dndice/internal/dice Roller

// Roller rolls a single die
type Roller interface {
	// Roll returns one outcome in [1, sides]
	Roll(sides int) int
}

// Source yields uniformly distributed values in [0, 1)
type Source interface {
	Float64() float64
}

// Config for dice roller
type Config struct {
	// Optional seed for reproducible rolls
	Seed int64

	// Optional source, takes precedence over Seed
	Source Source
}

// RandomRoller draws faces from a Source
type RandomRoller struct {
	source Source
}

// New creates a new dice roller. Without a seed or source it uses a
// time-seeded generator shared by every caller of the roller.
func New(cfg *Config) *RandomRoller {
	if cfg != nil && cfg.Source != nil {
		return &RandomRoller{source: cfg.Source}
	}

	seed := time.Now().UnixNano()
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	}

	return &RandomRoller{
		source: &lockedSource{random: rand.New(rand.NewSource(seed))},
	}
}

// Roll maps one draw onto a face: floor(u * sides) + 1.
// A non-positive side count is a caller error and is not corrected.
func (r *RandomRoller) Roll(sides int) int {
	face := int(math.Floor(r.source.Float64()*float64(sides))) + 1
	if sides > 0 && face > sides {
		face = sides
	}
	return face
}

// lockedSource makes a *rand.Rand safe to share between goroutines
type lockedSource struct {
	mu     sync.Mutex
	random *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.random.Float64()
}
