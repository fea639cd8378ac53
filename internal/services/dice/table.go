package dice

import (
	"context"
	"sync"
	"time"

	"github.com/PedroPerillo/dndice/internal/common/clock"
	"github.com/PedroPerillo/dndice/internal/models"
)

// Table runs the idle/rolling interaction around a dice service. Only one
// roll is in flight at a time; requests made while rolling are rejected.
type Table struct {
	service   Service
	clock     clock.Clock
	delay     time.Duration
	onPublish func(result *models.RollResult)

	mu    sync.Mutex
	state TableState
	last  *models.RollResult
}

// NewTable creates a new roll table
func NewTable(cfg *TableConfig) (*Table, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Service == nil {
		return nil, ErrNilService
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	return &Table{
		service:   cfg.Service,
		clock:     clk,
		delay:     cfg.DisplayDelay,
		onPublish: cfg.OnPublish,
		state:     TableIdle,
	}, nil
}

// Roll computes a result, holds it for the display delay and then publishes
// it. Cancelling ctx during the delay returns to idle without publishing.
func (t *Table) Roll(ctx context.Context, input *RollInput) (*models.RollResult, error) {
	t.mu.Lock()
	if t.state == TableRolling {
		t.mu.Unlock()
		return nil, ErrRollInProgress
	}
	t.state = TableRolling
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.state = TableIdle
		t.mu.Unlock()
	}()

	output, err := t.service.Roll(ctx, input)
	if err != nil {
		return nil, err
	}

	if t.delay > 0 {
		select {
		case <-t.clock.After(t.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	t.mu.Lock()
	t.last = output.Result
	t.mu.Unlock()

	if t.onPublish != nil {
		t.onPublish(output.Result)
	}

	return output.Result, nil
}

// State returns the current phase
func (t *Table) State() TableState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Last returns the most recently published result, nil before the first roll
func (t *Table) Last() *models.RollResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}
