package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/PedroPerillo/dndice/internal/models"
	quickRollRepo "github.com/PedroPerillo/dndice/internal/repositories/quick_roll"
	quickRollService "github.com/PedroPerillo/dndice/internal/services/quick_roll"
)

// ShelfConfig holds configuration for a Shelf
type ShelfConfig struct {
	// Gate reports the signed-in identity
	Gate Gate

	// Service performs the store calls
	Service quickRollService.Service

	// Local is this client's own store, used while anonymous
	Local quickRollRepo.Repository

	// OnUpdate is called with a copy of the list after every change
	OnUpdate func(items []*models.QuickRoll)

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Shelf is a client's view of its presets. It follows the gate: every
// identity change clears the list and reloads it from the new scope, and a
// load that finishes after a newer change is dropped.
type Shelf struct {
	gate     Gate
	service  quickRollService.Service
	local    quickRollRepo.Repository
	onUpdate func(items []*models.QuickRoll)
	logger   *slog.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe func()
	wg          sync.WaitGroup

	mu         sync.Mutex
	identity   *models.Identity
	generation uint64
	items      []*models.QuickRoll

	// Changes made while loads are in flight, replayed onto their results
	loading   int
	changeSeq uint64
	changes   []change
}

// change is an Add or Remove applied to the list in the current generation
type change struct {
	seq     uint64
	added   *models.QuickRoll
	removed string
}

// NewShelf creates a shelf, subscribes it to the gate and starts the first load
func NewShelf(cfg *ShelfConfig) (*Shelf, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Gate == nil {
		return nil, ErrNilGate
	}

	if cfg.Service == nil {
		return nil, ErrNilService
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Shelf{
		gate:     cfg.Gate,
		service:  cfg.Service,
		local:    cfg.Local,
		onUpdate: cfg.OnUpdate,
		logger:   logger.With("component", "shelf"),
		ctx:      ctx,
		cancel:   cancel,
		items:    []*models.QuickRoll{},
	}

	s.unsubscribe = cfg.Gate.OnChange(s.identityChanged)
	s.identityChanged(cfg.Gate.Current())

	return s, nil
}

// identityChanged swaps the list for the new scope's presets
func (s *Shelf) identityChanged(identity *models.Identity) {
	s.mu.Lock()
	s.identity = identity
	s.generation++
	s.items = []*models.QuickRoll{}
	s.changes = nil
	s.mu.Unlock()

	s.notify()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.Reload(s.ctx); err != nil && !errors.Is(err, ErrStaleLoad) && s.ctx.Err() == nil {
			s.logger.Warn("failed to load quick rolls", "error", err)
		}
	}()
}

func (s *Shelf) scope(identity *models.Identity) quickRollService.Scope {
	return quickRollService.Scope{
		Identity: identity,
		Local:    s.local,
	}
}

func (s *Shelf) snapshot() (*models.Identity, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity, s.generation
}

// record logs a change for loads still in flight. Callers hold mu.
func (s *Shelf) record(c change) {
	s.changeSeq++
	if s.loading == 0 {
		return
	}
	c.seq = s.changeSeq
	s.changes = append(s.changes, c)
}

// replay applies the changes made since seq onto a freshly loaded list
func (s *Shelf) replay(items []*models.QuickRoll, since uint64) []*models.QuickRoll {
	for _, c := range s.changes {
		if c.seq <= since {
			continue
		}
		if c.added != nil {
			if !contains(items, c.added.ID) {
				items = append([]*models.QuickRoll{c.added}, items...)
			}
			continue
		}
		items = without(items, c.removed)
	}
	return items
}

func contains(items []*models.QuickRoll, id string) bool {
	for _, q := range items {
		if q.ID == id {
			return true
		}
	}
	return false
}

func without(items []*models.QuickRoll, id string) []*models.QuickRoll {
	kept := make([]*models.QuickRoll, 0, len(items))
	for _, q := range items {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	return kept
}

func (s *Shelf) notify() {
	if s.onUpdate != nil {
		s.onUpdate(s.Items())
	}
}

// Reload fetches the list for the current identity. If the identity changes
// before the fetch returns, the result is dropped and ErrStaleLoad returned.
// Adds and removes that land while the fetch is in flight are kept.
func (s *Shelf) Reload(ctx context.Context) error {
	s.mu.Lock()
	identity, generation, since := s.identity, s.generation, s.changeSeq
	s.loading++
	s.mu.Unlock()

	out, err := s.service.ListQuickRolls(ctx, &quickRollService.ListQuickRollsInput{
		Scope: s.scope(identity),
	})

	s.mu.Lock()
	stale := generation != s.generation
	if !stale && err == nil {
		s.items = s.replay(out.QuickRolls, since)
	}
	s.loading--
	if s.loading == 0 {
		s.changes = nil
	}
	s.mu.Unlock()

	if stale {
		return ErrStaleLoad
	}
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// Add stores a new preset and puts it at the top of the list
func (s *Shelf) Add(ctx context.Context, draft quickRollService.Draft) (*models.QuickRoll, error) {
	identity, generation := s.snapshot()

	out, err := s.service.CreateQuickRoll(ctx, &quickRollService.CreateQuickRollInput{
		Scope: s.scope(identity),
		Draft: draft,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	applied := generation == s.generation
	if applied {
		s.items = append([]*models.QuickRoll{out.QuickRoll}, s.items...)
		s.record(change{added: out.QuickRoll})
	}
	s.mu.Unlock()

	if applied {
		s.notify()
	}

	return out.QuickRoll, nil
}

// Remove deletes a preset and drops it from the list
func (s *Shelf) Remove(ctx context.Context, id string) error {
	identity, generation := s.snapshot()

	if err := s.service.DeleteQuickRoll(ctx, &quickRollService.DeleteQuickRollInput{
		Scope: s.scope(identity),
		ID:    id,
	}); err != nil {
		return err
	}

	s.mu.Lock()
	applied := generation == s.generation
	if applied {
		s.items = without(s.items, id)
		s.record(change{removed: id})
	}
	s.mu.Unlock()

	if applied {
		s.notify()
	}

	return nil
}

// Items returns a copy of the current list
func (s *Shelf) Items() []*models.QuickRoll {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*models.QuickRoll, len(s.items))
	copy(items, s.items)
	return items
}

// Identity returns the identity the list belongs to
func (s *Shelf) Identity() *models.Identity {
	identity, _ := s.snapshot()
	return identity
}

// Wait blocks until background loads started by identity changes finish
func (s *Shelf) Wait() {
	s.wg.Wait()
}

// Close stops following the gate and cancels pending loads
func (s *Shelf) Close() {
	s.unsubscribe()
	s.cancel()
	s.wg.Wait()
}
