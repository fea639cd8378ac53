package quick_roll

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/PedroPerillo/dndice/internal/common/clock"
	"github.com/PedroPerillo/dndice/internal/models"
)

const (
	// LocalStorageKey is the key the anonymous preset list is kept under
	LocalStorageKey = "dndice_quickrolls"

	// DefaultLocalTTL is how long a client keeps its anonymous presets
	DefaultLocalTTL = 365 * 24 * time.Hour
)

// LocalConfig holds configuration for a client-local quick roll repository
type LocalConfig struct {
	// Storage holds the serialized list
	Storage Storage

	// Clock stamps creation times and issues ids, defaults to the system clock
	Clock clock.Clock

	// TTL is passed to every write, defaults to DefaultLocalTTL
	TTL time.Duration
}

// localRepository keeps one client's presets as a single serialized list.
// The owner on every input is ignored; everything in the storage belongs to
// models.LocalOwnerID.
type localRepository struct {
	storage Storage
	clock   clock.Clock
	ttl     time.Duration

	mu sync.Mutex
}

// NewLocal creates a repository over a client's own storage
func NewLocal(cfg *LocalConfig) (*localRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Storage == nil {
		return nil, ErrNilStorage
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultLocalTTL
	}

	return &localRepository{
		storage: cfg.Storage,
		clock:   clk,
		ttl:     ttl,
	}, nil
}

// load reads the stored list. A missing or unreadable value is an empty list.
func (r *localRepository) load(ctx context.Context) ([]*models.QuickRoll, error) {
	raw, ok, err := r.storage.Get(ctx, LocalStorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read local quick rolls: %w", err)
	}

	if !ok || raw == "" {
		return []*models.QuickRoll{}, nil
	}

	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return []*models.QuickRoll{}, nil
	}

	var quickRolls []*models.QuickRoll
	if err := json.Unmarshal([]byte(decoded), &quickRolls); err != nil {
		return []*models.QuickRoll{}, nil
	}

	kept := quickRolls[:0]
	for _, q := range quickRolls {
		if q == nil {
			continue
		}
		q.OwnerID = models.LocalOwnerID
		kept = append(kept, q)
	}

	return kept, nil
}

func (r *localRepository) save(ctx context.Context, quickRolls []*models.QuickRoll) error {
	stored := make([]models.QuickRoll, len(quickRolls))
	for i, q := range quickRolls {
		stored[i] = *q
		stored[i].OwnerID = ""
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal local quick rolls: %w", err)
	}

	if err := r.storage.Set(ctx, LocalStorageKey, url.PathEscape(string(data)), r.ttl); err != nil {
		return fmt.Errorf("failed to write local quick rolls: %w", err)
	}

	return nil
}

// nextID is the creation time in milliseconds, bumped past any id already in use
func (r *localRepository) nextID(now time.Time, quickRolls []*models.QuickRoll) string {
	used := make(map[string]struct{}, len(quickRolls))
	for _, q := range quickRolls {
		used[q.ID] = struct{}{}
	}

	n := now.UnixMilli()
	for {
		id := strconv.FormatInt(n, 10)
		if _, taken := used[id]; !taken {
			return id
		}
		n++
	}
}

// ListQuickRolls returns the stored list, newest first
func (r *localRepository) ListQuickRolls(ctx context.Context, input *ListQuickRollsInput) (*ListQuickRollsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	quickRolls, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	return &ListQuickRollsOutput{
		QuickRolls: quickRolls,
	}, nil
}

// CreateQuickRoll puts a new preset at the front of the list
func (r *localRepository) CreateQuickRoll(ctx context.Context, input *CreateQuickRollInput) (*models.QuickRoll, error) {
	if input == nil || input.QuickRoll == nil {
		return nil, ErrNilInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	quickRolls, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	now := r.clock.Now().UTC()

	quickRoll := *input.QuickRoll
	quickRoll.ID = r.nextID(now, quickRolls)
	quickRoll.OwnerID = models.LocalOwnerID
	quickRoll.CreatedAt = now

	updated := append([]*models.QuickRoll{&quickRoll}, quickRolls...)
	if err := r.save(ctx, updated); err != nil {
		return nil, err
	}

	return &quickRoll, nil
}

// GetQuickRoll finds a preset by id
func (r *localRepository) GetQuickRoll(ctx context.Context, input *GetQuickRollInput) (*models.QuickRoll, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.ID == "" {
		return nil, ErrMissingID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	quickRolls, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, q := range quickRolls {
		if q.ID == input.ID {
			return q, nil
		}
	}

	return nil, ErrQuickRollNotFound
}

// UpdateQuickRoll replaces a preset in place, keeping its position
func (r *localRepository) UpdateQuickRoll(ctx context.Context, input *UpdateQuickRollInput) (*models.QuickRoll, error) {
	if input == nil || input.QuickRoll == nil {
		return nil, ErrNilInput
	}

	if input.QuickRoll.ID == "" {
		return nil, ErrMissingID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	quickRolls, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, q := range quickRolls {
		if q.ID != input.QuickRoll.ID {
			continue
		}

		q.Name = input.QuickRoll.Name
		q.Count = input.QuickRoll.Count
		q.DieSize = input.QuickRoll.DieSize
		q.Modifier = input.QuickRoll.Modifier

		if err := r.save(ctx, quickRolls); err != nil {
			return nil, err
		}

		updated := *q
		return &updated, nil
	}

	return nil, ErrQuickRollNotFound
}

// DeleteQuickRoll drops a preset from the list. The list is rewritten even
// when the id is absent, which also refreshes the expiry.
func (r *localRepository) DeleteQuickRoll(ctx context.Context, input *DeleteQuickRollInput) error {
	if input == nil {
		return ErrNilInput
	}

	if input.ID == "" {
		return ErrMissingID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	quickRolls, err := r.load(ctx)
	if err != nil {
		return err
	}

	kept := make([]*models.QuickRoll, 0, len(quickRolls))
	for _, q := range quickRolls {
		if q.ID != input.ID {
			kept = append(kept, q)
		}
	}

	return r.save(ctx, kept)
}

// Ping checks that the storage can be read
func (r *localRepository) Ping(ctx context.Context) error {
	_, _, err := r.storage.Get(ctx, LocalStorageKey)
	return err
}
