package quick_roll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/PedroPerillo/dndice/internal/common/clock"
)

type storedValue struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (v storedValue) expired(now time.Time) bool {
	return !v.ExpiresAt.IsZero() && !now.Before(v.ExpiresAt)
}

// memoryStorage keeps values in process memory
type memoryStorage struct {
	clock clock.Clock

	mu     sync.Mutex
	values map[string]storedValue
}

// NewMemoryStorage returns an empty in-process Storage. A nil clock uses the system clock.
func NewMemoryStorage(clk clock.Clock) *memoryStorage {
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	return &memoryStorage{
		clock:  clk,
		values: make(map[string]storedValue),
	}
}

func (s *memoryStorage) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	if !ok {
		return "", false, nil
	}

	if v.expired(s.clock.Now()) {
		delete(s.values, key)
		return "", false, nil
	}

	return v.Value, true, nil
}

func (s *memoryStorage) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := storedValue{Value: value}
	if ttl > 0 {
		v.ExpiresAt = s.clock.Now().Add(ttl)
	}
	s.values[key] = v

	return nil
}

// fileStorage keeps values in a JSON document on disk
type fileStorage struct {
	path  string
	clock clock.Clock

	mu sync.Mutex
}

// NewFileStorage returns a Storage backed by the JSON file at path. The file
// and its directory are created on first write.
func NewFileStorage(path string, clk clock.Clock) (*fileStorage, error) {
	if path == "" {
		return nil, errors.New("storage path cannot be empty")
	}

	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	return &fileStorage{
		path:  path,
		clock: clk,
	}, nil
}

func (s *fileStorage) read() (map[string]storedValue, error) {
	values := make(map[string]storedValue)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	if len(data) == 0 {
		return values, nil
	}

	if err := json.Unmarshal(data, &values); err != nil {
		// Unreadable files are started over rather than blocking the client
		return make(map[string]storedValue), nil
	}

	return values, nil
}

func (s *fileStorage) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false, err
	}

	v, ok := values[key]
	if !ok || v.expired(s.clock.Now()) {
		return "", false, nil
	}

	return v.Value, true, nil
}

func (s *fileStorage) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}

	now := s.clock.Now()
	for k, v := range values {
		if v.expired(now) {
			delete(values, k)
		}
	}

	v := storedValue{Value: value}
	if ttl > 0 {
		v.ExpiresAt = now.Add(ttl).UTC()
	}
	values[key] = v

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}

	return nil
}
