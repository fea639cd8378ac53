package quick_roll

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	clockMocks "github.com/PedroPerillo/dndice/internal/common/clock/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMemoryStorage_Expiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	clk := clockMocks.NewMockClock(ctrl)
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	storage := NewMemoryStorage(clk)

	clk.EXPECT().Now().Return(now)
	require.NoError(t, storage.Set(ctx, "k", "v", time.Hour))

	clk.EXPECT().Now().Return(now.Add(59 * time.Minute))
	v, ok, err := storage.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	clk.EXPECT().Now().Return(now.Add(time.Hour))
	_, ok, err = storage.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStorage_Missing(t *testing.T) {
	storage := NewMemoryStorage(nil)

	_, ok, err := storage.Get(context.Background(), "nothing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "presets.json")

	storage, err := NewFileStorage(path, nil)
	require.NoError(t, err)

	_, ok, err := storage.Get(ctx, LocalStorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.Set(ctx, LocalStorageKey, "value-1", DefaultLocalTTL))
	require.NoError(t, storage.Set(ctx, "other", "value-2", 0))

	// A second instance reads what the first wrote
	reopened, err := NewFileStorage(path, nil)
	require.NoError(t, err)

	v, ok, err := reopened.Get(ctx, LocalStorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value-1", v)

	v, ok, err = reopened.Get(ctx, "other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value-2", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStorage_Expiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	clk := clockMocks.NewMockClock(ctrl)
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	storage, err := NewFileStorage(filepath.Join(t.TempDir(), "presets.json"), clk)
	require.NoError(t, err)

	clk.EXPECT().Now().Return(now)
	require.NoError(t, storage.Set(ctx, "k", "v", time.Minute))

	clk.EXPECT().Now().Return(now.Add(2 * time.Minute))
	_, ok, err := storage.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStorage_CorruptFileStartsOver(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "presets.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	storage, err := NewFileStorage(path, nil)
	require.NoError(t, err)

	_, ok, err := storage.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.Set(ctx, "k", "v", time.Hour))
	v, ok, err := storage.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestNewFileStorage_EmptyPath(t *testing.T) {
	_, err := NewFileStorage("", nil)
	assert.Error(t, err)
}
