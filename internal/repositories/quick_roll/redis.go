package quick_roll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PedroPerillo/dndice/internal/common/clock"
	"github.com/PedroPerillo/dndice/internal/common/uuid"
	"github.com/PedroPerillo/dndice/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	quickRollKeyPrefix       = "quick_roll:"
	ownerQuickRollsKeyPrefix = "owner_quick_rolls:"
	ownerQuickRollSeqPrefix  = "owner_quick_roll_seq:"
)

// RedisConfig holds configuration for the Redis quick roll repository
type RedisConfig struct {
	// Redis client
	RedisClient *redis.Client

	// Clock stamps creation times, defaults to the system clock
	Clock clock.Clock

	// UUIDGenerator issues preset ids, defaults to random UUIDs
	UUIDGenerator uuid.Generator
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client        *redis.Client
	clock         clock.Clock
	uuidGenerator uuid.Generator
}

// NewRedis creates a new Redis-backed quick roll repository
func NewRedis(cfg *RedisConfig) (*redisRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RedisClient == nil {
		return nil, ErrNilRedisClient
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.New()
	}

	return &redisRepository{
		client:        cfg.RedisClient,
		clock:         clk,
		uuidGenerator: gen,
	}, nil
}

func quickRollKey(ownerID, id string) string {
	return fmt.Sprintf("%s%s:%s", quickRollKeyPrefix, ownerID, id)
}

func ownerQuickRollsKey(ownerID string) string {
	return fmt.Sprintf("%s%s", ownerQuickRollsKeyPrefix, ownerID)
}

func ownerQuickRollSeqKey(ownerID string) string {
	return fmt.Sprintf("%s%s", ownerQuickRollSeqPrefix, ownerID)
}

// ListQuickRolls returns the owner's presets in reverse creation order
func (r *redisRepository) ListQuickRolls(ctx context.Context, input *ListQuickRollsInput) (*ListQuickRollsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.OwnerID == "" {
		return nil, ErrMissingOwner
	}

	ids, err := r.client.ZRevRange(ctx, ownerQuickRollsKey(input.OwnerID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get quick roll ids: %w", err)
	}

	if len(ids) == 0 {
		return &ListQuickRollsOutput{
			QuickRolls: []*models.QuickRoll{},
		}, nil
	}

	// Fetch every preset in one round trip, keeping the sorted set order
	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, quickRollKey(input.OwnerID, id))
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get quick rolls: %w", err)
	}

	quickRolls := make([]*models.QuickRoll, 0, len(ids))
	for i, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Removed between reading the index and fetching the record
				continue
			}
			return nil, fmt.Errorf("failed to get quick roll %s: %w", ids[i], err)
		}

		var quickRoll models.QuickRoll
		if err := json.Unmarshal([]byte(data), &quickRoll); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quick roll %s: %w", ids[i], err)
		}

		quickRolls = append(quickRolls, &quickRoll)
	}

	return &ListQuickRollsOutput{
		QuickRolls: quickRolls,
	}, nil
}

// CreateQuickRoll stores the preset and indexes it under its owner in one transaction
func (r *redisRepository) CreateQuickRoll(ctx context.Context, input *CreateQuickRollInput) (*models.QuickRoll, error) {
	if input == nil || input.QuickRoll == nil {
		return nil, ErrNilInput
	}

	if input.QuickRoll.OwnerID == "" {
		return nil, ErrMissingOwner
	}

	quickRoll := *input.QuickRoll
	quickRoll.ID = r.uuidGenerator.NewID()
	quickRoll.CreatedAt = r.clock.Now().UTC()

	data, err := json.Marshal(&quickRoll)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quick roll: %w", err)
	}

	// The index is scored by a per-owner counter so presets created within
	// the same millisecond still sort in creation order
	seq, err := r.client.Incr(ctx, ownerQuickRollSeqKey(quickRoll.OwnerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate quick roll sequence: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, quickRollKey(quickRoll.OwnerID, quickRoll.ID), data, 0)
	pipe.ZAdd(ctx, ownerQuickRollsKey(quickRoll.OwnerID), redis.Z{
		Score:  float64(seq),
		Member: quickRoll.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to save quick roll: %w", err)
	}

	return &quickRoll, nil
}

// GetQuickRoll retrieves one of the owner's presets
func (r *redisRepository) GetQuickRoll(ctx context.Context, input *GetQuickRollInput) (*models.QuickRoll, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.OwnerID == "" {
		return nil, ErrMissingOwner
	}

	if input.ID == "" {
		return nil, ErrMissingID
	}

	data, err := r.client.Get(ctx, quickRollKey(input.OwnerID, input.ID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrQuickRollNotFound
		}
		return nil, fmt.Errorf("failed to get quick roll: %w", err)
	}

	var quickRoll models.QuickRoll
	if err := json.Unmarshal([]byte(data), &quickRoll); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quick roll: %w", err)
	}

	return &quickRoll, nil
}

// UpdateQuickRoll overwrites name and dice fields, keeping id, owner and creation time
func (r *redisRepository) UpdateQuickRoll(ctx context.Context, input *UpdateQuickRollInput) (*models.QuickRoll, error) {
	if input == nil || input.QuickRoll == nil {
		return nil, ErrNilInput
	}

	existing, err := r.GetQuickRoll(ctx, &GetQuickRollInput{
		OwnerID: input.QuickRoll.OwnerID,
		ID:      input.QuickRoll.ID,
	})
	if err != nil {
		return nil, err
	}

	existing.Name = input.QuickRoll.Name
	existing.Count = input.QuickRoll.Count
	existing.DieSize = input.QuickRoll.DieSize
	existing.Modifier = input.QuickRoll.Modifier

	data, err := json.Marshal(existing)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quick roll: %w", err)
	}

	// SetXX keeps a concurrent delete from being undone
	ok, err := r.client.SetXX(ctx, quickRollKey(existing.OwnerID, existing.ID), data, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to update quick roll: %w", err)
	}

	if !ok {
		return nil, ErrQuickRollNotFound
	}

	return existing, nil
}

// DeleteQuickRoll removes the preset and its index entry
func (r *redisRepository) DeleteQuickRoll(ctx context.Context, input *DeleteQuickRollInput) error {
	if input == nil {
		return ErrNilInput
	}

	if input.OwnerID == "" {
		return ErrMissingOwner
	}

	if input.ID == "" {
		return ErrMissingID
	}

	pipe := r.client.TxPipeline()
	pipe.ZRem(ctx, ownerQuickRollsKey(input.OwnerID), input.ID)
	pipe.Del(ctx, quickRollKey(input.OwnerID, input.ID))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete quick roll: %w", err)
	}

	return nil
}

// Ping checks the Redis connection
func (r *redisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
