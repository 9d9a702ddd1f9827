package battles

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/errors"
)

const (
	// Key patterns
	battleKeyPrefix  = "battle:"
	activeBattlesKey = "battles:active"

	// Finished battles linger a day for post-game review
	battleTTL = 24 * time.Hour
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client    redis.UniversalClient
	BattleTTL time.Duration
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client    redis.UniversalClient
	battleTTL time.Duration
}

// NewRedisRepository creates a new Redis-backed battle repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	ttl := cfg.BattleTTL
	if ttl == 0 {
		ttl = battleTTL
	}

	return &redisRepository{
		client:    cfg.Client,
		battleTTL: ttl,
	}
}

// Create stores a new battle
func (r *redisRepository) Create(ctx context.Context, battle *combat.Battle) error {
	if battle == nil {
		return errors.InvalidArgument("battle cannot be nil")
	}
	if battle.ID == "" {
		return errors.InvalidArgument("battle ID cannot be empty")
	}

	data, err := json.Marshal(battle)
	if err != nil {
		return errors.Wrap(err, "failed to serialize battle")
	}

	key := battleKeyPrefix + battle.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return errors.Wrap(err, "failed to check battle existence")
	}
	if exists > 0 {
		return errors.AlreadyExists("battle " + battle.ID + " already exists")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, r.battleTTL)
	if !battle.Ended() {
		pipe.SAdd(ctx, activeBattlesKey, battle.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to create battle")
	}

	return nil
}

// Get retrieves a battle by ID
func (r *redisRepository) Get(ctx context.Context, id string) (*combat.Battle, error) {
	data, err := r.client.Get(ctx, battleKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("battle not found: %s", id)
		}
		return nil, errors.Wrap(err, "failed to get battle")
	}

	var battle combat.Battle
	if err := json.Unmarshal(data, &battle); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize battle")
	}

	return &battle, nil
}

// Update replaces an existing battle's state
func (r *redisRepository) Update(ctx context.Context, battle *combat.Battle) error {
	if battle == nil {
		return errors.InvalidArgument("battle cannot be nil")
	}
	if battle.ID == "" {
		return errors.InvalidArgument("battle ID cannot be empty")
	}

	key := battleKeyPrefix + battle.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return errors.Wrap(err, "failed to check battle existence")
	}
	if exists == 0 {
		return errors.NotFoundf("battle not found: %s", battle.ID)
	}

	data, err := json.Marshal(battle)
	if err != nil {
		return errors.Wrap(err, "failed to serialize battle")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, r.battleTTL)
	if battle.Ended() {
		pipe.SRem(ctx, activeBattlesKey, battle.ID)
	} else {
		pipe.SAdd(ctx, activeBattlesKey, battle.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to update battle")
	}

	return nil
}

// Delete removes a battle
func (r *redisRepository) Delete(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, battleKeyPrefix+id)
	pipe.SRem(ctx, activeBattlesKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to delete battle")
	}
	return nil
}

// ListActive retrieves every battle that has not yet ended
func (r *redisRepository) ListActive(ctx context.Context) ([]*combat.Battle, error) {
	ids, err := r.client.SMembers(ctx, activeBattlesKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active battles")
	}
	if len(ids) == 0 {
		return []*combat.Battle{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = battleKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get active battles")
	}

	battles := make([]*combat.Battle, 0, len(ids))
	for _, val := range values {
		// Expired entries are skipped; the index heals lazily on writes
		data, ok := val.(string)
		if !ok {
			continue
		}

		var battle combat.Battle
		if err := json.Unmarshal([]byte(data), &battle); err != nil {
			continue
		}
		battles = append(battles, &battle)
	}

	return battles, nil
}
