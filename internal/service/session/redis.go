package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zhouzirui/gamehub/backend/internal/model/game"
)

const redisKeyPrefix = "gamehub:session:"

// RedisStore keeps sessions as JSON documents. Redis enforces the idle TTL,
// refreshed on every Put.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, now: time.Now}
}

// DialRedis parses url, connects and pings the server.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func redisKey(token string) string {
	return redisKeyPrefix + token
}

func (r *RedisStore) encode(s *game.Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// Create stores s only if its token is unused.
func (r *RedisStore) Create(ctx context.Context, s *game.Session) error {
	now := r.now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	data, err := r.encode(s)
	if err != nil {
		return err
	}
	ok, err := r.rdb.SetNX(ctx, redisKey(s.Token), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis create: %w", err)
	}
	if !ok {
		return ErrExists
	}
	return nil
}

// Get loads the session behind token.
func (r *RedisStore) Get(ctx context.Context, token string) (*game.Session, error) {
	data, err := r.rdb.Get(ctx, redisKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var s game.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

// Put overwrites an existing session and resets its TTL.
func (r *RedisStore) Put(ctx context.Context, s *game.Session) error {
	s.UpdatedAt = r.now().UTC()

	data, err := r.encode(s)
	if err != nil {
		return err
	}
	ok, err := r.rdb.SetXX(ctx, redisKey(s.Token), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis put: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Delete removes the session behind token.
func (r *RedisStore) Delete(ctx context.Context, token string) error {
	n, err := r.rdb.Del(ctx, redisKey(token)).Result()
	if err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SweepExpired is a no-op: keys carry their own TTL.
func (r *RedisStore) SweepExpired(context.Context) (int, error) {
	return 0, nil
}

// Len counts session keys with SCAN.
func (r *RedisStore) Len(ctx context.Context) (int, error) {
	count := 0
	iter := r.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan: %w", err)
	}
	return count, nil
}
