// internal/otpstore/redis.go
package otpstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore shares sessions between replicas.
type RedisStore struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Save(ctx context.Context, phone string, session Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshaling otp session: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, attemptsKey(phone))
		pipe.Set(ctx, sessionKey(phone), data, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving otp session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, phone string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(phone)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading otp session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decoding otp session: %w", err)
	}
	return &session, nil
}

func (s *RedisStore) Consume(ctx context.Context, phone string) (bool, error) {
	var deleted *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, sessionKey(phone))
		pipe.Del(ctx, attemptsKey(phone))
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("consuming otp session: %w", err)
	}
	return deleted.Val() > 0, nil
}

func (s *RedisStore) IncrementAttempts(ctx context.Context, phone string, ttl time.Duration) (int64, error) {
	return s.incrWithExpiry(ctx, attemptsKey(phone), ttl)
}

func (s *RedisStore) CountRequest(ctx context.Context, phone string, window time.Duration) (int64, error) {
	return s.incrWithExpiry(ctx, rateKey(phone), window)
}

// incrWithExpiry increments key and sets its expiry only when the key was new,
// giving a fixed window.
func (s *RedisStore) incrWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementing %s: %w", key, err)
	}
	if n == 1 && ttl > 0 {
		if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("setting expiry on %s: %w", key, err)
		}
	}
	return n, nil
}
