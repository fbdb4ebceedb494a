package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sharefm/model"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// redisSessionRepository implements SessionRepository on Redis. The key TTL
// mirrors the session expiry, so the store expires sessions natively and
// the periodic sweep has nothing to do.
type redisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a new instance of redisSessionRepository.
func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// sessionTTL converts the session expiry into a key TTL. Sessions that are
// already expired at store time get a short grace TTL so the first validate
// still finds them and reports expiry, as the other backends do.
func sessionTTL(expiresAt, now time.Time) time.Duration {
	ttl := expiresAt.Sub(now)
	if ttl <= 0 {
		return time.Second
	}
	return ttl
}

func (r *redisSessionRepository) Create(session *model.AccessSession) error {
	ttl := sessionTTL(session.ExpiresAt, time.Now())
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	ctx := context.Background()
	if err := r.client.Set(ctx, sessionKey(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.ID, err)
	}
	return nil
}

func (r *redisSessionRepository) Get(id string) (*model.AccessSession, error) {
	ctx := context.Background()
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Session not found (or already expired by TTL)
		}
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}
	session := &model.AccessSession{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return session, nil
}

func (r *redisSessionRepository) Delete(id string) error {
	ctx := context.Background()
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis expires sessions via key TTLs.
func (r *redisSessionRepository) DeleteExpired(time.Time) (int64, error) {
	return 0, nil
}
