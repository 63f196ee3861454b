package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/pkg/metrics"
	"storefront/storefront-service/internal/app/storefront/entity"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "storefront:session:"
	metricsService   = "storefront-service"
)

type redisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository создает Redis репозиторий сессий
func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Save сериализует сессию в JSON и сохраняет с TTL
func (r *redisSessionRepository) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	if err := r.client.Set(ctx, sessionKey(session.ID), data, ttl).Err(); err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpSet)
		return fmt.Errorf("failed to save session to Redis: %w", err)
	}

	return nil
}

// Get читает сессию. Неразборчивая запись даёт ErrSessionCorrupted
func (r *redisSessionRepository) Get(ctx context.Context, id string, ttl time.Duration) (*entity.Session, error) {
	key := sessionKey(id)

	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpGet)
	data, err := r.client.Get(ctx, key).Bytes()
	timer.ObserveDuration()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionCorrupted, err)
	}
	if session.ID != id || session.User.ID == "" {
		return nil, fmt.Errorf("%w: record does not describe session %s", ErrSessionCorrupted, id)
	}

	// Скользящий TTL: каждая активность продлевает сессию
	if ttl > 0 {
		if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
			metrics.RecordRedisError(metricsService, metrics.RedisOpExpire)
		}
	}

	return &session, nil
}

// Delete удаляет сессию. Отсутствие записи не считается ошибкой
func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}

	return nil
}
