package repository

import (
	"context"
	"errors"
	"time"

	"storefront/storefront-service/internal/app/storefront/entity"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionCorrupted - сохранённая запись не разбирается; такая запись удаляется
	ErrSessionCorrupted = errors.New("session data is corrupted")
)

// SessionRepository хранит запись "текущий пользователь" для каждой сессии браузера
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session, ttl time.Duration) error
	// Get возвращает сессию и продлевает её TTL
	Get(ctx context.Context, id string, ttl time.Duration) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
