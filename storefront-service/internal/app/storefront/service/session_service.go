package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/storefront-service/internal/app/storefront/entity"
	"storefront/storefront-service/internal/app/storefront/infrastructure"
	backend "storefront/storefront-service/internal/app/storefront/infrastructure/http"
	"storefront/storefront-service/internal/app/storefront/repository"
	"storefront/storefront-service/internal/app/storefront/util"

	"github.com/google/uuid"
)

// SessionService хранит "текущего пользователя" для каждой сессии браузера.
// Проверка пароля выполняется на стороне backend, пароль здесь не сохраняется
type SessionService struct {
	accountStore infrastructure.AccountStore
	sessionRepo  repository.SessionRepository
	jwtManager   *util.JWTManager
	ttl          time.Duration
}

// NewSessionService создает сервис сессий
func NewSessionService(
	accountStore infrastructure.AccountStore,
	sessionRepo repository.SessionRepository,
	jwtManager *util.JWTManager,
	ttl time.Duration,
) *SessionService {
	return &SessionService{
		accountStore: accountStore,
		sessionRepo:  sessionRepo,
		jwtManager:   jwtManager,
		ttl:          ttl,
	}
}

// Login проверяет учётные данные через POST /login и открывает сессию.
// При несовпадении ничего не сохраняется
func (s *SessionService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error) {
	req.Email = strings.TrimSpace(req.Email)

	user, err := s.accountStore.Login(ctx, req)
	if err != nil {
		metrics.SessionLogins.WithLabelValues("login", "failed").Inc()
		if isRejected(err, http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	if user == nil || user.ID == "" {
		metrics.SessionLogins.WithLabelValues("login", "failed").Inc()
		return nil, ErrInvalidCredentials
	}

	resp, err := s.open(ctx, user)
	if err != nil {
		metrics.SessionLogins.WithLabelValues("login", "failed").Inc()
		return nil, err
	}

	metrics.SessionLogins.WithLabelValues("login", "success").Inc()
	return resp, nil
}

// Register создаёт пользователя через POST /register.
// Успешная регистрация открывает сессию так же, как вход
func (s *SessionService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error) {
	req.Email = strings.TrimSpace(req.Email)

	user, err := s.accountStore.Register(ctx, req)
	if err != nil {
		metrics.SessionLogins.WithLabelValues("register", "failed").Inc()
		if isRejected(err, http.StatusConflict) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	// Backend может вернуть пользователя без полей формы
	if user == nil {
		user = &entity.User{}
	}
	if user.Email == "" {
		user.Email = req.Email
	}
	if user.FirstName == "" && user.LastName == "" {
		user.FirstName = req.FirstName
		user.LastName = req.LastName
	}
	if user.ID == "" {
		metrics.SessionLogins.WithLabelValues("register", "failed").Inc()
		return nil, fmt.Errorf("failed to register: backend returned user without id")
	}

	resp, err := s.open(ctx, user)
	if err != nil {
		metrics.SessionLogins.WithLabelValues("register", "failed").Inc()
		return nil, err
	}

	metrics.SessionLogins.WithLabelValues("register", "success").Inc()
	return resp, nil
}

// Restore восстанавливает сессию. Повреждённая запись удаляется, и
// вызывающий получает ErrSessionCorrupted: пользователь считается анонимным
func (s *SessionService) Restore(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := s.sessionRepo.Get(ctx, sessionID, s.ttl)
	switch {
	case err == nil:
		metrics.SessionsRestored.WithLabelValues("ok").Inc()
		return session, nil
	case errors.Is(err, repository.ErrSessionNotFound):
		metrics.SessionsRestored.WithLabelValues("missing").Inc()
		return nil, ErrUnauthenticated
	case errors.Is(err, repository.ErrSessionCorrupted):
		metrics.SessionsRestored.WithLabelValues("corrupted").Inc()
		logger.Warn().Err(err).Str("session_id", sessionID).Msg("Discarding corrupted session record")
		if delErr := s.sessionRepo.Delete(ctx, sessionID); delErr != nil {
			logger.Error().Err(delErr).Str("session_id", sessionID).Msg("Failed to delete corrupted session")
		}
		return nil, ErrSessionCorrupted
	default:
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
}

// Authenticate проверяет токен сессии и восстанавливает её из Redis
func (s *SessionService) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return s.Restore(ctx, claims.Subject)
}

// Logout удаляет запись сессии
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// open сохраняет новую сессию и выдаёт для неё токен
func (s *SessionService) open(ctx context.Context, user *entity.User) (*entity.AuthResponse, error) {
	session := &entity.Session{
		ID:        uuid.NewString(),
		User:      *user,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sessionRepo.Save(ctx, session, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	token, err := s.jwtManager.GenerateSessionToken(session.ID, user.ID.String())
	if err != nil {
		return nil, err
	}

	return &entity.AuthResponse{
		Token: token,
		User:  session.User,
	}, nil
}

// isRejected - backend ответил одним из перечисленных статусов
func isRejected(err error, codes ...int) bool {
	statusErr, ok := backend.AsStatusError(err)
	if !ok {
		return false
	}
	for _, code := range codes {
		if statusErr.Code == code {
			return true
		}
	}
	return false
}
