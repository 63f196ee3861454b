package handler

import (
	"errors"
	"net/http"
	"strings"

	"storefront/pkg/logger"
	"storefront/storefront-service/internal/app/storefront/entity"
	"storefront/storefront-service/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// SessionMiddleware проверяет токен сессии и кладёт восстановленную сессию в контекст Gin
type SessionMiddleware struct {
	sessionService service.SessionServiceInterface
}

func NewSessionMiddleware(sessionService service.SessionServiceInterface) *SessionMiddleware {
	return &SessionMiddleware{
		sessionService: sessionService,
	}
}

// RequireSession пропускает запрос только с действующей сессией
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "Authorization header required"})
			return
		}

		// Проверяем формат "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "Invalid authorization header format"})
			return
		}

		session, err := m.sessionService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionCorrupted):
				c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "Session data was corrupted, please log in again"})
			case errors.Is(err, service.ErrUnauthenticated):
				c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "Invalid or expired session"})
			default:
				logger.Error().Err(err).Msg("Failed to restore session")
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, entity.ErrorResponse{Error: "Session store unavailable"})
			}
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// currentSession достаёт сессию, положенную RequireSession
func currentSession(c *gin.Context) (*entity.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*entity.Session)
	return session, ok && session != nil
}
