package handler

import (
	"errors"
	"net/http"

	"storefront/pkg/logger"
	"storefront/storefront-service/internal/app/storefront/entity"
	"storefront/storefront-service/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	sessionService service.SessionServiceInterface
	validator      *validator.Validate
}

func NewAuthHandler(sessionService service.SessionServiceInterface) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
		validator:      validator.New(),
	}
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	resp, err := h.sessionService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "Invalid email or password"})
			return
		}
		logger.Error().Err(err).Msg("Login failed")
		c.JSON(http.StatusBadGateway, entity.ErrorResponse{Error: "Failed to login", Message: backendMessage(err)})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Register обрабатывает POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	resp, err := h.sessionService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusConflict, entity.ErrorResponse{Error: "User with this email already exists"})
			return
		}
		if msg := backendMessage(err); msg != "" {
			c.JSON(http.StatusBadGateway, entity.ErrorResponse{Error: "Registration failed", Message: msg})
			return
		}
		logger.Error().Err(err).Msg("Registration failed")
		c.JSON(http.StatusBadGateway, entity.ErrorResponse{Error: "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Logout обрабатывает POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.sessionService.Logout(c.Request.Context(), session.ID); err != nil {
		logger.Error().Err(err).Str("session_id", session.ID).Msg("Logout failed")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Logged out successfully"})
}

// Me возвращает пользователя текущей сессии
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, session.User)
}
