package service

import (
	"errors"
	"fmt"

	"storefront/storefront-service/internal/app/storefront/entity"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserExists           = errors.New("user with this email already exists")
	ErrUnauthenticated      = errors.New("no active session")
	ErrSessionCorrupted     = errors.New("session data is corrupted")
	ErrValidation           = errors.New("validation error")
	ErrSubmissionInProgress = errors.New("review submission already in progress")
	ErrProductNotFound      = errors.New("product not found")
)

// SubmitError - отказ backend при отправке отзыва.
// Draft возвращается неизменным, чтобы пользователь мог повторить отправку
type SubmitError struct {
	Message string
	Draft   entity.ReviewDraft
	Err     error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("failed to submit review: %s", e.Message)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
