package http

import (
	"errors"
	"fmt"
)

// ErrDecode - backend ответил 2xx, но тело не удалось разобрать
var ErrDecode = errors.New("malformed backend response")

// TransportError - backend недоступен (сеть, DNS, отмена контекста)
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: failed to send request: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError - backend ответил не-2xx статусом.
// Message содержит текст ошибки из тела ответа, если он был
type StatusError struct {
	Operation string
	Code      int
	Message   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: backend returned status %d: %s", e.Operation, e.Code, e.Message)
}

// AsStatusError достаёт StatusError из цепочки ошибок
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}
