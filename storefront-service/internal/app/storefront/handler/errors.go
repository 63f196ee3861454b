package handler

import (
	backend "storefront/storefront-service/internal/app/storefront/infrastructure/http"

	"github.com/go-playground/validator/v10"
)

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}

// backendMessage - текст ошибки, который вернул backend, если он есть
func backendMessage(err error) string {
	if statusErr, ok := backend.AsStatusError(err); ok {
		return statusErr.Message
	}
	return ""
}
