package httpapi

import (
	"errors"
	"net/http"

	"artistpulse/internal/imagecheck"
	"artistpulse/internal/llm"
	"artistpulse/internal/social"
)

// statusFor maps a service error to the HTTP status it is reported with.
func statusFor(err error) int {
	var te *social.TransportError
	var re *llm.RequestError
	switch {
	case errors.Is(err, imagecheck.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, imagecheck.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, social.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &te):
		if te.StatusCode >= 400 {
			return te.StatusCode
		}
		return http.StatusBadGateway
	case errors.As(err, &re), errors.Is(err, llm.ErrSchemaValidation):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
