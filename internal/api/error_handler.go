package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Label and
// ImageURL are only set for unrecognized-food failures, where the stored
// image survives the rejected log attempt.
type errorResponse struct {
	Error    string `json:"error"`
	Label    string `json:"label,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var nre *domain.FoodNotRecognizedError
		if errors.As(err, &nre) {
			_ = c.JSON(http.StatusUnprocessableEntity, errorResponse{
				Error:    "food not recognized",
				Label:    nre.Label,
				ImageURL: nre.ImageURL,
			})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrMalformedClaims):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrFoodNotFound):
		return http.StatusNotFound, "food not found"
	case errors.Is(err, domain.ErrFoodNotRecognized):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrClassifierBusy):
		return http.StatusServiceUnavailable, "classifier overloaded, try again later"
	case errors.Is(err, domain.ErrClassifyTimeout):
		return http.StatusGatewayTimeout, "classification timed out"
	case errors.Is(err, domain.ErrImageStoreFailed):
		return http.StatusBadGateway, "image storage failed"
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
