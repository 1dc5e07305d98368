package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"username taken", domain.ErrUsernameTaken, http.StatusConflict},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"food not found", domain.ErrFoodNotFound, http.StatusNotFound},
		{"classifier busy", domain.ErrClassifierBusy, http.StatusServiceUnavailable},
		{"classify timeout", domain.ErrClassifyTimeout, http.StatusGatewayTimeout},
		{"image store failed", domain.ErrImageStoreFailed, http.StatusBadGateway},
		{"invalid date", domain.ErrInvalidDate, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := renderError(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if body["error"] == "" {
				t.Fatalf("expected error message in body")
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("auto log"), domain.ErrFoodNotFound)
	rec, _ := renderError(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected wrapped domain error to resolve, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_FoodNotRecognized(t *testing.T) {
	err := &domain.FoodNotRecognizedError{Label: "spaceship", ImageURL: "https://img.example.com/1.jpg"}

	rec, body := renderError(t, err)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if body["label"] != "spaceship" {
		t.Fatalf("expected label in body, got %+v", body)
	}
	if body["image_url"] != "https://img.example.com/1.jpg" {
		t.Fatalf("expected image url in body, got %+v", body)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error"] != "invalid payload" {
		t.Fatalf("unexpected message: %+v", body)
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	rec, body := renderError(t, errors.New("mongo blew up"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal detail must not leak, got %+v", body)
	}
}
