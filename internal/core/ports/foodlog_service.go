package ports

import (
	"context"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
)

// ManualLogInput carries a catalog-selected log request.
type ManualLogInput struct {
	UserID      string
	FoodID      string
	Servings    int    // defaults to 1 when <= 0
	ServingSize string // defaults to "100g" when empty
	ImageURL    string // optional
}

// AutoLogInput carries an uploaded meal photo for the auto-log pipeline.
type AutoLogInput struct {
	UserID    string
	Image     []byte
	Extension string // suggested file extension, e.g. ".jpg"
}

// AutoLogResult is returned when the pipeline persisted an entry.
type AutoLogResult struct {
	Entry      *domain.FoodLogEntry
	Label      string
	Confidence float64
}

// FoodLogService is the logging pipeline: it turns a manual selection or an
// uploaded image into exactly one persisted, immutable log entry.
type FoodLogService interface {
	LogManual(ctx context.Context, input ManualLogInput) (*domain.FoodLogEntry, error)
	AutoLog(ctx context.Context, input AutoLogInput) (*AutoLogResult, error)
	// Classify runs classification only, without storing the image or
	// writing a log entry.
	Classify(ctx context.Context, image []byte) (Prediction, error)
}
