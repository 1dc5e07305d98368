package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutritrack/foodlog-api/internal/api/metrics"
	"github.com/nutritrack/foodlog-api/internal/core/domain"
	"github.com/nutritrack/foodlog-api/internal/core/ports"
)

const defaultServingSize = "100g"

// FoodLogService is the logging pipeline. Both entry modes share the final
// persistence step and write exactly one immutable entry on success.
type FoodLogService struct {
	catalog    ports.CatalogRepository
	logs       ports.FoodLogRepository
	classifier ports.Classifier
	images     ports.ImageStorage
	log        zerolog.Logger
	now        func() time.Time // injectable for tests
}

func NewFoodLogService(
	catalog ports.CatalogRepository,
	logs ports.FoodLogRepository,
	classifier ports.Classifier,
	images ports.ImageStorage,
	log zerolog.Logger,
) *FoodLogService {
	return &FoodLogService{
		catalog:    catalog,
		logs:       logs,
		classifier: classifier,
		images:     images,
		log:        log,
		now:        time.Now,
	}
}

// LogManual logs a catalog-selected food at the requested serving count.
func (s *FoodLogService) LogManual(ctx context.Context, in ports.ManualLogInput) (*domain.FoodLogEntry, error) {
	servings := in.Servings
	if servings <= 0 {
		servings = 1
	}
	servingSize := in.ServingSize
	if servingSize == "" {
		servingSize = defaultServingSize
	}

	food, err := s.catalog.FindByID(ctx, in.FoodID)
	if err != nil {
		return nil, err
	}

	entry := &domain.FoodLogEntry{
		UserID:      in.UserID,
		FoodID:      food.ID,
		FoodName:    food.Name,
		Servings:    servings,
		Nutrition:   food.NutritionPerServing.MulServings(servings),
		ServingSize: servingSize,
		ImageURL:    in.ImageURL,
		CreatedAt:   s.now().UTC(),
	}

	saved, err := s.logs.Insert(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("log manual: %w", err)
	}

	metrics.LogsCreatedTotal.WithLabelValues("manual").Inc()
	s.log.Info().
		Str("user_id", in.UserID).
		Str("food_id", food.ID).
		Int("servings", servings).
		Msg("food logged")

	return saved, nil
}

// AutoLog runs the image pipeline: store the photo, classify it, match the
// label against the catalog, and persist a single-serving entry.
//
// The image is always stored before classification is attempted, so a
// classification failure never loses the upload. An entry is written only
// after both classification and catalog lookup succeed.
func (s *FoodLogService) AutoLog(ctx context.Context, in ports.AutoLogInput) (*ports.AutoLogResult, error) {
	url, err := s.images.Save(ctx, in.Image, in.Extension)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrImageStoreFailed, err)
	}

	pred, err := s.classifier.Classify(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	label := strings.ToLower(pred.Label)
	if label == "" {
		metrics.AutoLogUnrecognizedTotal.Inc()
		return nil, &domain.FoodNotRecognizedError{Label: label, ImageURL: url}
	}

	food, err := s.catalog.FindByName(ctx, label)
	if err != nil {
		if errors.Is(err, domain.ErrFoodNotFound) {
			metrics.AutoLogUnrecognizedTotal.Inc()
			s.log.Info().
				Str("user_id", in.UserID).
				Str("label", label).
				Str("image_url", url).
				Msg("classified label has no catalog match")
			return nil, &domain.FoodNotRecognizedError{Label: label, ImageURL: url}
		}
		return nil, fmt.Errorf("auto log: %w", err)
	}

	foodID := food.ID
	if foodID == "" {
		foodID = label
	}

	// Auto-detected food is always logged as a single serving.
	entry := &domain.FoodLogEntry{
		UserID:      in.UserID,
		FoodID:      foodID,
		FoodName:    food.Name,
		Servings:    1,
		Nutrition:   food.NutritionPerServing,
		ServingSize: defaultServingSize,
		ImageURL:    url,
		CreatedAt:   s.now().UTC(),
	}

	saved, err := s.logs.Insert(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("auto log: %w", err)
	}

	metrics.LogsCreatedTotal.WithLabelValues("auto").Inc()
	s.log.Info().
		Str("user_id", in.UserID).
		Str("label", label).
		Float64("confidence", pred.Confidence).
		Msg("food auto-logged")

	return &ports.AutoLogResult{Entry: saved, Label: label, Confidence: pred.Confidence}, nil
}

// Classify runs classification only; nothing is stored.
func (s *FoodLogService) Classify(ctx context.Context, image []byte) (ports.Prediction, error) {
	pred, err := s.classifier.Classify(ctx, image)
	if err != nil {
		return ports.Prediction{}, err
	}
	pred.Label = strings.ToLower(pred.Label)
	return pred, nil
}
