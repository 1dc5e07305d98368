package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
	"github.com/nutritrack/foodlog-api/internal/core/ports"
)

type stubCatalog struct {
	byID   map[string]*domain.FoodItem
	byName map[string]*domain.FoodItem
}

func newStubCatalog(items ...*domain.FoodItem) *stubCatalog {
	c := &stubCatalog{
		byID:   make(map[string]*domain.FoodItem),
		byName: make(map[string]*domain.FoodItem),
	}
	for _, item := range items {
		c.byID[item.ID] = item
		c.byName[item.Name] = item
	}
	return c
}

func (c *stubCatalog) FindByID(_ context.Context, id string) (*domain.FoodItem, error) {
	item, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrFoodNotFound
	}
	clone := *item
	return &clone, nil
}

func (c *stubCatalog) FindByName(_ context.Context, name string) (*domain.FoodItem, error) {
	item, ok := c.byName[name]
	if !ok {
		return nil, domain.ErrFoodNotFound
	}
	clone := *item
	return &clone, nil
}

type stubLogRepo struct {
	entries []*domain.FoodLogEntry
}

func (r *stubLogRepo) Insert(_ context.Context, entry *domain.FoodLogEntry) (*domain.FoodLogEntry, error) {
	clone := *entry
	clone.ID = "log_" + strconv.Itoa(len(r.entries)+1)
	r.entries = append(r.entries, &clone)
	saved := clone
	return &saved, nil
}

func (r *stubLogRepo) FindByUserAndRange(_ context.Context, userID string, start, end time.Time) ([]*domain.FoodLogEntry, error) {
	var out []*domain.FoodLogEntry
	for _, e := range r.entries {
		if e.UserID != userID {
			continue
		}
		if e.CreatedAt.Before(start) || e.CreatedAt.After(end) {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubLogRepo) FindRecentByUser(_ context.Context, userID string, limit int) ([]*domain.FoodLogEntry, error) {
	var out []*domain.FoodLogEntry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].UserID != userID {
			continue
		}
		clone := *r.entries[i]
		out = append(out, &clone)
	}
	return out, nil
}

type stubClassifier struct {
	pred   ports.Prediction
	err    error
	called bool
}

func (c *stubClassifier) Classify(_ context.Context, _ []byte) (ports.Prediction, error) {
	c.called = true
	return c.pred, c.err
}

type stubImageStorage struct {
	url string
	err error
}

func (s *stubImageStorage) Save(_ context.Context, _ []byte, _ string) (string, error) {
	return s.url, s.err
}

func burgerItem() *domain.FoodItem {
	return &domain.FoodItem{
		ID:   "food_burger",
		Name: "burger",
		NutritionPerServing: domain.Nutrition{
			Calories: 550,
			ProteinG: 25,
			FatG:     30,
			CarbsG:   40,
		},
	}
}

func newTestFoodLogService(catalog ports.CatalogRepository, logs ports.FoodLogRepository, cls ports.Classifier, imgs ports.ImageStorage) *FoodLogService {
	svc := NewFoodLogService(catalog, logs, cls, imgs, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2025, 11, 16, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestFoodLogService_LogManual(t *testing.T) {
	logs := &stubLogRepo{}
	svc := newTestFoodLogService(newStubCatalog(burgerItem()), logs, &stubClassifier{}, &stubImageStorage{})

	entry, err := svc.LogManual(context.Background(), ports.ManualLogInput{
		UserID:   "user_1",
		FoodID:   "food_burger",
		Servings: 2,
	})
	if err != nil {
		t.Fatalf("LogManual returned error: %v", err)
	}
	if entry.ID == "" {
		t.Fatalf("expected assigned entry id")
	}
	if entry.FoodName != "burger" {
		t.Fatalf("unexpected food name: %q", entry.FoodName)
	}
	if entry.Servings != 2 {
		t.Fatalf("expected 2 servings, got %d", entry.Servings)
	}
	if entry.Calories != 1100 {
		t.Fatalf("expected nutrition scaled by servings, got %v calories", entry.Calories)
	}
	if entry.ServingSize != "100g" {
		t.Fatalf("expected default serving size, got %q", entry.ServingSize)
	}
	if len(logs.entries) != 1 {
		t.Fatalf("expected exactly one persisted entry, got %d", len(logs.entries))
	}
}

func TestFoodLogService_LogManual_DefaultServings(t *testing.T) {
	svc := newTestFoodLogService(newStubCatalog(burgerItem()), &stubLogRepo{}, &stubClassifier{}, &stubImageStorage{})

	entry, err := svc.LogManual(context.Background(), ports.ManualLogInput{
		UserID:   "user_1",
		FoodID:   "food_burger",
		Servings: 0,
	})
	if err != nil {
		t.Fatalf("LogManual returned error: %v", err)
	}
	if entry.Servings != 1 {
		t.Fatalf("expected servings to default to 1, got %d", entry.Servings)
	}
	if entry.Calories != 550 {
		t.Fatalf("expected single-serving calories, got %v", entry.Calories)
	}
}

func TestFoodLogService_LogManual_UnknownFood(t *testing.T) {
	logs := &stubLogRepo{}
	svc := newTestFoodLogService(newStubCatalog(), logs, &stubClassifier{}, &stubImageStorage{})

	_, err := svc.LogManual(context.Background(), ports.ManualLogInput{UserID: "user_1", FoodID: "nope"})
	if !errors.Is(err, domain.ErrFoodNotFound) {
		t.Fatalf("expected ErrFoodNotFound, got %v", err)
	}
	if len(logs.entries) != 0 {
		t.Fatalf("no entry should be written on failed lookup")
	}
}

func TestFoodLogService_AutoLog_Success(t *testing.T) {
	logs := &stubLogRepo{}
	cls := &stubClassifier{pred: ports.Prediction{Label: "Burger", Confidence: 0.92}}
	imgs := &stubImageStorage{url: "https://img.example.com/uploads/1.jpg"}
	svc := newTestFoodLogService(newStubCatalog(burgerItem()), logs, cls, imgs)

	res, err := svc.AutoLog(context.Background(), ports.AutoLogInput{
		UserID:    "user_1",
		Image:     []byte("jpeg-bytes"),
		Extension: ".jpg",
	})
	if err != nil {
		t.Fatalf("AutoLog returned error: %v", err)
	}
	if res.Label != "burger" {
		t.Fatalf("expected lower-cased label, got %q", res.Label)
	}
	if res.Confidence != 0.92 {
		t.Fatalf("unexpected confidence: %v", res.Confidence)
	}
	if res.Entry.Servings != 1 {
		t.Fatalf("auto-logged entries are always one serving, got %d", res.Entry.Servings)
	}
	if res.Entry.Calories != 550 {
		t.Fatalf("unexpected calories: %v", res.Entry.Calories)
	}
	if res.Entry.ImageURL != imgs.url {
		t.Fatalf("expected stored image url on entry, got %q", res.Entry.ImageURL)
	}
	if len(logs.entries) != 1 {
		t.Fatalf("expected exactly one persisted entry, got %d", len(logs.entries))
	}
}

func TestFoodLogService_AutoLog_Unrecognized(t *testing.T) {
	logs := &stubLogRepo{}
	cls := &stubClassifier{pred: ports.Prediction{Label: "Spaceship", Confidence: 0.71}}
	imgs := &stubImageStorage{url: "https://img.example.com/uploads/2.jpg"}
	svc := newTestFoodLogService(newStubCatalog(burgerItem()), logs, cls, imgs)

	_, err := svc.AutoLog(context.Background(), ports.AutoLogInput{UserID: "user_1", Image: []byte("x")})
	if !errors.Is(err, domain.ErrFoodNotRecognized) {
		t.Fatalf("expected ErrFoodNotRecognized, got %v", err)
	}

	var notRecognized *domain.FoodNotRecognizedError
	if !errors.As(err, &notRecognized) {
		t.Fatalf("expected FoodNotRecognizedError, got %T", err)
	}
	if notRecognized.Label != "spaceship" {
		t.Fatalf("unexpected label: %q", notRecognized.Label)
	}
	if notRecognized.ImageURL != imgs.url {
		t.Fatalf("image url must be reported even without a log entry, got %q", notRecognized.ImageURL)
	}
	if len(logs.entries) != 0 {
		t.Fatalf("no entry should be written for an unrecognized food")
	}
}

func TestFoodLogService_AutoLog_ImageStoreFailure(t *testing.T) {
	cls := &stubClassifier{pred: ports.Prediction{Label: "Burger"}}
	imgs := &stubImageStorage{err: errors.New("bucket unreachable")}
	svc := newTestFoodLogService(newStubCatalog(burgerItem()), &stubLogRepo{}, cls, imgs)

	_, err := svc.AutoLog(context.Background(), ports.AutoLogInput{UserID: "user_1", Image: []byte("x")})
	if !errors.Is(err, domain.ErrImageStoreFailed) {
		t.Fatalf("expected ErrImageStoreFailed, got %v", err)
	}
	if cls.called {
		t.Fatalf("classifier must not run when the image could not be stored")
	}
}

func TestFoodLogService_AutoLog_ClassifierError(t *testing.T) {
	logs := &stubLogRepo{}
	cls := &stubClassifier{err: domain.ErrClassifierBusy}
	svc := newTestFoodLogService(newStubCatalog(burgerItem()), logs, cls, &stubImageStorage{url: "u"})

	_, err := svc.AutoLog(context.Background(), ports.AutoLogInput{UserID: "user_1", Image: []byte("x")})
	if !errors.Is(err, domain.ErrClassifierBusy) {
		t.Fatalf("expected ErrClassifierBusy to propagate, got %v", err)
	}
	if len(logs.entries) != 0 {
		t.Fatalf("no entry should be written when classification fails")
	}
}

func TestFoodLogService_Classify_NormalizesLabel(t *testing.T) {
	cls := &stubClassifier{pred: ports.Prediction{Label: "Fried Rice", Confidence: 0.8}}
	svc := newTestFoodLogService(newStubCatalog(), &stubLogRepo{}, cls, &stubImageStorage{})

	pred, err := svc.Classify(context.Background(), []byte("x"))
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if pred.Label != "fried rice" {
		t.Fatalf("expected lower-cased label, got %q", pred.Label)
	}
}
