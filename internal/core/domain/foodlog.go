package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrFoodNotRecognized = errors.New("food not recognized")
var ErrClassifierBusy = errors.New("classifier overloaded")
var ErrClassifyTimeout = errors.New("classification timed out")
var ErrImageStoreFailed = errors.New("image storage failed")
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// FoodNotRecognizedError reports a classification whose label has no catalog
// match. The uploaded image is retained; ImageURL lets the caller retrieve it
// even though no log entry was written.
type FoodNotRecognizedError struct {
	Label    string
	ImageURL string
}

func (e *FoodNotRecognizedError) Error() string {
	return fmt.Sprintf("food not recognized: %q", e.Label)
}

func (e *FoodNotRecognizedError) Unwrap() error { return ErrFoodNotRecognized }

// FoodLogEntry is one immutable record of a consumed food. FoodName and the
// embedded nutrition are frozen copies taken at log time, never re-derived
// from the catalog, so history stays stable if the catalog changes.
type FoodLogEntry struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	FoodID   string `json:"food_id"`
	FoodName string `json:"food_name"`
	Servings int    `json:"servings"`

	// Computed nutrition = per-serving facts x servings. Embedded so the
	// JSON shape stays flat (calories, protein_g, fat_g, carbs_g).
	Nutrition

	ServingSize string    `json:"serving_size"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
