package ports

import (
	"context"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
)

// CatalogRepository is the read-only food catalog. Manual logging looks up by
// id; the auto-log pipeline looks up by normalized (lower-cased) name. The
// asymmetry is deliberate and mirrors how entries reference the catalog.
type CatalogRepository interface {
	FindByID(ctx context.Context, id string) (*domain.FoodItem, error)
	FindByName(ctx context.Context, normalizedName string) (*domain.FoodItem, error)
}
