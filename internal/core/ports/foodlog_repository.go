package ports

import (
	"context"
	"time"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
)

// FoodLogRepository is the append-only log entry store. Entries are never
// updated or deleted once written.
type FoodLogRepository interface {
	Insert(ctx context.Context, entry *domain.FoodLogEntry) (*domain.FoodLogEntry, error)
	// FindByUserAndRange returns the user's entries with created_at in
	// [start, end] inclusive, in natural store order.
	FindByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.FoodLogEntry, error)
	// FindRecentByUser returns up to limit entries ordered by created_at
	// descending.
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.FoodLogEntry, error)
}
