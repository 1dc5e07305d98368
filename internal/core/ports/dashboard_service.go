package ports

import (
	"context"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
)

// DayTotals is one bucket of the 7-day chart.
type DayTotals struct {
	Date string `json:"date"` // UTC calendar date, YYYY-MM-DD

	domain.Nutrition
}

// DashboardService reads a user's log history and computes day, summary,
// history, and chart views. Totals are computed on read; nothing is ever
// materialized as stored counters.
type DashboardService interface {
	// DayView returns the user's entries within the UTC day named by date
	// (YYYY-MM-DD).
	DayView(ctx context.Context, userID, date string) ([]*domain.FoodLogEntry, error)
	// DaySummary sums calories and macros over the same window. An empty
	// day yields zero totals, not an error.
	DaySummary(ctx context.Context, userID, date string) (domain.Nutrition, error)
	// History returns the 50 most recent entries, newest first.
	History(ctx context.Context, userID string) ([]*domain.FoodLogEntry, error)
	// WeekChart returns exactly 7 buckets covering [today-6, today] UTC in
	// ascending date order, zero-filled for days without activity.
	WeekChart(ctx context.Context, userID string) ([]DayTotals, error)
}
