package service

import (
	"context"
	"time"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
	"github.com/nutritrack/foodlog-api/internal/core/ports"
)

const (
	dateLayout   = "2006-01-02"
	historyLimit = 50
	chartDays    = 7
)

// DashboardService computes day, summary, history, and 7-day chart views by
// reading the append-only log. Totals are derived on every read; there are no
// stored counters to get out of sync.
type DashboardService struct {
	logs ports.FoodLogRepository
	now  func() time.Time // injectable for tests
}

func NewDashboardService(logs ports.FoodLogRepository) *DashboardService {
	return &DashboardService{logs: logs, now: time.Now}
}

// DayView returns the user's entries within the UTC day named by date.
func (s *DashboardService) DayView(ctx context.Context, userID, date string) ([]*domain.FoodLogEntry, error) {
	start, end, err := dayWindow(date)
	if err != nil {
		return nil, err
	}
	return s.logs.FindByUserAndRange(ctx, userID, start, end)
}

// DaySummary sums calories and macros over the day's entries. An empty day
// yields zero totals.
func (s *DashboardService) DaySummary(ctx context.Context, userID, date string) (domain.Nutrition, error) {
	entries, err := s.DayView(ctx, userID, date)
	if err != nil {
		return domain.Nutrition{}, err
	}
	return sumNutrition(entries), nil
}

// History returns the user's 50 most recent entries, newest first.
func (s *DashboardService) History(ctx context.Context, userID string) ([]*domain.FoodLogEntry, error) {
	return s.logs.FindRecentByUser(ctx, userID, historyLimit)
}

// WeekChart returns exactly 7 buckets covering [today-6, today] UTC in
// ascending date order. Every day appears even with no activity.
func (s *DashboardService) WeekChart(ctx context.Context, userID string) ([]ports.DayTotals, error) {
	today := s.now().UTC()
	first := today.AddDate(0, 0, -(chartDays - 1))

	start := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, time.UTC)

	entries, err := s.logs.FindByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return buildWeekChart(entries, start), nil
}

// dayWindow derives the inclusive UTC day boundaries from a YYYY-MM-DD date.
func dayWindow(date string) (start, end time.Time, err error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidDate
	}
	start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.UTC)
	return start, end, nil
}

// sumNutrition totals entries componentwise.
func sumNutrition(entries []*domain.FoodLogEntry) domain.Nutrition {
	var total domain.Nutrition
	for _, e := range entries {
		total = total.Add(e.Nutrition)
	}
	return total
}

// buildWeekChart assigns entries to 7 zero-initialized daily buckets starting
// at start (a UTC midnight). Entries whose UTC calendar date falls outside
// the window are silently excluded.
func buildWeekChart(entries []*domain.FoodLogEntry, start time.Time) []ports.DayTotals {
	buckets := make([]ports.DayTotals, chartDays)
	index := make(map[string]int, chartDays)
	for i := range buckets {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		buckets[i].Date = date
		index[date] = i
	}

	for _, e := range entries {
		date := e.CreatedAt.UTC().Format(dateLayout)
		i, ok := index[date]
		if !ok {
			continue
		}
		buckets[i].Nutrition = buckets[i].Nutrition.Add(e.Nutrition)
	}

	return buckets
}
