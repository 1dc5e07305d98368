package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
	"github.com/nutritrack/foodlog-api/internal/core/ports"
)

// DashboardHandler exposes the read-side aggregation views.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type dayViewResponse struct {
	Date string                 `json:"date"`
	Logs []*domain.FoodLogEntry `json:"logs"`
}

type daySummaryResponse struct {
	Date    string           `json:"date"`
	Summary domain.Nutrition `json:"summary"`
}

type historyResponse struct {
	History []*domain.FoodLogEntry `json:"history"`
}

type weekChartResponse struct {
	Chart []ports.DayTotals `json:"chart"`
}

// Day handles GET /dashboard/day?date=YYYY-MM-DD.
//
// @Summary      List the day's log entries
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  true  "UTC calendar date (YYYY-MM-DD)"
// @Success      200   {object}  dayViewResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /dashboard/day [get]
func (h *DashboardHandler) Day(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	date := c.QueryParam("date")

	logs, err := h.service.DayView(c.Request().Context(), userID, date)
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []*domain.FoodLogEntry{}
	}

	return c.JSON(http.StatusOK, dayViewResponse{Date: date, Logs: logs})
}

// Summary handles GET /dashboard/summary?date=YYYY-MM-DD.
//
// @Summary      Total calories and macros for a day
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  true  "UTC calendar date (YYYY-MM-DD)"
// @Success      200   {object}  daySummaryResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /dashboard/summary [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	date := c.QueryParam("date")

	summary, err := h.service.DaySummary(c.Request().Context(), userID, date)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, daySummaryResponse{Date: date, Summary: summary})
}

// History handles GET /dashboard/history.
//
// @Summary      The 50 most recent log entries, newest first
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  historyResponse
// @Failure      401  {object}  errorResponse
// @Router       /dashboard/history [get]
func (h *DashboardHandler) History(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	logs, err := h.service.History(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []*domain.FoodLogEntry{}
	}

	return c.JSON(http.StatusOK, historyResponse{History: logs})
}

// Chart handles GET /dashboard/chart.
//
// @Summary      Daily totals for the last 7 days
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  weekChartResponse
// @Failure      401  {object}  errorResponse
// @Router       /dashboard/chart [get]
func (h *DashboardHandler) Chart(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	chart, err := h.service.WeekChart(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, weekChartResponse{Chart: chart})
}
