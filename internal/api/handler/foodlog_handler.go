package handler

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
	"github.com/nutritrack/foodlog-api/internal/core/ports"
)

// maxImageBytes caps uploaded meal photos at 10 MiB.
const maxImageBytes = 10 << 20

// FoodLogHandler handles manual and automatic food logging.
type FoodLogHandler struct {
	service ports.FoodLogService
}

func NewFoodLogHandler(service ports.FoodLogService) *FoodLogHandler {
	return &FoodLogHandler{service: service}
}

type manualLogRequest struct {
	FoodID      string `json:"food_id"      validate:"required"`
	Servings    int    `json:"servings"     validate:"omitempty,min=1"`
	ServingSize string `json:"serving_size"`
	ImageURL    string `json:"image_url"`
}

type logResponse struct {
	Message string               `json:"message"`
	Log     *domain.FoodLogEntry `json:"log"`
}

type autoLogResponse struct {
	Message    string               `json:"message"`
	Log        *domain.FoodLogEntry `json:"log"`
	Label      string               `json:"label"`
	Confidence float64              `json:"confidence"`
}

// LogManual handles POST /dashboard/log.
//
// @Summary      Log a catalog food manually
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      manualLogRequest  true  "Food id and servings"
// @Success      201   {object}  logResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /dashboard/log [post]
func (h *FoodLogHandler) LogManual(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req manualLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.service.LogManual(c.Request().Context(), ports.ManualLogInput{
		UserID:      userID,
		FoodID:      req.FoodID,
		Servings:    req.Servings,
		ServingSize: req.ServingSize,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, logResponse{Message: "food logged", Log: entry})
}

// AutoLog handles POST /dashboard/log/auto — multipart upload of a meal photo.
//
// @Summary      Log a food from an uploaded photo
// @Tags         dashboard
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Meal photo (JPG/PNG)"
// @Success      201   {object}  autoLogResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Failure      504   {object}  errorResponse
// @Router       /dashboard/log/auto [post]
func (h *FoodLogHandler) AutoLog(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	image, ext, err := readImageFile(c)
	if err != nil {
		return err
	}

	result, err := h.service.AutoLog(c.Request().Context(), ports.AutoLogInput{
		UserID:    userID,
		Image:     image,
		Extension: ext,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, autoLogResponse{
		Message:    "food logged",
		Log:        result.Entry,
		Label:      result.Label,
		Confidence: result.Confidence,
	})
}

// readImageFile extracts the uploaded "file" form field.
func readImageFile(c echo.Context) ([]byte, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "missing file upload")
	}
	if fh.Size > maxImageBytes {
		return nil, "", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "unreadable file upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "unreadable file upload")
	}
	if len(data) > maxImageBytes {
		return nil, "", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}

	return data, filepath.Ext(fh.Filename), nil
}
