package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nutritrack/foodlog-api/internal/core/ports"
)

// PredictHandler exposes classification without logging: the caller gets the
// label and confidence and decides what to do with them.
type PredictHandler struct {
	service ports.FoodLogService
}

func NewPredictHandler(service ports.FoodLogService) *PredictHandler {
	return &PredictHandler{service: service}
}

type predictResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Predict handles POST /predict.
//
// @Summary      Classify a meal photo without logging it
// @Tags         prediction
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Meal photo (JPG/PNG)"
// @Success      200   {object}  predictResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Failure      504   {object}  errorResponse
// @Router       /predict [post]
func (h *PredictHandler) Predict(c echo.Context) error {
	image, _, err := readImageFile(c)
	if err != nil {
		return err
	}

	pred, err := h.service.Classify(c.Request().Context(), image)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, predictResponse{
		Label:      pred.Label,
		Confidence: pred.Confidence,
	})
}
