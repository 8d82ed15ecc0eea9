package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/core"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/api/middleware"
)

// ScheduleHandler handles schedule-related HTTP requests
type ScheduleHandler struct {
	scheduleUseCase usecase.ScheduleUseCase
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
}

// NewScheduleHandler creates a new schedule handler instance
func NewScheduleHandler(
	scheduleUseCase usecase.ScheduleUseCase,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUseCase: scheduleUseCase,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetSchedule handles the GET /api/v1/schedule endpoint
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	var query dto.ScheduleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.rejectQuery(c, err)
		return
	}

	req := usecase.ScheduleRequest{
		Latitude:  query.Latitude,
		Longitude: query.Longitude,
		ClientIP:  c.ClientIP(),
	}
	if query.Date != "" {
		date, err := time.Parse(entity.DateLayout, query.Date)
		if err != nil {
			h.rejectQuery(c, err)
			return
		}
		req.Date = &date
	}

	report, err := h.scheduleUseCase.GetSchedule(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewScheduleReportResponse(report))
}

// ComputeSchedule handles the GET /api/v1/schedule/compute endpoint
func (h *ScheduleHandler) ComputeSchedule(c *gin.Context) {
	var query dto.ComputeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.rejectQuery(c, err)
		return
	}

	isha, errIsha := time.Parse(time.RFC3339, query.Isha)
	fajr, errFajr := time.Parse(time.RFC3339, query.Fajr)
	if err := errors.Join(errIsha, errFajr); err != nil {
		h.rejectQuery(c, err)
		return
	}

	schedule, err := h.scheduleUseCase.ComputeSchedule(c.Request.Context(), isha, fajr)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewScheduleResponse(schedule))
}

// Health handles the GET /health endpoint
func (h *ScheduleHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status: "ok",
		Time:   h.timeProvider.Now().UTC().Format(time.RFC3339),
	})
}

// rejectQuery answers 400, naming the first offending field when the validator reports one
func (h *ScheduleHandler) rejectQuery(c *gin.Context, err error) {
	code := domainerr.ErrInvalidRequest

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		switch validationErrs[0].Field() {
		case "Latitude", "Longitude":
			code = domainerr.ErrInvalidCoordinates
		case "Date":
			code = domainerr.ErrInvalidDate
		}
	}

	h.logger.Debug("Invalid schedule query", map[string]any{
		"error":      err.Error(),
		"query":      c.Request.URL.RawQuery,
		"request_id": middleware.GetRequestID(c),
	})

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		code, "Invalid request format: "+err.Error(), middleware.GetRequestID(c),
	))
}

// respondError maps domain errors to HTTP status codes
func (h *ScheduleHandler) respondError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	errorMessage := "Internal server error"

	switch {
	case domainerr.IsClientError(err):
		statusCode = http.StatusBadRequest
		errorMessage = err.Error()
	case domainerr.IsInvalidWindowError(err):
		statusCode = http.StatusUnprocessableEntity
		errorMessage = err.Error()
	case domainerr.IsSourceUnavailableError(err):
		statusCode = http.StatusBadGateway
		errorMessage = "Prayer time source unavailable"
	default:
		fields := domainerr.LogFields(err)
		fields["request_id"] = middleware.GetRequestID(c)
		h.logger.Error("Unexpected error computing schedule", fields)
	}

	_ = c.Error(err)
	c.JSON(statusCode, dto.NewErrorResponse(err, errorMessage, middleware.GetRequestID(c)))
}
