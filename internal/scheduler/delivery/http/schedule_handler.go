package http

import (
	"net/http"

	"github.com/brunotrento11/Teste-sub000/internal/scheduler/dto"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/service"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ScheduleHandler handles HTTP requests for schedules.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
	logger          *logger.Logger
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService, logger *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService, logger: logger}
}

// RegisterRoutes registers the schedule routes to the Echo group.
func (h *ScheduleHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateSchedule)
	g.GET("", h.GetAllSchedules)
	g.GET("/:id", h.GetScheduleByID)
	g.PUT("/:id", h.UpdateSchedule)
	g.PATCH("/:id", h.UpdateSchedule)
	g.DELETE("/:id", h.DeleteSchedule)
}

// CreateSchedule godoc
// @Summary Create a new schedule
// @Tags schedules
// @Accept  json
// @Produce  json
// @Param   schedule  body    dto.CreateScheduleRequest   true    "Schedule to create"
// @Success 201 {object} dto.ScheduleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /schedules [post]
func (h *ScheduleHandler) CreateSchedule(c echo.Context) error {
	var req dto.CreateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	scheduleResponse, err := h.scheduleService.CreateSchedule(c.Request().Context(), &req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, scheduleResponse)
}

// GetScheduleByID godoc
// @Summary Get a schedule by ID
// @Tags schedules
// @Produce  json
// @Param   id  path    int true    "Schedule ID"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) GetScheduleByID(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid schedule ID")
	}

	scheduleResponse, err := h.scheduleService.GetScheduleByID(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, scheduleResponse)
}

// GetAllSchedules godoc
// @Summary Get all schedules
// @Tags schedules
// @Produce  json
// @Success 200 {array} dto.ScheduleResponse
// @Router /schedules [get]
func (h *ScheduleHandler) GetAllSchedules(c echo.Context) error {
	schedules, err := h.scheduleService.GetAllSchedules(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list schedules", logger.ErrorField(err))
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, schedules)
}

// UpdateSchedule godoc
// @Summary Update a schedule
// @Description Fields left out of the body keep their value. Changing the cron expression recomputes the next execution.
// @Tags schedules
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Schedule ID"
// @Param   schedule  body    dto.UpdateScheduleRequest   true    "Schedule to update"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /schedules/{id} [put]
func (h *ScheduleHandler) UpdateSchedule(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid schedule ID")
	}

	var req dto.UpdateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	scheduleResponse, err := h.scheduleService.UpdateSchedule(c.Request().Context(), id, &req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, scheduleResponse)
}

// DeleteSchedule godoc
// @Summary Delete a schedule
// @Tags schedules
// @Param   id  path    int true    "Schedule ID"
// @Success 204 {object} nil
// @Failure 404 {object} dto.ErrorResponse
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) DeleteSchedule(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid schedule ID")
	}

	if err := h.scheduleService.DeleteSchedule(c.Request().Context(), id); err != nil {
		return errorJSON(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
