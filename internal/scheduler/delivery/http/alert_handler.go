package http

import (
	"net/http"

	"github.com/brunotrento11/Teste-sub000/internal/scheduler/dto"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/service"

	"github.com/labstack/echo/v4"
)

// AlertHandler serves anomaly alerts.
type AlertHandler struct {
	alertService service.AlertService
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService service.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// RegisterRoutes registers the alert routes to the Echo group.
func (h *AlertHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListAlerts)
	g.PATCH("/:id/ack", h.AcknowledgeAlert)
}

// ListAlerts godoc
// @Summary List anomaly alerts, newest first
// @Tags alerts
// @Produce  json
// @Param   function_name  query  string  false  "Function name"
// @Param   severity  query  string  false  "info, warning or critical"
// @Param   execution_id  query  int  false  "Execution ID"
// @Param   unacknowledged  query  bool  false  "Only open alerts"
// @Success 200 {object} dto.AlertListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /alerts [get]
func (h *AlertHandler) ListAlerts(c echo.Context) error {
	var req dto.ListAlertsRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	resp, err := h.alertService.List(c.Request().Context(), &req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// AcknowledgeAlert godoc
// @Summary Acknowledge an anomaly alert
// @Tags alerts
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Alert ID"
// @Param   ack  body    dto.AcknowledgeAlertRequest   true    "Acknowledgement"
// @Success 200 {object} entity.AnomalyAlert
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /alerts/{id}/ack [patch]
func (h *AlertHandler) AcknowledgeAlert(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid alert ID")
	}

	var req dto.AcknowledgeAlertRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	alert, err := h.alertService.Acknowledge(c.Request().Context(), id, &req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, alert)
}
