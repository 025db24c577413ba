package http

import (
	"net/http"

	"github.com/brunotrento11/Teste-sub000/internal/scheduler/dto"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/service"

	"github.com/labstack/echo/v4"
)

// ExecutionHandler serves the execution log.
type ExecutionHandler struct {
	executionService service.ExecutionService
}

// NewExecutionHandler creates a new ExecutionHandler.
func NewExecutionHandler(executionService service.ExecutionService) *ExecutionHandler {
	return &ExecutionHandler{executionService: executionService}
}

// RegisterRoutes registers the execution routes to the Echo group.
func (h *ExecutionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListExecutions)
	g.GET("/:id", h.GetExecutionByID)
}

// ListExecutions godoc
// @Summary List executions, newest first
// @Tags executions
// @Produce  json
// @Param   function_name  query  string  false  "Function name"
// @Param   status  query  string  false  "Execution status"
// @Param   limit  query  int  false  "Page size"
// @Param   offset  query  int  false  "Page offset"
// @Success 200 {object} dto.ExecutionListResponse
// @Router /executions [get]
func (h *ExecutionHandler) ListExecutions(c echo.Context) error {
	var req dto.ListExecutionsRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	resp, err := h.executionService.List(c.Request().Context(), &req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetExecutionByID godoc
// @Summary Get an execution record by ID
// @Tags executions
// @Produce  json
// @Param   id  path    int true    "Execution ID"
// @Success 200 {object} entity.ExecutionRecord
// @Failure 404 {object} dto.ErrorResponse
// @Router /executions/{id} [get]
func (h *ExecutionHandler) GetExecutionByID(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid execution ID")
	}

	record, err := h.executionService.GetByID(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, record)
}
