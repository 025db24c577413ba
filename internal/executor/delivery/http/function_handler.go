package http

import (
	"net/http"

	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/executor/service"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// FunctionHandler exposes the batch risk jobs over HTTP.
type FunctionHandler struct {
	riskJobService service.RiskJobService
	logger         *logger.Logger
}

// NewFunctionHandler creates a new FunctionHandler.
func NewFunctionHandler(riskJobService service.RiskJobService, logger *logger.Logger) *FunctionHandler {
	return &FunctionHandler{riskJobService: riskJobService, logger: logger}
}

// RegisterRoutes registers the function routes to the Echo group.
func (h *FunctionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/:name", h.Invoke)
	g.GET("/:name", h.Health)
}

// Invoke godoc
// @Summary Invoke a risk job
// @Description Runs one chunk of a batch risk job, or a single ticker when ticker is set
// @Tags functions
// @Accept  json
// @Produce  json
// @Param   name  path    string                    true  "Function name"
// @Param   body  body    dto.InvocationRequest     false "Invocation options"
// @Success 200 {object} dto.InvocationResponse
// @Failure 400 {object} dto.InvocationResponse
// @Failure 404 {object} dto.InvocationResponse
// @Failure 409 {object} dto.InvocationResponse
// @Failure 500 {object} dto.InvocationResponse
// @Router /functions/{name} [post]
func (h *FunctionHandler) Invoke(c echo.Context) error {
	var req dto.InvocationRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.InvocationResponse{Error: "Invalid request payload"})
		}
	}

	resp, err := h.riskJobService.Invoke(c.Request().Context(), c.Param("name"), req)
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "Risk job invocation failed",
			logger.StringField("function", c.Param("name")), logger.ErrorField(err))
		if resp == nil {
			resp = &dto.InvocationResponse{}
		}
		resp.Success = false
		resp.Error = err.Error()
		return c.JSON(statusFor(err), resp)
	}
	return c.JSON(http.StatusOK, resp)
}

// Health godoc
// @Summary Risk job health
// @Description Reports the health of a job from its last execution and open alerts
// @Tags functions
// @Produce  json
// @Param   name    path   string  true  "Function name"
// @Param   action  query  string  true  "Must be health"
// @Success 200 {object} anomaly.HealthReport
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /functions/{name} [get]
func (h *FunctionHandler) Health(c echo.Context) error {
	if c.QueryParam("action") != "health" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unsupported action, use ?action=health"})
	}

	report, err := h.riskJobService.Health(c.Request().Context(), c.Param("name"))
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, report)
}
