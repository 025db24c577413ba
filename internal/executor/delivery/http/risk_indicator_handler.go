package http

import (
	"net/http"

	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/executor/service"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RiskIndicatorHandler handles HTTP requests for risk indicators.
type RiskIndicatorHandler struct {
	indicatorService service.RiskIndicatorService
	logger           *logger.Logger
}

// NewRiskIndicatorHandler creates a new RiskIndicatorHandler.
func NewRiskIndicatorHandler(indicatorService service.RiskIndicatorService, logger *logger.Logger) *RiskIndicatorHandler {
	return &RiskIndicatorHandler{indicatorService: indicatorService, logger: logger}
}

// RegisterRoutes registers the risk indicator routes to the Echo group.
func (h *RiskIndicatorHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Calculate)
}

// Calculate godoc
// @Summary Calculate risk indicators
// @Description Computes volatility, VaR, Sharpe, drawdown and beta for one investment
// @Tags risk-indicators
// @Accept  json
// @Produce  json
// @Param   body  body    dto.RiskIndicatorRequest  true  "Investment"
// @Success 201 {object} dto.RiskIndicatorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /risk-indicators [post]
func (h *RiskIndicatorHandler) Calculate(c echo.Context) error {
	var req dto.RiskIndicatorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.indicatorService.Calculate(c.Request().Context(), req)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(c.Request().Context(), "Failed to calculate risk indicators", logger.ErrorField(err))
		}
		return c.JSON(status, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, resp)
}
