package http

import (
	"net/http"

	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/executor/service"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AssetSearchHandler serves the asset search view.
type AssetSearchHandler struct {
	searchService service.AssetSearchService
	logger        *logger.Logger
}

// NewAssetSearchHandler creates a new AssetSearchHandler.
func NewAssetSearchHandler(searchService service.AssetSearchService, logger *logger.Logger) *AssetSearchHandler {
	return &AssetSearchHandler{searchService: searchService, logger: logger}
}

// RegisterRoutes registers the asset routes to the Echo group.
func (h *AssetSearchHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
}

// Search godoc
// @Summary Search assets
// @Description One page of the asset search view, lowest risk first
// @Tags assets
// @Produce  json
// @Param   q                query  string  false  "Free text"
// @Param   family           query  string  false  "Asset family, repeatable or comma separated"
// @Param   risk_band        query  string  false  "baixo, moderado or alto"
// @Param   maturity_before  query  string  false  "YYYY-MM-DD"
// @Param   page             query  int     false  "Zero-based page"
// @Param   page_size        query  int     false  "Page size, at most 100"
// @Success 200 {object} dto.AssetSearchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assets/search [get]
func (h *AssetSearchHandler) Search(c echo.Context) error {
	var req dto.AssetSearchRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid query parameters"})
	}

	resp, err := h.searchService.Search(c.Request().Context(), req)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(c.Request().Context(), "Asset search failed", logger.ErrorField(err))
		}
		return c.JSON(status, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}
