package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/landed_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/landed_pricing_app/internal/core/ports/services"
	"github.com/SscSPs/landed_pricing_app/internal/dto"
	"github.com/SscSPs/landed_pricing_app/internal/middleware"
	"github.com/SscSPs/landed_pricing_app/internal/spreadsheet"
	"github.com/gin-gonic/gin"
)

// pricingHandler handles HTTP requests for recalculation and pricing listings.
type pricingHandler struct {
	pricingService   portssvc.PricingSvcFacade
	defaultTransport domain.TransportMode
}

func newPricingHandler(ps portssvc.PricingSvcFacade, defaultTransport domain.TransportMode) *pricingHandler {
	return &pricingHandler{
		pricingService:   ps,
		defaultTransport: defaultTransport,
	}
}

// registerPricingRoutes registers routes related to landed costs and price tiers.
func registerPricingRoutes(rg *gin.RouterGroup, pricingService portssvc.PricingSvcFacade, defaultTransport domain.TransportMode) {
	h := newPricingHandler(pricingService, defaultTransport)

	pricing := rg.Group("/pricing")
	{
		pricing.POST("/recalculate",
			middleware.RequireRoles(domain.RoleCommercialManagement, domain.RoleSubdirection, domain.RoleDirection, domain.RoleAdmin),
			h.recalculate)
		pricing.GET("/landed", h.listLandedCosts)
		pricing.GET("/tiers", h.listPriceTiers)
		pricing.GET("/quality", h.checkQuality)
		pricing.GET("/export", h.exportPriceList)
	}
}

// recalculate godoc
// @Summary Recalculate landed costs and price tiers
// @Description Recomputes every record of one transport mode and replaces the stored set
// @Tags pricing
// @Accept  json
// @Produce  json
// @Param   request body dto.RecalculateRequest true "Transport mode"
// @Success 200 {object} domain.RecalculationSummary
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Role not allowed"
// @Security BearerAuth
// @Router /pricing/recalculate [post]
func (h *pricingHandler) recalculate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Recalculate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	summary, err := h.pricingService.Recalculate(c.Request.Context(), domain.TransportMode(req.TransportMode))
	if err != nil {
		respondError(c, err, "Failed to recalculate pricing")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// listLandedCosts godoc
// @Summary List landed cost records
// @Tags pricing
// @Produce  json
// @Param   sku query string false "SKU"
// @Param   transport_mode query string false "Transport mode"
// @Success 200 {object} dto.ListResponse[domain.LandedCostRecord]
// @Failure 403 {object} map[string]string "Sellers may not see costs"
// @Security BearerAuth
// @Router /pricing/landed [get]
func (h *pricingHandler) listLandedCosts(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListPricingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, err := h.pricingService.ListLandedCosts(c.Request.Context(), actor, toFilter(params))
	if err != nil {
		respondError(c, err, "Failed to list landed costs")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(records))
}

// listPriceTiers godoc
// @Summary List price tiers
// @Description Cost fields are omitted for sellers
// @Tags pricing
// @Produce  json
// @Param   sku query string false "SKU"
// @Param   transport_mode query string false "Transport mode"
// @Success 200 {object} dto.ListResponse[dto.PriceTierResponse]
// @Security BearerAuth
// @Router /pricing/tiers [get]
func (h *pricingHandler) listPriceTiers(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListPricingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tiers, err := h.pricingService.ListPriceTiers(c.Request.Context(), actor, toFilter(params))
	if err != nil {
		respondError(c, err, "Failed to list price tiers")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(dto.ToListPriceTierResponse(tiers, actor.Role)))
}

// checkQuality godoc
// @Summary Run tier data-quality checks
// @Tags pricing
// @Produce  json
// @Param   transport_mode query string false "Transport mode, defaults to the configured one"
// @Success 200 {object} pricing.QualityReport
// @Security BearerAuth
// @Router /pricing/quality [get]
func (h *pricingHandler) checkQuality(c *gin.Context) {
	var params dto.QualityParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	mode := domain.ParseTransportMode(params.TransportMode)
	if mode == "" {
		mode = h.defaultTransport
	}

	report, err := h.pricingService.CheckQuality(c.Request.Context(), mode)
	if err != nil {
		respondError(c, err, "Failed to check pricing quality")
		return
	}
	c.JSON(http.StatusOK, report)
}

// exportPriceList godoc
// @Summary Download the price list workbook
// @Tags pricing
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /pricing/export [get]
func (h *pricingHandler) exportPriceList(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	tiers, err := h.pricingService.ListPriceTiers(c.Request.Context(), actor, portsrepo.PricingFilter{})
	if err != nil {
		respondError(c, err, "Failed to export price list")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="price_list.xlsx"`)
	c.Status(http.StatusOK)
	c.Writer.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := spreadsheet.ExportPriceList(c.Writer, tiers); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to write price list", slog.String("error", err.Error()))
	}
}

func toFilter(p dto.ListPricingParams) portsrepo.PricingFilter {
	return portsrepo.PricingFilter{
		SKU:           p.SKU,
		TransportMode: domain.TransportMode(p.TransportMode),
	}
}
