package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	portssvc "github.com/SscSPs/landed_pricing_app/internal/core/ports/services"
	"github.com/SscSPs/landed_pricing_app/internal/middleware"
	"github.com/SscSPs/landed_pricing_app/internal/spreadsheet"
	"github.com/gin-gonic/gin"
)

// maxWorkbookBytes caps uploaded workbooks.
const maxWorkbookBytes = 20 << 20

type referenceHandler struct {
	referenceService portssvc.ReferenceSvc
	importer         *spreadsheet.Importer
}

// registerReferenceRoutes registers the workbook import route.
func registerReferenceRoutes(rg *gin.RouterGroup, referenceService portssvc.ReferenceSvc) {
	h := &referenceHandler{
		referenceService: referenceService,
		importer:         spreadsheet.NewImporter(nil),
	}

	references := rg.Group("/references", middleware.RequireRoles(domain.RoleDirection, domain.RoleAdmin))
	{
		references.POST("/import", h.importWorkbook)
	}
}

// importWorkbook godoc
// @Summary Import reference data from a workbook
// @Description Reads the Products, Parameters and ExchangeRates sheets (Spanish names accepted)
// @Tags references
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "xlsx workbook"
// @Success 200 {object} services.ImportSummary
// @Failure 400 {object} map[string]string "Invalid workbook"
// @Security BearerAuth
// @Router /references/import [post]
func (h *referenceHandler) importWorkbook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWorkbookBytes)

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing workbook file: " + err.Error()})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable workbook file"})
		return
	}
	defer file.Close()

	data, err := h.importer.Import(file)
	if err != nil {
		respondError(c, err, "Failed to parse workbook")
		return
	}
	summary, err := h.referenceService.ImportReferences(c.Request.Context(), *data)
	if err != nil {
		respondError(c, err, "Failed to import reference data")
		return
	}

	logger.Info("Workbook imported", slog.String("file", header.Filename))
	c.JSON(http.StatusOK, summary)
}
