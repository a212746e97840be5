package api

import (
	"net/http"

	"github.com/family-gazette-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ExportHandler handles export endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// StreamExport handles GET /v1/exports?format=ndjson|json|csv
// Streams every story directly to the response
func (h *ExportHandler) StreamExport(c *gin.Context) {
	format := c.DefaultQuery("format", "ndjson")
	if format != "ndjson" && format != "json" && format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: ndjson, json, csv"})
		return
	}

	h.log.Info().Str("format", format).Msg("Starting streaming export")

	if err := h.services.Export.StreamStories(c.Request.Context(), c.Writer, format); err != nil {
		// Headers are already sent once streaming starts
		h.log.Error().Err(err).Str("format", format).Msg("Export failed")
	}
}
