package api

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/family-gazette-api/internal/config"
	"github.com/family-gazette-api/internal/models"
	"github.com/family-gazette-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ImportHandler handles batch generation endpoints
type ImportHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// CreateImport handles POST /v1/imports with a multipart NDJSON upload
func (h *ImportHandler) CreateImport(c *gin.Context) {
	ctx := c.Request.Context()

	idempotencyKey := c.GetHeader("Idempotency-Key")
	if idempotencyKey != "" {
		existingJob, err := h.services.Job.GetJobByIdempotencyKey(ctx, idempotencyKey)
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to check idempotency key")
		}
		if existingJob != nil {
			h.log.Info().Str("job_id", existingJob.ID).Msg("Returning existing job for idempotency key")
			c.JSON(http.StatusOK, existingJob)
			return
		}
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Import.MaxUploadSize+1024*1024)
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart file upload is required"})
		return
	}
	defer file.Close()

	if header.Size > h.cfg.Import.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file too large, max size is %d MB", h.cfg.Import.MaxUploadSize/(1024*1024)),
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".ndjson" && ext != ".json" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stories import requires an NDJSON file"})
		return
	}

	filePath, err := h.saveUpload(file, ext)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to save upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}

	req := &models.ImportRequest{IdempotencyKey: idempotencyKey}
	job, err := h.services.Import.CreateImportJob(ctx, req, filePath)
	if err != nil {
		os.Remove(filePath)
		respondError(c, h.log, err, "", "failed to create import job")
		return
	}

	h.log.Info().
		Str("job_id", job.ID).
		Str("file", header.Filename).
		Int64("size_bytes", header.Size).
		Msg("Import job created")

	c.JSON(http.StatusAccepted, gin.H{
		"job_id":   job.ID,
		"status":   job.Status,
		"resource": job.Resource,
		"message":  "Import job created and queued for processing",
	})
}

// saveUpload copies an uploaded file into the upload directory
func (h *ImportHandler) saveUpload(src io.Reader, ext string) (string, error) {
	uploadDir := h.cfg.Import.UploadDir
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filePath := filepath.Join(uploadDir, fmt.Sprintf("stories_%s%s", uuid.New().String()[:8], ext))
	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to copy file: %w", err)
	}
	return filePath, nil
}

// GetImportStatus handles GET /v1/imports/:job_id
func (h *ImportHandler) GetImportStatus(c *gin.Context) {
	jobID := c.Param("job_id")

	job, err := h.services.Job.GetJob(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, h.log, err, "job not found", "failed to get job status")
		return
	}

	c.JSON(http.StatusOK, job)
}

// GetImportErrors handles GET /v1/imports/:job_id/errors?format=json|csv
func (h *ImportHandler) GetImportErrors(c *gin.Context) {
	jobID := c.Param("job_id")

	errors, err := h.services.Job.GetJobErrors(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, h.log, err, "job not found", "failed to get errors")
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=errors_%s.csv", jobID))
		writer := csv.NewWriter(c.Writer)
		writer.Write([]string{"line", "field", "message", "value"})
		for _, e := range errors {
			value := ""
			if e.Value != nil {
				value = fmt.Sprintf("%v", e.Value)
			}
			writer.Write([]string{strconv.Itoa(e.Line), e.Field, e.Message, value})
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to write error report")
		}
	case "json":
		if errors == nil {
			errors = []models.ValidationError{}
		}
		c.JSON(http.StatusOK, gin.H{
			"job_id":      jobID,
			"error_count": len(errors),
			"errors":      errors,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: json, csv"})
	}
}
