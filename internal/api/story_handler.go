package api

import (
	"net/http"
	"strconv"

	"github.com/family-gazette-api/internal/config"
	"github.com/family-gazette-api/internal/models"
	"github.com/family-gazette-api/internal/render"
	"github.com/family-gazette-api/internal/service"
	"github.com/family-gazette-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const htmlContentType = "text/html; charset=utf-8"

// StoryHandler handles article generation, story and sharing endpoints
type StoryHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *StoryHandler {
	return &StoryHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "story").Logger(),
	}
}

// ListLayouts handles GET /v1/layouts
func (h *StoryHandler) ListLayouts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"layouts": render.Layouts(),
		"default": h.cfg.Render.DefaultLayout,
	})
}

// GenerateArticle handles POST /v1/articles/generate
func (h *StoryHandler) GenerateArticle(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.services.Story.GenerateArticle(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "", "failed to generate article")
		return
	}

	c.JSON(http.StatusOK, article)
}

// CreateStory handles POST /v1/stories
func (h *StoryHandler) CreateStory(c *gin.Context) {
	var req models.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	story, err := h.services.Story.CreateStory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "", "failed to create story")
		return
	}

	c.JSON(http.StatusCreated, story)
}

// ListStories handles GET /v1/stories?limit=&offset=
func (h *StoryHandler) ListStories(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be an integer"})
		return
	}

	list, err := h.services.Story.ListStories(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.log, err, "", "failed to list stories")
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetStory handles GET /v1/stories/:id
func (h *StoryHandler) GetStory(c *gin.Context) {
	id, ok := storyID(c)
	if !ok {
		return
	}

	story, err := h.services.Story.GetStory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "story not found", "failed to get story")
		return
	}

	c.JSON(http.StatusOK, story)
}

// UpdateStory handles PATCH /v1/stories/:id
func (h *StoryHandler) UpdateStory(c *gin.Context) {
	id, ok := storyID(c)
	if !ok {
		return
	}

	var patch models.StoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	story, err := h.services.Story.UpdateStory(c.Request.Context(), id, &patch)
	if err != nil {
		respondError(c, h.log, err, "story not found", "failed to update story")
		return
	}

	c.JSON(http.StatusOK, story)
}

// DeleteStory handles DELETE /v1/stories/:id
func (h *StoryHandler) DeleteStory(c *gin.Context) {
	id, ok := storyID(c)
	if !ok {
		return
	}

	if err := h.services.Story.DeleteStory(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "story not found", "failed to delete story")
		return
	}

	c.Status(http.StatusNoContent)
}

// PreviewStory handles GET /v1/stories/:id/preview?layout=
func (h *StoryHandler) PreviewStory(c *gin.Context) {
	id, ok := storyID(c)
	if !ok {
		return
	}

	page, err := h.services.Story.RenderStory(c.Request.Context(), id, c.Query("layout"))
	if err != nil {
		respondError(c, h.log, err, "story not found", "failed to render story")
		return
	}

	c.Data(http.StatusOK, htmlContentType, []byte(page))
}

// ShareStory handles POST /v1/stories/:id/share
func (h *StoryHandler) ShareStory(c *gin.Context) {
	id, ok := storyID(c)
	if !ok {
		return
	}

	token, err := h.services.Story.ShareStory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "story not found", "failed to share story")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"story_id":    id,
		"share_token": token,
		"share_url":   h.cfg.Render.PublicBaseURL + "/v1/shared/" + token,
	})
}

// ViewShared handles GET /v1/shared/:token?layout=
func (h *StoryHandler) ViewShared(c *gin.Context) {
	page, err := h.services.Story.RenderShared(c.Request.Context(), c.Param("token"), c.Query("layout"))
	if err != nil {
		respondError(c, h.log, err, "shared story not found", "failed to render shared story")
		return
	}

	c.Data(http.StatusOK, htmlContentType, []byte(page))
}

// storyID reads and validates the :id path parameter, writing a 400 when it
// is not a UUID
func storyID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !validation.IsValidUUID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "story id must be a UUID"})
		return "", false
	}
	return id, true
}

// queryInt parses an optional integer query parameter; absent means 0
func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
