package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/family-gazette-api/internal/cache"
	"github.com/family-gazette-api/internal/config"
	"github.com/family-gazette-api/internal/generator"
	"github.com/family-gazette-api/internal/models"
	"github.com/family-gazette-api/internal/render"
	"github.com/family-gazette-api/internal/repository"
	"github.com/family-gazette-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100

	// shareTokenAttempts bounds retries after a token collision
	shareTokenAttempts = 3
)

// storyService is the concrete implementation of StoryService
type storyService struct {
	stories  repository.StoryRepository
	articles cache.ArticleCache
	renderer *render.Renderer
	cfg      *config.Config
	log      zerolog.Logger
	now      func() time.Time
}

// newStoryService creates a new StoryService
func newStoryService(stories repository.StoryRepository, articles cache.ArticleCache, renderer *render.Renderer, cfg *config.Config, log zerolog.Logger) *storyService {
	return &storyService{
		stories:  stories,
		articles: articles,
		renderer: renderer,
		cfg:      cfg,
		log:      log.With().Str("service", "story").Logger(),
		now:      time.Now,
	}
}

// GenerateArticle produces an article without persisting it
func (s *storyService) GenerateArticle(ctx context.Context, req *models.GenerateRequest) (*generator.Article, error) {
	if err := validationFailure(validation.NewValidator().ValidateGenerate(req)); err != nil {
		return nil, err
	}
	article := s.generate(ctx, req, s.capturedAt(req.CapturedAt))
	return &article, nil
}

// generate consults the article cache before running the generator. Cache
// failures only cost a regeneration.
func (s *storyService) generate(ctx context.Context, req *models.GenerateRequest, capturedAt time.Time) generator.Article {
	key := cache.Key(req.Prompt, req.FileName, capturedAt)

	cached, ok, err := s.articles.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("Article cache read failed")
	}
	if ok {
		return *cached
	}

	article := generator.Generate(generator.Options{
		Prompt:     req.Prompt,
		FileName:   req.FileName,
		CapturedAt: capturedAt,
	})

	if err := s.articles.Set(ctx, key, &article); err != nil {
		s.log.Warn().Err(err).Msg("Article cache write failed")
	}
	return article
}

// capturedAt parses a validated capture time, falling back to now
func (s *storyService) capturedAt(raw string) time.Time {
	if raw != "" {
		if t, err := validation.ParseCapturedAt(raw); err == nil {
			return t
		}
	}
	return s.now()
}

// CreateStory generates an article, applies caller edits and persists it
func (s *storyService) CreateStory(ctx context.Context, req *models.StoryRequest) (*models.Story, error) {
	if err := validationFailure(validation.NewValidator().ValidateStoryRequest(req)); err != nil {
		return nil, err
	}

	capturedAt := s.capturedAt(req.CapturedAt)
	article := s.generate(ctx, &req.GenerateRequest, capturedAt)

	story := newStory(req, article, s.cfg.Render.DefaultLayout, s.now())
	req.Article.Apply(story)

	if err := s.stories.Create(ctx, story); err != nil {
		return nil, fmt.Errorf("failed to save story: %w", err)
	}

	s.log.Info().
		Str("story_id", story.ID).
		Str("palette", story.Palette).
		Str("layout", story.Layout).
		Msg("Story created")

	return story, nil
}

// newStory builds an unsaved story from a request and its generated article
func newStory(req *models.StoryRequest, article generator.Article, defaultLayout string, now time.Time) *models.Story {
	layout := req.Layout
	if layout == "" {
		layout = defaultLayout
	}

	story := &models.Story{
		ID:        uuid.New().String(),
		Prompt:    req.Prompt,
		FileName:  req.FileName,
		ImageURL:  req.ImageURL,
		Layout:    layout,
		Palette:   string(generator.Classify(req.Prompt).ID),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	story.ApplyArticle(article)

	if req.CapturedAt != "" {
		if t, err := validation.ParseCapturedAt(req.CapturedAt); err == nil {
			story.CapturedAt = &t
		}
	}
	return story
}

// GetStory retrieves a story by ID
func (s *storyService) GetStory(ctx context.Context, id string) (*models.Story, error) {
	story, err := s.stories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load story: %w", err)
	}
	if story == nil {
		return nil, ErrNotFound
	}
	return story, nil
}

// ListStories returns a page of stories, newest first
func (s *storyService) ListStories(ctx context.Context, limit, offset int) (*models.StoryList, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	stories, err := s.stories.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	total, err := s.stories.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count stories: %w", err)
	}
	if stories == nil {
		stories = []*models.Story{}
	}

	return &models.StoryList{Stories: stories, Total: total, Limit: limit, Offset: offset}, nil
}

// UpdateStory applies a partial edit
func (s *storyService) UpdateStory(ctx context.Context, id string, patch *models.StoryPatch) (*models.Story, error) {
	if err := validationFailure(validation.NewValidator().ValidateStoryPatch(patch)); err != nil {
		return nil, err
	}

	story, err := s.GetStory(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.ArticlePatch.Apply(story)
	if patch.ImageURL != nil {
		story.ImageURL = *patch.ImageURL
	}
	if patch.Layout != nil {
		story.Layout = *patch.Layout
	}

	if err := s.stories.Update(ctx, story); err != nil {
		return nil, fmt.Errorf("failed to update story: %w", err)
	}

	s.log.Info().Str("story_id", story.ID).Msg("Story updated")
	return story, nil
}

// DeleteStory removes a story
func (s *storyService) DeleteStory(ctx context.Context, id string) error {
	deleted, err := s.stories.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	s.log.Info().Str("story_id", id).Msg("Story deleted")
	return nil
}

// RenderStory renders a story as an HTML page. An empty layout uses the
// story's own.
func (s *storyService) RenderStory(ctx context.Context, id, layout string) (string, error) {
	story, err := s.GetStory(ctx, id)
	if err != nil {
		return "", err
	}
	return s.render(story, layout)
}

// ShareStory returns the public token of a story, creating one on first use
func (s *storyService) ShareStory(ctx context.Context, id string) (string, error) {
	story, err := s.GetStory(ctx, id)
	if err != nil {
		return "", err
	}
	if story.ShareToken != "" {
		return story.ShareToken, nil
	}

	for attempt := 0; attempt < shareTokenAttempts; attempt++ {
		token := newShareToken()
		err = s.stories.SetShareToken(ctx, id, token)
		if err == nil {
			s.log.Info().Str("story_id", id).Msg("Story shared")
			return token, nil
		}
		if !errors.Is(err, repository.ErrDuplicateShareToken) {
			break
		}
	}
	return "", fmt.Errorf("failed to share story: %w", err)
}

// newShareToken returns 32 hex characters from a random UUID
func newShareToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// GetSharedStory retrieves a story by its share token
func (s *storyService) GetSharedStory(ctx context.Context, token string) (*models.Story, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	story, err := s.stories.GetByShareToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load shared story: %w", err)
	}
	if story == nil {
		return nil, ErrNotFound
	}
	return story, nil
}

// RenderShared renders a shared story
func (s *storyService) RenderShared(ctx context.Context, token, layout string) (string, error) {
	story, err := s.GetSharedStory(ctx, token)
	if err != nil {
		return "", err
	}
	return s.render(story, layout)
}

func (s *storyService) render(story *models.Story, layout string) (string, error) {
	if layout == "" {
		layout = story.Layout
	}
	if layout == "" {
		layout = s.cfg.Render.DefaultLayout
	}

	html, err := s.renderer.Render(layout, StoryDocument(story))
	if errors.Is(err, render.ErrUnknownLayout) {
		return "", &ValidationFailure{Errors: []models.ValidationError{{
			Field: "layout", Message: "unknown layout", Value: layout,
		}}}
	}
	return html, err
}

// StoryDocument maps a story onto the render pipeline's input
func StoryDocument(story *models.Story) render.Document {
	return render.Document{
		Headline:    story.Headline,
		Subheadline: story.Subheadline,
		Byline:      story.Byline,
		Dateline:    story.Dateline,
		Body:        story.Body,
		Quote:       story.Quote,
		Tags:        story.Tags,
		ImageURL:    story.ImageURL,
		ImageAlt:    story.Headline,
	}
}
