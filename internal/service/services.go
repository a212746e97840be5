package service

import (
	"context"
	"net/http"

	"github.com/family-gazette-api/internal/cache"
	"github.com/family-gazette-api/internal/config"
	"github.com/family-gazette-api/internal/generator"
	"github.com/family-gazette-api/internal/models"
	"github.com/family-gazette-api/internal/render"
	"github.com/family-gazette-api/internal/repository"
	"github.com/rs/zerolog"
)

// StoryService defines the interface for article generation and story management
type StoryService interface {
	GenerateArticle(ctx context.Context, req *models.GenerateRequest) (*generator.Article, error)
	CreateStory(ctx context.Context, req *models.StoryRequest) (*models.Story, error)
	GetStory(ctx context.Context, id string) (*models.Story, error)
	ListStories(ctx context.Context, limit, offset int) (*models.StoryList, error)
	UpdateStory(ctx context.Context, id string, patch *models.StoryPatch) (*models.Story, error)
	DeleteStory(ctx context.Context, id string) error
	RenderStory(ctx context.Context, id, layout string) (string, error)
	ShareStory(ctx context.Context, id string) (string, error)
	GetSharedStory(ctx context.Context, token string) (*models.Story, error)
	RenderShared(ctx context.Context, token, layout string) (string, error)
}

// ImportService defines the interface for batch generation operations
type ImportService interface {
	CreateImportJob(ctx context.Context, req *models.ImportRequest, filePath string) (*models.Job, error)
	ProcessImport(ctx context.Context, job *models.Job) error
}

// ExportService defines the interface for export operations
type ExportService interface {
	StreamStories(ctx context.Context, w http.ResponseWriter, format string) error
	GetCount(ctx context.Context) (int, error)
}

// JobService defines the interface for job management
type JobService interface {
	StartProcessor(ctx context.Context)
	StopProcessor()
	GetJob(ctx context.Context, id string) (*models.JobResponse, error)
	GetJobByIdempotencyKey(ctx context.Context, key string) (*models.Job, error)
	GetJobErrors(ctx context.Context, id string) ([]models.ValidationError, error)
	GetJobCounts(ctx context.Context) (map[models.JobStatus]int, error)
	SetImportService(importService ImportService)
}

// Services holds all service interfaces
type Services struct {
	Story  StoryService
	Import ImportService
	Export ExportService
	Job    JobService
}

// NewServices creates all services. A nil articles cache disables caching.
func NewServices(repos *repository.Repositories, articles cache.ArticleCache, cfg *config.Config, log zerolog.Logger) *Services {
	if articles == nil {
		articles = cache.NewNoop()
	}
	renderer := render.NewRenderer()

	jobSvc := newJobService(repos.Job, cfg.Import.PollInterval, log)
	importSvc := newImportService(repos, cfg, log)
	exportSvc := newExportService(repos, log)
	storySvc := newStoryService(repos.Story, articles, renderer, cfg, log)

	// Wire up job processor to import service
	jobSvc.SetImportService(importSvc)

	return &Services{
		Story:  storySvc,
		Import: importSvc,
		Export: exportSvc,
		Job:    jobSvc,
	}
}
