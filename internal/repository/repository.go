package repository

import (
	"context"

	"github.com/family-gazette-api/internal/database"
	"github.com/family-gazette-api/internal/models"
)

// StoryRepository defines the interface for story data operations.
// Lookups return nil, nil when no row matches.
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	BatchInsert(ctx context.Context, stories []*models.Story) (int, error)
	GetByID(ctx context.Context, id string) (*models.Story, error)
	GetByShareToken(ctx context.Context, token string) (*models.Story, error)
	Update(ctx context.Context, story *models.Story) error
	SetShareToken(ctx context.Context, id, token string) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*models.Story, error)
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Story) error) error
}

// JobRepository defines the interface for job data operations
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*models.Job, error)
	GetPendingJobs(ctx context.Context) ([]*models.Job, error)
	MarkJobAsProcessing(ctx context.Context, jobID string) (bool, error)
	CountByStatus(ctx context.Context) (map[models.JobStatus]int, error)
	AddErrors(ctx context.Context, jobID string, errors []models.ValidationError) error
	GetErrors(ctx context.Context, jobID string, limit int) ([]models.ValidationError, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Story StoryRepository
	Job   JobRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Story: NewStoryRepo(db),
		Job:   NewJobRepo(db),
	}
}
