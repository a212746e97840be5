package service

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/family-gazette-api/internal/config"
	"github.com/family-gazette-api/internal/generator"
	"github.com/family-gazette-api/internal/models"
	"github.com/family-gazette-api/internal/repository"
	"github.com/family-gazette-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// importService is the concrete implementation of ImportService
type importService struct {
	repos *repository.Repositories
	cfg   *config.Config
	log   zerolog.Logger
}

// newImportService creates a new ImportService
func newImportService(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *importService {
	return &importService{
		repos: repos,
		cfg:   cfg,
		log:   log.With().Str("service", "import").Logger(),
	}
}

// CreateImportJob queues a batch generation job for an uploaded file
func (s *importService) CreateImportJob(ctx context.Context, req *models.ImportRequest, filePath string) (*models.Job, error) {
	job := &models.Job{
		ID:             uuid.New().String(),
		Type:           models.JobTypeImport,
		Resource:       models.ResourceStories,
		Status:         models.JobStatusPending,
		IdempotencyKey: req.IdempotencyKey,
		FilePath:       filePath,
		CreatedAt:      time.Now(),
	}

	if err := s.repos.Job.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.log.Info().
		Str("job_id", job.ID).
		Str("file", filePath).
		Msg("Import job created")

	return job, nil
}

// ProcessImport runs a batch generation job to completion
func (s *importService) ProcessImport(ctx context.Context, job *models.Job) error {
	startTime := time.Now()
	job.Status = models.JobStatusProcessing
	job.StartedAt = &startTime
	if err := s.repos.Job.Update(ctx, job); err != nil {
		s.log.Error().Err(err).Str("job_id", job.ID).Msg("Failed to mark job as processing")
	}

	s.log.Info().Str("job_id", job.ID).Msg("Starting import processing")

	err := s.processStoriesNDJSON(ctx, job)

	duration := time.Since(startTime)
	job.DurationMs = duration.Milliseconds()
	if job.ProcessedCount > 0 && duration.Seconds() > 0 {
		job.RowsPerSec = float64(job.ProcessedCount) / duration.Seconds()
	}

	completedAt := time.Now()
	job.CompletedAt = &completedAt

	var errorRate float64
	if job.TotalRecords > 0 {
		errorRate = float64(job.FailedCount) / float64(job.TotalRecords) * 100
	}

	if err != nil {
		job.Status = models.JobStatusFailed
		s.log.Error().Err(err).Str("job_id", job.ID).Msg("Import failed")
	} else {
		job.Status = models.JobStatusCompleted
		s.log.Info().
			Str("job_id", job.ID).
			Int("total", job.TotalRecords).
			Int("successful", job.SuccessfulCount).
			Int("failed", job.FailedCount).
			Float64("error_rate_pct", errorRate).
			Int64("duration_ms", job.DurationMs).
			Float64("rows_per_sec", job.RowsPerSec).
			Msg("Import completed")
	}

	if updateErr := s.repos.Job.Update(ctx, job); updateErr != nil {
		s.log.Error().Err(updateErr).Str("job_id", job.ID).Msg("Failed to save job result")
	}

	return err
}

// processStoriesNDJSON generates one story per valid line
func (s *importService) processStoriesNDJSON(ctx context.Context, job *models.Job) error {
	file, err := os.Open(job.FilePath)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	// Increase buffer size for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	validator := validation.NewValidator()
	batch := &storyBatch{svc: s, job: job, size: s.cfg.Import.BatchSize}
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}

		job.TotalRecords++

		// Respect context cancellation for long-running imports
		if lineNum%1000 == 0 {
			select {
			case <-ctx.Done():
				// Line errors already counted as failed must still reach job_errors
				batch.flushErrors(context.WithoutCancel(ctx))
				return ctx.Err()
			default:
			}
		}

		var entry models.StoryNDJSON
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			batch.reject(ctx, []models.ValidationError{{
				Line:    lineNum,
				Field:   "json",
				Message: fmt.Sprintf("invalid JSON: %v", err),
			}})
			continue
		}

		if errors := validator.ValidateStoryLine(&entry, lineNum); len(errors) > 0 {
			batch.reject(ctx, errors)
			continue
		}

		batch.add(ctx, storyFromLine(&entry, s.cfg.Render.DefaultLayout))
	}

	batch.flush(ctx)
	batch.flushErrors(ctx)

	return scanner.Err()
}

// storyFromLine generates the story for a validated upload line
func storyFromLine(entry *models.StoryNDJSON, defaultLayout string) *models.Story {
	req := &models.StoryRequest{
		GenerateRequest: models.GenerateRequest{
			Prompt:     entry.Prompt,
			FileName:   entry.FileName,
			CapturedAt: entry.CapturedAt,
		},
		ImageURL: entry.ImageURL,
		Layout:   entry.Layout,
	}

	now := time.Now()
	capturedAt := now
	if entry.CapturedAt != "" {
		if t, err := validation.ParseCapturedAt(entry.CapturedAt); err == nil {
			capturedAt = t
		}
	}

	article := generator.Generate(generator.Options{
		Prompt:     entry.Prompt,
		FileName:   entry.FileName,
		CapturedAt: capturedAt,
	})
	return newStory(req, article, defaultLayout, now)
}

// errorFlushThreshold caps how many validation errors are held in memory
// before they are written to job_errors
const errorFlushThreshold = 1000

// storyBatch accumulates generated stories and line errors for a job
type storyBatch struct {
	svc     *importService
	job     *models.Job
	size    int
	stories []*models.Story
	errors  []models.ValidationError
}

func (b *storyBatch) add(ctx context.Context, story *models.Story) {
	b.stories = append(b.stories, story)
	if len(b.stories) >= b.size {
		b.flush(ctx)
	}
}

func (b *storyBatch) reject(ctx context.Context, errors []models.ValidationError) {
	b.job.FailedCount++
	b.job.ProcessedCount++
	b.errors = append(b.errors, errors...)
	if len(b.errors) >= errorFlushThreshold {
		b.flushErrors(ctx)
	}
}

// flush inserts the pending stories. A failed insert fails the whole batch.
func (b *storyBatch) flush(ctx context.Context) {
	if len(b.stories) == 0 {
		return
	}

	inserted, err := b.svc.repos.Story.BatchInsert(ctx, b.stories)
	if err != nil {
		b.svc.log.Error().Err(err).Int("batch_size", len(b.stories)).Msg("Batch insert failed")
		b.job.FailedCount += len(b.stories)
	} else {
		b.job.SuccessfulCount += inserted
	}
	b.job.ProcessedCount += len(b.stories)
	b.stories = nil

	if b.job.StartedAt != nil {
		b.svc.log.Debug().
			Str("job_id", b.job.ID).
			Int("processed", b.job.ProcessedCount).
			Float64("rows_per_sec", float64(b.job.ProcessedCount)/time.Since(*b.job.StartedAt).Seconds()).
			Msg("Batch processed")
	}
}

func (b *storyBatch) flushErrors(ctx context.Context) {
	if len(b.errors) == 0 {
		return
	}
	if err := b.svc.repos.Job.AddErrors(ctx, b.job.ID, b.errors); err != nil {
		b.svc.log.Error().Err(err).Int("count", len(b.errors)).Msg("Failed to flush validation errors")
	}
	b.errors = nil
}
