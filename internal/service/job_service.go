package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/family-gazette-api/internal/models"
	"github.com/family-gazette-api/internal/repository"
	"github.com/rs/zerolog"
)

// maxInlineErrors is how many line errors a job status response carries
const maxInlineErrors = 100

// jobService is the concrete implementation of JobService
type jobService struct {
	jobRepo       repository.JobRepository
	importService ImportService
	pollInterval  time.Duration
	log           zerolog.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	running       bool
	mu            sync.Mutex
	// sem bounds the number of jobs processed concurrently
	sem chan struct{}
}

// newJobService creates a new JobService. Generation is CPU-bound but each
// batch also waits on COPY round trips, so the pool is sized above NumCPU.
func newJobService(jobRepo repository.JobRepository, pollInterval time.Duration, log zerolog.Logger) *jobService {
	maxWorkers := runtime.NumCPU() * 2
	if maxWorkers < 2 {
		maxWorkers = 2
	}
	if maxWorkers > 16 {
		maxWorkers = 16
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}

	log = log.With().Str("service", "job").Logger()
	log.Info().Int("max_workers", maxWorkers).Dur("poll_interval", pollInterval).Msg("Initializing job worker pool")

	return &jobService{
		jobRepo:      jobRepo,
		pollInterval: pollInterval,
		log:          log,
		sem:          make(chan struct{}, maxWorkers),
	}
}

// SetImportService sets the import service for job processing
func (s *jobService) SetImportService(importService ImportService) {
	s.importService = importService
}

// StartProcessor polls for pending jobs until ctx is done or StopProcessor
// is called. It blocks.
func (s *jobService) StartProcessor(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	runCtx := s.ctx
	s.mu.Unlock()

	s.log.Info().Msg("Job processor started")

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-runCtx.Done():
			s.log.Info().Msg("Job processor stopping")
			return
		case <-ticker.C:
			s.processPendingJobs(runCtx)
		}
	}
}

// StopProcessor cancels polling and waits for in-flight jobs
func (s *jobService) StopProcessor() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.wg.Wait()
	s.running = false
	s.log.Info().Msg("Job processor stopped")
}

// processPendingJobs claims and starts every pending job, blocking while the
// pool is full
func (s *jobService) processPendingJobs(ctx context.Context) {
	jobs, err := s.jobRepo.GetPendingJobs(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to get pending jobs")
		return
	}

	for _, job := range jobs {
		select {
		case s.sem <- struct{}{}:
		case <-ctx.Done():
			return
		}

		marked, err := s.jobRepo.MarkJobAsProcessing(ctx, job.ID)
		if err != nil || !marked {
			<-s.sem
			continue // Another worker already picked it up
		}

		s.wg.Add(1)
		go func(j *models.Job) {
			defer s.wg.Done()
			defer func() { <-s.sem }()

			defer func() {
				if r := recover(); r != nil {
					s.log.Error().
						Interface("panic", r).
						Str("job_id", j.ID).
						Msg("Job processing panicked - recovered")
					j.Status = models.JobStatusFailed
					if err := s.jobRepo.Update(context.Background(), j); err != nil {
						s.log.Error().Err(err).Str("job_id", j.ID).Msg("Failed to mark job as failed")
					}
				}
			}()
			s.processJob(ctx, j)
		}(job)
	}
}

// processJob dispatches a single claimed job
func (s *jobService) processJob(ctx context.Context, job *models.Job) {
	select {
	case <-ctx.Done():
		s.log.Warn().Str("job_id", job.ID).Msg("Job processing cancelled due to shutdown")
		return
	default:
	}

	s.log.Info().Str("job_id", job.ID).Str("type", string(job.Type)).Msg("Processing job")

	switch job.Type {
	case models.JobTypeImport:
		if s.importService == nil {
			s.log.Error().Str("job_id", job.ID).Msg("No import service configured")
			return
		}
		if err := s.importService.ProcessImport(ctx, job); err != nil {
			s.log.Error().Err(err).Str("job_id", job.ID).Msg("Import processing failed")
		}
	default:
		s.log.Warn().Str("job_id", job.ID).Str("type", string(job.Type)).Msg("Unknown job type")
	}
}

// GetJob retrieves a job with its first line errors
func (s *jobService) GetJob(ctx context.Context, id string) (*models.JobResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, ErrNotFound
	}

	errors, err := s.jobRepo.GetErrors(ctx, id, maxInlineErrors)
	if err != nil {
		s.log.Error().Err(err).Str("job_id", id).Msg("Failed to get job errors")
	}

	response := &models.JobResponse{
		Job:        *job,
		Errors:     errors,
		ErrorCount: job.FailedCount,
	}
	if job.FailedCount > 0 {
		response.ErrorReport = "/v1/imports/" + job.ID + "/errors"
	}

	return response, nil
}

// GetJobByIdempotencyKey retrieves a job by idempotency key, nil if none
func (s *jobService) GetJobByIdempotencyKey(ctx context.Context, key string) (*models.Job, error) {
	return s.jobRepo.GetByIdempotencyKey(ctx, key)
}

// GetJobErrors retrieves all line errors of a job
func (s *jobService) GetJobErrors(ctx context.Context, id string) ([]models.ValidationError, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, ErrNotFound
	}
	return s.jobRepo.GetErrors(ctx, id, 0)
}

// GetJobCounts returns the number of jobs per status
func (s *jobService) GetJobCounts(ctx context.Context) (map[models.JobStatus]int, error) {
	return s.jobRepo.CountByStatus(ctx)
}
