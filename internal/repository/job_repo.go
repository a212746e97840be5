package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/family-gazette-api/internal/database"
	"github.com/family-gazette-api/internal/models"
	"github.com/lib/pq"
)

const jobColumns = `id, type, resource, status, idempotency_key, total_records, processed_count,
	successful_count, failed_count, duration_ms, rows_per_sec, file_path,
	created_at, started_at, completed_at`

// jobRepo is the concrete implementation of JobRepository
type jobRepo struct {
	db *database.DB
}

// NewJobRepo creates a new job repository
func NewJobRepo(db *database.DB) JobRepository {
	return &jobRepo{db: db}
}

// Create inserts a new job
func (r *jobRepo) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (id, type, resource, status, idempotency_key, total_records,
			processed_count, successful_count, failed_count, file_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.Type, job.Resource, job.Status, nullString(job.IdempotencyKey),
		job.TotalRecords, job.ProcessedCount, job.SuccessfulCount, job.FailedCount,
		nullString(job.FilePath), job.CreatedAt,
	)
	return err
}

// Update updates job status and counters
func (r *jobRepo) Update(ctx context.Context, job *models.Job) error {
	query := `
		UPDATE jobs SET
			status = $1, total_records = $2, processed_count = $3, successful_count = $4,
			failed_count = $5, duration_ms = $6, rows_per_sec = $7,
			started_at = $8, completed_at = $9
		WHERE id = $10
	`
	_, err := r.db.ExecContext(ctx, query,
		job.Status, job.TotalRecords, job.ProcessedCount, job.SuccessfulCount,
		job.FailedCount, job.DurationMs, job.RowsPerSec,
		job.StartedAt, job.CompletedAt, job.ID,
	)
	return err
}

// GetByID retrieves a job by ID
func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = $1", id)
	return scanJob(row.Scan)
}

// GetByIdempotencyKey retrieves a job by idempotency key
func (r *jobRepo) GetByIdempotencyKey(ctx context.Context, key string) (*models.Job, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE idempotency_key = $1", key)
	return scanJob(row.Scan)
}

// scanJob reads one job row; a missing row yields nil, nil
func scanJob(scan func(dest ...interface{}) error) (*models.Job, error) {
	var job models.Job
	var idempotencyKey, filePath sql.NullString
	var startedAt, completedAt sql.NullTime

	err := scan(
		&job.ID, &job.Type, &job.Resource, &job.Status, &idempotencyKey,
		&job.TotalRecords, &job.ProcessedCount, &job.SuccessfulCount, &job.FailedCount,
		&job.DurationMs, &job.RowsPerSec, &filePath,
		&job.CreatedAt, &startedAt, &completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	job.IdempotencyKey = idempotencyKey.String
	job.FilePath = filePath.String
	if startedAt.Valid {
		job.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}

	return &job, nil
}

// GetPendingJobs retrieves pending jobs oldest first
func (r *jobRepo) GetPendingJobs(ctx context.Context) ([]*models.Job, error) {
	query := `
		SELECT id, type, resource, file_path, created_at
		FROM jobs WHERE status = 'pending'
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		var job models.Job
		var filePath sql.NullString
		if err := rows.Scan(&job.ID, &job.Type, &job.Resource, &filePath, &job.CreatedAt); err != nil {
			return nil, err
		}
		job.FilePath = filePath.String
		job.Status = models.JobStatusPending
		jobs = append(jobs, &job)
	}

	return jobs, rows.Err()
}

// MarkJobAsProcessing atomically claims a pending job. False means another
// worker already claimed it.
func (r *jobRepo) MarkJobAsProcessing(ctx context.Context, jobID string) (bool, error) {
	query := `
		UPDATE jobs SET status = 'processing', started_at = $1
		WHERE id = $2 AND status = 'pending'
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), jobID)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// CountByStatus returns the number of jobs per status
func (r *jobRepo) CountByStatus(ctx context.Context) (map[models.JobStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM jobs GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.JobStatus]int)
	for rows.Next() {
		var status models.JobStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// AddErrors adds validation errors using the COPY protocol
func (r *jobRepo) AddErrors(ctx context.Context, jobID string, errors []models.ValidationError) error {
	if len(errors) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("job_errors",
		"job_id", "line_number", "field", "message", "value",
	))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range errors {
		if _, err := stmt.ExecContext(ctx, jobID, e.Line, e.Field, e.Message, errorValue(e.Value)); err != nil {
			return fmt.Errorf("failed to buffer job error: %w", err)
		}
	}

	// Flush the COPY buffer
	if _, err := stmt.ExecContext(ctx); err != nil {
		return err
	}

	return tx.Commit()
}

// GetErrors retrieves validation errors for a job ordered by line
func (r *jobRepo) GetErrors(ctx context.Context, jobID string, limit int) ([]models.ValidationError, error) {
	query := `SELECT line_number, field, message, value FROM job_errors WHERE job_id = $1 ORDER BY line_number, id`
	args := []interface{}{jobID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errors []models.ValidationError
	for rows.Next() {
		var e models.ValidationError
		var value sql.NullString
		if err := rows.Scan(&e.Line, &e.Field, &e.Message, &value); err != nil {
			return nil, err
		}
		if value.Valid && value.String != "" {
			e.Value = value.String
		}
		errors = append(errors, e)
	}

	return errors, rows.Err()
}

func errorValue(v interface{}) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return nullString(fmt.Sprint(v))
}

// helper to convert empty string to NULL
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
