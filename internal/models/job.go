package models

import (
	"time"
)

// JobStatus represents the status of a batch generation job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// JobType represents the type of job
type JobType string

const (
	JobTypeImport JobType = "import"
)

// ResourceStories is the only resource jobs operate on
const ResourceStories = "stories"

// Job represents a batch generation job
type Job struct {
	ID              string     `json:"job_id" db:"id"`
	Type            JobType    `json:"type" db:"type"`
	Resource        string     `json:"resource" db:"resource"`
	Status          JobStatus  `json:"status" db:"status"`
	IdempotencyKey  string     `json:"idempotency_key,omitempty" db:"idempotency_key"`
	TotalRecords    int        `json:"total_records" db:"total_records"`
	ProcessedCount  int        `json:"processed" db:"processed_count"`
	SuccessfulCount int        `json:"successful" db:"successful_count"`
	FailedCount     int        `json:"failed" db:"failed_count"`
	DurationMs      int64      `json:"duration_ms,omitempty" db:"duration_ms"`
	RowsPerSec      float64    `json:"rows_per_sec,omitempty" db:"rows_per_sec"`
	FilePath        string     `json:"-" db:"file_path"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	StartedAt       *time.Time `json:"started_at,omitempty" db:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// ValidationError describes one rejected field, with the NDJSON line it came
// from when the request was part of a batch
type ValidationError struct {
	Line    int         `json:"line,omitempty"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// JobResponse is the API response for job status
type JobResponse struct {
	Job
	Errors      []ValidationError `json:"errors,omitempty"`
	ErrorCount  int               `json:"error_count,omitempty"`
	ErrorReport string            `json:"error_report_url,omitempty"`
}

// ImportRequest represents a batch generation request
type ImportRequest struct {
	IdempotencyKey string `json:"-"` // From header
}
