package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Job statuses
const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// JobTypeExtract is the only job type currently queued
const JobTypeExtract = "extract"

// Job is a queued extraction request
type Job struct {
	ID           string     `json:"id"`
	URL          string     `json:"url"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	Error        *string    `json:"error,omitempty"`
	ExtractionID *string    `json:"extraction_id,omitempty"`
	RetryCount   int        `json:"retry_count"`
	CreatedAt    time.Time  `json:"created_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// JobRepository is the data access layer for the job queue
type JobRepository struct {
	db *DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create queues a new job
func (r *JobRepository) Create(ctx context.Context, job *Job) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.Type == "" {
		job.Type = JobTypeExtract
	}
	job.Status = JobStatusQueued
	job.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (id, url, type, status, retry_count, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		job.ID, job.URL, job.Type, job.Status, job.CreatedAt,
	)
	return err
}

// GetByID returns a job by id, nil when not found
func (r *JobRepository) GetByID(ctx context.Context, id string) (*Job, error) {
	row := r.db.QueryRowContext(ctx, selectJob+` WHERE id = ?`, id)
	return scanJob(row)
}

// GetNextQueued returns the oldest queued job, nil when the queue is empty
func (r *JobRepository) GetNextQueued(ctx context.Context) (*Job, error) {
	row := r.db.QueryRowContext(ctx,
		selectJob+` WHERE status = ? ORDER BY created_at LIMIT 1`, JobStatusQueued)
	return scanJob(row)
}

// Start marks a job as processing
func (r *JobRepository) Start(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, started_at = ? WHERE id = ?`,
		JobStatusProcessing, now, id,
	)
	return err
}

// Complete marks a job as completed and links its extraction result
func (r *JobRepository) Complete(ctx context.Context, id, extractionID string) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, extraction_id = ?, completed_at = ? WHERE id = ?`,
		JobStatusCompleted, extractionID, now, id,
	)
	return err
}

// Retry requeues a failed job attempt
func (r *JobRepository) Retry(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, retry_count = retry_count + 1 WHERE id = ?`,
		JobStatusQueued, id,
	)
	return err
}

// Fail marks a job as permanently failed
func (r *JobRepository) Fail(ctx context.Context, id, errMsg string) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, error = ?, completed_at = ? WHERE id = ?`,
		JobStatusFailed, errMsg, now, id,
	)
	return err
}

// ListRecent returns the most recent jobs
func (r *JobRepository) ListRecent(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		selectJob+` ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.URL, &j.Type, &j.Status, &j.Error,
			&j.ExtractionID, &j.RetryCount, &j.CreatedAt, &j.StartedAt, &j.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

const selectJob = `SELECT id, url, type, status, error, extraction_id,
	retry_count, created_at, started_at, completed_at FROM jobs`

func scanJob(row *sql.Row) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.URL, &j.Type, &j.Status, &j.Error,
		&j.ExtractionID, &j.RetryCount, &j.CreatedAt, &j.StartedAt, &j.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}
