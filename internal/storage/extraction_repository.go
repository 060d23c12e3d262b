package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Extraction is a persisted extraction result
type Extraction struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Platform   string    `json:"platform"`
	SourceType string    `json:"source_type"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// ExtractionRepository is the data access layer for extraction results
type ExtractionRepository struct {
	db *DB
}

// NewExtractionRepository creates a new ExtractionRepository
func NewExtractionRepository(db *DB) *ExtractionRepository {
	return &ExtractionRepository{db: db}
}

// Create stores an extraction result
func (r *ExtractionRepository) Create(ctx context.Context, e *Extraction) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extractions (id, url, platform, source_type, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.URL, e.Platform, e.SourceType, e.Content, e.CreatedAt,
	)
	return err
}

// GetByID returns an extraction by id, nil when not found
func (r *ExtractionRepository) GetByID(ctx context.Context, id string) (*Extraction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, url, platform, source_type, content, created_at
		 FROM extractions WHERE id = ?`, id)
	return scanExtraction(row)
}

// GetLatestByURL returns the most recent extraction for a URL, nil when none
func (r *ExtractionRepository) GetLatestByURL(ctx context.Context, url string) (*Extraction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, url, platform, source_type, content, created_at
		 FROM extractions WHERE url = ? ORDER BY created_at DESC LIMIT 1`, url)
	return scanExtraction(row)
}

// ListRecent returns the most recent extractions
func (r *ExtractionRepository) ListRecent(ctx context.Context, limit int) ([]Extraction, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, url, platform, source_type, content, created_at
		 FROM extractions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Extraction
	for rows.Next() {
		var e Extraction
		if err := rows.Scan(&e.ID, &e.URL, &e.Platform, &e.SourceType, &e.Content, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanExtraction(row *sql.Row) (*Extraction, error) {
	var e Extraction
	err := row.Scan(&e.ID, &e.URL, &e.Platform, &e.SourceType, &e.Content, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
