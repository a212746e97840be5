package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/family-gazette-api/internal/database"
	"github.com/family-gazette-api/internal/models"
	"github.com/lib/pq"
)

// ErrDuplicateShareToken is returned when a share token is already taken
var ErrDuplicateShareToken = errors.New("share token already in use")

// uniqueViolation is the PostgreSQL error code for unique constraint failures
const uniqueViolation = "23505"

const storyColumns = `id, prompt, file_name, image_url, layout, palette, headline, subheadline,
	byline, dateline, body, quote, tags, share_token, captured_at, created_at, updated_at`

// storyRepo is the concrete implementation of StoryRepository
type storyRepo struct {
	db *database.DB
}

// NewStoryRepo creates a new story repository
func NewStoryRepo(db *database.DB) StoryRepository {
	return &storyRepo{db: db}
}

// Create inserts a new story
func (r *storyRepo) Create(ctx context.Context, story *models.Story) error {
	query := `
		INSERT INTO stories (` + storyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.db.ExecContext(ctx, query, storyArgs(story)...)
	return err
}

// BatchInsert inserts multiple stories using PostgreSQL COPY
func (r *storyRepo) BatchInsert(ctx context.Context, stories []*models.Story) (int, error) {
	if len(stories) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("stories",
		"id", "prompt", "file_name", "image_url", "layout", "palette", "headline", "subheadline",
		"byline", "dateline", "body", "quote", "tags", "share_token", "captured_at", "created_at", "updated_at",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, story := range stories {
		if _, err := stmt.ExecContext(ctx, storyArgs(story)...); err != nil {
			return 0, fmt.Errorf("failed to buffer story %s: %w", story.ID, err)
		}
	}

	// Flush the COPY buffer
	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(stories), nil
}

// storyArgs returns the column values of a story in storyColumns order
func storyArgs(story *models.Story) []interface{} {
	return []interface{}{
		story.ID, story.Prompt, story.FileName, story.ImageURL, story.Layout, story.Palette,
		story.Headline, story.Subheadline, story.Byline, story.Dateline,
		jsonArray(story.Body), story.Quote, jsonArray(story.Tags),
		nullString(story.ShareToken), story.CapturedAt, story.CreatedAt, story.UpdatedAt,
	}
}

// jsonArray encodes a string slice for a JSONB column, never as null
func jsonArray(items []string) string {
	if items == nil {
		return "[]"
	}
	data, _ := json.Marshal(items)
	return string(data)
}

// GetByID retrieves a story by ID
func (r *storyRepo) GetByID(ctx context.Context, id string) (*models.Story, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+storyColumns+" FROM stories WHERE id = $1", id)
	return scanStory(row.Scan)
}

// GetByShareToken retrieves a shared story
func (r *storyRepo) GetByShareToken(ctx context.Context, token string) (*models.Story, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+storyColumns+" FROM stories WHERE share_token = $1", token)
	return scanStory(row.Scan)
}

// scanStory reads one story using the given Scan func; a missing row
// yields nil, nil
func scanStory(scan func(dest ...interface{}) error) (*models.Story, error) {
	var story models.Story
	var bodyJSON, tagsJSON []byte
	var shareToken sql.NullString
	var capturedAt sql.NullTime

	err := scan(
		&story.ID, &story.Prompt, &story.FileName, &story.ImageURL, &story.Layout, &story.Palette,
		&story.Headline, &story.Subheadline, &story.Byline, &story.Dateline,
		&bodyJSON, &story.Quote, &tagsJSON, &shareToken, &capturedAt,
		&story.CreatedAt, &story.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(bodyJSON, &story.Body); err != nil {
		return nil, fmt.Errorf("failed to decode body of story %s: %w", story.ID, err)
	}
	if err := json.Unmarshal(tagsJSON, &story.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags of story %s: %w", story.ID, err)
	}
	story.ShareToken = shareToken.String
	if capturedAt.Valid {
		story.CapturedAt = &capturedAt.Time
	}

	return &story, nil
}

// Update writes the editable fields of a story
func (r *storyRepo) Update(ctx context.Context, story *models.Story) error {
	query := `
		UPDATE stories SET
			image_url = $1, layout = $2, headline = $3, subheadline = $4, byline = $5,
			dateline = $6, body = $7, quote = $8, tags = $9, updated_at = $10
		WHERE id = $11
	`
	story.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query,
		story.ImageURL, story.Layout, story.Headline, story.Subheadline, story.Byline,
		story.Dateline, jsonArray(story.Body), story.Quote, jsonArray(story.Tags),
		story.UpdatedAt, story.ID,
	)
	return err
}

// SetShareToken stores the public token of a story
func (r *storyRepo) SetShareToken(ctx context.Context, id, token string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE stories SET share_token = $1, updated_at = $2 WHERE id = $3",
		token, time.Now().UTC(), id,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicateShareToken
	}
	return err
}

// Delete removes a story, reporting whether it existed
func (r *storyRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM stories WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// List returns a page of stories, newest first
func (r *storyRepo) List(ctx context.Context, limit, offset int) ([]*models.Story, error) {
	query := "SELECT " + storyColumns + " FROM stories ORDER BY created_at DESC, id LIMIT $1 OFFSET $2"
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stories := make([]*models.Story, 0, limit)
	for rows.Next() {
		story, err := scanStory(rows.Scan)
		if err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	return stories, rows.Err()
}

// Count returns the total number of stories
func (r *storyRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stories").Scan(&count)
	return count, err
}

// StreamAll streams all stories for export, oldest first
func (r *storyRepo) StreamAll(ctx context.Context, callback func(*models.Story) error) error {
	rows, err := r.db.QueryContext(ctx, "SELECT "+storyColumns+" FROM stories ORDER BY created_at, id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		story, err := scanStory(rows.Scan)
		if err != nil {
			return err
		}
		if err := callback(story); err != nil {
			return err
		}
	}

	return rows.Err()
}
