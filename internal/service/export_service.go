package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/family-gazette-api/internal/models"
	"github.com/family-gazette-api/internal/repository"
	"github.com/rs/zerolog"
)

// flushEvery is how many records are written between flushes
const flushEvery = 100

// csvHeader lists the columns of a CSV story export
var csvHeader = []string{
	"id", "headline", "subheadline", "byline", "dateline", "body",
	"quote", "tags", "layout", "palette", "created_at",
}

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// StreamStories streams every story in the requested format, oldest first
func (s *exportService) StreamStories(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting stories export")

	var count int
	var err error
	switch format {
	case "ndjson":
		count, err = s.streamNDJSON(ctx, w)
	case "json":
		count, err = s.streamJSON(ctx, w)
	case "csv":
		count, err = s.streamCSV(ctx, w)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err != nil {
		s.log.Error().Err(err).Int("count", count).Msg("Stories export aborted")
		return err
	}
	s.log.Info().Int("count", count).Msg("Stories export completed")
	return nil
}

func (s *exportService) streamNDJSON(ctx context.Context, w http.ResponseWriter) (int, error) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=stories.ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0

	err := s.repos.Story.StreamAll(ctx, func(story *models.Story) error {
		data, err := json.Marshal(story)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
		count++

		if count%flushEvery == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	return count, err
}

func (s *exportService) streamJSON(ctx context.Context, w http.ResponseWriter) (int, error) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=stories.json")

	if _, err := io.WriteString(w, "["); err != nil {
		return 0, err
	}
	count := 0

	err := s.repos.Story.StreamAll(ctx, func(story *models.Story) error {
		if count > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}

		data, err := json.Marshal(story)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		count++
		return nil
	})

	io.WriteString(w, "]")
	return count, err
}

func (s *exportService) streamCSV(ctx context.Context, w http.ResponseWriter) (int, error) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=stories.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return 0, err
	}
	count := 0

	err := s.repos.Story.StreamAll(ctx, func(story *models.Story) error {
		if err := writer.Write(storyCSVRecord(story)); err != nil {
			return err
		}
		count++
		if count%flushEvery == 0 {
			writer.Flush()
			return writer.Error()
		}
		return nil
	})

	return count, err
}

// storyCSVRecord flattens a story into csvHeader order
func storyCSVRecord(story *models.Story) []string {
	return []string{
		story.ID,
		story.Headline,
		story.Subheadline,
		story.Byline,
		story.Dateline,
		strings.Join(story.Body, "\n\n"),
		story.Quote,
		strings.Join(story.Tags, "|"),
		story.Layout,
		story.Palette,
		story.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GetCount returns the number of stories
func (s *exportService) GetCount(ctx context.Context) (int, error) {
	return s.repos.Story.Count(ctx)
}
