package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/family-gazette-api/internal/models"
)

func createTestJob(h *testHarness, filePath string) *models.Job {
	now := time.Now()
	job := &models.Job{
		ID:        "integration-test-job",
		Type:      models.JobTypeImport,
		Resource:  models.ResourceStories,
		Status:    models.JobStatusPending,
		FilePath:  filePath,
		CreatedAt: now,
	}
	h.jobRepo.Create(context.Background(), job)
	return job
}

func TestCreateImportJob(t *testing.T) {
	h := newTestHarness(t)

	job, err := h.services.Import.CreateImportJob(context.Background(), &models.ImportRequest{IdempotencyKey: "key-1"}, "/tmp/upload.ndjson")
	if err != nil {
		t.Fatalf("CreateImportJob failed: %v", err)
	}
	if job.Status != models.JobStatusPending || job.Resource != models.ResourceStories {
		t.Errorf("Unexpected job: %+v", job)
	}

	found, _ := h.services.Job.GetJobByIdempotencyKey(context.Background(), "key-1")
	if found == nil || found.ID != job.ID {
		t.Errorf("Expected job by idempotency key, got %v", found)
	}
}

func TestProcessImport_SampleFile(t *testing.T) {
	h := newTestHarness(t)
	job := createTestJob(h, testdataPath(t, "stories_sample.ndjson"))

	if err := h.services.Import.ProcessImport(context.Background(), job); err != nil {
		t.Fatalf("ProcessImport returned error: %v", err)
	}

	if job.Status != models.JobStatusCompleted {
		t.Errorf("Expected completed, got %s", job.Status)
	}
	if job.TotalRecords != 10 {
		t.Errorf("Expected 10 total records, got %d", job.TotalRecords)
	}
	if job.SuccessfulCount != 5 || job.FailedCount != 5 {
		t.Errorf("Expected 5 successful and 5 failed, got %d and %d", job.SuccessfulCount, job.FailedCount)
	}
	if job.ProcessedCount != job.TotalRecords {
		t.Errorf("Processed %d of %d", job.ProcessedCount, job.TotalRecords)
	}
	if job.StartedAt == nil || job.CompletedAt == nil {
		t.Error("Expected start and completion times")
	}

	// Batch size 2 over 5 valid lines
	if h.storyRepo.BatchInsertCalls != 3 {
		t.Errorf("Expected 3 batch inserts, got %d", h.storyRepo.BatchInsertCalls)
	}
	if len(h.storyRepo.Stories) != 5 {
		t.Errorf("Expected 5 stories stored, got %d", len(h.storyRepo.Stories))
	}

	errs, _ := h.jobRepo.GetErrors(context.Background(), job.ID, 0)
	lines := map[int]string{}
	for _, e := range errs {
		lines[e.Line] = e.Field
	}
	want := map[int]string{5: "prompt", 6: "image_url", 7: "layout", 8: "prompt", 9: "captured_at"}
	for line, field := range want {
		if lines[line] != field {
			t.Errorf("Line %d: expected error on %s, got %q", line, field, lines[line])
		}
	}
}

func TestProcessImport_GeneratesStories(t *testing.T) {
	h := newTestHarness(t)
	path := writeTemp(t, "stories.ndjson",
		`{"prompt":"Golden hour birthday celebration at the park","file_name":"family-photo.jpg","captured_at":"2024-05-01T18:30:00Z","layout":"tabloid"}`+"\n")
	job := createTestJob(h, path)

	if err := h.services.Import.ProcessImport(context.Background(), job); err != nil {
		t.Fatalf("ProcessImport returned error: %v", err)
	}

	var story *models.Story
	for _, s := range h.storyRepo.Stories {
		story = s
	}
	if story == nil {
		t.Fatal("Expected one story")
	}
	if story.Headline != "Unforgettable Cheers Ring Out for Golden Hour Birthday Celebration At The" {
		t.Errorf("Unexpected headline %q", story.Headline)
	}
	if story.Layout != "tabloid" || story.Palette != "celebration" {
		t.Errorf("Unexpected layout/palette %s/%s", story.Layout, story.Palette)
	}
	if story.Dateline != "BACKYARD BASH — May 1, 2024" {
		t.Errorf("Unexpected dateline %q", story.Dateline)
	}
}

func TestProcessImport_MalformedJSON(t *testing.T) {
	h := newTestHarness(t)
	path := writeTemp(t, "bad.ndjson", strings.Join([]string{
		`{"prompt":"Snow day","file_name":"snow.jpg"}`,
		`{"prompt": "broken"`,
		``,
		`not json at all`,
		`{"prompt":"Beach trip","file_name":"beach.jpg"}`,
	}, "\n"))
	job := createTestJob(h, path)

	if err := h.services.Import.ProcessImport(context.Background(), job); err != nil {
		t.Fatalf("ProcessImport returned error: %v", err)
	}

	// Blank lines are skipped, not counted
	if job.TotalRecords != 4 {
		t.Errorf("Expected 4 records, got %d", job.TotalRecords)
	}
	if job.SuccessfulCount != 2 || job.FailedCount != 2 {
		t.Errorf("Expected 2/2, got %d/%d", job.SuccessfulCount, job.FailedCount)
	}

	errs, _ := h.jobRepo.GetErrors(context.Background(), job.ID, 0)
	var lines []int
	for _, e := range errs {
		if e.Field != "json" {
			t.Errorf("Expected json field error, got %s", e.Field)
		}
		lines = append(lines, e.Line)
	}
	sort.Ints(lines)
	if fmt.Sprint(lines) != "[2 4]" {
		t.Errorf("Expected errors on lines 2 and 4, got %v", lines)
	}
}

func TestProcessImport_BatchInsertError(t *testing.T) {
	h := newTestHarness(t)
	h.storyRepo.InsertError = errors.New("copy failed")

	var sb strings.Builder
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&sb, `{"prompt":"Picnic %d","file_name":"p%d.jpg"}`+"\n", i, i)
	}
	job := createTestJob(h, writeTemp(t, "stories.ndjson", sb.String()))

	if err := h.services.Import.ProcessImport(context.Background(), job); err != nil {
		t.Fatalf("Insert failures should not fail the job: %v", err)
	}
	if job.FailedCount != 5 || job.SuccessfulCount != 0 {
		t.Errorf("Expected every row failed, got %d failed %d successful", job.FailedCount, job.SuccessfulCount)
	}
}

func TestProcessImport_SharedCaption(t *testing.T) {
	h := newTestHarness(t)
	path := writeTemp(t, "stories.ndjson", strings.Join([]string{
		`{"prompt":"Beach day","image_url":"https://cdn.example.com/a.jpg","captured_at":"2024-05-01"}`,
		`{"prompt":"Beach day","image_url":"https://cdn.example.com/b.jpg","captured_at":"2025-07-04"}`,
	}, "\n"))
	job := createTestJob(h, path)

	if err := h.services.Import.ProcessImport(context.Background(), job); err != nil {
		t.Fatalf("ProcessImport returned error: %v", err)
	}
	if job.SuccessfulCount != 2 || job.FailedCount != 0 {
		t.Errorf("Expected both photos to get a story, got %d successful %d failed", job.SuccessfulCount, job.FailedCount)
	}

	datelines := map[string]bool{}
	for _, s := range h.storyRepo.Stories {
		datelines[s.Dateline] = true
	}
	if len(datelines) != 2 {
		t.Errorf("Expected distinct datelines, got %v", datelines)
	}
}

func TestProcessImport_CancelledKeepsLineErrors(t *testing.T) {
	h := newTestHarness(t)

	var sb strings.Builder
	for i := 1; i <= 1000; i++ {
		layout := "classic"
		if i <= 3 {
			layout = "poster"
		}
		fmt.Fprintf(&sb, `{"prompt":"Garden day %d","file_name":"g%d.jpg","layout":"%s"}`+"\n", i, i, layout)
	}
	job := createTestJob(h, writeTemp(t, "stories.ndjson", sb.String()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.services.Import.ProcessImport(ctx, job)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if job.Status != models.JobStatusFailed {
		t.Errorf("Expected failed status, got %s", job.Status)
	}
	if job.FailedCount != 3 {
		t.Errorf("Expected 3 failed lines, got %d", job.FailedCount)
	}

	errs, _ := h.jobRepo.GetErrors(context.Background(), job.ID, 0)
	if len(errs) != 3 {
		t.Fatalf("Expected 3 recorded line errors, got %d", len(errs))
	}
	for i, e := range errs {
		if e.Line != i+1 || e.Field != "layout" {
			t.Errorf("Unexpected error %+v", e)
		}
	}
}

func TestProcessImport_MissingFile(t *testing.T) {
	h := newTestHarness(t)
	job := createTestJob(h, filepath.Join(t.TempDir(), "gone.ndjson"))

	err := h.services.Import.ProcessImport(context.Background(), job)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
	if job.Status != models.JobStatusFailed {
		t.Errorf("Expected failed status, got %s", job.Status)
	}
}

func BenchmarkProcessImport_Stories(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&sb, `{"prompt":"Family trip number %d to the lake","file_name":"IMG_%04d.jpg","captured_at":"2024-06-01"}`+"\n", i, i)
	}
	path := filepath.Join(b.TempDir(), "bench.ndjson")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		h := newTestHarness(b)
		h.cfg.Import.BatchSize = 500
		job := createTestJob(h, path)
		b.StartTimer()

		if err := h.services.Import.ProcessImport(context.Background(), job); err != nil {
			b.Fatal(err)
		}
	}
}
