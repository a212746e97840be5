package validation

import (
	"strings"
	"testing"

	"github.com/family-gazette-api/internal/models"
)

func strPtr(s string) *string { return &s }

func hasField(errors []models.ValidationError, field string) bool {
	for _, err := range errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

func TestValidateGenerate(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		req        *models.GenerateRequest
		wantErrors int
		wantFields []string
	}{
		{
			name:       "empty request is valid",
			req:        &models.GenerateRequest{},
			wantErrors: 0,
		},
		{
			name: "valid request with RFC 3339 timestamp",
			req: &models.GenerateRequest{
				Prompt:     "Golden hour birthday celebration at the park",
				FileName:   "family-photo.jpg",
				CapturedAt: "2024-05-01T18:30:00.000Z",
			},
			wantErrors: 0,
		},
		{
			name:       "valid request with plain date",
			req:        &models.GenerateRequest{Prompt: "hike", CapturedAt: "2024-05-01"},
			wantErrors: 0,
		},
		{
			name:       "prompt too long",
			req:        &models.GenerateRequest{Prompt: strings.Repeat("a", models.MaxPromptLength+1)},
			wantErrors: 1,
			wantFields: []string{"prompt"},
		},
		{
			name:       "file name too long",
			req:        &models.GenerateRequest{FileName: strings.Repeat("f", models.MaxFileNameLength+1)},
			wantErrors: 1,
			wantFields: []string{"file_name"},
		},
		{
			name:       "invalid captured_at",
			req:        &models.GenerateRequest{CapturedAt: "05/01/2024"},
			wantErrors: 1,
			wantFields: []string{"captured_at"},
		},
		{
			name: "multiple errors",
			req: &models.GenerateRequest{
				Prompt:     strings.Repeat("a", models.MaxPromptLength+1),
				FileName:   strings.Repeat("f", models.MaxFileNameLength+1),
				CapturedAt: "yesterday",
			},
			wantErrors: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateGenerate(tt.req)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateGenerate() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
			for _, wantField := range tt.wantFields {
				if !hasField(errors, wantField) {
					t.Errorf("Expected error for field '%s' but not found", wantField)
				}
			}
		})
	}
}

func TestValidateGenerate_PromptLengthCountsCharacters(t *testing.T) {
	validator := NewValidator()

	// multi-byte characters count once each
	req := &models.GenerateRequest{Prompt: strings.Repeat("é", models.MaxPromptLength)}
	if errors := validator.ValidateGenerate(req); len(errors) != 0 {
		t.Errorf("Expected no errors for %d characters, got %v", models.MaxPromptLength, errors)
	}
}

func TestValidateStoryRequest(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		req        *models.StoryRequest
		wantErrors int
		wantFields []string
	}{
		{
			name: "valid story with image and layout",
			req: &models.StoryRequest{
				GenerateRequest: models.GenerateRequest{Prompt: "birthday", FileName: "cake.jpg"},
				ImageURL:        "https://cdn.example.com/cake.jpg",
				Layout:          "tabloid",
			},
			wantErrors: 0,
		},
		{
			name: "javascript image url",
			req: &models.StoryRequest{
				ImageURL: "javascript:alert(1)",
			},
			wantErrors: 1,
			wantFields: []string{"image_url"},
		},
		{
			name: "relative image url",
			req: &models.StoryRequest{
				ImageURL: "/uploads/cake.jpg",
			},
			wantErrors: 1,
			wantFields: []string{"image_url"},
		},
		{
			name:       "unknown layout",
			req:        &models.StoryRequest{Layout: "magazine"},
			wantErrors: 1,
			wantFields: []string{"layout"},
		},
		{
			name: "article overrides validated",
			req: &models.StoryRequest{
				Article: &models.ArticlePatch{
					Headline: strPtr("  "),
					Body:     []string{"one", ""},
				},
			},
			wantErrors: 2,
			wantFields: []string{"headline", "body[1]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateStoryRequest(tt.req)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateStoryRequest() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
			for _, wantField := range tt.wantFields {
				if !hasField(errors, wantField) {
					t.Errorf("Expected error for field '%s' but not found", wantField)
				}
			}
		})
	}
}

func TestValidateStoryPatch(t *testing.T) {
	validator := NewValidator()

	tooManyParagraphs := make([]string, models.MaxParagraphs+1)
	for i := range tooManyParagraphs {
		tooManyParagraphs[i] = "paragraph"
	}
	tooManyTags := make([]string, models.MaxTags+1)
	for i := range tooManyTags {
		tooManyTags[i] = "tag"
	}

	tests := []struct {
		name       string
		patch      *models.StoryPatch
		wantErrors int
		wantFields []string
	}{
		{
			name:       "empty patch",
			patch:      &models.StoryPatch{},
			wantErrors: 0,
		},
		{
			name: "valid edit",
			patch: &models.StoryPatch{
				ArticlePatch: models.ArticlePatch{
					Headline: strPtr("New Headline"),
					Body:     []string{"One.", "Two."},
					Tags:     []string{"Spotlight"},
				},
				Layout:   strPtr("broadsheet"),
				ImageURL: strPtr(""),
			},
			wantErrors: 0,
		},
		{
			name: "headline too long",
			patch: &models.StoryPatch{ArticlePatch: models.ArticlePatch{
				Headline: strPtr(strings.Repeat("H", models.MaxHeadlineLength+1)),
			}},
			wantErrors: 1,
			wantFields: []string{"headline"},
		},
		{
			name:       "empty body",
			patch:      &models.StoryPatch{ArticlePatch: models.ArticlePatch{Body: []string{}}},
			wantErrors: 1,
			wantFields: []string{"body"},
		},
		{
			name:       "too many paragraphs",
			patch:      &models.StoryPatch{ArticlePatch: models.ArticlePatch{Body: tooManyParagraphs}},
			wantErrors: 1,
			wantFields: []string{"body"},
		},
		{
			name:       "too many tags",
			patch:      &models.StoryPatch{ArticlePatch: models.ArticlePatch{Tags: tooManyTags}},
			wantErrors: 1,
			wantFields: []string{"tags"},
		},
		{
			name: "tag too long and blank",
			patch: &models.StoryPatch{ArticlePatch: models.ArticlePatch{
				Tags: []string{strings.Repeat("t", models.MaxTagLength+1), " "},
			}},
			wantErrors: 2,
			wantFields: []string{"tags[0]", "tags[1]"},
		},
		{
			name: "quote too long",
			patch: &models.StoryPatch{ArticlePatch: models.ArticlePatch{
				Quote: strPtr(strings.Repeat("q", models.MaxParagraphLength+1)),
			}},
			wantErrors: 1,
			wantFields: []string{"quote"},
		},
		{
			name:       "empty layout",
			patch:      &models.StoryPatch{Layout: strPtr("")},
			wantErrors: 1,
			wantFields: []string{"layout"},
		},
		{
			name:       "bad image url",
			patch:      &models.StoryPatch{ImageURL: strPtr("ftp://example.com/a.jpg")},
			wantErrors: 1,
			wantFields: []string{"image_url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateStoryPatch(tt.patch)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateStoryPatch() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
			for _, wantField := range tt.wantFields {
				if !hasField(errors, wantField) {
					t.Errorf("Expected error for field '%s' but not found", wantField)
				}
			}
		})
	}
}

func TestValidateStoryLine(t *testing.T) {
	validator := NewValidator()

	errors := validator.ValidateStoryLine(&models.StoryNDJSON{Prompt: "Birthday at the lake", FileName: "lake.jpg"}, 1)
	if len(errors) != 0 {
		t.Fatalf("Expected first line to be valid, got %v", errors)
	}

	errors = validator.ValidateStoryLine(&models.StoryNDJSON{}, 2)
	if len(errors) != 1 || errors[0].Field != "prompt" || errors[0].Line != 2 {
		t.Errorf("Expected missing prompt error on line 2, got %v", errors)
	}

	errors = validator.ValidateStoryLine(&models.StoryNDJSON{Prompt: "bad layout", Layout: "poster", CapturedAt: "never"}, 3)
	if len(errors) != 2 {
		t.Errorf("Expected 2 errors, got %v", errors)
	}
	for _, err := range errors {
		if err.Line != 3 {
			t.Errorf("Expected line 3 on every error, got %d", err.Line)
		}
	}
}

func TestDuplicateStoryLineDetection(t *testing.T) {
	validator := NewValidator()

	first := &models.StoryNDJSON{Prompt: "Sunday Hike", FileName: "trail.jpg", CapturedAt: "2024-05-01"}
	if errors := validator.ValidateStoryLine(first, 1); len(errors) != 0 {
		t.Fatalf("First line should be valid: %v", errors)
	}

	duplicate := &models.StoryNDJSON{Prompt: "  sunday hike ", FileName: "TRAIL.jpg", CapturedAt: "2024-05-01"}
	errors := validator.ValidateStoryLine(duplicate, 7)
	if len(errors) != 1 {
		t.Fatalf("Expected 1 duplicate error, got %v", errors)
	}
	if !strings.Contains(errors[0].Message, "line 1") {
		t.Errorf("Expected message to reference line 1, got %q", errors[0].Message)
	}

	tests := []struct {
		name string
		line *models.StoryNDJSON
	}{
		{"different file name", &models.StoryNDJSON{Prompt: "Sunday Hike", FileName: "summit.jpg", CapturedAt: "2024-05-01"}},
		{"different capture date", &models.StoryNDJSON{Prompt: "Sunday Hike", FileName: "trail.jpg", CapturedAt: "2025-07-04"}},
		{"different image", &models.StoryNDJSON{Prompt: "Sunday Hike", FileName: "trail.jpg", CapturedAt: "2024-05-01", ImageURL: "https://cdn.example.com/b.jpg"}},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errors := validator.ValidateStoryLine(tt.line, 10+i); len(errors) != 0 {
				t.Errorf("Expected line to be accepted, got %v", errors)
			}
		})
	}
}

func TestSharedCaptionAcrossPhotos(t *testing.T) {
	validator := NewValidator()

	lines := []*models.StoryNDJSON{
		{Prompt: "Beach day", ImageURL: "https://cdn.example.com/a.jpg", CapturedAt: "2024-05-01"},
		{Prompt: "Beach day", ImageURL: "https://cdn.example.com/b.jpg", CapturedAt: "2025-07-04"},
	}
	for i, line := range lines {
		if errors := validator.ValidateStoryLine(line, i+1); len(errors) != 0 {
			t.Errorf("line %d: expected no errors, got %v", i+1, errors)
		}
	}
}

func TestDuplicateDetection_InvalidLinesNotRemembered(t *testing.T) {
	validator := NewValidator()

	invalid := &models.StoryNDJSON{Prompt: "party", Layout: "poster"}
	if errors := validator.ValidateStoryLine(invalid, 1); len(errors) == 0 {
		t.Fatal("Expected layout error")
	}

	fixed := &models.StoryNDJSON{Prompt: "party"}
	if errors := validator.ValidateStoryLine(fixed, 2); len(errors) != 0 {
		t.Errorf("Line after a rejected line should be accepted, got %v", errors)
	}
}

func TestParseCapturedAt(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
		wantDay int
	}{
		{"2024-05-01T18:30:00.000Z", false, 1},
		{"2024-05-01T18:30:00+02:00", false, 1},
		{"2024-05-01", false, 1},
		{" 2024-12-25 ", false, 25},
		{"2024/05/01", true, 0},
		{"", true, 0},
	}

	for _, tt := range tests {
		got, err := ParseCapturedAt(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCapturedAt(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got.Day() != tt.wantDay {
			t.Errorf("ParseCapturedAt(%q) day = %d, want %d", tt.in, got.Day(), tt.wantDay)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	if !IsValidUUID("550e8400-e29b-41d4-a716-446655440000") {
		t.Error("Expected valid UUID")
	}
	if IsValidUUID("not-a-uuid") {
		t.Error("Expected invalid UUID")
	}
}

func BenchmarkValidateStoryLine(b *testing.B) {
	line := &models.StoryNDJSON{
		Prompt:     "Golden hour birthday celebration at the park",
		FileName:   "family-photo.jpg",
		ImageURL:   "https://cdn.example.com/photo.jpg",
		Layout:     "classic",
		CapturedAt: "2024-05-01T18:30:00Z",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		validator := NewValidator()
		validator.ValidateStoryLine(line, i)
	}
}
