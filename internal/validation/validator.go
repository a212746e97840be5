package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/family-gazette-api/internal/models"
	"github.com/family-gazette-api/internal/render"
	"github.com/google/uuid"
)

const dateOnlyLayout = "2006-01-02"

// Validator provides validation methods
type Validator struct {
	seenRequests map[string]int
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		seenRequests: make(map[string]int),
	}
}

// ValidateGenerate validates an article generation request
func (v *Validator) ValidateGenerate(req *models.GenerateRequest) []models.ValidationError {
	var errors []models.ValidationError

	if utf8.RuneCountInString(req.Prompt) > models.MaxPromptLength {
		errors = append(errors, models.ValidationError{
			Field:   "prompt",
			Message: fmt.Sprintf("prompt exceeds maximum of %d characters", models.MaxPromptLength),
		})
	}

	if utf8.RuneCountInString(req.FileName) > models.MaxFileNameLength {
		errors = append(errors, models.ValidationError{
			Field:   "file_name",
			Message: fmt.Sprintf("file_name exceeds maximum of %d characters", models.MaxFileNameLength),
		})
	}

	if req.CapturedAt != "" {
		if _, err := ParseCapturedAt(req.CapturedAt); err != nil {
			errors = append(errors, models.ValidationError{Field: "captured_at", Message: "invalid date, expected ISO 8601 or YYYY-MM-DD", Value: req.CapturedAt})
		}
	}

	return errors
}

// ValidateStoryRequest validates a story creation request
func (v *Validator) ValidateStoryRequest(req *models.StoryRequest) []models.ValidationError {
	errors := v.ValidateGenerate(&req.GenerateRequest)
	errors = append(errors, validateImageURL(req.ImageURL)...)
	errors = append(errors, validateLayout(req.Layout)...)
	errors = append(errors, v.ValidateArticlePatch(req.Article)...)
	return errors
}

// ValidateStoryPatch validates an edit of an existing story
func (v *Validator) ValidateStoryPatch(patch *models.StoryPatch) []models.ValidationError {
	errors := v.ValidateArticlePatch(&patch.ArticlePatch)

	if patch.ImageURL != nil {
		errors = append(errors, validateImageURL(*patch.ImageURL)...)
	}

	if patch.Layout != nil {
		if *patch.Layout == "" {
			errors = append(errors, models.ValidationError{Field: "layout", Message: "layout must not be empty"})
		} else {
			errors = append(errors, validateLayout(*patch.Layout)...)
		}
	}

	return errors
}

// ValidateArticlePatch validates edited article fields
func (v *Validator) ValidateArticlePatch(patch *models.ArticlePatch) []models.ValidationError {
	if patch == nil {
		return nil
	}
	var errors []models.ValidationError

	// Validate headline
	if patch.Headline != nil {
		if strings.TrimSpace(*patch.Headline) == "" {
			errors = append(errors, models.ValidationError{Field: "headline", Message: "headline must not be empty"})
		} else if utf8.RuneCountInString(*patch.Headline) > models.MaxHeadlineLength {
			errors = append(errors, models.ValidationError{
				Field:   "headline",
				Message: fmt.Sprintf("headline exceeds maximum of %d characters", models.MaxHeadlineLength),
			})
		}
	}

	textFields := []struct {
		name  string
		value *string
	}{
		{"subheadline", patch.Subheadline},
		{"byline", patch.Byline},
		{"dateline", patch.Dateline},
		{"quote", patch.Quote},
	}
	for _, f := range textFields {
		if f.value != nil && utf8.RuneCountInString(*f.value) > models.MaxParagraphLength {
			errors = append(errors, models.ValidationError{
				Field:   f.name,
				Message: fmt.Sprintf("%s exceeds maximum of %d characters", f.name, models.MaxParagraphLength),
			})
		}
	}

	// Validate body
	if patch.Body != nil {
		if len(patch.Body) == 0 {
			errors = append(errors, models.ValidationError{Field: "body", Message: "body must have at least one paragraph"})
		} else if len(patch.Body) > models.MaxParagraphs {
			errors = append(errors, models.ValidationError{
				Field:   "body",
				Message: fmt.Sprintf("body exceeds maximum of %d paragraphs (has %d)", models.MaxParagraphs, len(patch.Body)),
			})
		}
		for i, p := range patch.Body {
			if strings.TrimSpace(p) == "" {
				errors = append(errors, models.ValidationError{Field: fmt.Sprintf("body[%d]", i), Message: "paragraph must not be empty"})
			} else if utf8.RuneCountInString(p) > models.MaxParagraphLength {
				errors = append(errors, models.ValidationError{
					Field:   fmt.Sprintf("body[%d]", i),
					Message: fmt.Sprintf("paragraph exceeds maximum of %d characters", models.MaxParagraphLength),
				})
			}
		}
	}

	// Validate tags
	if len(patch.Tags) > models.MaxTags {
		errors = append(errors, models.ValidationError{
			Field:   "tags",
			Message: fmt.Sprintf("tags exceed maximum of %d (has %d)", models.MaxTags, len(patch.Tags)),
		})
	}
	for i, tag := range patch.Tags {
		if strings.TrimSpace(tag) == "" || utf8.RuneCountInString(tag) > models.MaxTagLength {
			errors = append(errors, models.ValidationError{
				Field:   fmt.Sprintf("tags[%d]", i),
				Message: fmt.Sprintf("tag must be 1-%d characters", models.MaxTagLength),
				Value:   tag,
			})
		}
	}

	return errors
}

// ValidateStoryLine validates one line of a batch generation upload.
// A line repeating an earlier line's prompt, file name, capture date and
// image is rejected as a duplicate.
func (v *Validator) ValidateStoryLine(line *models.StoryNDJSON, lineNum int) []models.ValidationError {
	req := &models.StoryRequest{
		GenerateRequest: models.GenerateRequest{
			Prompt:     line.Prompt,
			FileName:   line.FileName,
			CapturedAt: line.CapturedAt,
		},
		ImageURL: line.ImageURL,
		Layout:   line.Layout,
	}
	errors := v.ValidateStoryRequest(req)

	if strings.TrimSpace(line.Prompt) == "" && strings.TrimSpace(line.FileName) == "" {
		errors = append(errors, models.ValidationError{Field: "prompt", Message: "prompt or file_name is required"})
	}

	key := requestKey(line)
	if first, seen := v.seenRequests[key]; seen {
		errors = append(errors, models.ValidationError{
			Field:   "prompt",
			Message: fmt.Sprintf("duplicate of line %d", first),
			Value:   line.Prompt,
		})
	} else if len(errors) == 0 {
		v.seenRequests[key] = lineNum
	}

	for i := range errors {
		errors[i].Line = lineNum
	}
	return errors
}

// requestKey identifies the photo a line asks a story for
func requestKey(line *models.StoryNDJSON) string {
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(line.Prompt)),
		strings.ToLower(strings.TrimSpace(line.FileName)),
		strings.TrimSpace(line.CapturedAt),
		strings.TrimSpace(line.ImageURL),
	}, "|")
}

// ParseCapturedAt accepts RFC 3339 timestamps or plain dates
func ParseCapturedAt(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(dateOnlyLayout, s)
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func validateImageURL(raw string) []models.ValidationError {
	if raw == "" {
		return nil
	}
	if len(raw) > models.MaxImageURLLength {
		return []models.ValidationError{{
			Field:   "image_url",
			Message: fmt.Sprintf("image_url exceeds maximum of %d characters", models.MaxImageURLLength),
		}}
	}
	if !render.IsSafeImageURL(raw) {
		return []models.ValidationError{{Field: "image_url", Message: "image_url must be an absolute http or https URL", Value: raw}}
	}
	return nil
}

func validateLayout(layout string) []models.ValidationError {
	if layout == "" || render.IsValidLayout(layout) {
		return nil
	}
	ids := make([]string, 0)
	for _, l := range render.Layouts() {
		ids = append(ids, l.ID)
	}
	return []models.ValidationError{{
		Field:   "layout",
		Message: "invalid layout, must be one of: " + strings.Join(ids, ", "),
		Value:   layout,
	}}
}
