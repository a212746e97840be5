package models

import (
	"time"

	"github.com/family-gazette-api/internal/generator"
)

// Story is a generated newspaper article persisted together with the photo
// reference it was written for
type Story struct {
	ID          string     `json:"id" db:"id"`
	Prompt      string     `json:"prompt" db:"prompt"`
	FileName    string     `json:"file_name" db:"file_name"`
	ImageURL    string     `json:"image_url,omitempty" db:"image_url"`
	Layout      string     `json:"layout" db:"layout"`
	Palette     string     `json:"palette" db:"palette"`
	Headline    string     `json:"headline" db:"headline"`
	Subheadline string     `json:"subheadline" db:"subheadline"`
	Byline      string     `json:"byline" db:"byline"`
	Dateline    string     `json:"dateline" db:"dateline"`
	Body        []string   `json:"body" db:"-"` // Stored as JSON array in DB
	Quote       string     `json:"quote" db:"quote"`
	Tags        []string   `json:"tags" db:"-"` // Stored as JSON array in DB
	ShareToken  string     `json:"share_token,omitempty" db:"share_token"`
	CapturedAt  *time.Time `json:"captured_at,omitempty" db:"captured_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// ApplyArticle copies generated article fields onto the story
func (s *Story) ApplyArticle(a generator.Article) {
	s.Headline = a.Headline
	s.Subheadline = a.Subheadline
	s.Byline = a.Byline
	s.Dateline = a.Dateline
	s.Body = append([]string(nil), a.Body...)
	s.Quote = a.Quote
	s.Tags = append([]string(nil), a.Tags...)
}

// Article returns the article fields of the story
func (s *Story) Article() generator.Article {
	return generator.Article{
		Headline:    s.Headline,
		Subheadline: s.Subheadline,
		Byline:      s.Byline,
		Dateline:    s.Dateline,
		Body:        append([]string(nil), s.Body...),
		Quote:       s.Quote,
		Tags:        append([]string(nil), s.Tags...),
	}
}

// Limits applied to story requests and edits
const (
	MaxPromptLength    = 500
	MaxFileNameLength  = 255
	MaxImageURLLength  = 2048
	MaxHeadlineLength  = 200
	MaxParagraphLength = 5000
	MaxParagraphs      = 10
	MaxTags            = 10
	MaxTagLength       = 40
)

// GenerateRequest asks for an article without persisting it
type GenerateRequest struct {
	Prompt     string `json:"prompt"`
	FileName   string `json:"file_name"`
	CapturedAt string `json:"captured_at,omitempty"` // RFC 3339 or YYYY-MM-DD
}

// StoryRequest creates a story. Article overrides replace generated fields
// when the caller already edited the draft.
type StoryRequest struct {
	GenerateRequest
	ImageURL string        `json:"image_url,omitempty"`
	Layout   string        `json:"layout,omitempty"`
	Article  *ArticlePatch `json:"article,omitempty"`
}

// ArticlePatch is a partial edit of a story's article fields
type ArticlePatch struct {
	Headline    *string  `json:"headline,omitempty"`
	Subheadline *string  `json:"subheadline,omitempty"`
	Byline      *string  `json:"byline,omitempty"`
	Dateline    *string  `json:"dateline,omitempty"`
	Body        []string `json:"body,omitempty"`
	Quote       *string  `json:"quote,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// StoryPatch edits an existing story
type StoryPatch struct {
	ArticlePatch
	ImageURL *string `json:"image_url,omitempty"`
	Layout   *string `json:"layout,omitempty"`
}

// Apply writes the non-nil fields of p onto s
func (p *ArticlePatch) Apply(s *Story) {
	if p == nil {
		return
	}
	if p.Headline != nil {
		s.Headline = *p.Headline
	}
	if p.Subheadline != nil {
		s.Subheadline = *p.Subheadline
	}
	if p.Byline != nil {
		s.Byline = *p.Byline
	}
	if p.Dateline != nil {
		s.Dateline = *p.Dateline
	}
	if p.Body != nil {
		s.Body = append([]string(nil), p.Body...)
	}
	if p.Quote != nil {
		s.Quote = *p.Quote
	}
	if p.Tags != nil {
		s.Tags = append([]string(nil), p.Tags...)
	}
}

// StoryNDJSON is one line of a batch generation upload
type StoryNDJSON struct {
	Prompt     string `json:"prompt"`
	FileName   string `json:"file_name"`
	ImageURL   string `json:"image_url,omitempty"`
	Layout     string `json:"layout,omitempty"`
	CapturedAt string `json:"captured_at,omitempty"`
}

// StoryList is a page of stories
type StoryList struct {
	Stories []*Story `json:"stories"`
	Total   int      `json:"total"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
}
