// Package render turns stories into standalone HTML pages for preview,
// printing and sharing. Every value placed into a layout passes through
// bluemonday first.
package render

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ErrUnknownLayout is returned for layout ids not in the layout table
var ErrUnknownLayout = errors.New("unknown layout")

const tagSeparator = " · "

// Document is the content placed into a layout
type Document struct {
	Headline    string
	Subheadline string
	Byline      string
	Dateline    string
	Body        []string
	Quote       string
	Tags        []string
	ImageURL    string
	ImageAlt    string
}

// Renderer sanitizes document fields and substitutes them into layouts.
// It is safe for concurrent use.
type Renderer struct {
	inline *bluemonday.Policy
	body   *bluemonday.Policy
}

// NewRenderer creates a Renderer
func NewRenderer() *Renderer {
	body := bluemonday.UGCPolicy()
	body.RequireNoFollowOnLinks(true)
	body.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{
		inline: bluemonday.StrictPolicy(),
		body:   body,
	}
}

// Render fills the layout identified by layoutID with doc
func (r *Renderer) Render(layoutID string, doc Document) (string, error) {
	if layoutID == "" {
		layoutID = DefaultLayout
	}
	layout, ok := LookupLayout(layoutID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownLayout, layoutID)
	}

	headline := r.inline.Sanitize(doc.Headline)
	title := headline
	if title == "" {
		title = "The Family Gazette"
	}

	return Substitute(layout.markup, map[string]string{
		"title":       title,
		"headline":    headline,
		"subheadline": r.inline.Sanitize(doc.Subheadline),
		"byline":      r.inline.Sanitize(doc.Byline),
		"dateline":    r.inline.Sanitize(doc.Dateline),
		"quote":       r.inline.Sanitize(doc.Quote),
		"tags":        r.renderTags(doc.Tags),
		"body":        r.renderBody(doc.Body),
		"image":       renderImage(doc.ImageURL, r.inline.Sanitize(doc.ImageAlt)),
	}), nil
}

// SanitizeParagraph cleans a single body paragraph
func (r *Renderer) SanitizeParagraph(p string) string {
	return strings.TrimSpace(r.body.Sanitize(p))
}

func (r *Renderer) renderBody(paragraphs []string) string {
	var b strings.Builder
	for _, p := range paragraphs {
		clean := r.SanitizeParagraph(p)
		if clean == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(clean)
		b.WriteString("</p>\n")
	}
	return b.String()
}

func (r *Renderer) renderTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if s := strings.TrimSpace(r.inline.Sanitize(t)); s != "" {
			clean = append(clean, `<span class="tag">`+s+`</span>`)
		}
	}
	return strings.Join(clean, tagSeparator)
}

// renderImage emits an img tag for http(s) URLs only; alt must already be
// sanitized.
func renderImage(raw, alt string) string {
	if !IsSafeImageURL(raw) {
		return ""
	}
	return fmt.Sprintf(`<img src="%s" alt="%s">`, html.EscapeString(raw), alt)
}

// IsSafeImageURL reports whether raw is an absolute http or https URL
func IsSafeImageURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Substitute replaces every {{key}} in template with values[key]. Unknown
// placeholders are left as they are.
func Substitute(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
