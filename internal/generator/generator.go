// Package generator builds kid-friendly newspaper articles from a photo
// prompt and file name. Output is a pure function of the inputs: the same
// prompt and file name always produce the same article, and the capture time
// only changes the date in the dateline.
package generator

import (
	"strings"
	"time"
)

// Selection offsets, one per article field
const (
	offsetTone = iota + 1
	offsetHeadline
	offsetSubheadline
	offsetOpener
	offsetDevelopment
	offsetClosing
	offsetQuote
	offsetLocation
	offsetByline
)

const datelineDateLayout = "January 2, 2006"

// now is replaced in tests
var now = time.Now

// Options are the inputs of a single generation
type Options struct {
	Prompt     string
	FileName   string
	CapturedAt time.Time // zero means now
}

// Article is a generated newspaper article
type Article struct {
	Headline    string   `json:"headline"`
	Subheadline string   `json:"subheadline"`
	Byline      string   `json:"byline"`
	Dateline    string   `json:"dateline"`
	Body        []string `json:"body"`
	Quote       string   `json:"quote"`
	Tags        []string `json:"tags"`
}

// Generate assembles an article for opts. It never fails.
func Generate(opts Options) Article {
	text := normalizeInputs(opts.Prompt, opts.FileName)
	palette := classify(text.rawPrompt)
	seed := Seed(text.prompt, text.fileName)

	tone := pick(palette.Tones, seed, offsetTone)
	headlineVars := substitution{subject: text.subject, subjectLower: text.subjectLower, tonal: titleCase(tone)}
	vars := substitution{subject: text.subject, subjectLower: text.subjectLower, tonal: tone}

	capturedAt := opts.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = now()
	}

	return Article{
		Headline:    headlineVars.apply(pick(palette.Headlines, seed, offsetHeadline)),
		Subheadline: vars.apply(pick(palette.Subheadlines, seed, offsetSubheadline)),
		Byline:      pick(bylines, seed, offsetByline),
		Dateline:    formatDateline(pick(palette.Locations, seed, offsetLocation), capturedAt),
		Body: []string{
			vars.apply(pick(palette.Openers, seed, offsetOpener)),
			vars.apply(pick(palette.Developments, seed, offsetDevelopment)),
			vars.apply(pick(palette.Closings, seed, offsetClosing)),
		},
		Quote: vars.apply(pick(palette.Quotes, seed, offsetQuote)),
		Tags:  append([]string(nil), palette.Tags...),
	}
}

// Classify returns the palette a prompt falls into. The first palette in
// declaration order with a keyword contained in the prompt wins; spotlight
// is returned when nothing matches.
func Classify(prompt string) Palette {
	return classify(normalizeText(prompt)).clone()
}

func classify(prompt string) *Palette {
	text := strings.ToLower(prompt)
	for i := range palettes {
		for _, kw := range palettes[i].Keywords {
			if strings.Contains(text, kw) {
				return &palettes[i]
			}
		}
	}
	return fallbackPalette()
}

func fallbackPalette() *Palette {
	for i := range palettes {
		if palettes[i].ID == PaletteSpotlight {
			return &palettes[i]
		}
	}
	return &palettes[len(palettes)-1]
}

// substitution fills template placeholders
type substitution struct {
	subject      string
	subjectLower string
	tonal        string
}

func (s substitution) apply(template string) string {
	return strings.NewReplacer(
		"{subjectLower}", s.subjectLower,
		"{subject}", s.subject,
		"{tonal}", s.tonal,
	).Replace(template)
}

func formatDateline(location string, at time.Time) string {
	return strings.ToUpper(location) + " — " + at.Format(datelineDateLayout)
}
