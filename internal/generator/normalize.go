package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	defaultPrompt   = "Captured celebration"
	defaultFileName = "family moment"
	defaultSubject  = "Family Spotlight"

	subjectWordLimit = 6
)

var separatorReplacer = strings.NewReplacer("_", " ", "-", " ")

var punctuationStripper = strings.NewReplacer(".", "", "?", "", "!", "")

// braces are dropped from display text so user input can never smuggle a
// placeholder token into the output
var braceStripper = strings.NewReplacer("{", "", "}", "")

// subjectText holds the normalized inputs and the display strings derived
// from them.
type subjectText struct {
	rawPrompt    string // normalized, before defaulting
	prompt       string
	fileName     string
	subject      string
	subjectLower string
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(separatorReplacer.Replace(s)), " ")
}

// stripExtension drops a trailing ".ext" from a file name
func stripExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return name
	}
	return name[:idx]
}

func normalizeInputs(prompt, fileName string) subjectText {
	st := subjectText{
		rawPrompt: normalizeText(prompt),
		fileName:  normalizeText(stripExtension(fileName)),
	}

	st.prompt = st.rawPrompt
	if st.prompt == "" {
		st.prompt = defaultPrompt
	}
	if st.fileName == "" {
		st.fileName = defaultFileName
	}

	combined := st.prompt
	if combined == "" {
		combined = st.fileName
	}
	combined = braceStripper.Replace(combined)

	st.subject = buildSubject(combined)
	st.subjectLower = sentenceCase(strings.ToLower(punctuationStripper.Replace(combined)))
	if strings.TrimSpace(st.subjectLower) == "" {
		st.subjectLower = sentenceCase(strings.ToLower(defaultSubject))
	}
	return st
}

func buildSubject(combined string) string {
	words := strings.Fields(combined)
	if len(words) > subjectWordLimit {
		words = words[:subjectWordLimit]
	}
	subject := strings.TrimSpace(titleCase(strings.Join(words, " ")))
	if subject == "" {
		return defaultSubject
	}
	return subject
}

// titleCase upper-cases the first letter of every word and keeps the rest as
// typed, so acronyms survive. A Caser is stateful, so one is built per call.
func titleCase(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}

// sentenceCase upper-cases the first letter and leaves the rest untouched
func sentenceCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
