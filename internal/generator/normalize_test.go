package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"hello_world-again", "hello world again"},
		{"  many   spaces\there \n", "many spaces here"},
		{"--__--", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeText(tt.in), "normalizeText(%q)", tt.in)
	}
}

func TestStripExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo"},
		{"archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
		{".jpg", ""},
		{"trailing.", "trailing."},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripExtension(tt.in), "stripExtension(%q)", tt.in)
	}
}

func TestNormalizeInputs(t *testing.T) {
	st := normalizeInputs("golden hour birthday celebration at the park today", "family-photo.jpg")
	assert.Equal(t, "golden hour birthday celebration at the park today", st.rawPrompt)
	assert.Equal(t, "family photo", st.fileName)
	assert.Equal(t, "Golden Hour Birthday Celebration At The", st.subject)
	assert.Equal(t, "Golden hour birthday celebration at the park today", st.subjectLower)

	st = normalizeInputs("", "")
	assert.Equal(t, "", st.rawPrompt)
	assert.Equal(t, defaultPrompt, st.prompt)
	assert.Equal(t, defaultFileName, st.fileName)
	assert.Equal(t, "Captured Celebration", st.subject)
	assert.Equal(t, "Captured celebration", st.subjectLower)

	st = normalizeInputs("WOW! Is it snowing?", "")
	assert.Equal(t, "WOW! Is It Snowing?", st.subject)
	assert.Equal(t, "Wow is it snowing", st.subjectLower)

	st = normalizeInputs("iPhone shots of the USA trip", "")
	assert.Equal(t, "IPhone Shots Of The USA Trip", st.subject)

	st = normalizeInputs("{}", "")
	assert.Equal(t, defaultSubject, st.subject)
	assert.Equal(t, "Family spotlight", st.subjectLower)
}

func TestSeed(t *testing.T) {
	assert.Equal(t, uint32(97159), Seed("a", "b"))
	assert.Equal(t, uint32(1790701832), Seed("Captured celebration", "family moment"))
	// overflows and goes negative before the absolute value
	assert.Equal(t, uint32(1953139072), Seed("Golden hour birthday celebration at the park", "family photo"))
	// astral characters hash as surrogate pairs
	assert.Equal(t, uint32(86206833), Seed("🎉 party", "x"))
}

func TestPick(t *testing.T) {
	items := []string{"a", "b", "c"}
	assert.Equal(t, "b", pick(items, 0, 1))
	assert.Equal(t, "a", pick(items, 2, 1))
	assert.Equal(t, "b", pick(items, ^uint32(0), 1), "seed+offset must not overflow")
}
