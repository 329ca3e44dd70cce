package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWikipediaURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"english article", "https://en.wikipedia.org/wiki/Artificial_intelligence", true},
		{"mobile article", "https://en.m.wikipedia.org/wiki/Alan_Turing", true},
		{"other language", "https://de.wikipedia.org/wiki/K%C3%BCnstliche_Intelligenz", true},
		{"no scheme", "en.wikipedia.org/wiki/Go_(programming_language)", true},
		{"marker inside foreign host", "https://evil.example/wikipedia.org/wiki/Phish", true},
		{"marker in query string", "not a url wikipedia.org/wiki/", true},
		{"non wiki host", "https://example.com/not-wiki", false},
		{"wikipedia main page without wiki path", "https://en.wikipedia.org/", false},
		{"wiki path on other project", "https://en.wiktionary.org/wiki/quiz", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWikipediaURL(tt.url))
		})
	}
}
