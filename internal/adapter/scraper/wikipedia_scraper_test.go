package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longSentence = "Artificial intelligence is the capability of computational systems to perform tasks."

func testScraperConfig() config.ScraperConfig {
	return config.ScraperConfig{
		Timeout:           10 * time.Second,
		UserAgent:         "wiki-quiz-test",
		MaxContentChars:   10000,
		MinParagraphChars: 50,
	}
}

func articlePage(title string, paragraphs ...string) string {
	var sb strings.Builder
	sb.WriteString(`<html><head><title>ignored</title></head><body>`)
	if title != "" {
		sb.WriteString(`<h1 id="firstHeading"><span>` + title + `</span></h1>`)
	}
	sb.WriteString(`<div id="mw-content-text"><div class="mw-parser-output">`)
	for _, p := range paragraphs {
		sb.WriteString("<p>" + p + "</p>\n")
	}
	sb.WriteString(`</div></div></body></html>`)
	return sb.String()
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wiki-quiz-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWikipediaScraper_Fetch_CleansParagraphs(t *testing.T) {
	page := articlePage(" Artificial intelligence ",
		longSentence+`<sup class="reference"><a href="#cite-1">[1]</a></sup> It has many applications.`,
		"Too short.",
		`<span class="mw-editsection">[edit]</span>`+longSentence+" Second paragraph.",
	)
	srv := serve(t, http.StatusOK, page)

	s := NewWikipediaScraper(testScraperConfig(), nil, nil)
	article, err := s.Fetch(context.Background(), srv.URL+"/wiki/Artificial_intelligence")
	require.NoError(t, err)

	assert.Equal(t, "Artificial intelligence", article.Title)
	assert.NotContains(t, article.Body, "[1]")
	assert.NotContains(t, article.Body, "[edit]")
	assert.NotContains(t, article.Body, "Too short.")

	paragraphs := strings.Split(article.Body, "\n\n")
	require.Len(t, paragraphs, 2)
	assert.Equal(t, longSentence+" It has many applications.", paragraphs[0])
	assert.Equal(t, longSentence+" Second paragraph.", paragraphs[1])
}

func TestWikipediaScraper_Fetch_DropsParagraphsBelowThreshold(t *testing.T) {
	exactly49 := strings.Repeat("a", 49)
	exactly50 := strings.Repeat("b", 50)
	srv := serve(t, http.StatusOK, articlePage("Title", exactly49, exactly50))

	s := NewWikipediaScraper(testScraperConfig(), nil, nil)
	article, err := s.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, exactly50, article.Body)
}

func TestWikipediaScraper_Fetch_Truncates(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 200; i++ {
		paragraphs = append(paragraphs, longSentence)
	}
	srv := serve(t, http.StatusOK, articlePage("Long", paragraphs...))

	s := NewWikipediaScraper(testScraperConfig(), nil, nil)
	article, err := s.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, 10000+len("..."), utf8.RuneCountInString(article.Body))
	assert.True(t, strings.HasSuffix(article.Body, "..."))
}

func TestWikipediaScraper_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		reason string
	}{
		{"non success status", http.StatusNotFound, articlePage("Missing", longSentence), "unexpected status 404"},
		{"missing title", http.StatusOK, articlePage("", longSentence), "title not found"},
		{"missing content", http.StatusOK, `<html><body><h1 id="firstHeading">T</h1></body></html>`, "content not found"},
		{"no usable paragraphs", http.StatusOK, articlePage("Stub", "short", "also short"), "no content extracted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			s := NewWikipediaScraper(testScraperConfig(), nil, nil)

			article, err := s.Fetch(context.Background(), srv.URL)
			assert.Nil(t, article)

			var fetchErr *domain.FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, tt.reason, fetchErr.Reason)
		})
	}
}

func TestWikipediaScraper_Fetch_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := NewWikipediaScraper(testScraperConfig(), nil, nil)
	_, err := s.Fetch(context.Background(), url)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Error(t, fetchErr.Unwrap())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...", truncate("abc", 2))
	assert.Equal(t, "ün...", truncate("ünïcode", 2))
	assert.Equal(t, "abc", truncate("abc", 0))
}

func TestWikipediaScraper_Fetch_ReadsAtMostMaxPageBytes(t *testing.T) {
	padding := "<!--" + strings.Repeat("x", 4096) + "-->"
	page := strings.Replace(articlePage("Oversized", longSentence), `<div id="mw-content-text">`, padding+`<div id="mw-content-text">`, 1)
	srv := serve(t, http.StatusOK, page)

	s := NewWikipediaScraper(testScraperConfig(), nil, nil)
	s.maxPageBytes = 1024

	_, err := s.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "content not found", fetchErr.Reason)

	s.maxPageBytes = maxPageBytes
	article, err := s.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, longSentence, article.Body)
}
