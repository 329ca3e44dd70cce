package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	titleSelector   = "#firstHeading"
	contentSelector = "#mw-content-text"
	// Reference markers ([1], [2]) and "[edit]" links inside paragraphs.
	noiseSelectors = "sup, span.mw-editsection"

	paragraphSeparator = "\n\n"
	truncationMarker   = "..."

	// Large articles stay well under this; the rest of a bigger page is ignored.
	maxPageBytes = 8 << 20
)

// WikipediaScraper implements domain.ArticleFetcher with goquery.
type WikipediaScraper struct {
	client            *http.Client
	userAgent         string
	maxContentChars   int
	minParagraphChars int
	maxPageBytes      int64
	logger            *zap.Logger
}

// NewWikipediaScraper creates a scraper. A nil client gets one bounded by
// cfg.Timeout.
func NewWikipediaScraper(cfg config.ScraperConfig, client *http.Client, logger *zap.Logger) *WikipediaScraper {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WikipediaScraper{
		client:            client,
		userAgent:         cfg.UserAgent,
		maxContentChars:   cfg.MaxContentChars,
		minParagraphChars: cfg.MinParagraphChars,
		maxPageBytes:      maxPageBytes,
		logger:            logger,
	}
}

// Fetch downloads the article at url and returns its title and cleaned body.
func (s *WikipediaScraper) Fetch(ctx context.Context, url string) (*domain.ArticleContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Reason: "invalid request", Err: err}
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Reason: "failed to fetch Wikipedia page", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.FetchError{URL: url, Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, s.maxPageBytes))
	if err != nil {
		return nil, &domain.FetchError{URL: url, Reason: "failed to parse html", Err: err}
	}

	article, err := s.extract(doc)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Reason: err.Error()}
	}

	s.logger.Info("Scraped article",
		zap.String("url", url),
		zap.String("title", article.Title),
		zap.Int("content_chars", utf8.RuneCountInString(article.Body)),
	)
	return article, nil
}

func (s *WikipediaScraper) extract(doc *goquery.Document) (*domain.ArticleContent, error) {
	titleNode := doc.Find(titleSelector).First()
	if titleNode.Length() == 0 {
		return nil, fmt.Errorf("title not found")
	}
	title := normalizeSpace(titleNode.Text())

	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		return nil, fmt.Errorf("content not found")
	}

	var paragraphs []string
	content.Find("p").Each(func(_ int, p *goquery.Selection) {
		p.Find(noiseSelectors).Remove()
		text := normalizeSpace(p.Text())
		if utf8.RuneCountInString(text) < s.minParagraphChars {
			return
		}
		paragraphs = append(paragraphs, text)
	})

	body := truncate(strings.Join(paragraphs, paragraphSeparator), s.maxContentChars)
	if body == "" {
		return nil, fmt.Errorf("no content extracted")
	}

	return &domain.ArticleContent{Title: title, Body: body}, nil
}

// normalizeSpace trims text and collapses internal whitespace runs.
func normalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// truncate cuts text to max runes and appends the truncation marker.
func truncate(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + truncationMarker
}
