package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pders01/newsdesk/internal/config"
	"github.com/pders01/newsdesk/internal/debuglog"
)

const defaultTimeout = 15 * time.Second

type Fetcher struct {
	client    *http.Client
	userAgent string
	parser    *Parser
}

func NewFetcher(cfg *config.Config) *Fetcher {
	timeout := cfg.API.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: cfg.API.UserAgent,
		parser:    NewParser(),
	}
}

// FetchArticles performs one GET against rawURL and returns the article list
// in API order. An empty list is a valid result.
func (f *Fetcher) FetchArticles(ctx context.Context, rawURL string) ([]Article, error) {
	log := debuglog.WithFields(debuglog.Fields{"url": RedactURL(rawURL)})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &UnknownError{Message: fmt.Sprintf("creating request: %v", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		log.Warnf("request failed: %v", err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	articles, err := f.parser.Parse(resp)
	if err != nil {
		log.Warnf("fetch failed after %s: %v", time.Since(start).Round(time.Millisecond), err)
		return nil, err
	}

	log.Infof("fetched %d articles in %s", len(articles), time.Since(start).Round(time.Millisecond))
	return articles, nil
}

// ProbeImage checks that an image URL still resolves. It backs the
// "image not available" fallback in the preview pane.
func (f *Fetcher) ProbeImage(ctx context.Context, imageURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &HTTPError{Status: resp.StatusCode}
	}
	return nil
}
