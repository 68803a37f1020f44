package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/newsdesk/internal/config"
	"github.com/pders01/newsdesk/internal/news"
	"github.com/pders01/newsdesk/internal/storage"
)

// recordingSink keeps every call in order.
type recordingSink struct {
	calls    []string
	loading  bool
	errMsg   string
	articles []news.Article
}

func (s *recordingSink) SetLoading(loading bool) {
	s.loading = loading
	s.calls = append(s.calls, fmt.Sprintf("loading=%t", loading))
}

func (s *recordingSink) ClearError() {
	s.errMsg = ""
	s.calls = append(s.calls, "clear-error")
}

func (s *recordingSink) ShowError(message string) {
	s.errMsg = message
	s.calls = append(s.calls, "error:"+message)
}

func (s *recordingSink) ShowArticles(articles []news.Article) {
	s.articles = articles
	s.calls = append(s.calls, fmt.Sprintf("articles:%d", len(articles)))
}

func TestCycle_Success(t *testing.T) {
	fetcher := &stubFetcher{articles: []news.Article{{Title: "one"}, {Title: "two"}}}
	c := New(config.TestConfig(), fetcher, nil)
	sink := &recordingSink{}

	err := c.Cycle(context.Background(), news.Selection{Category: "science"}, sink)
	require.NoError(t, err)

	assert.Equal(t, []string{"loading=true", "clear-error", "articles:2", "loading=false"}, sink.calls)
	require.Len(t, fetcher.urls, 1)
	assert.Contains(t, fetcher.urls[0], "category=science")
}

func TestCycle_Error(t *testing.T) {
	fetcher := &stubFetcher{err: &news.HTTPError{Status: http.StatusTooManyRequests}}
	c := New(config.TestConfig(), fetcher, nil)
	sink := &recordingSink{errMsg: "stale"}

	err := c.Cycle(context.Background(), news.Selection{Query: "bitcoin"}, sink)

	var httpErr *news.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, []string{"loading=true", "clear-error", "error:" + news.MsgRateLimited, "loading=false"}, sink.calls)
	assert.False(t, sink.loading)
	assert.Nil(t, sink.articles, "an error never produces an article list")
}

func TestCycle_EmptyListIsNotAnError(t *testing.T) {
	c := New(config.TestConfig(), &stubFetcher{articles: []news.Article{}}, nil)
	sink := &recordingSink{}

	require.NoError(t, c.Cycle(context.Background(), news.Selection{}, sink))
	assert.Empty(t, sink.errMsg)
	assert.NotNil(t, sink.articles)
	assert.Empty(t, sink.articles)
}

// End to end against a fake API and a real preference store.
func TestIntegration_TechnologyThenBitcoin(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.String())
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Query().Get("category") == "technology":
			fmt.Fprint(w, `{"status":"ok","totalResults":0,"articles":[]}`)
		case r.URL.Query().Get("q") == "bitcoin":
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"status":"error","code":"rateLimited","message":"slow down"}`)
		default:
			t.Errorf("unexpected request %s", r.URL)
		}
	}))
	defer server.Close()

	cfg := config.TestConfig()
	cfg.API.BaseURL = server.URL + "/v2"

	store, err := storage.NewStore(filepath.Join(t.TempDir(), "prefs.db"), cfg.Database.Timeout)
	require.NoError(t, err)
	defer store.Close()

	c := New(cfg, news.NewFetcher(cfg), store)
	ctx := context.Background()

	eff := c.Dispatch(SelectCategory("technology"))
	sink := &recordingSink{}
	require.NoError(t, c.Cycle(ctx, eff.Selection, sink))
	assert.Empty(t, sink.articles)
	assert.Empty(t, sink.errMsg)

	prefs, err := store.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, storage.Preferences{LastCategory: "technology"}, prefs)

	eff = c.Dispatch(SubmitSearch("bitcoin"))
	sink = &recordingSink{}
	require.Error(t, c.Cycle(ctx, eff.Selection, sink))
	assert.Equal(t, news.MsgRateLimited, sink.errMsg)
	assert.False(t, sink.loading)

	prefs, err = store.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, storage.Preferences{LastQuery: "bitcoin"}, prefs)

	require.Len(t, seen, 2)
	assert.Contains(t, seen[0], "/v2/top-headlines?")
	assert.Contains(t, seen[1], "/v2/everything?")
}
