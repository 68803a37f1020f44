package controller

import (
	"context"

	"github.com/pders01/newsdesk/internal/debuglog"
	"github.com/pders01/newsdesk/internal/news"
)

type ArticleFetcher interface {
	FetchArticles(ctx context.Context, url string) ([]news.Article, error)
}

// Sink receives the observable steps of one fetch cycle.
type Sink interface {
	SetLoading(loading bool)
	ClearError()
	ShowError(message string)
	ShowArticles(articles []news.Article)
}

// Cycle fetches sel and reports to sink. Loading is switched on and the
// error cleared before the request; loading is always switched off last.
// The returned error is the raw fetch error, already shown to sink.
func (c *Controller) Cycle(ctx context.Context, sel news.Selection, sink Sink) error {
	sink.SetLoading(true)
	sink.ClearError()
	defer sink.SetLoading(false)

	url := c.builder.Build(sel)
	articles, err := c.fetcher.FetchArticles(ctx, url)
	if err != nil {
		debuglog.WithFields(debuglog.Fields{"selection": sel.String()}).Errorf("fetch cycle failed: %v", err)
		sink.ShowError(news.Describe(err))
		return err
	}

	debuglog.WithFields(debuglog.Fields{"selection": sel.String(), "articles": len(articles)}).Debugf("fetch cycle done")
	sink.ShowArticles(articles)
	return nil
}
