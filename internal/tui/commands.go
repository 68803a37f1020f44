package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/newsdesk/internal/controller"
	"github.com/pders01/newsdesk/internal/news"
	"github.com/pders01/newsdesk/internal/render"
)

const probeTimeout = 5 * time.Second

type fetchDoneMsg struct {
	seq       int
	selection news.Selection
	result    *fetchResult
}

type debounceFiredMsg struct {
	ticket controller.Ticket
}

type previewRenderedMsg struct {
	index   int
	content string
}

type imageProbeMsg struct {
	index    int
	imageURL string
	err      error
}

type openResultMsg struct {
	link string
	err  error
}

type copyResultMsg struct {
	err error
}

// fetchResult is the controller.Sink for one fetch running off the update
// loop. It is read only after the fetch returns.
type fetchResult struct {
	loading  bool
	errMsg   string
	articles []news.Article
}

func (r *fetchResult) SetLoading(loading bool)         { r.loading = loading }
func (r *fetchResult) ClearError()                     { r.errMsg = "" }
func (r *fetchResult) ShowError(message string)        { r.errMsg = message }
func (r *fetchResult) ShowArticles(list []news.Article) { r.articles = list }

func (a *App) fetchNews(sel news.Selection) tea.Cmd {
	a.fetchSeq++
	seq := a.fetchSeq
	ctrl := a.ctrl
	return func() tea.Msg {
		result := &fetchResult{}
		_ = ctrl.Cycle(context.Background(), sel, result)
		return fetchDoneMsg{seq: seq, selection: sel, result: result}
	}
}

func (a *App) scheduleSearch(ticket controller.Ticket) tea.Cmd {
	return tea.Tick(a.ctrl.Debouncer().Delay(), func(time.Time) tea.Msg {
		return debounceFiredMsg{ticket: ticket}
	})
}

func (a *App) renderPreview(index int) tea.Cmd {
	card := a.cards[index]
	now := a.now()
	r, err := a.getRenderer()
	return func() tea.Msg {
		if err != nil {
			return previewRenderedMsg{index: index, content: "Error initializing renderer: " + err.Error()}
		}

		rendered, err := r.Render(render.Markdown(card, now))
		if err != nil {
			return previewRenderedMsg{index: index, content: "Failed to render preview: " + err.Error()}
		}
		return previewRenderedMsg{index: index, content: rendered}
	}
}

func (a *App) probeImage(index int, imageURL string) tea.Cmd {
	prober := a.prober
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		return imageProbeMsg{index: index, imageURL: imageURL, err: prober.ProbeImage(ctx, imageURL)}
	}
}

func (a *App) openLink(link string) tea.Cmd {
	opener := a.opener
	return func() tea.Msg {
		return openResultMsg{link: link, err: wrapErr("open", opener.Open(link))}
	}
}

func (a *App) copyLink(link string) tea.Cmd {
	copyText := a.copyText
	return func() tea.Msg {
		return copyResultMsg{err: wrapErr("copy", copyText(link))}
	}
}

// wrapErr prefixes err with the action that failed; nil stays nil.
func wrapErr(action string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", action, err)
}
