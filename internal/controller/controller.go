package controller

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/pders01/newsdesk/internal/config"
	"github.com/pders01/newsdesk/internal/debuglog"
	"github.com/pders01/newsdesk/internal/news"
	"github.com/pders01/newsdesk/internal/storage"
)

type EventKind int

const (
	CategorySelected EventKind = iota
	SearchSubmitted
	SearchKeystroke
	Refresh
)

func (k EventKind) String() string {
	switch k {
	case CategorySelected:
		return "category-selected"
	case SearchSubmitted:
		return "search-submitted"
	case SearchKeystroke:
		return "search-keystroke"
	case Refresh:
		return "refresh"
	default:
		return "unknown"
	}
}

// Event is one user action. Text holds the category key for
// CategorySelected and the search box contents for the search events.
type Event struct {
	Kind EventKind
	Text string
}

func SelectCategory(category string) Event { return Event{Kind: CategorySelected, Text: category} }
func SubmitSearch(text string) Event       { return Event{Kind: SearchSubmitted, Text: text} }
func Keystroke(text string) Event          { return Event{Kind: SearchKeystroke, Text: text} }
func RefreshEvent() Event                  { return Event{Kind: Refresh} }

// Indicator says what to do with the highlighted category tab.
type Indicator int

const (
	IndicatorKeep Indicator = iota
	IndicatorSet
	IndicatorClear
)

// Effect lists what the surface must do after a transition. The zero Effect
// means nothing happens.
type Effect struct {
	// Fetch is set when a fetch cycle for Selection must start.
	Fetch     bool
	Selection news.Selection
	URL       string

	// ScheduleSearch asks the surface to call Fire with Ticket after Delay.
	ScheduleSearch bool
	Ticket         Ticket

	ClearSearchBox bool
	Indicator      Indicator
}

// None reports whether the effect asks for nothing.
func (e Effect) None() bool {
	return e == Effect{}
}

type PreferenceStore interface {
	SavePreferences(storage.Preferences) error
	LoadPreferences() (storage.Preferences, error)
}

type transition func(c *Controller, ev Event) Effect

// Controller owns the active selection for the lifetime of the process.
type Controller struct {
	sel         news.Selection
	builder     news.QueryBuilder
	fetcher     ArticleFetcher
	prefs       PreferenceStore
	debouncer   *Debouncer
	minSearch   int
	transitions map[EventKind]transition
}

// New wires a controller. prefs may be nil, in which case nothing is
// persisted.
func New(cfg *config.Config, fetcher ArticleFetcher, prefs PreferenceStore) *Controller {
	minSearch := cfg.UI.MinSearchLength
	if minSearch <= 0 {
		minSearch = 1
	}
	return &Controller{
		builder: news.QueryBuilder{
			BaseURL:  cfg.API.BaseURL,
			APIKey:   cfg.API.Key,
			Language: cfg.API.Language,
			Country:  cfg.API.Country,
			PageSize: cfg.API.PageSize,
		},
		fetcher:   fetcher,
		prefs:     prefs,
		debouncer: NewDebouncer(cfg.UI.SearchDebounce),
		minSearch: minSearch,
		transitions: map[EventKind]transition{
			CategorySelected: (*Controller).selectCategory,
			SearchSubmitted:  (*Controller).submitSearch,
			SearchKeystroke:  (*Controller).keystroke,
			Refresh:          (*Controller).refresh,
		},
	}
}

func (c *Controller) Selection() news.Selection {
	return c.sel
}

func (c *Controller) Debouncer() *Debouncer {
	return c.debouncer
}

// URL builds the request URL for sel.
func (c *Controller) URL(sel news.Selection) string {
	return c.builder.Build(sel)
}

// Initial is the startup fetch for the current selection.
func (c *Controller) Initial() Effect {
	return c.fetch(IndicatorKeep)
}

// Dispatch runs the transition registered for ev.Kind.
func (c *Controller) Dispatch(ev Event) Effect {
	t, ok := c.transitions[ev.Kind]
	if !ok {
		debuglog.Warnf("controller: no transition for %s", ev.Kind)
		return Effect{}
	}
	return t(c, ev)
}

// Fire handles an elapsed debounce. text is the search box contents at the
// time the timer fires, not at the time it was scheduled.
func (c *Controller) Fire(t Ticket, text string) Effect {
	if !c.debouncer.Due(t) {
		return Effect{}
	}
	return c.Dispatch(SubmitSearch(text))
}

// Restore applies saved preferences to the selection. A saved query wins
// over a saved category. It reports whether anything was applied.
func (c *Controller) Restore() (bool, error) {
	if c.prefs == nil {
		return false, nil
	}
	p, err := c.prefs.LoadPreferences()
	if errors.Is(err, storage.ErrNoPreferences) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch {
	case p.LastQuery != "":
		c.sel = c.sel.WithQuery(p.LastQuery)
	case p.LastCategory != "":
		c.sel = c.sel.WithCategory(p.LastCategory)
	default:
		return false, nil
	}
	debuglog.Infof("restored selection %s", c.sel)
	return true, nil
}

func (c *Controller) selectCategory(ev Event) Effect {
	c.debouncer.Cancel()
	c.sel = c.sel.WithCategory(ev.Text)
	c.persist()
	eff := c.fetch(IndicatorSet)
	eff.ClearSearchBox = true
	return eff
}

func (c *Controller) submitSearch(ev Event) Effect {
	q := strings.TrimSpace(ev.Text)
	if q == "" {
		return Effect{}
	}
	c.debouncer.Cancel()
	c.sel = c.sel.WithQuery(q)
	c.persist()
	return c.fetch(IndicatorClear)
}

func (c *Controller) keystroke(ev Event) Effect {
	if utf8.RuneCountInString(strings.TrimSpace(ev.Text)) < c.minSearch {
		return Effect{}
	}
	return Effect{ScheduleSearch: true, Ticket: c.debouncer.Schedule()}
}

func (c *Controller) refresh(Event) Effect {
	return c.fetch(IndicatorKeep)
}

func (c *Controller) fetch(ind Indicator) Effect {
	return Effect{
		Fetch:     true,
		Selection: c.sel,
		URL:       c.builder.Build(c.sel),
		Indicator: ind,
	}
}

func (c *Controller) persist() {
	if c.prefs == nil {
		return
	}
	p := storage.Preferences{LastCategory: c.sel.Category, LastQuery: c.sel.Query}
	if err := c.prefs.SavePreferences(p); err != nil {
		debuglog.Warnf("saving preferences: %v", err)
	}
}
