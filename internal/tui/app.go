package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/newsdesk/internal/browser"
	"github.com/pders01/newsdesk/internal/config"
	"github.com/pders01/newsdesk/internal/controller"
	"github.com/pders01/newsdesk/internal/debuglog"
	"github.com/pders01/newsdesk/internal/news"
	"github.com/pders01/newsdesk/internal/render"
)

// chrome is the number of rows outside the card list: title and tabs,
// bordered search box, error banner, separator and status line.
const chrome = 8

type imageProber interface {
	ProbeImage(ctx context.Context, imageURL string) error
}

type linkOpener interface {
	Open(rawURL string) error
}

type App struct {
	config     *config.Config
	ctrl       *controller.Controller
	renderer   *render.Renderer
	prober     imageProber
	opener     linkOpener
	copyText   func(string) error
	now        func() time.Time
	keyHandler *KeyHandler

	categories  []news.Category
	activeTab   int // -1 while a query is active
	searchInput textinput.Model
	cardList    list.Model
	spinner     spinner.Model
	viewport    viewport.Model
	view        View

	cards    []render.Card
	empty    bool
	loading  bool
	errMsg   string
	fetchSeq int

	status     string
	statusKind StatusKind

	width           int
	height          int
	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
	previewIndex    int
}

// NewApp wires the widget. store may be nil to run without persistence.
func NewApp(cfg *config.Config, store controller.PreferenceStore) *App {
	ApplyTheme(cfg.UI.Colors)

	fetcher := news.NewFetcher(cfg)
	ctrl := controller.New(cfg, fetcher, store)

	categories, err := news.LoadCategories(cfg.UI.CategoriesFile)
	if err != nil {
		debuglog.Warnf("loading categories: %v; using built-in list", err)
		categories = news.DefaultCategories()
	}

	cardList := list.New([]list.Item{}, newCardDelegate(), 0, 0)
	cardList.SetShowTitle(false)
	cardList.SetShowStatusBar(false)
	cardList.SetFilteringEnabled(false)
	cardList.SetShowHelp(false)
	cardList.KeyMap.Quit.SetEnabled(false)
	cardList.KeyMap.ForceQuit.SetEnabled(false)

	si := textinput.New()
	si.Placeholder = "Search news..."
	si.Prompt = "› "

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SpinnerStyle))

	app := &App{
		config:      cfg,
		ctrl:        ctrl,
		renderer:    render.NewRenderer(cfg),
		prober:      fetcher,
		opener:      browser.NewOpener(cfg),
		copyText:    clipboard.WriteAll,
		now:         time.Now,
		categories:  categories,
		activeTab:   0,
		searchInput: si,
		cardList:    cardList,
		spinner:     sp,
		viewport:    viewport.New(0, 0),
		view:        ViewList,
	}
	app.keyHandler = NewKeyHandler(app)

	if cfg.UI.RestoreLastFilter {
		applied, err := ctrl.Restore()
		if err != nil {
			debuglog.Warnf("restoring preferences: %v", err)
		}
		if applied {
			app.syncFromSelection()
		}
	}

	return app
}

// syncFromSelection points the tabs and the search box at the controller's
// current selection.
func (a *App) syncFromSelection() {
	sel := a.ctrl.Selection()
	if sel.Query != "" {
		a.activeTab = -1
		a.searchInput.SetValue(sel.Query)
		return
	}
	a.activeTab = news.IndexOf(a.categories, sel.Category)
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > 120 {
		wordWrapWidth = 120
	}
	if wordWrapWidth < 40 {
		wordWrapWidth = 40
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.apply(a.ctrl.Initial()),
		tea.EnterAltScreen,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.cardList.SetSize(msg.Width, a.listHeight())
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - 2
		inputWidth := msg.Width - 8
		if inputWidth < 10 {
			inputWidth = 10
		}
		a.searchInput.Width = inputWidth
		return a, nil

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case debounceFiredMsg:
		return a, a.apply(a.ctrl.Fire(msg.ticket, a.searchInput.Value()))

	case fetchDoneMsg:
		return a, a.handleFetchDone(msg)

	case previewRenderedMsg:
		if a.view == ViewPreview && msg.index == a.previewIndex {
			a.viewport.SetContent(msg.content)
		}
		return a, nil

	case imageProbeMsg:
		return a, a.handleImageProbe(msg)

	case openResultMsg:
		if msg.err != nil {
			a.setStatus(msg.err.Error(), StatusError)
		} else {
			a.setStatus(MsgOpened(msg.link, a.width/2), StatusSuccess)
		}
		return a, nil

	case copyResultMsg:
		if msg.err != nil {
			a.setStatus(msg.err.Error(), StatusError)
		} else {
			a.setStatus(MsgCopied, StatusSuccess)
		}
		return a, nil
	}

	return a, nil
}

// apply carries out what the controller asked for after a transition.
func (a *App) apply(eff controller.Effect) tea.Cmd {
	var cmds []tea.Cmd

	switch eff.Indicator {
	case controller.IndicatorSet:
		a.activeTab = news.IndexOf(a.categories, eff.Selection.Category)
	case controller.IndicatorClear:
		a.activeTab = -1
	}

	if eff.ClearSearchBox {
		a.searchInput.SetValue("")
	}

	if eff.ScheduleSearch {
		cmds = append(cmds, a.scheduleSearch(eff.Ticket))
	}

	if eff.Fetch {
		a.loading = true
		a.errMsg = ""
		a.view = ViewList
		cmds = append(cmds, a.fetchNews(eff.Selection), a.spinner.Tick)
	}

	return tea.Batch(cmds...)
}

// handleFetchDone paints whichever response arrives. Overlapping fetches are
// not cancelled, so the last one to land wins regardless of issue order.
func (a *App) handleFetchDone(msg fetchDoneMsg) tea.Cmd {
	if msg.seq != a.fetchSeq {
		debuglog.Debugf("fetch %d for %s landed after fetch %d was issued", msg.seq, msg.selection, a.fetchSeq)
	}

	a.loading = msg.result.loading
	if msg.result.errMsg != "" {
		a.errMsg = msg.result.errMsg
		return nil
	}

	a.errMsg = ""
	view := a.renderer.Render(msg.result.articles)
	a.empty = view.Empty
	a.cards = view.Cards

	items := make([]list.Item, len(a.cards))
	for i, c := range a.cards {
		items[i] = cardItem{card: c}
	}
	cmd := a.cardList.SetItems(items)
	a.cardList.Select(0)
	a.setStatus(MsgResultsCount(len(a.cards)), StatusInfo)
	return cmd
}

func (a *App) handleImageProbe(msg imageProbeMsg) tea.Cmd {
	if msg.err == nil || msg.index >= len(a.cards) {
		return nil
	}
	card := &a.cards[msg.index]
	if card.Image != msg.imageURL {
		return nil
	}
	debuglog.Infof("image %s unavailable: %v", msg.imageURL, msg.err)
	card.MarkImageBroken()
	a.cardList.SetItem(msg.index, cardItem{card: *card})
	a.setStatus(MsgImageBroken, StatusWarn)
	if a.view == ViewPreview && a.previewIndex == msg.index {
		return a.renderPreview(msg.index)
	}
	return nil
}

func (a *App) selectedCard() (int, *render.Card) {
	if a.empty || len(a.cards) == 0 {
		return -1, nil
	}
	i := a.cardList.Index()
	if i < 0 || i >= len(a.cards) {
		return -1, nil
	}
	return i, &a.cards[i]
}

func (a *App) setStatus(text string, kind StatusKind) {
	a.status = text
	a.statusKind = kind
}

func (a *App) listHeight() int {
	h := a.height - chrome
	if h < 3 {
		h = 3
	}
	return h
}

func (a *App) View() string {
	if a.view == ViewPreview {
		return lipgloss.JoinVertical(lipgloss.Top,
			a.viewport.View(),
			renderSeparator(a.width),
			a.statusLine(),
		)
	}

	searchBox := renderInputFrame(a.searchInput.View(), a.searchInput.Focused(), a.searchInput.Width)

	banner := ""
	if a.errMsg != "" {
		msg := a.errMsg
		if a.width > 8 {
			msg = truncateEnd(msg, a.width-4)
		}
		banner = ErrorBannerStyle.Render("✗ " + msg)
	}

	var content string
	switch {
	case a.empty && a.errMsg == "":
		content = renderCentered(a.width, a.listHeight(), EmptyStyle.Render(lipgloss.JoinVertical(
			lipgloss.Center,
			HeaderStyle.Render(render.NoResultsTitle),
			"",
			renderMuted(render.NoResultsHint),
		)))
	case len(a.cards) == 0 && a.loading:
		content = renderCentered(a.width, a.listHeight(), GetCompactBanner(MsgLoading))
	default:
		content = a.cardList.View()
	}

	return lipgloss.JoinVertical(lipgloss.Top,
		a.headerLine(),
		searchBox,
		banner,
		content,
		renderSeparator(a.width),
		a.statusLine(),
	)
}

func (a *App) headerLine() string {
	parts := []string{LogoStyle.Render(CompactLogo)}
	for i, c := range a.categories {
		label := c.Label
		if i < 9 {
			label = strconv.Itoa(i+1) + " " + label
		}
		if i == a.activeTab {
			parts = append(parts, ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, TabStyle.Render(label))
		}
	}
	if a.loading {
		parts = append(parts, a.spinner.View()+renderMuted(MsgLoading))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (a *App) statusLine() string {
	line := strings.Join(a.keyHandler.GetHelpForCurrentView(), " • ")
	if a.status != "" {
		line = a.statusKind.style().Render(a.status) + renderMuted("  │  ") + renderHelp(line)
	} else {
		line = renderHelp(line)
	}
	return lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		Render(line)
}

// cardItem adapts a render.Card to the list.
type cardItem struct {
	card render.Card
}

func (i cardItem) Title() string { return i.card.Title }

func (i cardItem) Description() string {
	meta := i.card.Source + " • " + i.card.Date
	if i.card.Author != "" {
		meta = i.card.Source + " • " + i.card.Author + " • " + i.card.Date
	}
	return fmt.Sprintf("%s  %s", meta, i.card.Description)
}

func (i cardItem) FilterValue() string { return i.card.FilterValue() }

func newCardDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.NormalTitle = d.Styles.NormalTitle.Foreground(TextColor)
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(PrimaryColor).BorderForeground(PrimaryColor)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(SecondaryColor).BorderForeground(PrimaryColor)
	return d
}
