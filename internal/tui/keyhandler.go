package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/newsdesk/internal/controller"
)

type KeyHandler struct {
	app *App
}

func NewKeyHandler(app *App) *KeyHandler {
	return &KeyHandler{app: app}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if kh.app.searchInput.Focused() {
		return kh.handleTextInputMode(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(msg.String()); handled {
		return model, cmd
	}

	return kh.delegateToCharm(msg)
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return kh.app, tea.Quit
	case "esc":
		kh.app.searchInput.Blur()
		return kh.app, nil
	case "enter":
		return kh.app, kh.app.apply(kh.app.ctrl.Dispatch(controller.SubmitSearch(kh.app.searchInput.Value())))
	default:
		newSearchInput, cmd := kh.app.searchInput.Update(msg)
		kh.app.searchInput = newSearchInput
		eff := kh.app.ctrl.Dispatch(controller.Keystroke(kh.app.searchInput.Value()))
		return kh.app, tea.Batch(cmd, kh.app.apply(eff))
	}
}

// handleCustomKeys handles only our custom action keys
func (kh *KeyHandler) handleCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "ctrl+c", "q":
		return kh.app, tea.Quit, true
	case "ctrl+r":
		return kh.app, kh.app.apply(kh.app.ctrl.Dispatch(controller.RefreshEvent())), true
	}

	switch kh.app.view {
	case ViewList:
		return kh.handleListKeys(key)
	case ViewPreview:
		return kh.handlePreviewKeys(key)
	default:
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) handleListKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "/":
		return kh.app, kh.app.searchInput.Focus(), true
	case "tab":
		return kh.app, kh.selectTab(kh.app.activeTab + 1), true
	case "shift+tab":
		next := kh.app.activeTab - 1
		if kh.app.activeTab < 0 {
			next = len(kh.app.categories) - 1
		}
		return kh.app, kh.selectTab(next), true
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(key[0] - '1')
		if i >= len(kh.app.categories) {
			return kh.app, nil, true
		}
		return kh.app, kh.selectTab(i), true
	case "enter":
		return kh.app, kh.openSelected(), true
	case "y":
		return kh.app, kh.copySelected(), true
	case "p":
		return kh.app, kh.enterPreview(), true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handlePreviewKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "esc", "p":
		kh.app.view = ViewList
		return kh.app, nil, true
	case "enter", "o":
		return kh.app, kh.openSelected(), true
	case "y":
		return kh.app, kh.copySelected(), true
	}
	return kh.app, nil, false
}

// selectTab wraps around the catalog.
func (kh *KeyHandler) selectTab(i int) tea.Cmd {
	n := len(kh.app.categories)
	if n == 0 {
		return nil
	}
	i = ((i % n) + n) % n
	return kh.app.apply(kh.app.ctrl.Dispatch(controller.SelectCategory(kh.app.categories[i].Key)))
}

// openSelected is a no-op for cards without a usable link.
func (kh *KeyHandler) openSelected() tea.Cmd {
	_, card := kh.app.selectedCard()
	if card == nil || !card.Openable() {
		return nil
	}
	kh.app.setStatus(MsgOpening, StatusInfo)
	return kh.app.openLink(card.Link)
}

func (kh *KeyHandler) copySelected() tea.Cmd {
	_, card := kh.app.selectedCard()
	if card == nil {
		return nil
	}
	if !card.Openable() {
		kh.app.setStatus(MsgNoLink, StatusWarn)
		return nil
	}
	return kh.app.copyLink(card.Link)
}

func (kh *KeyHandler) enterPreview() tea.Cmd {
	i, card := kh.app.selectedCard()
	if card == nil {
		return nil
	}
	kh.app.view = ViewPreview
	kh.app.previewIndex = i
	kh.app.viewport.SetContent(renderMuted("Rendering…"))
	kh.app.viewport.GotoTop()
	return tea.Batch(kh.app.renderPreview(i), kh.app.probeImage(i, card.Image))
}

func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch kh.app.view {
	case ViewPreview:
		kh.app.viewport, cmd = kh.app.viewport.Update(msg)
	default:
		kh.app.cardList, cmd = kh.app.cardList.Update(msg)
	}
	return kh.app, cmd
}

// GetHelpForCurrentView lists the keys shown in the status line.
func (kh *KeyHandler) GetHelpForCurrentView() []string {
	if kh.app.searchInput.Focused() {
		return []string{"enter: search", "esc: done"}
	}
	switch kh.app.view {
	case ViewPreview:
		return []string{"↑↓: scroll", "enter: open", "y: copy link", "esc: back"}
	default:
		return []string{"/: search", "tab/1-9: category", "enter: open", "p: preview", "y: copy", "ctrl+r: refresh", "q: quit"}
	}
}
