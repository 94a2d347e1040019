package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/artgrid/internal/catalog"
	"github.com/jask/artgrid/internal/config"
)

// PageLoader fetches one page of the catalog.
type PageLoader interface {
	Load(ctx context.Context, page int) (catalog.Page, error)
}

// App is the artwork table. It owns the selection and the visible page; the
// view only reads them.
type App struct {
	ctx    context.Context
	loader PageLoader
	cfg    config.Config
	log    *slog.Logger

	sel   *catalog.Selection
	state *catalog.PageState

	cursor    int
	sumCursor int
	focus     focusArea
	status    string
	width     int
	height    int

	cancelLoad context.CancelFunc

	jumping   bool
	jump      textinput.Model
	filtering bool
	filter    textinput.Model
	pager     paginator.Model
	help      help.Model
	keys      keyMap
}

type focusArea int

const (
	focusTable focusArea = iota
	focusSummary
)

func New(ctx context.Context, cfg config.Config, loader PageLoader, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	jump := textinput.New()
	jump.Prompt = "go to page: "
	jump.CharLimit = 9
	jump.Cursor.SetMode(cursor.CursorStatic)

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "title or artist"
	filter.Cursor.SetMode(cursor.CursorStatic)

	pager := paginator.New()
	pager.Type = paginator.Arabic
	pager.PerPage = cfg.API.PageSize

	return &App{
		ctx:    ctx,
		loader: loader,
		cfg:    cfg,
		log:    log,
		sel:    catalog.NewSelection(),
		state:  catalog.NewPageState(cfg.API.PageSize),
		jump:   jump,
		filter: filter,
		pager:  pager,
		help:   help.New(),
		keys:   defaultKeys(),
		width:  100,
	}
}

// Selection exposes the durable selection for read-only use.
func (a *App) Selection() *catalog.Selection { return a.sel }

// State exposes the visible page for read-only use.
func (a *App) State() *catalog.PageState { return a.state }

func (a *App) Init() tea.Cmd {
	return a.loadPage(1)
}

// loadPage starts a fetch of page. A fetch still in flight is cancelled, and
// its response would be discarded by tag anyway.
func (a *App) loadPage(page int) tea.Cmd {
	if a.cancelLoad != nil {
		a.cancelLoad()
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancelLoad = cancel
	tag := a.state.Begin(page)
	loader := a.loader
	return func() tea.Msg {
		defer cancel()
		p, err := loader.Load(ctx, page)
		if err != nil {
			return pageFailedMsg{tag: tag, page: page, err: err}
		}
		return pageLoadedMsg{tag: tag, page: p}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
	case pageLoadedMsg:
		if !a.state.Apply(m.tag, m.page, a.sel) {
			a.log.Debug("stale page discarded", "page", m.page.Number)
			return a, nil
		}
		a.pager.TotalPages = max(a.state.TotalPages, 1)
		a.pager.Page = max(a.state.Page-1, 0)
		if a.cursor >= len(a.state.Records) {
			a.cursor = 0
		}
		a.status = ""
	case pageFailedMsg:
		// already logged by the loader; the previous page stays on screen
		if !a.state.Fail(m.tag) {
			a.log.Debug("stale page failure discarded", "page", m.page)
		}
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.jumping {
		return a.handleJumpKey(m)
	}
	if a.filtering {
		return a.handleFilterKey(m)
	}
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil
	case key.Matches(m, a.keys.Focus):
		if a.focus == focusTable {
			a.focus = focusSummary
		} else {
			a.focus = focusTable
		}
		return a, nil
	case key.Matches(m, a.keys.PrevPage):
		if target := a.targetPage() - 1; target >= 1 {
			return a, a.loadPage(target)
		}
		return a, nil
	case key.Matches(m, a.keys.NextPage):
		target := a.targetPage() + 1
		if a.state.TotalPages == 0 || target <= a.state.TotalPages {
			return a, a.loadPage(target)
		}
		return a, nil
	case key.Matches(m, a.keys.Jump):
		a.jumping = true
		a.status = ""
		a.jump.SetValue("")
		return a, a.jump.Focus()
	}

	if a.focus == focusSummary {
		return a.handleSummaryKey(m)
	}
	return a.handleTableKey(m)
}

func (a *App) handleTableKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.state.Records)-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.Toggle):
		a.toggleRow()
	case key.Matches(m, a.keys.SelectAll):
		a.sel.SelectAll(a.state.Records)
		a.state.Recheck(a.sel)
	case key.Matches(m, a.keys.ClearPage):
		a.sel.ClearVisible(a.state.Records)
		a.state.Recheck(a.sel)
	}
	return a, nil
}

// toggleRow flips the cursor row and hands the resulting checked subset of
// the page to the selection, the same report a checkbox column produces.
func (a *App) toggleRow() {
	if len(a.state.Records) == 0 {
		return
	}
	id := a.state.Records[a.cursor].ID
	checked := make([]int, 0, len(a.state.Checked)+1)
	found := false
	for _, c := range a.state.Checked {
		if c == id {
			found = true
			continue
		}
		checked = append(checked, c)
	}
	if !found {
		checked = append(checked, id)
	}
	a.sel.TogglePage(a.state.Records, checked)
	a.state.Recheck(a.sel)
}

func (a *App) handleSummaryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := a.summaryEntries()
	a.clampSummaryCursor(len(entries))
	switch {
	case key.Matches(m, a.keys.Up):
		if a.sumCursor > 0 {
			a.sumCursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.sumCursor < len(entries)-1 {
			a.sumCursor++
		}
	case key.Matches(m, a.keys.Deselect):
		if a.sumCursor >= len(entries) {
			return a, nil
		}
		a.sel.Remove(entries[a.sumCursor].ID)
		a.state.Recheck(a.sel)
		a.clampSummaryCursor(len(a.summaryEntries()))
	case key.Matches(m, a.keys.Filter):
		a.filtering = true
		return a, a.filter.Focus()
	case key.Matches(m, a.keys.Back):
		if a.filter.Value() != "" {
			a.filter.SetValue("")
			a.sumCursor = 0
			return a, nil
		}
		a.focus = focusTable
	}
	return a, nil
}

// clampSummaryCursor keeps the panel cursor inside n entries. The selection
// also shrinks from the table and through the filter, so the cursor can be
// stale whenever the panel regains focus.
func (a *App) clampSummaryCursor(n int) {
	if a.sumCursor >= n {
		a.sumCursor = max(n-1, 0)
	}
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.filter.SetValue("")
		fallthrough
	case tea.KeyEnter:
		a.filtering = false
		a.filter.Blur()
		a.sumCursor = 0
		return a, nil
	}
	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(m)
	a.sumCursor = 0
	return a, cmd
}

func (a *App) handleJumpKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.jumping = false
		a.jump.Blur()
		return a, nil
	case tea.KeyEnter:
		page, err := a.parseJump(a.jump.Value())
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		a.jumping = false
		a.jump.Blur()
		a.status = ""
		return a, a.loadPage(page)
	}
	var cmd tea.Cmd
	a.jump, cmd = a.jump.Update(m)
	return a, cmd
}

func (a *App) parseJump(s string) (int, error) {
	page, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || page < 1 {
		return 0, fmt.Errorf("enter a page number")
	}
	if a.state.TotalPages > 0 && page > a.state.TotalPages {
		return 0, fmt.Errorf("page must be between 1 and %d", a.state.TotalPages)
	}
	return page, nil
}

// targetPage is the page navigation is relative to: the one being loaded, or
// the one on screen.
func (a *App) targetPage() int {
	if a.state.Loading && a.state.Pending > 0 {
		return a.state.Pending
	}
	return a.state.Page
}

func (a *App) summaryEntries() []catalog.Entry {
	return catalog.Rank(a.sel.All(), a.filter.Value())
}

// messages
type pageLoadedMsg struct {
	tag  uint64
	page catalog.Page
}

type pageFailedMsg struct {
	tag  uint64
	page int
	err  error
}
