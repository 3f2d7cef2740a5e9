// Package tui provides the interactive search interface. Results update on
// every keystroke; all queries are answered synchronously from the cached
// snapshot once the initial load completes.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
	"github.com/vitalis-labs/vitalis-cli/internal/core/services"
)

// Session is the query-side surface the TUI drives. Satisfied by
// services.QuerySession.
type Session interface {
	Load(ctx context.Context) error
	State() services.SessionState
	Err() error
	Query(query string, opts domain.QueryOptions) ([]domain.SearchItem, error)
}

// typeFilters is the cycle order for the tab key. Empty means no filter.
var typeFilters = []domain.SearchItemType{
	"",
	domain.SearchItemArticle,
	domain.SearchItemSupplement,
	domain.SearchItemCondition,
}

// snapshotLoadedMsg reports the result of a snapshot load or retry.
type snapshotLoadedMsg struct {
	err error
}

// App is the bubbletea model for the search interface.
type App struct {
	session Session
	ctx     context.Context

	input      textinput.Model
	results    []domain.SearchItem
	cursor     int
	filterIdx  int
	queryErr   error
	windowSize tea.WindowSizeMsg
}

// NewApp creates the search interface over a query session.
func NewApp(session Session) *App {
	input := textinput.New()
	input.Placeholder = "Search articles, supplements, conditions..."
	input.Prompt = "> "
	input.Focus()

	return &App{
		session: session,
		ctx:     context.Background(),
		input:   input,
	}
}

// WithContext sets the context used for the snapshot load.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init starts the initial snapshot load.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.loadSnapshot())
}

// loadSnapshot fetches the snapshot off the update loop.
func (a *App) loadSnapshot() tea.Cmd {
	return func() tea.Msg {
		return snapshotLoadedMsg{err: a.session.Load(a.ctx)}
	}
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotLoadedMsg:
		if msg.err == nil {
			a.refresh()
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.windowSize = msg
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return a, tea.Quit

	case "tab":
		a.filterIdx = (a.filterIdx + 1) % len(typeFilters)
		a.refresh()
		return a, nil

	case "up", "ctrl+k":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "down", "ctrl+j":
		if a.cursor < len(a.results)-1 {
			a.cursor++
		}
		return a, nil

	case "r":
		// Retry is only meaningful while the index is unavailable;
		// otherwise "r" is input.
		if a.session.State() == services.SessionUnavailable {
			return a, a.loadSnapshot()
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.refresh()
	return a, cmd
}

// refresh re-runs the current query against the session.
func (a *App) refresh() {
	results, err := a.session.Query(a.input.Value(), domain.QueryOptions{
		Type: typeFilters[a.filterIdx],
	})
	if err != nil {
		a.results = nil
		a.queryErr = err
		a.cursor = 0
		return
	}

	a.results = results
	a.queryErr = nil
	if a.cursor >= len(results) {
		a.cursor = 0
	}
}

// View renders the interface.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Vitalis Search"))
	b.WriteString("  ")
	b.WriteString(filterStyle.Render(a.filterLabel()))
	b.WriteString("\n\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")

	switch a.session.State() {
	case services.SessionLoading:
		b.WriteString(statusStyle.Render("Loading search index..."))

	case services.SessionUnavailable:
		b.WriteString(errorStyle.Render("Search is unavailable."))
		if err := a.session.Err(); err != nil {
			b.WriteString("\n")
			b.WriteString(dimStyle.Render(err.Error()))
		}
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Press r to retry."))

	case services.SessionReady:
		a.renderResults(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab: filter  ↑/↓: navigate  esc: quit"))
	return b.String()
}

func (a *App) renderResults(b *strings.Builder) {
	if a.queryErr != nil {
		b.WriteString(errorStyle.Render(a.queryErr.Error()))
		return
	}
	if len(a.results) == 0 {
		b.WriteString(dimStyle.Render("No results."))
		return
	}

	for i, item := range a.results {
		line := fmt.Sprintf("%s  %s", typeBadge(item.Type), item.Title)
		if i == a.cursor {
			b.WriteString(selectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(itemStyle.Render("  " + line))
		}
		b.WriteString("\n")
		if i == a.cursor && item.Description != "" {
			b.WriteString(dimStyle.Render("    " + item.Description))
			b.WriteString("\n")
		}
	}
}

func (a *App) filterLabel() string {
	if typeFilters[a.filterIdx] == "" {
		return "[all]"
	}
	return "[" + string(typeFilters[a.filterIdx]) + "]"
}

func typeBadge(t domain.SearchItemType) string {
	switch t {
	case domain.SearchItemArticle:
		return articleBadge.Render("ART")
	case domain.SearchItemSupplement:
		return supplementBadge.Render("SUP")
	case domain.SearchItemCondition:
		return conditionBadge.Render("CON")
	}
	return "???"
}
