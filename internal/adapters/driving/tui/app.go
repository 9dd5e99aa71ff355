// Package tui is the interactive terminal browser for a built catalog.
// It renders the pattern list and per-pattern detail using Bubble Tea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/antipat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/antipat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/core/ports/driving"
)

// Ports contains the driving ports the TUI needs.
type Ports struct {
	// Catalog provides read access to the persisted catalog.
	Catalog driving.CatalogQuery
}

// ErrMissingCatalogQuery indicates the TUI was created without a catalog port.
var ErrMissingCatalogQuery = errors.New("tui: catalog query port is required")

// Validate checks that all required ports are present.
func (p *Ports) Validate() error {
	if p == nil || p.Catalog == nil {
		return ErrMissingCatalogQuery
	}
	return nil
}

// view identifies which screen the app is showing.
type view int

const (
	viewList view = iota
	viewDetail
)

// catalogLoadedMsg carries the loaded pattern list.
type catalogLoadedMsg struct {
	documents []domain.Document
	report    *domain.ValidationReport
}

// loadErrMsg carries a load failure.
type loadErrMsg struct {
	err error
}

// App is the root Bubble Tea model.
type App struct {
	ports  *Ports
	styles *styles.Styles
	keys   *keymap.KeyMap

	width  int
	height int

	view      view
	documents []domain.Document
	filtered  []domain.Document
	report    *domain.ValidationReport
	selected  int
	scroll    int

	filter    textinput.Model
	filtering bool

	err error
}

// NewApp creates the TUI application.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	filter := textinput.New()
	filter.Placeholder = "filter patterns"
	filter.Prompt = "/ "
	filter.CharLimit = 64

	return &App{
		ports:  ports,
		styles: styles.DefaultStyles(),
		keys:   keymap.DefaultKeyMap(),
		view:   viewList,
		filter: filter,
	}, nil
}

// Init loads the catalog.
func (a *App) Init() tea.Cmd {
	return a.loadCatalog
}

// loadCatalog fetches the pattern list and the last validation report.
func (a *App) loadCatalog() tea.Msg {
	ctx := context.Background()

	docs, err := a.ports.Catalog.List(ctx)
	if err != nil {
		return loadErrMsg{err: err}
	}

	report, err := a.ports.Catalog.Report(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return loadErrMsg{err: err}
	}

	return catalogLoadedMsg{documents: docs, report: report}
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case catalogLoadedMsg:
		a.documents = msg.documents
		a.filtered = msg.documents
		a.report = msg.report
		a.selected = 0
		a.scroll = 0
		return a, nil

	case loadErrMsg:
		a.err = msg.err
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// handleKey routes key presses by view and filter state.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.filtering {
		switch {
		case key.Matches(msg, a.keys.Back):
			a.filtering = false
			a.filter.Reset()
			a.applyFilter()
			return a, nil
		case key.Matches(msg, a.keys.Select):
			a.filtering = false
			a.filter.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		a.filter, cmd = a.filter.Update(msg)
		a.applyFilter()
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Back):
		if a.view == viewDetail {
			a.view = viewList
			a.scroll = 0
		} else if a.filter.Value() != "" {
			a.filter.Reset()
			a.applyFilter()
		}
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.moveUp()
		return a, nil

	case key.Matches(msg, a.keys.Down):
		a.moveDown()
		return a, nil

	case key.Matches(msg, a.keys.Select):
		if a.view == viewList && len(a.filtered) > 0 {
			a.view = viewDetail
			a.scroll = 0
		}
		return a, nil

	case key.Matches(msg, a.keys.Filter):
		if a.view == viewList {
			a.filtering = true
			a.filter.Focus()
			return a, textinput.Blink
		}
		return a, nil
	}

	return a, nil
}

// moveUp moves the selection or scrolls the detail view.
func (a *App) moveUp() {
	if a.view == viewDetail {
		if a.scroll > 0 {
			a.scroll--
		}
		return
	}
	if a.selected > 0 {
		a.selected--
	}
}

// moveDown moves the selection or scrolls the detail view.
func (a *App) moveDown() {
	if a.view == viewDetail {
		a.scroll++
		return
	}
	if a.selected < len(a.filtered)-1 {
		a.selected++
	}
}

// applyFilter recomputes the visible pattern list from the filter text.
func (a *App) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(a.filter.Value()))
	if query == "" {
		a.filtered = a.documents
	} else {
		a.filtered = nil
		for _, doc := range a.documents {
			if strings.Contains(strings.ToLower(doc.Title), query) ||
				strings.Contains(strings.ToLower(doc.Introduction), query) {
				a.filtered = append(a.filtered, doc)
			}
		}
	}
	if a.selected >= len(a.filtered) {
		a.selected = 0
	}
}

// View renders the current screen.
func (a *App) View() string {
	if a.err != nil {
		return a.styles.Error.Render(fmt.Sprintf("Error: %v", a.err)) + "\n\n" +
			a.styles.Help.Render("q: quit")
	}

	if a.view == viewDetail {
		return a.detailView()
	}
	return a.listView()
}

// listView renders the pattern list.
func (a *App) listView() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Pattern Catalog"))
	if a.report != nil {
		summary := fmt.Sprintf("  %d errors, %d warnings",
			a.report.Count(domain.SeverityError),
			a.report.Count(domain.SeverityWarning))
		b.WriteString(a.styles.Muted.Render(summary))
	}
	b.WriteString("\n\n")

	if a.filtering || a.filter.Value() != "" {
		b.WriteString(a.filter.View())
		b.WriteString("\n\n")
	}

	if len(a.filtered) == 0 {
		if len(a.documents) == 0 {
			b.WriteString(a.styles.Muted.Render("No catalog found. Run 'antipat build' first."))
		} else {
			b.WriteString(a.styles.Muted.Render("No patterns match the filter."))
		}
		b.WriteString("\n")
	}

	for i, doc := range a.filtered {
		line := fmt.Sprintf("%3d. %s", doc.CategoryID, doc.Title)
		if i == a.selected {
			b.WriteString(a.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(a.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("↑/↓: navigate • enter: open • /: filter • q: quit"))
	return b.String()
}

// detailView renders one pattern entry.
func (a *App) detailView() string {
	if a.selected >= len(a.filtered) {
		return a.styles.Muted.Render("No pattern selected.")
	}
	doc := a.filtered[a.selected]

	var b strings.Builder
	b.WriteString(a.styles.Title.Render(fmt.Sprintf("%d. %s", doc.CategoryID, doc.Title)))
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render(string(doc.ID) + "  " + doc.SourcePath))
	b.WriteString("\n\n")

	if doc.Introduction != "" {
		b.WriteString(a.styles.Normal.Render(doc.Introduction))
		b.WriteString("\n\n")
	}

	if doc.Stats != nil {
		line := fmt.Sprintf("Observed %d times", doc.Stats.Occurrences)
		if doc.Stats.TotalOpportunities != nil {
			line = fmt.Sprintf("Observed %d of %d times (%.0f%%)",
				doc.Stats.Occurrences, *doc.Stats.TotalOpportunities,
				doc.Stats.Percentage()*100)
		}
		b.WriteString(a.styles.Subtitle.Render(line))
		b.WriteString("\n\n")
	}

	for i := range doc.Examples {
		b.WriteString(a.renderExample(&doc.Examples[i]))
	}

	if len(doc.References) > 0 {
		b.WriteString(a.styles.Subtitle.Render("References"))
		b.WriteString("\n")
		for _, ref := range doc.References {
			b.WriteString(a.styles.Muted.Render("  " + ref))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	content := b.String()
	body := a.clipToWindow(content)

	help := a.styles.Help.Render("↑/↓: scroll • esc: back • q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

// renderExample renders one example with its snippets and diff summary.
func (a *App) renderExample(ex *domain.Example) string {
	var b strings.Builder

	b.WriteString(a.styles.Subtitle.Render(fmt.Sprintf("Example %d: %s", ex.Index, ex.Label)))
	b.WriteString("\n")

	if ex.Avoid != nil {
		b.WriteString(a.styles.Error.Render("  avoid"))
		b.WriteString(a.styles.Muted.Render(snippetMeta(ex.Avoid)))
		b.WriteString("\n")
	}
	if ex.Good != nil {
		b.WriteString(a.styles.Success.Render("  good"))
		b.WriteString(a.styles.Muted.Render(snippetMeta(ex.Good)))
		b.WriteString("\n")
	}
	if ex.Diff != nil {
		label := "  diff"
		if ex.Diff.Computed {
			label = "  diff (computed)"
		}
		b.WriteString(a.styles.Normal.Render(label))
		b.WriteString(a.styles.Muted.Render(fmt.Sprintf("  +%d/-%d",
			len(ex.Diff.AddedLines), len(ex.Diff.RemovedLines))))
		b.WriteString("\n")
	}
	if len(ex.Warnings) > 0 {
		b.WriteString(a.styles.Warning.Render(fmt.Sprintf("  %d reconciliation warnings", len(ex.Warnings))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	return b.String()
}

// snippetMeta formats snippet metadata for one code block line.
func snippetMeta(block *domain.CodeBlock) string {
	parts := []string{fmt.Sprintf("  %s, %d lines", block.Language, len(block.SourceLines))}
	if block.Filename != "" {
		parts = append(parts, block.Filename)
	}
	if len(block.HighlightedLines) > 0 {
		parts = append(parts, fmt.Sprintf("%d highlighted", len(block.HighlightedLines)))
	}
	return strings.Join(parts, "  ")
}

// clipToWindow applies scroll offset and clips content to the terminal height.
func (a *App) clipToWindow(content string) string {
	lines := strings.Split(content, "\n")

	// Reserve two lines for the help footer.
	visible := a.height - 2
	if visible <= 0 || a.height == 0 {
		visible = len(lines)
	}

	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if a.scroll > maxScroll {
		a.scroll = maxScroll
	}

	end := a.scroll + visible
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[a.scroll:end], "\n")
}
