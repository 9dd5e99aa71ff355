package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/antipat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/core/services"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	store := memory.NewCatalogStore()
	require.NoError(t, store.SaveCatalog(context.Background(), &domain.Catalog{
		RunID: "run-1",
		Documents: []domain.Document{
			{
				ID:           "pattern-1",
				CategoryID:   1,
				Title:        "Inline Object Props",
				Introduction: "Fresh objects defeat memoization.",
				Examples: []domain.Example{{
					Index: 1,
					Label: "In Rows",
					Avoid: &domain.CodeBlock{Language: "jsx", SourceLines: []string{"a", "b"}},
					Good:  &domain.CodeBlock{Language: "jsx", SourceLines: []string{"a", "c"}},
					Diff:  &domain.DiffBlock{AddedLines: []string{"c"}, RemovedLines: []string{"b"}, Computed: true},
				}},
				SourcePath: "docs/001.md",
			},
			{
				ID:         "pattern-2",
				CategoryID: 2,
				Title:      "Index As Key",
				Examples:   []domain.Example{{Index: 1}},
				SourcePath: "docs/002.md",
			},
		},
	}))

	app, err := NewApp(&Ports{Catalog: services.NewCatalogService(store)})
	require.NoError(t, err)
	return app
}

// load runs the Init command and feeds its message back into the model.
func load(t *testing.T, app *App) {
	t.Helper()
	msg := app.Init()()
	_, ok := msg.(catalogLoadedMsg)
	require.True(t, ok, "expected the catalog to load")
	app.Update(msg)
}

func keyPress(app *App, key string) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	app.Update(msg)
}

func TestNewApp_RequiresCatalogPort(t *testing.T) {
	_, err := NewApp(&Ports{})
	assert.ErrorIs(t, err, ErrMissingCatalogQuery)

	_, err = NewApp(nil)
	assert.ErrorIs(t, err, ErrMissingCatalogQuery)
}

func TestApp_ListView(t *testing.T) {
	app := newTestApp(t)
	load(t, app)

	view := app.View()
	assert.Contains(t, view, "Pattern Catalog")
	assert.Contains(t, view, "Inline Object Props")
	assert.Contains(t, view, "Index As Key")
}

func TestApp_EmptyCatalog(t *testing.T) {
	app, err := NewApp(&Ports{Catalog: services.NewCatalogService(memory.NewCatalogStore())})
	require.NoError(t, err)

	msg := app.Init()()
	loadErr, ok := msg.(loadErrMsg)
	require.True(t, ok)
	assert.ErrorIs(t, loadErr.err, domain.ErrNotFound)

	app.Update(msg)
	assert.Contains(t, app.View(), "Error")
}

func TestApp_Navigation(t *testing.T) {
	app := newTestApp(t)
	load(t, app)

	assert.Equal(t, 0, app.selected)
	keyPress(app, "down")
	assert.Equal(t, 1, app.selected)
	keyPress(app, "down")
	assert.Equal(t, 1, app.selected, "selection stops at the last entry")
	keyPress(app, "up")
	assert.Equal(t, 0, app.selected)
	keyPress(app, "up")
	assert.Equal(t, 0, app.selected, "selection stops at the first entry")
}

func TestApp_DetailView(t *testing.T) {
	app := newTestApp(t)
	load(t, app)

	keyPress(app, "enter")
	assert.Equal(t, viewDetail, app.view)

	view := app.View()
	assert.Contains(t, view, "Inline Object Props")
	assert.Contains(t, view, "Example 1: In Rows")
	assert.Contains(t, view, "diff (computed)")
	assert.Contains(t, view, "+1/-1")

	keyPress(app, "esc")
	assert.Equal(t, viewList, app.view)
}

func TestApp_Filter(t *testing.T) {
	app := newTestApp(t)
	load(t, app)

	keyPress(app, "/")
	assert.True(t, app.filtering)

	keyPress(app, "index")
	require.Len(t, app.filtered, 1)
	assert.Equal(t, domain.PatternID("pattern-2"), app.filtered[0].ID)

	// Enter confirms the filter, esc clears it.
	keyPress(app, "enter")
	assert.False(t, app.filtering)
	assert.Len(t, app.filtered, 1)

	keyPress(app, "esc")
	assert.Len(t, app.filtered, 2)
}

func TestApp_QuitReturnsQuitCmd(t *testing.T) {
	app := newTestApp(t)
	load(t, app)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_WindowResizeClipsDetail(t *testing.T) {
	app := newTestApp(t)
	load(t, app)

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	keyPress(app, "enter")

	view := app.View()
	assert.NotEmpty(t, view)
}
