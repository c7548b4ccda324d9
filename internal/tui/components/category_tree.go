package components

import (
	"strings"

	"github.com/Veraticus/ledger/internal/category"
	"github.com/Veraticus/ledger/internal/model"
	"github.com/Veraticus/ledger/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
)

// CategoryTree is a navigable list of categories in hierarchy order.
type CategoryTree struct {
	err     error
	theme   themes.Theme
	entries []category.Entry
	cursor  int
	offset  int
	height  int
}

// NewCategoryTree creates an empty tree.
func NewCategoryTree(theme themes.Theme) CategoryTree {
	return CategoryTree{theme: theme, height: 15}
}

// SetEntries replaces the rows. A non-nil err is shown instead of the rows.
func (t *CategoryTree) SetEntries(entries []category.Entry, err error) {
	var selected int64
	if c, ok := t.Selected(); ok {
		selected = c.ID
	}
	t.entries = entries
	t.err = err
	t.cursor = 0
	for i, e := range entries {
		if e.Category.ID == selected {
			t.cursor = i
			break
		}
	}
	t.clampOffset()
}

// Selected returns the category under the cursor.
func (t CategoryTree) Selected() (model.Category, bool) {
	if t.err != nil || t.cursor < 0 || t.cursor >= len(t.entries) {
		return model.Category{}, false
	}
	return t.entries[t.cursor].Category, true
}

// SetHeight sets the number of visible rows.
func (t *CategoryTree) SetHeight(height int) {
	t.height = max(1, height)
	t.clampOffset()
}

// Update moves the cursor.
func (t CategoryTree) Update(msg tea.Msg) (CategoryTree, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	switch keyMsg.String() {
	case "up", "k":
		t.cursor = max(0, t.cursor-1)
	case "down", "j":
		t.cursor = min(len(t.entries)-1, t.cursor+1)
		t.cursor = max(0, t.cursor)
	case "home", "g":
		t.cursor = 0
	case "end", "G":
		t.cursor = max(0, len(t.entries)-1)
	}
	t.clampOffset()
	return t, nil
}

func (t *CategoryTree) clampOffset() {
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.height {
		t.offset = t.cursor - t.height + 1
	}
	t.offset = max(0, t.offset)
}

// View renders the visible rows.
func (t CategoryTree) View() string {
	if t.err != nil {
		return t.theme.StatusError.Render("Cannot show categories: " + t.err.Error())
	}
	if len(t.entries) == 0 {
		return t.theme.Faint.Render("No categories yet. Press n to add one.")
	}

	end := min(len(t.entries), t.offset+t.height)
	lines := make([]string, 0, end-t.offset)
	for i := t.offset; i < end; i++ {
		label := t.entries[i].Label()
		if i == t.cursor {
			lines = append(lines, t.theme.Selected.Render("▸ "+label))
			continue
		}
		lines = append(lines, t.theme.Normal.Render("  "+label))
	}
	return strings.Join(lines, "\n")
}
