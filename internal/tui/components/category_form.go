package components

import (
	"slices"

	"github.com/Veraticus/ledger/internal/model"
	"github.com/Veraticus/ledger/internal/tui/themes"
	"github.com/Veraticus/ledger/internal/viewstate"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CategoryForm creates or edits one category.
type CategoryForm struct {
	theme   themes.Theme
	draft   viewstate.CategoryDraft
	parents []model.Category
	name    textinput.Model
	parent  int
	onName  bool
	active  bool
}

// NewCategoryForm creates an inactive form.
func NewCategoryForm(theme themes.Theme) CategoryForm {
	name := textinput.New()
	name.Placeholder = "Category name"
	name.CharLimit = 60
	name.Width = 30
	return CategoryForm{theme: theme, name: name, parent: -1}
}

// Start opens the form on draft. parents are the allowed parent choices; the
// draft's own category is never offered.
func (f *CategoryForm) Start(draft viewstate.CategoryDraft, parents []model.Category) tea.Cmd {
	f.draft = draft
	f.parents = slices.DeleteFunc(slices.Clone(parents), func(c model.Category) bool {
		return draft.ID != 0 && c.ID == draft.ID
	})
	f.parent = slices.IndexFunc(f.parents, func(c model.Category) bool {
		return draft.ParentID != 0 && c.ID == draft.ParentID
	})
	f.name.SetValue(draft.Name)
	f.name.CursorEnd()
	f.onName = true
	f.active = true
	return f.name.Focus()
}

// Close deactivates the form.
func (f *CategoryForm) Close() {
	f.active = false
	f.name.Blur()
}

// Active reports whether the form is open.
func (f CategoryForm) Active() bool {
	return f.active
}

// Draft returns the current content.
func (f CategoryForm) Draft() viewstate.CategoryDraft {
	draft := f.draft
	draft.Name = f.name.Value()
	draft.ParentID = 0
	if f.parent >= 0 && f.parent < len(f.parents) {
		draft.ParentID = f.parents[f.parent].ID
	}
	return draft
}

// Update handles keys while the form is open.
func (f CategoryForm) Update(msg tea.Msg) (CategoryForm, tea.Cmd) {
	if !f.active {
		return f, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "shift+tab", "up", "down":
			f.onName = !f.onName
			if f.onName {
				return f, f.name.Focus()
			}
			f.name.Blur()
			return f, nil
		case "enter":
			return f, send(CategorySubmittedMsg{Draft: f.Draft()})
		case "esc":
			return f, send(CancelledMsg{})
		}
		if !f.onName {
			f.parent = cycle(f.parent, len(f.parents), keyMsg.String(), true)
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.name, cmd = f.name.Update(msg)
	return f, cmd
}

// View renders the form.
func (f CategoryForm) View() string {
	title := "New " + f.draft.Type.Label() + " Category"
	if !f.draft.IsNew() {
		title = "Edit " + f.draft.Name
	}

	parent := f.theme.Faint.Render("None (top level)")
	if f.parent >= 0 && f.parent < len(f.parents) {
		parent = f.theme.Normal.Render(f.parents[f.parent].Name)
	}

	nameLabel, parentLabel := f.theme.FocusedLabel, f.theme.Label
	if !f.onName {
		nameLabel, parentLabel = f.theme.Label, f.theme.FocusedLabel
	}

	return f.theme.FocusedBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		f.theme.Title.Render(title),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, nameLabel.Render("Name"), f.name.View()),
		lipgloss.JoinHorizontal(lipgloss.Top, parentLabel.Render("Parent"), "‹ "+parent+" ›"),
	))
}
