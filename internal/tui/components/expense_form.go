package components

import (
	"slices"
	"strings"

	"github.com/Veraticus/ledger/internal/category"
	"github.com/Veraticus/ledger/internal/model"
	"github.com/Veraticus/ledger/internal/tui/themes"
	"github.com/Veraticus/ledger/internal/viewstate"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type expenseField int

const (
	fieldType expenseField = iota
	fieldAmount
	fieldCurrency
	fieldMoment
	fieldDescription
	fieldCategory
	expenseFieldCount
)

// ExpenseForm is the entry form for new expenses and incomes.
type ExpenseForm struct {
	theme       themes.Theme
	typ         model.CategoryType
	currencies  []string
	options     []category.Entry
	amount      textinput.Model
	moment      textinput.Model
	description textinput.Model
	currency    int
	category    int
	// pending is a drafted category id waiting for its options to load.
	pending int64
	focus   expenseField
	focused bool
	width   int
}

// NewExpenseForm creates a form showing draft.
func NewExpenseForm(theme themes.Theme, draft viewstate.ExpenseDraft) ExpenseForm {
	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.CharLimit = 18

	moment := textinput.New()
	moment.Placeholder = viewstate.MomentLayout
	moment.CharLimit = len(viewstate.MomentLayout)

	description := textinput.New()
	description.Placeholder = "What was it for?"
	description.CharLimit = 120

	f := ExpenseForm{
		theme:       theme,
		amount:      amount,
		moment:      moment,
		description: description,
		category:    -1,
		width:       40,
	}
	f.Reset(draft)
	return f
}

// Reset replaces the form content with draft, keeping the loaded options.
func (f *ExpenseForm) Reset(draft viewstate.ExpenseDraft) {
	f.typ = draft.Type
	if f.typ == "" {
		f.typ = model.CategoryTypeExpense
	}
	f.amount.SetValue(draft.Sum)
	f.moment.SetValue(draft.Moment)
	f.description.SetValue(draft.Description)

	f.currencies = slices.Clone(model.Currencies)
	currency := strings.ToUpper(draft.Currency)
	f.currency = slices.Index(f.currencies, currency)
	if f.currency < 0 && currency != "" {
		f.currencies = append(f.currencies, currency)
		f.currency = len(f.currencies) - 1
	}
	if f.currency < 0 {
		f.currency = 0
	}

	f.category = f.indexOf(draft.CategoryID)
	f.pending = 0
	if f.category < 0 {
		f.pending = draft.CategoryID
	}
}

// SetOptions replaces the category choices. The selection survives when the
// chosen category is still offered.
func (f *ExpenseForm) SetOptions(entries []category.Entry) {
	selected := f.selectedCategoryID()
	if selected == 0 {
		selected = f.pending
	}
	f.options = entries
	f.category = f.indexOf(selected)
	if f.category >= 0 {
		f.pending = 0
	}
}

// Draft returns the current content.
func (f ExpenseForm) Draft() viewstate.ExpenseDraft {
	draft := viewstate.ExpenseDraft{
		Sum:         f.amount.Value(),
		Moment:      f.moment.Value(),
		Description: f.description.Value(),
		Type:        f.typ,
		CategoryID:  f.selectedCategoryID(),
	}
	if f.currency >= 0 && f.currency < len(f.currencies) {
		draft.Currency = f.currencies[f.currency]
	}
	return draft
}

// Type returns the selected transaction type.
func (f ExpenseForm) Type() model.CategoryType {
	return f.typ
}

// Focus starts editing at the amount field.
func (f *ExpenseForm) Focus() tea.Cmd {
	f.focused = true
	f.focus = fieldAmount
	return f.focusField()
}

// Blur stops editing.
func (f *ExpenseForm) Blur() {
	f.focused = false
	f.amount.Blur()
	f.moment.Blur()
	f.description.Blur()
}

// Focused reports whether the form receives keys.
func (f ExpenseForm) Focused() bool {
	return f.focused
}

// SetWidth sets the rendered width.
func (f *ExpenseForm) SetWidth(width int) {
	f.width = width
	inputWidth := max(10, width-18)
	f.amount.Width = inputWidth
	f.moment.Width = inputWidth
	f.description.Width = inputWidth
}

// Update handles keys while the form is focused.
func (f ExpenseForm) Update(msg tea.Msg) (ExpenseForm, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateInput(msg)
	}

	switch keyMsg.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % expenseFieldCount
		return f, f.focusField()
	case "shift+tab", "up":
		f.focus = (f.focus + expenseFieldCount - 1) % expenseFieldCount
		return f, f.focusField()
	case "enter":
		return f, send(ExpenseSubmittedMsg{Draft: f.Draft()})
	case "esc":
		return f, send(CancelledMsg{})
	}

	switch f.focus {
	case fieldType:
		switch keyMsg.String() {
		case "left", "right", " ", "h", "l":
			f.typ = f.typ.Toggle()
			f.options = nil
			f.category = -1
			f.pending = 0
			return f, send(FormTypeChangedMsg{Type: f.typ})
		}
		return f, nil
	case fieldCurrency:
		f.currency = cycle(f.currency, len(f.currencies), keyMsg.String(), false)
		return f, nil
	case fieldCategory:
		f.category = cycle(f.category, len(f.options), keyMsg.String(), true)
		f.pending = 0
		return f, nil
	}
	return f.updateInput(msg)
}

func (f ExpenseForm) updateInput(msg tea.Msg) (ExpenseForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldAmount:
		f.amount, cmd = f.amount.Update(msg)
	case fieldMoment:
		f.moment, cmd = f.moment.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return f, cmd
}

// View renders the form.
func (f ExpenseForm) View() string {
	typeChoice := func(t model.CategoryType) string {
		if t == f.typ {
			return f.theme.ActiveTab.Render(t.Label())
		}
		return f.theme.Tab.Render(t.Label())
	}

	currency := ""
	if f.currency >= 0 && f.currency < len(f.currencies) {
		currency = f.currencies[f.currency]
	}

	categoryLabel := f.theme.Faint.Render("Select a category")
	switch {
	case f.category >= 0 && f.category < len(f.options):
		categoryLabel = f.theme.Normal.Render(strings.TrimSpace(f.options[f.category].Label()))
	case len(f.options) == 0:
		categoryLabel = f.theme.Faint.Render("No " + strings.ToLower(f.typ.Label()) + " categories")
	}

	rows := []string{
		f.row(fieldType, "Type", typeChoice(model.CategoryTypeExpense)+typeChoice(model.CategoryTypeIncome)),
		f.row(fieldAmount, "Amount", f.amount.View()),
		f.row(fieldCurrency, "Currency", "‹ "+currency+" ›"),
		f.row(fieldMoment, "Date", f.moment.View()),
		f.row(fieldDescription, "Description", f.description.View()),
		f.row(fieldCategory, "Category", "‹ "+categoryLabel+" ›"),
	}

	title := f.theme.Title.Render("New " + f.typ.Label())
	box := f.theme.Box
	if f.focused {
		box = f.theme.FocusedBox
	}
	return box.Width(f.width).Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{title, ""}, rows...)...))
}

func (f ExpenseForm) row(field expenseField, label, value string) string {
	style := f.theme.Label
	if f.focused && f.focus == field {
		style = f.theme.FocusedLabel
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, style.Render(label), value)
}

func (f *ExpenseForm) focusField() tea.Cmd {
	f.amount.Blur()
	f.moment.Blur()
	f.description.Blur()
	switch f.focus {
	case fieldAmount:
		return f.amount.Focus()
	case fieldMoment:
		return f.moment.Focus()
	case fieldDescription:
		return f.description.Focus()
	}
	return nil
}

func (f ExpenseForm) selectedCategoryID() int64 {
	if f.category < 0 || f.category >= len(f.options) {
		return 0
	}
	return f.options[f.category].Category.ID
}

func (f ExpenseForm) indexOf(id int64) int {
	if id == 0 {
		return -1
	}
	return slices.IndexFunc(f.options, func(e category.Entry) bool {
		return e.Category.ID == id
	})
}

// cycle moves a selection index left or right. With allowNone the sequence
// includes -1 before the first option.
func cycle(current, count int, key string, allowNone bool) int {
	if count == 0 {
		return -1
	}
	low := 0
	if allowNone {
		low = -1
	}
	span := count - low
	switch key {
	case "right", "l", " ":
		return (current-low+1)%span + low
	case "left", "h":
		return (current-low+span-1)%span + low
	}
	return current
}
