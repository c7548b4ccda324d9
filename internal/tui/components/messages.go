package components

import (
	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/model"
	"github.com/Veraticus/ledger/internal/viewstate"
	tea "github.com/charmbracelet/bubbletea"
)

// ExpenseSubmittedMsg carries the entry form content when enter is pressed.
type ExpenseSubmittedMsg struct {
	Draft viewstate.ExpenseDraft
}

// FormTypeChangedMsg is sent when the entry form switches between expense and income.
type FormTypeChangedMsg struct {
	Type model.CategoryType
}

// RangeSubmittedMsg carries both bounds of the date range input.
type RangeSubmittedMsg struct {
	Start ledger.Date
	End   ledger.Date
}

// CategorySubmittedMsg carries the category form content.
type CategorySubmittedMsg struct {
	Draft viewstate.CategoryDraft
}

// ConfirmResultMsg answers a confirmation dialog.
type ConfirmResultMsg struct {
	Yes bool
}

// CancelledMsg is sent when a form is left with escape.
type CancelledMsg struct{}

// InvalidInputMsg reports input a component could not accept.
type InvalidInputMsg struct {
	Message string
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
