// Package cli provides styled terminal output and interactive prompts for
// the non-TUI commands.
package cli

import (
	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main accent.
	PrimaryColor = lipgloss.Color("#7DCFFF")
	// IncomeColor marks money coming in.
	IncomeColor = lipgloss.Color("#9ECE6A")
	// ExpenseColor marks money going out.
	ExpenseColor = lipgloss.Color("#F7768E")
	// WarningColor marks confirmations and caution messages.
	WarningColor = lipgloss.Color("#E0AF68")
	// SubtleColor marks less prominent text.
	SubtleColor = lipgloss.Color("#565F89")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(IncomeColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ExpenseColor)

	// WarningStyle formats warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// SubtleStyle formats secondary text such as ids and empty placeholders.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// IncomeStyle formats income amounts.
	IncomeStyle = lipgloss.NewStyle().
			Foreground(IncomeColor)

	// ExpenseStyle formats expense amounts.
	ExpenseStyle = lipgloss.NewStyle().
			Foreground(ExpenseColor)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(WarningColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠"
	LedgerIcon  = "💰"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(LedgerIcon + " " + title)
}

// FormatPrompt formats a yes/no question.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " [y/N] ")
}

// FormatSigned renders a transaction amount with its sign, colored by type.
func FormatSigned(txn model.Transaction) string {
	text := ledger.FormatSigned(txn)
	if txn.IsIncome() {
		return IncomeStyle.Render(text)
	}
	return ExpenseStyle.Render(text)
}

// StyleForType returns the amount style for a category type.
func StyleForType(t model.CategoryType) lipgloss.Style {
	if t == model.CategoryTypeIncome {
		return IncomeStyle
	}
	return ExpenseStyle
}
