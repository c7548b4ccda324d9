package components

import (
	"strings"

	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// RenderTotals renders the per-currency totals of the visible transactions.
func RenderTotals(theme themes.Theme, totals ledger.Totals) string {
	title := theme.Title.Render("Total for Selected Period")
	if totals.IsEmpty() {
		return lipgloss.JoinVertical(lipgloss.Left, title, theme.Faint.Render("No transactions"))
	}

	lines := []string{title}
	if currencies := totals.ExpenseCurrencies(); len(currencies) > 0 {
		parts := make([]string, 0, len(currencies))
		for _, c := range currencies {
			parts = append(parts, theme.Expense.Render(ledger.FormatAmount(totals.Expenses[c])+" "+c))
		}
		lines = append(lines, theme.Label.Render("Expenses")+strings.Join(parts, "  "))
	}
	if currencies := totals.IncomeCurrencies(); len(currencies) > 0 {
		parts := make([]string, 0, len(currencies))
		for _, c := range currencies {
			parts = append(parts, theme.Income.Render(ledger.FormatAmount(totals.Incomes[c])+" "+c))
		}
		lines = append(lines, theme.Label.Render("Incomes")+strings.Join(parts, "  "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
