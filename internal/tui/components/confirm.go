package components

import (
	"github.com/Veraticus/ledger/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Confirm asks a yes/no question before a destructive action.
type Confirm struct {
	theme  themes.Theme
	prompt string
}

// NewConfirm creates a dialog asking prompt.
func NewConfirm(theme themes.Theme, prompt string) Confirm {
	return Confirm{theme: theme, prompt: prompt}
}

// Prompt returns the question.
func (c Confirm) Prompt() string {
	return c.prompt
}

// Update answers on y, n or escape. Other keys are ignored.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		return c, send(ConfirmResultMsg{Yes: true})
	case "n", "N", "esc":
		return c, send(ConfirmResultMsg{Yes: false})
	}
	return c, nil
}

// View renders the dialog.
func (c Confirm) View() string {
	return c.theme.FocusedBox.
		BorderForeground(c.theme.Error).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Center,
			c.theme.Bold.Render(c.prompt),
			"",
			c.theme.Faint.Render("y confirm · n cancel"),
		))
}
