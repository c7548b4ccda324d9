package components

import (
	"strings"

	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DateRangeInput edits the start and end dates of a custom range.
type DateRangeInput struct {
	theme   themes.Theme
	start   textinput.Model
	end     textinput.Model
	onEnd   bool
	focused bool
}

// NewDateRangeInput creates an unfocused input.
func NewDateRangeInput(theme themes.Theme) DateRangeInput {
	newInput := func() textinput.Model {
		in := textinput.New()
		in.Placeholder = "YYYY-MM-DD"
		in.CharLimit = 10
		in.Width = 10
		return in
	}
	return DateRangeInput{
		theme: theme,
		start: newInput(),
		end:   newInput(),
	}
}

// Focus starts editing r, cursor on the start date.
func (d *DateRangeInput) Focus(r ledger.DateRange) tea.Cmd {
	d.start.SetValue(r.Start.String())
	d.end.SetValue(r.End.String())
	d.focused = true
	d.onEnd = false
	d.end.Blur()
	return d.start.Focus()
}

// Blur stops editing.
func (d *DateRangeInput) Blur() {
	d.focused = false
	d.start.Blur()
	d.end.Blur()
}

// Focused reports whether the input receives keys.
func (d DateRangeInput) Focused() bool {
	return d.focused
}

// Update handles keys while focused.
func (d DateRangeInput) Update(msg tea.Msg) (DateRangeInput, tea.Cmd) {
	if !d.focused {
		return d, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "shift+tab":
			d.onEnd = !d.onEnd
			if d.onEnd {
				d.start.Blur()
				return d, d.end.Focus()
			}
			d.end.Blur()
			return d, d.start.Focus()
		case "esc":
			return d, send(CancelledMsg{})
		case "enter":
			return d, d.submit()
		}
	}

	var cmd tea.Cmd
	if d.onEnd {
		d.end, cmd = d.end.Update(msg)
	} else {
		d.start, cmd = d.start.Update(msg)
	}
	return d, cmd
}

func (d DateRangeInput) submit() tea.Cmd {
	start, err := ledger.ParseDate(strings.TrimSpace(d.start.Value()))
	if err != nil {
		return send(InvalidInputMsg{Message: "Start date must look like 2024-06-13"})
	}
	end, err := ledger.ParseDate(strings.TrimSpace(d.end.Value()))
	if err != nil {
		return send(InvalidInputMsg{Message: "End date must look like 2024-06-13"})
	}
	return send(RangeSubmittedMsg{Start: start, End: end})
}

// View renders both inputs on one line.
func (d DateRangeInput) View() string {
	label := func(text string, active bool) string {
		if d.focused && active {
			return d.theme.FocusedLabel.UnsetWidth().Render(text + " ")
		}
		return d.theme.Label.UnsetWidth().Render(text + " ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		label("From", !d.onEnd), d.start.View(),
		"  ",
		label("To", d.onEnd), d.end.View(),
	)
}
