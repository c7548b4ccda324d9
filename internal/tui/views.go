package tui

import (
	"strings"

	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/model"
	"github.com/Veraticus/ledger/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.screen == ScreenCategories {
		body = m.renderCategories()
	} else {
		body = m.renderDashboard()
	}
	if m.confirm != nil {
		body = lipgloss.Place(m.width, lipgloss.Height(body), lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		body,
		"",
		m.renderStatus(),
		m.renderHelp(),
	)
}

func (m Model) renderHeader() string {
	tab := func(label string, screen Screen) string {
		if m.screen == screen {
			return m.theme.ActiveTab.Render(label)
		}
		return m.theme.Tab.Render(label)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.Title.Render("Ledger"),
		"  ",
		tab("Expenses", ScreenDashboard),
		tab("Categories", ScreenCategories),
	)
	if m.inflight > 0 {
		loading := m.theme.Faint.Render(" Loading...")
		if m.config.EnableAnimations {
			loading = " " + m.spinner.View() + loading
		}
		header += loading
	}
	return header
}

func (m Model) renderDashboard() string {
	filters := make([]string, 0, len(ledger.QuickFilters)+1)
	for i, f := range ledger.QuickFilters {
		label := string(rune('1'+i)) + " " + f.Label()
		if m.dashboard.QuickFilter == f {
			filters = append(filters, m.theme.ActiveTab.Render(label))
		} else {
			filters = append(filters, m.theme.Tab.Render(label))
		}
	}
	if m.dashboard.QuickFilter == ledger.QuickCustom {
		filters = append(filters, m.theme.ActiveTab.Render(ledger.QuickCustom.Label()))
	}
	filterBar := lipgloss.JoinHorizontal(lipgloss.Top, filters...)

	rangeLine := m.theme.Subtitle.Render(m.dashboard.Range.String())
	if m.focus == focusRange {
		rangeLine = m.rangeInput.View()
	}

	list := lipgloss.JoinVertical(lipgloss.Left,
		filterBar,
		rangeLine,
		"",
		m.table.View(),
		"",
		components.RenderTotals(m.theme, m.dashboard.Totals()),
	)

	if m.wide() {
		return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.form.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, list, "", m.form.View())
}

func (m Model) renderCategories() string {
	tabs := make([]string, 0, len(model.CategoryTypes))
	for _, t := range model.CategoryTypes {
		if m.browser.Type == t {
			tabs = append(tabs, m.theme.ActiveTab.Render(t.Label()))
		} else {
			tabs = append(tabs, m.theme.Tab.Render(t.Label()))
		}
	}

	list := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
		m.theme.Box.Render(m.tree.View()),
	)
	if !m.categoryForm.Active() {
		return list
	}
	if m.wide() {
		return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.categoryForm.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, list, "", m.categoryForm.View())
}

func (m Model) renderStatus() string {
	message, loadErr := m.dashboard.Message, m.dashboard.LoadError
	if m.screen == ScreenCategories {
		message, loadErr = m.browser.Message, ""
	}

	var lines []string
	if message != "" {
		style := m.theme.StatusSuccess
		if strings.HasPrefix(message, "Error") {
			style = m.theme.StatusError
		}
		lines = append(lines, style.Render(message))
	}
	if loadErr != "" {
		lines = append(lines, m.theme.StatusWarning.Render("Showing last loaded data: "+loadErr))
	}
	if m.screen == ScreenDashboard && m.categoryErr != nil {
		lines = append(lines, m.theme.StatusWarning.Render("Categories unavailable: "+m.categoryErr.Error()))
	}
	if m.busy() {
		lines = append(lines, m.theme.StatusInfo.Render("Saving..."))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHelp() string {
	if m.screen == ScreenCategories {
		return m.help.View(categoryKeys{m.keymap})
	}
	return m.help.View(dashboardKeys{m.keymap})
}

func (m Model) busy() bool {
	if m.screen == ScreenCategories {
		return m.browser.Busy
	}
	return m.dashboard.Busy
}
