package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the shortcuts active while no input has focus.
type KeyMap struct {
	// Navigation
	Up           key.Binding
	Down         key.Binding
	SwitchScreen key.Binding

	// Dashboard
	QuickFilter  key.Binding
	EditRange    key.Binding
	NewEntry     key.Binding
	SortMoment   key.Binding
	SortSum      key.Binding
	SortText     key.Binding
	SortCurrency key.Binding

	// Categories
	NewCategory key.Binding
	Edit        key.Binding
	ToggleType  key.Binding

	// Shared
	Delete  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		SwitchScreen: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch screen"),
		),
		QuickFilter: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "quick filter"),
		),
		EditRange: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "date range"),
		),
		NewEntry: key.NewBinding(
			key.WithKeys("n", "a"),
			key.WithHelp("n", "new entry"),
		),
		SortMoment: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "sort by date"),
		),
		SortSum: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "sort by amount"),
		),
		SortText: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "sort by description"),
		),
		SortCurrency: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "sort by currency"),
		),
		NewCategory: key.NewBinding(
			key.WithKeys("n", "a"),
			key.WithHelp("n", "new category"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		ToggleType: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "expense/income"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r", "R"),
			key.WithHelp("R", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// dashboardKeys is the help.KeyMap shown on the dashboard.
type dashboardKeys struct {
	KeyMap
}

// ShortHelp returns the bindings shown in the footer.
func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NewEntry, k.QuickFilter, k.EditRange, k.Delete, k.SwitchScreen, k.Help, k.Quit}
}

// FullHelp returns all dashboard bindings.
func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NewEntry, k.Delete},
		{k.QuickFilter, k.EditRange, k.Refresh},
		{k.SortMoment, k.SortSum, k.SortText, k.SortCurrency},
		{k.SwitchScreen, k.Help, k.Quit},
	}
}

// categoryKeys is the help.KeyMap shown on the category screen.
type categoryKeys struct {
	KeyMap
}

// ShortHelp returns the bindings shown in the footer.
func (k categoryKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NewCategory, k.Edit, k.Delete, k.ToggleType, k.SwitchScreen, k.Help, k.Quit}
}

// FullHelp returns all category bindings.
func (k categoryKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NewCategory, k.Edit, k.Delete},
		{k.ToggleType, k.Refresh},
		{k.SwitchScreen, k.Help, k.Quit},
	}
}
