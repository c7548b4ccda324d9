package tui

import (
	"context"

	"github.com/Veraticus/ledger/internal/common"
	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/service"
	"github.com/Veraticus/ledger/internal/tui/components"
	"github.com/Veraticus/ledger/internal/tui/themes"
	"github.com/Veraticus/ledger/internal/viewstate"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen is one of the top-level pages.
type Screen int

// Screens.
const (
	ScreenDashboard Screen = iota
	ScreenCategories
)

type focus int

const (
	focusTable focus = iota
	focusForm
	focusRange
)

// Model holds the main TUI state. Screen state lives in the viewstate values;
// the components only mirror it for rendering and input.
type Model struct {
	ctx          context.Context
	backend      service.Backend
	categoryErr  error
	confirm      *components.Confirm
	onConfirm    func(Model) (Model, tea.Cmd)
	theme        themes.Theme
	config       Config
	keymap       KeyMap
	help         help.Model
	spinner      spinner.Model
	dashboard    viewstate.Dashboard
	browser      viewstate.CategoryBrowser
	table        components.TransactionTable
	form         components.ExpenseForm
	rangeInput   components.DateRangeInput
	tree         components.CategoryTree
	categoryForm components.CategoryForm
	screen       Screen
	focus        focus
	inflight     int
	width        int
	height       int
	quitting     bool
}

// New creates the TUI model.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Backend == nil {
		return Model{}, errNoBackend
	}
	return newModel(ctx, cfg), nil
}

func newModel(ctx context.Context, cfg Config) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	loc := cfg.Location
	now := cfg.Now()

	m := Model{
		ctx:          ctx,
		backend:      cfg.Backend,
		theme:        cfg.Theme,
		config:       cfg,
		keymap:       DefaultKeyMap(),
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(cfg.Theme.Primary))),
		dashboard:    viewstate.NewDashboard(ledger.Today(now, loc), loc),
		browser:      viewstate.NewCategoryBrowser(),
		table:        components.NewTransactionTable(cfg.Theme, loc),
		form:         components.NewExpenseForm(cfg.Theme, viewstate.NewExpenseDraft(now, loc, cfg.Currency)),
		rangeInput:   components.NewDateRangeInput(cfg.Theme),
		tree:         components.NewCategoryTree(cfg.Theme),
		categoryForm: components.NewCategoryForm(cfg.Theme),
		width:        cfg.Width,
		height:       cfg.Height,
		inflight:     2,
	}
	m.help.ShowAll = cfg.ShowHelp
	m.syncDashboard()
	m.syncBrowser()
	m.handleResize()
	return m
}

// Init loads the dashboard snapshot and the category screen.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.loadSnapshot(m.dashboard.Request(), m.dashboard.CategoryRequest()),
		m.loadBrowserCategories(m.browser.Request()),
	}
	if m.config.EnableAnimations {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		if !m.config.EnableAnimations {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case snapshotLoadedMsg:
		m.inflight = max(0, m.inflight-1)
		m.dashboard = m.dashboard.Apply(msg.transactions).Apply(msg.categories)
		m.syncDashboard()
		return m, nil

	case transactionsLoadedMsg:
		m.inflight = max(0, m.inflight-1)
		return m.applyDashboard(msg.event)

	case formCategoriesLoadedMsg:
		m.inflight = max(0, m.inflight-1)
		return m.applyDashboard(msg.event)

	case browserCategoriesLoadedMsg:
		m.inflight = max(0, m.inflight-1)
		return m.applyBrowser(msg.event)

	case transactionCreatedMsg:
		m.form.Reset(m.form.Draft().Reset(m.config.Now(), m.config.Location))
		next, cmd := m.applyDashboard(viewstate.TransactionCreated{Transaction: msg.transaction})
		reload := next.reloadTransactions()
		return next, tea.Batch(cmd, reload)

	case transactionDeletedMsg:
		next, cmd := m.applyDashboard(viewstate.TransactionDeleted{ID: msg.id})
		reload := next.reloadTransactions()
		return next, tea.Batch(cmd, reload)

	case categorySavedMsg:
		m.categoryForm.Close()
		next, cmd := m.applyBrowser(viewstate.CategorySaved{Category: msg.category, Created: msg.created})
		reload := next.reloadCategories()
		return next, tea.Batch(cmd, reload)

	case categoryDeletedMsg:
		next, cmd := m.applyBrowser(viewstate.CategoryDeleted{ID: msg.id})
		reload := next.reloadCategories()
		return next, tea.Batch(cmd, reload)

	case operationFailedMsg:
		ev := viewstate.OperationFailed{Message: common.UserMessage(msg.err)}
		if msg.screen == ScreenCategories {
			return m.applyBrowser(ev)
		}
		return m.applyDashboard(ev)

	case components.ExpenseSubmittedMsg:
		return m.submitExpense(msg.Draft)

	case components.FormTypeChangedMsg:
		return m.applyDashboard(viewstate.FormTypeSelected{Type: msg.Type})

	case components.RangeSubmittedMsg:
		m.blurInputs()
		m.focus = focusTable
		m.table.Focus()
		generation := m.dashboard.Generation
		m.dashboard = m.dashboard.
			Apply(viewstate.StartDateEdited{Date: msg.Start}).
			Apply(viewstate.EndDateEdited{Date: msg.End})
		m.syncDashboard()
		if m.dashboard.Generation == generation {
			return m, nil
		}
		reload := m.reloadTransactions()
		return m, reload

	case components.CategorySubmittedMsg:
		return m.submitCategory(msg.Draft)

	case components.ConfirmResultMsg:
		action := m.onConfirm
		m.confirm = nil
		m.onConfirm = nil
		if msg.Yes && action != nil {
			return action(m)
		}
		return m, nil

	case components.CancelledMsg:
		if m.screen == ScreenCategories {
			m.categoryForm.Close()
			return m.applyBrowser(viewstate.EditCancelled{})
		}
		m.blurInputs()
		m.focus = focusTable
		m.table.Focus()
		return m, nil

	case components.InvalidInputMsg:
		if m.screen == ScreenCategories {
			return m.applyBrowser(viewstate.OperationFailed{Message: msg.Message})
		}
		return m.applyDashboard(viewstate.OperationFailed{Message: msg.Message})
	}

	return m.forward(msg)
}

// forward passes other messages, such as cursor blinks, to the inputs.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.form, cmd = m.form.Update(msg)
	cmds = append(cmds, cmd)
	m.rangeInput, cmd = m.rangeInput.Update(msg)
	cmds = append(cmds, cmd)
	m.categoryForm, cmd = m.categoryForm.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.confirm != nil {
		c, cmd := m.confirm.Update(msg)
		m.confirm = &c
		return m, cmd
	}

	// Inputs take every key while focused.
	var cmd tea.Cmd
	switch {
	case m.screen == ScreenDashboard && m.focus == focusForm:
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	case m.screen == ScreenDashboard && m.focus == focusRange:
		m.rangeInput, cmd = m.rangeInput.Update(msg)
		return m, cmd
	case m.screen == ScreenCategories && m.categoryForm.Active():
		m.categoryForm, cmd = m.categoryForm.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.handleResize()
		return m, nil
	case key.Matches(msg, m.keymap.SwitchScreen):
		if m.screen == ScreenDashboard {
			m.screen = ScreenCategories
		} else {
			m.screen = ScreenDashboard
		}
		return m, nil
	case key.Matches(msg, m.keymap.Refresh):
		var cmd tea.Cmd
		if m.screen == ScreenCategories {
			cmd = m.reloadCategories()
		} else {
			cmd = tea.Batch(m.reloadTransactions(), m.reloadFormCategories())
		}
		return m, cmd
	}

	if m.screen == ScreenCategories {
		return m.handleCategoryKey(msg)
	}
	return m.handleDashboardKey(msg)
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.QuickFilter):
		i := int(msg.Runes[0] - '1')
		if i < 0 || i >= len(ledger.QuickFilters) {
			return m, nil
		}
		today := ledger.Today(m.config.Now(), m.config.Location)
		return m.applyDashboard(viewstate.QuickFilterSelected{Filter: ledger.QuickFilters[i], Today: today})

	case key.Matches(msg, m.keymap.EditRange):
		m.focus = focusRange
		m.table.Blur()
		cmd := m.rangeInput.Focus(m.dashboard.Range)
		return m, cmd

	case key.Matches(msg, m.keymap.NewEntry):
		m.focus = focusForm
		m.table.Blur()
		cmd := m.form.Focus()
		return m, cmd

	case key.Matches(msg, m.keymap.SortMoment):
		return m.applyDashboard(viewstate.SortSelected{Key: ledger.SortMoment})
	case key.Matches(msg, m.keymap.SortSum):
		return m.applyDashboard(viewstate.SortSelected{Key: ledger.SortSum})
	case key.Matches(msg, m.keymap.SortText):
		return m.applyDashboard(viewstate.SortSelected{Key: ledger.SortDescription})
	case key.Matches(msg, m.keymap.SortCurrency):
		return m.applyDashboard(viewstate.SortSelected{Key: ledger.SortCurrency})

	case key.Matches(msg, m.keymap.Delete):
		txn, ok := m.table.Selected()
		if !ok || m.dashboard.Busy {
			return m, nil
		}
		id := txn.ID
		m.ask("Delete this "+txn.Type.Label()+"?", func(m Model) (Model, tea.Cmd) {
			m.dashboard = m.dashboard.Apply(viewstate.SubmitStarted{})
			return m, m.deleteTransaction(id)
		})
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ToggleType):
		return m.applyBrowser(viewstate.TypeSelected{Type: m.browser.Type.Toggle()})

	case key.Matches(msg, m.keymap.NewCategory):
		draft := viewstate.CategoryDraft{Type: m.browser.Type}
		cmd := m.categoryForm.Start(draft, m.browser.ParentOptions())
		return m, cmd

	case key.Matches(msg, m.keymap.Edit):
		c, ok := m.tree.Selected()
		if !ok {
			return m, nil
		}
		m.browser = m.browser.Apply(viewstate.EditStarted{ID: c.ID})
		if m.browser.Editing == nil {
			return m, nil
		}
		cmd := m.categoryForm.Start(*m.browser.Editing, m.browser.ParentOptions())
		return m, cmd

	case key.Matches(msg, m.keymap.Delete):
		c, ok := m.tree.Selected()
		if !ok || m.browser.Busy {
			return m, nil
		}
		id := c.ID
		m.ask("Delete category "+c.Name+"?", func(m Model) (Model, tea.Cmd) {
			m.browser = m.browser.Apply(viewstate.SubmitStarted{})
			return m, m.deleteCategory(id)
		})
		return m, nil
	}

	var cmd tea.Cmd
	m.tree, cmd = m.tree.Update(msg)
	return m, cmd
}

func (m Model) submitExpense(draft viewstate.ExpenseDraft) (tea.Model, tea.Cmd) {
	if m.dashboard.Busy {
		return m, nil
	}
	in, err := draft.Validate(m.config.Location)
	if err != nil {
		return m.applyDashboard(viewstate.OperationFailed{Message: common.UserMessage(err)})
	}
	m.dashboard = m.dashboard.Apply(viewstate.SubmitStarted{})
	return m, m.createTransaction(in)
}

func (m Model) submitCategory(draft viewstate.CategoryDraft) (tea.Model, tea.Cmd) {
	if m.browser.Busy {
		return m, nil
	}
	in, err := draft.Validate()
	if err != nil {
		return m.applyBrowser(viewstate.OperationFailed{Message: common.UserMessage(err)})
	}
	m.browser = m.browser.Apply(viewstate.SubmitStarted{})
	return m, m.saveCategory(draft.ID, in)
}

// applyDashboard applies ev and issues the loads its new request tags need.
func (m Model) applyDashboard(ev viewstate.Event) (Model, tea.Cmd) {
	prev := m.dashboard
	m.dashboard = m.dashboard.Apply(ev)

	var cmds []tea.Cmd
	if m.dashboard.Generation != prev.Generation {
		cmds = append(cmds, m.reloadTransactions())
	}
	if m.dashboard.CategoryGeneration != prev.CategoryGeneration {
		cmds = append(cmds, m.reloadFormCategories())
	}
	m.syncDashboard()
	return m, tea.Batch(cmds...)
}

// applyBrowser applies ev to the category screen.
func (m Model) applyBrowser(ev viewstate.Event) (Model, tea.Cmd) {
	prev := m.browser
	m.browser = m.browser.Apply(ev)

	var cmd tea.Cmd
	if m.browser.Generation != prev.Generation {
		m.categoryForm.Close()
		cmd = m.reloadBrowserCategories()
	}
	m.syncBrowser()
	return m, cmd
}

func (m *Model) reloadTransactions() tea.Cmd {
	m.inflight++
	return m.loadTransactions(m.dashboard.Request())
}

func (m *Model) reloadFormCategories() tea.Cmd {
	m.inflight++
	return m.loadFormCategories(m.dashboard.CategoryRequest())
}

func (m *Model) reloadBrowserCategories() tea.Cmd {
	m.inflight++
	return m.loadBrowserCategories(m.browser.Request())
}

// reloadCategories refreshes both category consumers after a change.
func (m *Model) reloadCategories() tea.Cmd {
	return tea.Batch(m.reloadBrowserCategories(), m.reloadFormCategories())
}

func (m *Model) ask(prompt string, action func(Model) (Model, tea.Cmd)) {
	c := components.NewConfirm(m.theme, prompt)
	m.confirm = &c
	m.onConfirm = action
}

func (m *Model) blurInputs() {
	m.form.Blur()
	m.rangeInput.Blur()
}

// syncDashboard copies the dashboard state into its components.
func (m *Model) syncDashboard() {
	m.table.SetSort(m.dashboard.Sort)
	m.table.SetTransactions(m.dashboard.Visible(), m.dashboard.CategoryLabel)

	options, err := m.dashboard.CategoryOptions()
	if err != nil {
		common.LogWarn("form categories are malformed", common.Fields{"error": err.Error()})
		options = nil
	}
	m.categoryErr = err
	m.form.SetOptions(options)
}

// syncBrowser copies the category screen state into its components.
func (m *Model) syncBrowser() {
	m.tree.SetEntries(m.browser.Tree())
	if m.browser.Editing == nil && m.categoryForm.Active() && !m.categoryForm.Draft().IsNew() {
		m.categoryForm.Close()
	}
}

func (m *Model) handleResize() {
	reserved := 12
	if m.help.ShowAll {
		reserved += 4
	}
	bodyHeight := max(6, m.height-reserved)

	tableWidth := m.width
	if m.wide() {
		tableWidth = m.width - formWidth - 2
	}
	m.table.Resize(tableWidth, bodyHeight)
	m.form.SetWidth(formWidth - 4)
	m.tree.SetHeight(bodyHeight)
	m.help.Width = m.width
}

const formWidth = 46

func (m Model) wide() bool {
	return m.width >= 110
}
