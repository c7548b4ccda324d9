package components

import (
	"strings"
	"time"

	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/model"
	"github.com/Veraticus/ledger/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DateLayout is how moments are shown in the table.
const DateLayout = "2006-01-02 15:04"

// column order matches the sort keys offered by the header.
var tableColumns = []struct {
	title string
	key   ledger.SortKey
	share float64
	min   int
}{
	{title: "Date", key: ledger.SortMoment, share: 0.20, min: 16},
	{title: "Description", key: ledger.SortDescription, share: 0.34, min: 14},
	{title: "Category", key: "", share: 0.26, min: 12},
	{title: "Amount", key: ledger.SortSum, share: 0.12, min: 10},
	{title: "Currency", key: ledger.SortCurrency, share: 0.08, min: 8},
}

// TransactionTable shows the visible transactions with sort indicators in the header.
type TransactionTable struct {
	location     *time.Location
	theme        themes.Theme
	transactions []model.Transaction
	table        table.Model
	sort         ledger.Sort
	width        int
	height       int
}

// NewTransactionTable creates an empty table rendering moments in loc.
func NewTransactionTable(theme themes.Theme, loc *time.Location) TransactionTable {
	if loc == nil {
		loc = time.Local
	}

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := TransactionTable{
		location: loc,
		theme:    theme,
		table:    t,
		sort:     ledger.DefaultSort(),
		width:    80,
		height:   12,
	}
	m.updateColumns()
	return m
}

// SetTransactions replaces the rows. label resolves the category column.
func (m *TransactionTable) SetTransactions(transactions []model.Transaction, label func(model.Transaction) string) {
	m.transactions = transactions
	rows := make([]table.Row, 0, len(transactions))
	for _, txn := range transactions {
		description := txn.Description
		if strings.TrimSpace(description) == "" {
			description = "-"
		}
		rows = append(rows, table.Row{
			txn.Moment.In(m.location).Format(DateLayout),
			truncate(description, m.columnWidth(1)),
			truncate(label(txn), m.columnWidth(2)),
			ledger.FormatSigned(txn),
			txn.Currency,
		})
	}
	m.table.SetRows(rows)
	// An empty table leaves the cursor at -1; pull it back once rows exist.
	if c := m.table.Cursor(); len(rows) > 0 && (c < 0 || c >= len(rows)) {
		m.table.SetCursor(min(max(c, 0), len(rows)-1))
	}
}

// SetSort updates the header indicators.
func (m *TransactionTable) SetSort(s ledger.Sort) {
	m.sort = s
	m.updateColumns()
}

// Selected returns the transaction under the cursor.
func (m TransactionTable) Selected() (model.Transaction, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.transactions) {
		return model.Transaction{}, false
	}
	return m.transactions[i], true
}

// Len returns the number of rows.
func (m TransactionTable) Len() int {
	return len(m.transactions)
}

// Focus gives the table keyboard navigation.
func (m *TransactionTable) Focus() {
	m.table.Focus()
}

// Blur stops keyboard navigation.
func (m *TransactionTable) Blur() {
	m.table.Blur()
}

// Focused reports whether the table receives keys.
func (m TransactionTable) Focused() bool {
	return m.table.Focused()
}

// Update handles navigation keys.
func (m TransactionTable) Update(msg tea.Msg) (TransactionTable, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table, or a placeholder when there is nothing to show.
func (m TransactionTable) View() string {
	if len(m.transactions) == 0 {
		header := m.table.View()
		if i := strings.Index(header, "\n"); i >= 0 {
			header = header[:i]
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			m.theme.Faint.Render("No transactions for this period"),
		)
	}
	return m.table.View()
}

// Resize fits the table into width by height cells.
func (m *TransactionTable) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(3, height-2))
	m.updateColumns()
}

func (m *TransactionTable) updateColumns() {
	available := max(m.width-4, 60)
	columns := make([]table.Column, len(tableColumns))
	for i, col := range tableColumns {
		title := col.title
		if col.key != "" {
			if glyph := m.sort.Indicator(col.key); glyph != "" {
				title += " " + glyph
			}
		}
		columns[i] = table.Column{
			Title: title,
			Width: max(col.min, int(float64(available)*col.share)),
		}
	}
	m.table.SetColumns(columns)
}

func (m TransactionTable) columnWidth(i int) int {
	cols := m.table.Columns()
	if i >= len(cols) {
		return 20
	}
	return cols[i].Width
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
