package viewstate

import (
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/ledger/internal/common"
	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = ledger.NewDate(2024, time.June, 13)

func expense(id int64, sum string, day int, desc string) model.Transaction {
	return model.Transaction{
		ID:          id,
		Sum:         decimal.RequireFromString(sum),
		Currency:    "EUR",
		Type:        model.CategoryTypeExpense,
		Moment:      time.Date(2024, time.June, day, 12, 0, 0, 0, time.UTC),
		Description: desc,
	}
}

func TestNewDashboard(t *testing.T) {
	d := NewDashboard(today, time.UTC)

	assert.Equal(t, ledger.QuickToday, d.QuickFilter)
	assert.Equal(t, ledger.SingleDay(today), d.Range)
	assert.Equal(t, ledger.DefaultSort(), d.Sort)
	assert.Equal(t, model.CategoryTypeExpense, d.FormType)
	assert.Equal(t, uint64(0), d.Generation)
}

func TestDashboardQuickFilter(t *testing.T) {
	d := NewDashboard(today, time.UTC)

	d = d.Apply(QuickFilterSelected{Filter: ledger.QuickThisWeek, Today: today})
	assert.Equal(t, ledger.QuickThisWeek, d.QuickFilter)
	assert.Equal(t, ledger.DateRange{Start: ledger.NewDate(2024, time.June, 10), End: today}, d.Range)
	assert.Equal(t, uint64(1), d.Generation)

	t.Run("same range keeps generation", func(t *testing.T) {
		same := d.Apply(QuickFilterSelected{Filter: ledger.QuickThisWeek, Today: today})
		assert.Equal(t, d.Generation, same.Generation)
	})

	t.Run("unknown preset leaves range", func(t *testing.T) {
		bad := d.Apply(QuickFilterSelected{Filter: "fortnight", Today: today})
		assert.Equal(t, d.Range, bad.Range)
		assert.Equal(t, d.QuickFilter, bad.QuickFilter)
		assert.Contains(t, bad.Message, "Error:")
	})
}

func TestDashboardManualDatesSwitchToCustom(t *testing.T) {
	d := NewDashboard(today, time.UTC)
	d = d.Apply(QuickFilterSelected{Filter: ledger.QuickThisMonth, Today: today})

	d = d.Apply(StartDateEdited{Date: ledger.NewDate(2024, time.June, 5)})
	assert.Equal(t, ledger.QuickCustom, d.QuickFilter)
	assert.Equal(t, ledger.NewDate(2024, time.June, 5), d.Range.Start)
	assert.Equal(t, today, d.Range.End)

	d = d.Apply(EndDateEdited{Date: ledger.NewDate(2024, time.June, 7)})
	assert.Equal(t, ledger.QuickCustom, d.QuickFilter)
	assert.Equal(t, ledger.NewDate(2024, time.June, 7), d.Range.End)
	assert.Equal(t, uint64(3), d.Generation)
}

func TestDashboardDropsStaleResponses(t *testing.T) {
	d := NewDashboard(today, time.UTC)
	first := d.Request()

	d = d.Apply(QuickFilterSelected{Filter: ledger.QuickThisWeek, Today: today})
	second := d.Request()

	d = d.Apply(TransactionsLoaded{Request: second, Transactions: []model.Transaction{expense(2, "5", 12, "new")}})
	d = d.Apply(TransactionsLoaded{Request: first, Transactions: []model.Transaction{expense(1, "9", 13, "old")}})

	require.Len(t, d.Transactions, 1)
	assert.Equal(t, int64(2), d.Transactions[0].ID)
}

func TestDashboardLoadErrorKeepsPreviousList(t *testing.T) {
	d := NewDashboard(today, time.UTC)
	d = d.Apply(TransactionsLoaded{Request: d.Request(), Transactions: []model.Transaction{expense(1, "9", 13, "a")}})

	d = d.Apply(TransactionsLoaded{Request: d.Request(), Err: errors.New("boom")})
	assert.Len(t, d.Transactions, 1)
	assert.Equal(t, "boom", d.LoadError)

	d = d.Apply(TransactionsLoaded{Request: d.Request(), Transactions: nil})
	assert.Empty(t, d.Transactions)
	assert.Empty(t, d.LoadError)
}

func TestDashboardVisibleAndTotals(t *testing.T) {
	d := NewDashboard(today, time.UTC)
	d = d.Apply(QuickFilterSelected{Filter: ledger.QuickThisWeek, Today: today})
	d = d.Apply(TransactionsLoaded{Request: d.Request(), Transactions: []model.Transaction{
		expense(1, "10", 11, "b"),
		expense(2, "3", 1, "outside"),
		expense(3, "2.5", 13, "a"),
	}})

	visible := d.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, int64(3), visible[0].ID)
	assert.Equal(t, int64(1), visible[1].ID)

	totals := d.Totals()
	assert.True(t, decimal.RequireFromString("12.5").Equal(totals.Expenses["EUR"]))
	assert.Empty(t, totals.Incomes)

	d = d.Apply(SortSelected{Key: ledger.SortSum})
	assert.Equal(t, ledger.Sort{Key: ledger.SortSum, Direction: ledger.Ascending}, d.Sort)
	visible = d.Visible()
	assert.Equal(t, int64(3), visible[0].ID)

	d = d.Apply(SortSelected{Key: ledger.SortSum})
	assert.Equal(t, ledger.Descending, d.Sort.Direction)
	assert.Equal(t, int64(1), d.Visible()[0].ID)
}

func TestDashboardSubmissionLifecycle(t *testing.T) {
	d := NewDashboard(today, time.UTC)
	d = d.Apply(TransactionsLoaded{Request: d.Request(), Transactions: []model.Transaction{
		expense(1, "10", 13, "a"),
		expense(2, "3", 13, "b"),
	}})
	loaded := d.Transactions

	d = d.Apply(SubmitStarted{})
	assert.True(t, d.Busy)

	d = d.Apply(TransactionCreated{})
	assert.False(t, d.Busy)
	assert.Equal(t, "Expense added successfully!", d.Message)

	d = d.Apply(TransactionDeleted{ID: 1})
	require.Len(t, d.Transactions, 1)
	assert.Equal(t, int64(2), d.Transactions[0].ID)
	assert.Equal(t, "Expense deleted successfully!", d.Message)
	assert.Len(t, loaded, 2)

	d = d.Apply(SubmitStarted{})
	d = d.Apply(OperationFailed{Message: "Category not found"})
	assert.False(t, d.Busy)
	assert.Equal(t, "Error: Category not found", d.Message)

	d = d.Apply(Notice{Text: "hello"})
	assert.Equal(t, "hello", d.Message)
}

func TestDashboardFormCategories(t *testing.T) {
	d := NewDashboard(today, time.UTC)
	expenseReq := d.CategoryRequest()

	d = d.Apply(FormTypeSelected{Type: model.CategoryTypeIncome})
	assert.Equal(t, model.CategoryTypeIncome, d.FormType)
	incomeReq := d.CategoryRequest()
	assert.NotEqual(t, expenseReq, incomeReq)

	d = d.Apply(CategoriesLoaded{Request: expenseReq, Categories: []model.Category{{ID: 1, Name: "Food"}}})
	assert.Empty(t, d.Categories)

	d = d.Apply(CategoriesLoaded{Request: incomeReq, Categories: []model.Category{{ID: 9, Name: "Salary", Type: model.CategoryTypeIncome}}})
	require.Len(t, d.Categories, 1)

	entries, err := d.CategoryOptions()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Salary", entries[0].Label())
}

func TestDashboardCategoryLabel(t *testing.T) {
	d := NewDashboard(today, time.UTC)
	d = d.Apply(CategoriesLoaded{Request: d.CategoryRequest(), Categories: []model.Category{
		{ID: 1, Name: "Food"},
		{ID: 2, Name: "Groceries", Parent: &model.CategoryRef{ID: 1}},
	}})

	assert.Equal(t, "No Category", d.CategoryLabel(model.Transaction{}))
	assert.Equal(t, "Food > Groceries", d.CategoryLabel(model.Transaction{
		Category: &model.TransactionCategory{ID: 2, Name: "Groceries", Parent: &model.CategoryRef{ID: 1}},
	}))
}

func TestCategoryBrowser(t *testing.T) {
	b := NewCategoryBrowser()
	assert.Equal(t, model.CategoryTypeExpense, b.Type)

	snapshot := []model.Category{
		{ID: 1, Name: "Food", Type: model.CategoryTypeExpense},
		{ID: 2, Name: "Groceries", Type: model.CategoryTypeExpense, Parent: &model.CategoryRef{ID: 1}},
		{ID: 3, Name: "Transport", Type: model.CategoryTypeExpense},
	}
	b = b.Apply(CategoriesLoaded{Request: b.Request(), Categories: snapshot})

	entries, err := b.Tree()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Food", entries[0].Label())
	assert.Equal(t, "  └─ Groceries", entries[1].Label())

	parents := b.ParentOptions()
	require.Len(t, parents, 2)

	t.Run("edit buffer is a copy", func(t *testing.T) {
		edited := b.Apply(EditStarted{ID: 2})
		require.NotNil(t, edited.Editing)
		assert.Equal(t, CategoryDraft{ID: 2, Name: "Groceries", Type: model.CategoryTypeExpense, ParentID: 1}, *edited.Editing)

		edited.Editing.Name = "Changed"
		assert.Equal(t, "Groceries", edited.Categories[1].Name)

		cancelled := edited.Apply(EditCancelled{})
		assert.Nil(t, cancelled.Editing)
	})

	t.Run("unknown id does not open editor", func(t *testing.T) {
		assert.Nil(t, b.Apply(EditStarted{ID: 42}).Editing)
	})

	t.Run("messages", func(t *testing.T) {
		assert.Equal(t, "Category created successfully!", b.Apply(CategorySaved{Created: true}).Message)
		assert.Equal(t, "Category updated successfully!", b.Apply(CategorySaved{}).Message)
		assert.Equal(t, "Category deleted successfully!", b.Apply(CategoryDeleted{ID: 3}).Message)
		assert.Equal(t, "Error: nope", b.Apply(OperationFailed{Message: "nope"}).Message)
	})

	t.Run("type switch drops stale loads", func(t *testing.T) {
		old := b.Request()
		switched := b.Apply(TypeSelected{Type: model.CategoryTypeIncome})
		assert.Empty(t, switched.Categories)

		switched = switched.Apply(CategoriesLoaded{Request: old, Categories: snapshot})
		assert.Empty(t, switched.Categories)
	})

	t.Run("cycle is reported by tree", func(t *testing.T) {
		broken := b.Apply(CategoriesLoaded{Request: b.Request(), Categories: []model.Category{
			{ID: 1, Name: "A", Parent: &model.CategoryRef{ID: 2}},
			{ID: 2, Name: "B", Parent: &model.CategoryRef{ID: 1}},
		}})
		_, err := broken.Tree()
		require.Error(t, err)
	})
}

func TestExpenseDraftValidate(t *testing.T) {
	valid := ExpenseDraft{
		Sum:         "12.50",
		Currency:    "eur",
		Moment:      "2024-06-13T14:30",
		Description: "  lunch ",
		Type:        model.CategoryTypeExpense,
		CategoryID:  2,
	}

	input, err := valid.Validate(time.UTC)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.5").Equal(input.Sum))
	assert.Equal(t, "EUR", input.Currency)
	assert.Equal(t, "lunch", input.Description)
	assert.Equal(t, time.Date(2024, time.June, 13, 14, 30, 0, 0, time.UTC), input.Moment)
	assert.Equal(t, int64(2), input.CategoryID)

	tests := []struct {
		name   string
		mutate func(*ExpenseDraft)
		want   string
	}{
		{"missing amount", func(d *ExpenseDraft) { d.Sum = "  " }, "Please fill in amount and select a category"},
		{"missing category", func(d *ExpenseDraft) { d.CategoryID = 0 }, "Please fill in amount and select a category"},
		{"not a number", func(d *ExpenseDraft) { d.Sum = "abc" }, "Amount must be a number"},
		{"negative", func(d *ExpenseDraft) { d.Sum = "-1" }, "Amount must not be negative"},
		{"no currency", func(d *ExpenseDraft) { d.Currency = "" }, "Please select a currency"},
		{"bad moment", func(d *ExpenseDraft) { d.Moment = "yesterday" }, "Date must look like 2024-06-13T14:30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			_, err := d.Validate(time.UTC)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Equal(t, tt.want, common.UserMessage(err))
		})
	}
}

func TestExpenseDraftReset(t *testing.T) {
	now := time.Date(2024, time.June, 13, 9, 5, 0, 0, time.UTC)
	d := ExpenseDraft{Sum: "4", Currency: "USD", Description: "x", Type: model.CategoryTypeIncome, CategoryID: 3}

	reset := d.Reset(now, time.UTC)
	assert.Equal(t, ExpenseDraft{Currency: "USD", Moment: "2024-06-13T09:05", Type: model.CategoryTypeIncome}, reset)
}

func TestCategoryDraftValidate(t *testing.T) {
	input, err := CategoryDraft{Name: " Food ", ParentID: 4}.Validate()
	require.NoError(t, err)
	assert.Equal(t, model.CategoryInput{Name: "Food", Type: model.CategoryTypeExpense, ParentID: 4}, input)

	_, err = CategoryDraft{Name: "   "}.Validate()
	require.Error(t, err)
	assert.Equal(t, "Please enter a category name", common.UserMessage(err))

	_, err = CategoryDraft{ID: 4, Name: "Loop", ParentID: 4}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)

	assert.True(t, CategoryDraft{}.IsNew())
	assert.False(t, CategoryDraft{ID: 1}.IsNew())
}
