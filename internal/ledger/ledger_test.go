package ledger

import (
	"testing"
	"time"

	"github.com/Veraticus/ledger/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var berlin = mustLocation("Europe/Berlin")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, 2*3600)
	}
	return loc
}

func txn(id int64, sum string, currency string, typ model.CategoryType, moment time.Time, desc string) model.Transaction {
	return model.Transaction{
		ID:          id,
		Sum:         decimal.RequireFromString(sum),
		Currency:    currency,
		Type:        typ,
		Moment:      moment,
		Description: desc,
	}
}

func ids(txns []model.Transaction) []int64 {
	out := make([]int64, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, "2023-12-31", NewDate(2024, time.January, 0).String())
	assert.Equal(t, time.Wednesday, d.Weekday())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.Equal(t, 0, d.Compare(d))

	_, err = ParseDate("28/02/2024")
	assert.Error(t, err)
}

func TestDateOf_UsesViewerLocation(t *testing.T) {
	// 23:30 UTC on June 12 is already June 13 in Berlin
	instant := time.Date(2024, time.June, 12, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-13", DateOf(instant, berlin).String())
	assert.Equal(t, "2024-06-12", DateOf(instant, time.UTC).String())
}

func TestOffsetString(t *testing.T) {
	summer := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "+00:00", OffsetString(summer, time.UTC))
	assert.Equal(t, "-05:30", OffsetString(summer, time.FixedZone("x", -(5*3600+1800))))
	assert.Equal(t, "+02:00", OffsetString(summer, time.FixedZone("y", 2*3600)))
}

func TestFilterByDateRange(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)
	transactions := []model.Transaction{
		txn(1, "1", "EUR", model.CategoryTypeExpense, time.Date(2024, 6, 9, 21, 59, 0, 0, time.UTC), "a"), // Jun 9 23:59 local
		txn(2, "1", "EUR", model.CategoryTypeExpense, time.Date(2024, 6, 9, 22, 0, 0, 0, time.UTC), "b"),  // Jun 10 00:00 local
		txn(3, "1", "EUR", model.CategoryTypeExpense, time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC), "c"),
		txn(4, "1", "EUR", model.CategoryTypeExpense, time.Date(2024, 6, 12, 21, 59, 59, 0, time.UTC), "d"), // Jun 12 local
		txn(5, "1", "EUR", model.CategoryTypeExpense, time.Date(2024, 6, 12, 22, 0, 0, 0, time.UTC), "e"),   // Jun 13 local
	}

	tests := []struct {
		name string
		r    DateRange
		want []int64
	}{
		{name: "inclusive bounds", r: DateRange{Start: NewDate(2024, 6, 10), End: NewDate(2024, 6, 12)}, want: []int64{2, 3, 4}},
		{name: "single day", r: SingleDay(NewDate(2024, 6, 13)), want: []int64{5}},
		{name: "inverted", r: DateRange{Start: NewDate(2024, 6, 12), End: NewDate(2024, 6, 10)}, want: []int64{}},
		{name: "no match", r: SingleDay(NewDate(2025, 1, 1)), want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByDateRange(transactions, tt.r, loc)
			assert.Equal(t, tt.want, ids(got))
			for _, g := range got {
				assert.True(t, tt.r.Contains(DateOf(g.Moment, loc)))
			}
		})
	}

	assert.True(t, DateRange{Start: NewDate(2024, 6, 2), End: NewDate(2024, 6, 1)}.IsEmpty())
	assert.Empty(t, FilterByDateRange(nil, SingleDay(NewDate(2024, 6, 1)), loc))
}

func TestResolveQuickFilter(t *testing.T) {
	thursday := NewDate(2024, time.June, 13)
	sunday := NewDate(2024, time.June, 16)
	monday := NewDate(2024, time.June, 10)

	tests := []struct {
		name   string
		filter QuickFilter
		today  Date
		start  string
		end    string
	}{
		{name: "today", filter: QuickToday, today: thursday, start: "2024-06-13", end: "2024-06-13"},
		{name: "yesterday", filter: QuickYesterday, today: thursday, start: "2024-06-12", end: "2024-06-12"},
		{name: "yesterday across month", filter: QuickYesterday, today: NewDate(2024, 3, 1), start: "2024-02-29", end: "2024-02-29"},
		{name: "this week thursday", filter: QuickThisWeek, today: thursday, start: "2024-06-10", end: "2024-06-13"},
		{name: "this week sunday", filter: QuickThisWeek, today: sunday, start: "2024-06-10", end: "2024-06-16"},
		{name: "this week monday", filter: QuickThisWeek, today: monday, start: "2024-06-10", end: "2024-06-10"},
		{name: "last week thursday", filter: QuickLastWeek, today: thursday, start: "2024-06-03", end: "2024-06-09"},
		{name: "last week sunday", filter: QuickLastWeek, today: sunday, start: "2024-06-03", end: "2024-06-09"},
		{name: "last week monday", filter: QuickLastWeek, today: monday, start: "2024-06-03", end: "2024-06-09"},
		{name: "this month", filter: QuickThisMonth, today: thursday, start: "2024-06-01", end: "2024-06-13"},
		{name: "last 30 days", filter: QuickLast30Days, today: thursday, start: "2024-05-14", end: "2024-06-13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveQuickFilter(tt.filter, tt.today)
			require.NoError(t, err)
			assert.Equal(t, tt.start, got.Start.String())
			assert.Equal(t, tt.end, got.End.String())
		})
	}

	_, err := ResolveQuickFilter("fortnight", thursday)
	assert.Error(t, err)
	_, err = ResolveQuickFilter(QuickCustom, thursday)
	assert.Error(t, err)
}

func TestSort_Select(t *testing.T) {
	s := DefaultSort()
	assert.Equal(t, Sort{Key: SortMoment, Direction: Descending}, s)

	s = s.Select(SortSum)
	assert.Equal(t, Sort{Key: SortSum, Direction: Ascending}, s)
	s = s.Select(SortSum)
	assert.Equal(t, Sort{Key: SortSum, Direction: Descending}, s)
	s = s.Select(SortSum)
	assert.Equal(t, Sort{Key: SortSum, Direction: Ascending}, s)
	s = s.Select(SortDescription)
	assert.Equal(t, Sort{Key: SortDescription, Direction: Ascending}, s)

	assert.Equal(t, "↑", s.Indicator(SortDescription))
	assert.Equal(t, "↕", s.Indicator(SortSum))
	assert.Equal(t, "↓", s.Select(SortDescription).Indicator(SortDescription))
}

func TestSortBy(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	transactions := []model.Transaction{
		txn(1, "10.5", "eur", model.CategoryTypeExpense, base.Add(2*time.Hour), "banana"),
		txn(2, "9.95", "USD", model.CategoryTypeExpense, base, "Apple"),
		txn(3, "100", "EUR", model.CategoryTypeIncome, base.Add(time.Hour), "cherry"),
		txn(4, "10.5", "GBP", model.CategoryTypeExpense, base.Add(3*time.Hour), "apple"),
	}
	original := ids(transactions)

	tests := []struct {
		name string
		sort Sort
		want []int64
	}{
		{name: "moment asc", sort: Sort{Key: SortMoment, Direction: Ascending}, want: []int64{2, 3, 1, 4}},
		{name: "moment desc", sort: Sort{Key: SortMoment, Direction: Descending}, want: []int64{4, 1, 3, 2}},
		{name: "sum numeric asc with stable tie", sort: Sort{Key: SortSum, Direction: Ascending}, want: []int64{2, 1, 4, 3}},
		{name: "sum desc with stable tie", sort: Sort{Key: SortSum, Direction: Descending}, want: []int64{3, 1, 4, 2}},
		{name: "description case-insensitive stable", sort: Sort{Key: SortDescription, Direction: Ascending}, want: []int64{2, 4, 1, 3}},
		{name: "currency case-insensitive", sort: Sort{Key: SortCurrency, Direction: Ascending}, want: []int64{1, 3, 4, 2}},
		{name: "unknown key keeps order", sort: Sort{Key: "category", Direction: Ascending}, want: []int64{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortBy(transactions, tt.sort)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, original, ids(transactions), "input must not be mutated")

			again := SortBy(got, tt.sort)
			assert.Equal(t, ids(got), ids(again), "sorting is idempotent")
		})
	}
}

func TestSortBy_ReverseWithoutTies(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	transactions := []model.Transaction{
		txn(1, "3", "EUR", model.CategoryTypeExpense, base, ""),
		txn(2, "1.25", "EUR", model.CategoryTypeExpense, base, ""),
		txn(3, "20", "EUR", model.CategoryTypeExpense, base, ""),
		txn(4, "0.5", "EUR", model.CategoryTypeExpense, base, ""),
	}

	asc := ids(SortBy(transactions, Sort{Key: SortSum, Direction: Ascending}))
	desc := ids(SortBy(transactions, Sort{Key: SortSum, Direction: Descending}))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
	assert.Empty(t, SortBy(nil, DefaultSort()))
}

func TestTotalsByCurrency(t *testing.T) {
	moment := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("example", func(t *testing.T) {
		totals := TotalsByCurrency([]model.Transaction{
			txn(1, "10", "EUR", model.CategoryTypeExpense, moment, ""),
			txn(2, "5", "EUR", model.CategoryTypeIncome, moment, ""),
			txn(3, "3", "USD", model.CategoryTypeExpense, moment, ""),
		})

		require.Len(t, totals.Expenses, 2)
		assert.Equal(t, "13", totals.Expenses["EUR"].String())
		assert.Equal(t, "3", totals.Expenses["USD"].String())
		require.Len(t, totals.Incomes, 1)
		assert.Equal(t, "5", totals.Incomes["EUR"].String())
		_, hasUSD := totals.Incomes["USD"]
		assert.False(t, hasUSD)

		assert.Equal(t, []string{"EUR", "USD"}, totals.ExpenseCurrencies())
		assert.Equal(t, []string{"EUR"}, totals.IncomeCurrencies())
		assert.Equal(t, "-8", totals.Net("EUR").String())
	})

	t.Run("decimal addition is exact", func(t *testing.T) {
		totals := TotalsByCurrency([]model.Transaction{
			txn(1, "0.1", "EUR", model.CategoryTypeExpense, moment, ""),
			txn(2, "0.2", "EUR", model.CategoryTypeExpense, moment, ""),
		})
		assert.Equal(t, "0.3", totals.Expenses["EUR"].String())
		assert.Equal(t, "0.30", FormatAmount(totals.Expenses["EUR"]))
	})

	t.Run("empty", func(t *testing.T) {
		totals := TotalsByCurrency(nil)
		assert.NotNil(t, totals.Expenses)
		assert.NotNil(t, totals.Incomes)
		assert.Empty(t, totals.Expenses)
		assert.Empty(t, totals.Incomes)
		assert.True(t, totals.IsEmpty())
	})
}

func TestFormatSigned(t *testing.T) {
	moment := time.Now()
	assert.Equal(t, "-12.50", FormatSigned(txn(1, "12.5", "EUR", model.CategoryTypeExpense, moment, "")))
	assert.Equal(t, "+1000.00", FormatSigned(txn(2, "1000", "EUR", model.CategoryTypeIncome, moment, "")))
	assert.Equal(t, "3.46", FormatAmount(decimal.RequireFromString("3.456")))
}

func TestSummarize(t *testing.T) {
	moment := time.Now()
	s := Summarize([]model.Transaction{
		txn(1, "1", "EUR", model.CategoryTypeExpense, moment, ""),
		txn(2, "2", "JPY", model.CategoryTypeIncome, moment, ""),
	})
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, "2", s.Totals.Incomes["JPY"].String())
}

func TestParseSortInputs(t *testing.T) {
	k, err := ParseSortKey("sum")
	require.NoError(t, err)
	assert.Equal(t, SortSum, k)
	_, err = ParseSortKey("category")
	assert.Error(t, err)

	d, err := ParseDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, Descending, d)
	_, err = ParseDirection("up")
	assert.Error(t, err)
}
