package ledger

import (
	"slices"

	"github.com/Veraticus/ledger/internal/model"
	"github.com/shopspring/decimal"
)

// Totals holds per-currency sums split by transaction type. A currency that
// does not occur has no key.
type Totals struct {
	Expenses map[string]decimal.Decimal
	Incomes  map[string]decimal.Decimal
}

// TotalsByCurrency sums transactions per currency, separately for expenses
// and incomes. No rounding happens here.
func TotalsByCurrency(transactions []model.Transaction) Totals {
	totals := Totals{
		Expenses: make(map[string]decimal.Decimal),
		Incomes:  make(map[string]decimal.Decimal),
	}
	for _, txn := range transactions {
		bucket := totals.Expenses
		if txn.IsIncome() {
			bucket = totals.Incomes
		}
		bucket[txn.Currency] = bucket[txn.Currency].Add(txn.Sum)
	}
	return totals
}

// IsEmpty reports whether neither mapping has an entry.
func (t Totals) IsEmpty() bool {
	return len(t.Expenses) == 0 && len(t.Incomes) == 0
}

// ExpenseCurrencies returns the expense currencies in sorted order.
func (t Totals) ExpenseCurrencies() []string {
	return sortedKeys(t.Expenses)
}

// IncomeCurrencies returns the income currencies in sorted order.
func (t Totals) IncomeCurrencies() []string {
	return sortedKeys(t.Incomes)
}

// Net returns incomes minus expenses for a currency.
func (t Totals) Net(currency string) decimal.Decimal {
	return t.Incomes[currency].Sub(t.Expenses[currency])
}

// FormatAmount renders an amount with exactly two fraction digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatSigned renders "+12.50" for incomes and "-12.50" for expenses.
func FormatSigned(txn model.Transaction) string {
	if txn.IsIncome() {
		return "+" + FormatAmount(txn.Sum)
	}
	return "-" + FormatAmount(txn.Sum)
}

// Summary is the status-line digest of a visible selection.
type Summary struct {
	Totals Totals
	Count  int
}

// Summarize counts and totals transactions.
func Summarize(transactions []model.Transaction) Summary {
	return Summary{Totals: TotalsByCurrency(transactions), Count: len(transactions)}
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
