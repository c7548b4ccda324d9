package viewstate

import (
	"slices"
	"time"

	"github.com/Veraticus/ledger/internal/category"
	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/model"
)

// Dashboard is the state of the main transaction view.
type Dashboard struct {
	Location           *time.Location
	Message            string
	LoadError          string
	QuickFilter        ledger.QuickFilter
	FormType           model.CategoryType
	Sort               ledger.Sort
	Transactions       []model.Transaction
	Categories         []model.Category
	Range              ledger.DateRange
	Generation         uint64
	CategoryGeneration uint64
	Busy               bool
}

// NewDashboard starts on today's transactions, newest first.
func NewDashboard(today ledger.Date, loc *time.Location) Dashboard {
	if loc == nil {
		loc = time.Local
	}
	return Dashboard{
		Location:    loc,
		QuickFilter: ledger.QuickToday,
		Range:       ledger.SingleDay(today),
		Sort:        ledger.DefaultSort(),
		FormType:    model.CategoryTypeExpense,
	}
}

// Request returns the tag for a transaction load of the current range.
func (d Dashboard) Request() Request {
	return Request{Generation: d.Generation, Range: d.Range}
}

// CategoryRequest returns the tag for a category load of the form's type.
func (d Dashboard) CategoryRequest() CategoryRequest {
	return CategoryRequest{Generation: d.CategoryGeneration, Type: d.FormType}
}

// Apply returns the state after ev.
func (d Dashboard) Apply(ev Event) Dashboard {
	switch e := ev.(type) {
	case QuickFilterSelected:
		r, err := ledger.ResolveQuickFilter(e.Filter, e.Today)
		if err != nil {
			d.Message = "Error: " + err.Error()
			return d
		}
		d.QuickFilter = e.Filter
		d = d.withRange(r)

	case StartDateEdited:
		d.QuickFilter = ledger.QuickCustom
		d = d.withRange(ledger.DateRange{Start: e.Date, End: d.Range.End})

	case EndDateEdited:
		d.QuickFilter = ledger.QuickCustom
		d = d.withRange(ledger.DateRange{Start: d.Range.Start, End: e.Date})

	case SortSelected:
		d.Sort = d.Sort.Select(e.Key)

	case TransactionsLoaded:
		if e.Request != d.Request() {
			return d
		}
		if e.Err != nil {
			d.LoadError = e.Err.Error()
			return d
		}
		d.LoadError = ""
		d.Transactions = slices.Clone(e.Transactions)

	case FormTypeSelected:
		if e.Type == d.FormType {
			return d
		}
		d.FormType = e.Type
		d.CategoryGeneration++
		d.Categories = nil

	case CategoriesLoaded:
		if e.Request != d.CategoryRequest() {
			return d
		}
		if e.Err != nil {
			d.LoadError = e.Err.Error()
			return d
		}
		d.Categories = slices.Clone(e.Categories)

	case SubmitStarted:
		d.Busy = true

	case TransactionCreated:
		d.Busy = false
		d.Message = "Expense added successfully!"

	case TransactionDeleted:
		d.Busy = false
		d.Transactions = slices.DeleteFunc(slices.Clone(d.Transactions), func(t model.Transaction) bool {
			return t.ID == e.ID
		})
		d.Message = "Expense deleted successfully!"

	case OperationFailed:
		d.Busy = false
		d.Message = "Error: " + e.Message

	case Notice:
		d.Message = e.Text
	}
	return d
}

func (d Dashboard) withRange(r ledger.DateRange) Dashboard {
	if r != d.Range {
		d.Range = r
		d.Generation++
	}
	return d
}

// Visible returns the transactions to display: filtered to the range, then sorted.
func (d Dashboard) Visible() []model.Transaction {
	return ledger.SortBy(ledger.FilterByDateRange(d.Transactions, d.Range, d.Location), d.Sort)
}

// Totals sums the visible transactions.
func (d Dashboard) Totals() ledger.Totals {
	return ledger.TotalsByCurrency(d.Visible())
}

// CategoryOptions returns the form's category choices in tree order.
func (d Dashboard) CategoryOptions() ([]category.Entry, error) {
	return category.Flatten(d.Categories)
}

// CategoryLabel returns the display label of a transaction's category.
func (d Dashboard) CategoryLabel(t model.Transaction) string {
	if t.Category == nil {
		return "No Category"
	}
	return category.Path(*t.Category, d.Categories)
}
