// Package viewstate holds the state of the dashboard and the category
// browser as plain values. Every change goes through Apply, which returns a
// new value and never performs I/O; the UI layers only translate input into
// events and render the result.
package viewstate

import (
	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/model"
)

// Event is anything Apply understands.
type Event interface {
	event()
}

// Request tags a transaction load with the view state that started it.
type Request struct {
	Range      ledger.DateRange
	Generation uint64
}

// CategoryRequest tags a category load.
type CategoryRequest struct {
	Type       model.CategoryType
	Generation uint64
}

// QuickFilterSelected picks a preset relative to Today.
type QuickFilterSelected struct {
	Filter ledger.QuickFilter
	Today  ledger.Date
}

// StartDateEdited sets the lower bound by hand.
type StartDateEdited struct {
	Date ledger.Date
}

// EndDateEdited sets the upper bound by hand.
type EndDateEdited struct {
	Date ledger.Date
}

// SortSelected is a click on a sortable column.
type SortSelected struct {
	Key ledger.SortKey
}

// TransactionsLoaded carries the result of a transaction load.
type TransactionsLoaded struct {
	Err          error
	Transactions []model.Transaction
	Request      Request
}

// FormTypeSelected switches the entry form between expense and income.
type FormTypeSelected struct {
	Type model.CategoryType
}

// TypeSelected switches the category browser between expense and income.
type TypeSelected struct {
	Type model.CategoryType
}

// CategoriesLoaded carries the result of a category load.
type CategoriesLoaded struct {
	Err        error
	Categories []model.Category
	Request    CategoryRequest
}

// SubmitStarted marks a create, update or delete as in flight.
type SubmitStarted struct{}

// TransactionCreated reports a successful submission.
type TransactionCreated struct {
	Transaction model.Transaction
}

// TransactionDeleted reports a successful deletion.
type TransactionDeleted struct {
	ID int64
}

// EditStarted opens the edit buffer for a category.
type EditStarted struct {
	ID int64
}

// EditCancelled discards the edit buffer.
type EditCancelled struct{}

// CategorySaved reports a successful create or update.
type CategorySaved struct {
	Category model.Category
	Created  bool
}

// CategoryDeleted reports a successful deletion.
type CategoryDeleted struct {
	ID int64
}

// OperationFailed reports a failed submission with its user-facing text.
type OperationFailed struct {
	Message string
}

// Notice replaces the status message.
type Notice struct {
	Text string
}

func (QuickFilterSelected) event() {}
func (StartDateEdited) event()     {}
func (EndDateEdited) event()       {}
func (SortSelected) event()        {}
func (TransactionsLoaded) event()  {}
func (FormTypeSelected) event()    {}
func (TypeSelected) event()        {}
func (CategoriesLoaded) event()    {}
func (SubmitStarted) event()       {}
func (TransactionCreated) event()  {}
func (TransactionDeleted) event()  {}
func (EditStarted) event()         {}
func (EditCancelled) event()       {}
func (CategorySaved) event()       {}
func (CategoryDeleted) event()     {}
func (OperationFailed) event()     {}
func (Notice) event()              {}
