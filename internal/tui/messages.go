package tui

import (
	"github.com/Veraticus/ledger/internal/model"
	"github.com/Veraticus/ledger/internal/viewstate"
)

// Message types for async operations. Loads carry their request tag so
// answers to superseded requests can be recognized.
type (
	snapshotLoadedMsg struct {
		transactions viewstate.TransactionsLoaded
		categories   viewstate.CategoriesLoaded
	}

	transactionsLoadedMsg struct {
		event viewstate.TransactionsLoaded
	}

	formCategoriesLoadedMsg struct {
		event viewstate.CategoriesLoaded
	}

	browserCategoriesLoadedMsg struct {
		event viewstate.CategoriesLoaded
	}

	transactionCreatedMsg struct {
		transaction model.Transaction
	}

	transactionDeletedMsg struct {
		id int64
	}

	categorySavedMsg struct {
		category model.Category
		created  bool
	}

	categoryDeletedMsg struct {
		id int64
	}

	operationFailedMsg struct {
		err    error
		screen Screen
	}
)
