package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/ledger/internal/common"
	"github.com/Veraticus/ledger/internal/model"
	"github.com/Veraticus/ledger/internal/viewstate"
	tea "github.com/charmbracelet/bubbletea"
)

var errNoBackend = fmt.Errorf("%w: no backend configured", common.ErrMissingConfig)

func (m Model) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, m.config.RequestTimeout)
}

// loadSnapshot fetches the dashboard's transactions and form categories together.
func (m Model) loadSnapshot(req viewstate.Request, catReq viewstate.CategoryRequest) tea.Cmd {
	return func() tea.Msg {
		msg := snapshotLoadedMsg{
			transactions: viewstate.TransactionsLoaded{Request: req},
			categories:   viewstate.CategoriesLoaded{Request: catReq},
		}
		if m.backend == nil {
			msg.transactions.Err = errNoBackend
			msg.categories.Err = errNoBackend
			return msg
		}

		ctx, cancel := m.requestContext()
		defer cancel()

		snapshot, err := m.backend.Snapshot(ctx, req.Range, catReq.Type)
		if err != nil {
			common.LogWarn("dashboard snapshot failed", common.Fields{"range": req.Range.String(), "error": err.Error()})
			msg.transactions.Err = err
			msg.categories.Err = err
			return msg
		}
		msg.transactions.Transactions = snapshot.Transactions
		msg.categories.Categories = snapshot.Categories
		return msg
	}
}

// loadTransactions fetches the transactions of req's range.
func (m Model) loadTransactions(req viewstate.Request) tea.Cmd {
	return func() tea.Msg {
		event := viewstate.TransactionsLoaded{Request: req}
		if m.backend == nil {
			event.Err = errNoBackend
			return transactionsLoadedMsg{event: event}
		}

		ctx, cancel := m.requestContext()
		defer cancel()

		event.Transactions, event.Err = m.backend.ListTransactions(ctx, req.Range)
		if event.Err != nil {
			common.LogWarn("transaction load failed", common.Fields{"range": req.Range.String(), "error": event.Err.Error()})
		}
		return transactionsLoadedMsg{event: event}
	}
}

func (m Model) fetchCategories(req viewstate.CategoryRequest) viewstate.CategoriesLoaded {
	event := viewstate.CategoriesLoaded{Request: req}
	if m.backend == nil {
		event.Err = errNoBackend
		return event
	}

	ctx, cancel := m.requestContext()
	defer cancel()

	event.Categories, event.Err = m.backend.ListCategories(ctx, req.Type)
	if event.Err != nil {
		common.LogWarn("category load failed", common.Fields{"type": string(req.Type), "error": event.Err.Error()})
	}
	return event
}

// loadFormCategories fetches the entry form's category choices.
func (m Model) loadFormCategories(req viewstate.CategoryRequest) tea.Cmd {
	return func() tea.Msg {
		return formCategoriesLoadedMsg{event: m.fetchCategories(req)}
	}
}

// loadBrowserCategories fetches the category screen's snapshot.
func (m Model) loadBrowserCategories(req viewstate.CategoryRequest) tea.Cmd {
	return func() tea.Msg {
		return browserCategoriesLoadedMsg{event: m.fetchCategories(req)}
	}
}

func (m Model) createTransaction(in model.TransactionInput) tea.Cmd {
	return func() tea.Msg {
		if m.backend == nil {
			return operationFailedMsg{screen: ScreenDashboard, err: errNoBackend}
		}

		ctx, cancel := m.requestContext()
		defer cancel()

		txn, err := m.backend.CreateTransaction(ctx, in)
		if err != nil {
			common.LogError(err, "failed to create transaction", common.Fields{"currency": in.Currency})
			return operationFailedMsg{screen: ScreenDashboard, err: err}
		}
		return transactionCreatedMsg{transaction: txn}
	}
}

func (m Model) deleteTransaction(id int64) tea.Cmd {
	return func() tea.Msg {
		if m.backend == nil {
			return operationFailedMsg{screen: ScreenDashboard, err: errNoBackend}
		}

		ctx, cancel := m.requestContext()
		defer cancel()

		if err := m.backend.DeleteTransaction(ctx, id); err != nil {
			common.LogError(err, "failed to delete transaction", common.Fields{"id": id})
			return operationFailedMsg{screen: ScreenDashboard, err: err}
		}
		return transactionDeletedMsg{id: id}
	}
}

func (m Model) saveCategory(id int64, in model.CategoryInput) tea.Cmd {
	return func() tea.Msg {
		if m.backend == nil {
			return operationFailedMsg{screen: ScreenCategories, err: errNoBackend}
		}

		ctx, cancel := m.requestContext()
		defer cancel()

		var (
			saved model.Category
			err   error
		)
		if id == 0 {
			saved, err = m.backend.CreateCategory(ctx, in)
		} else {
			saved, err = m.backend.UpdateCategory(ctx, id, in)
		}
		if err != nil {
			common.LogError(err, "failed to save category", common.Fields{"id": id, "name": in.Name})
			return operationFailedMsg{screen: ScreenCategories, err: err}
		}
		return categorySavedMsg{category: saved, created: id == 0}
	}
}

func (m Model) deleteCategory(id int64) tea.Cmd {
	return func() tea.Msg {
		if m.backend == nil {
			return operationFailedMsg{screen: ScreenCategories, err: errNoBackend}
		}

		ctx, cancel := m.requestContext()
		defer cancel()

		if err := m.backend.DeleteCategory(ctx, id); err != nil {
			common.LogError(err, "failed to delete category", common.Fields{"id": id})
			return operationFailedMsg{screen: ScreenCategories, err: err}
		}
		return categoryDeletedMsg{id: id}
	}
}
