// Package service defines the contracts between the user interfaces and the
// remote API client.
package service

import (
	"context"

	"github.com/Veraticus/ledger/internal/api"
	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/model"
)

// TransactionService reads and writes transactions.
type TransactionService interface {
	ListTransactions(ctx context.Context, r ledger.DateRange) ([]model.Transaction, error)
	ListAllTransactions(ctx context.Context) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

// CategoryService reads and writes categories.
type CategoryService interface {
	ListCategories(ctx context.Context, typ model.CategoryType) ([]model.Category, error)
	CreateCategory(ctx context.Context, in model.CategoryInput) (model.Category, error)
	UpdateCategory(ctx context.Context, id int64, in model.CategoryInput) (model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// Backend is everything the dashboard and the commands need.
type Backend interface {
	TransactionService
	CategoryService
	Snapshot(ctx context.Context, r ledger.DateRange, typ model.CategoryType) (api.Snapshot, error)
}

var _ Backend = (*api.Client)(nil)
