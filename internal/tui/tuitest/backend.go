package tuitest

import (
	"context"
	"slices"
	"sync"

	"github.com/Veraticus/ledger/internal/api"
	"github.com/Veraticus/ledger/internal/category"
	"github.com/Veraticus/ledger/internal/common"
	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/model"
	"github.com/Veraticus/ledger/internal/service"
)

var _ service.Backend = (*Backend)(nil)

// Backend is an in-memory service.Backend.
type Backend struct {
	// Err is returned by every call while set.
	Err               error
	Transactions      []model.Transaction
	Categories        []model.Category
	CreatedInputs     []model.TransactionInput
	CategoryInputs    []model.CategoryInput
	DeletedIDs        []int64
	DeletedCategories []int64
	Ranges            []ledger.DateRange
	mu                sync.Mutex
	nextID            int64
}

// NewBackend returns a backend seeded with transactions and categories.
func NewBackend(transactions []model.Transaction, categories []model.Category) *Backend {
	return &Backend{
		Transactions: transactions,
		Categories:   categories,
		nextID:       1000,
	}
}

// SetErr makes subsequent calls fail with err, or succeed again when nil.
func (b *Backend) SetErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Err = err
}

// ListTransactions returns every stored transaction and records the range asked for.
func (b *Backend) ListTransactions(_ context.Context, r ledger.DateRange) ([]model.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Ranges = append(b.Ranges, r)
	if b.Err != nil {
		return nil, b.Err
	}
	return slices.Clone(b.Transactions), nil
}

// ListAllTransactions returns every stored transaction.
func (b *Backend) ListAllTransactions(_ context.Context) ([]model.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	return slices.Clone(b.Transactions), nil
}

// CreateTransaction stores a transaction built from in.
func (b *Backend) CreateTransaction(_ context.Context, in model.TransactionInput) (model.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return model.Transaction{}, b.Err
	}
	b.CreatedInputs = append(b.CreatedInputs, in)
	b.nextID++
	txn := model.Transaction{
		ID:          b.nextID,
		Sum:         in.Sum,
		Currency:    in.Currency,
		Moment:      in.Moment,
		Description: in.Description,
		Type:        in.Type,
	}
	if c, ok := category.Find(b.Categories, in.CategoryID); ok {
		txn.Category = &model.TransactionCategory{ID: c.ID, Name: c.Name, Parent: c.Parent}
	}
	b.Transactions = append(b.Transactions, txn)
	return txn, nil
}

// DeleteTransaction removes a transaction, failing with common.ErrNotFound for unknown ids.
func (b *Backend) DeleteTransaction(_ context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	i := slices.IndexFunc(b.Transactions, func(t model.Transaction) bool { return t.ID == id })
	if i < 0 {
		return common.ErrNotFound
	}
	b.DeletedIDs = append(b.DeletedIDs, id)
	b.Transactions = slices.Delete(b.Transactions, i, i+1)
	return nil
}

// ListCategories returns the stored categories of typ.
func (b *Backend) ListCategories(_ context.Context, typ model.CategoryType) ([]model.Category, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	return b.categoriesOf(typ), nil
}

func (b *Backend) categoriesOf(typ model.CategoryType) []model.Category {
	out := []model.Category{}
	for _, c := range b.Categories {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

// CreateCategory stores a new category.
func (b *Backend) CreateCategory(_ context.Context, in model.CategoryInput) (model.Category, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return model.Category{}, b.Err
	}
	b.CategoryInputs = append(b.CategoryInputs, in)
	b.nextID++
	c := model.Category{ID: b.nextID, Name: in.Name, Type: in.Type}
	if in.ParentID != 0 {
		c.Parent = &model.CategoryRef{ID: in.ParentID}
	}
	b.Categories = append(b.Categories, c)
	return c, nil
}

// UpdateCategory replaces a stored category.
func (b *Backend) UpdateCategory(_ context.Context, id int64, in model.CategoryInput) (model.Category, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return model.Category{}, b.Err
	}
	i := slices.IndexFunc(b.Categories, func(c model.Category) bool { return c.ID == id })
	if i < 0 {
		return model.Category{}, common.ErrNotFound
	}
	b.CategoryInputs = append(b.CategoryInputs, in)
	c := model.Category{ID: id, Name: in.Name, Type: in.Type}
	if in.ParentID != 0 {
		c.Parent = &model.CategoryRef{ID: in.ParentID}
	}
	b.Categories[i] = c
	return c, nil
}

// DeleteCategory removes a stored category.
func (b *Backend) DeleteCategory(_ context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	i := slices.IndexFunc(b.Categories, func(c model.Category) bool { return c.ID == id })
	if i < 0 {
		return common.ErrNotFound
	}
	b.DeletedCategories = append(b.DeletedCategories, id)
	b.Categories = slices.Delete(b.Categories, i, i+1)
	return nil
}

// Snapshot returns the range's transactions and the categories of typ.
func (b *Backend) Snapshot(ctx context.Context, r ledger.DateRange, typ model.CategoryType) (api.Snapshot, error) {
	txns, err := b.ListTransactions(ctx, r)
	if err != nil {
		return api.Snapshot{}, err
	}
	cats, err := b.ListCategories(ctx, typ)
	if err != nil {
		return api.Snapshot{}, err
	}
	return api.Snapshot{Transactions: txns, Categories: cats}, nil
}

// Calls reports how many transaction loads happened.
func (b *Backend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Ranges)
}
