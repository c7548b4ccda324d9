package api

import (
	"context"

	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/model"
	"golang.org/x/sync/errgroup"
)

// Snapshot is one consistent view of the data a screen needs.
type Snapshot struct {
	Transactions []model.Transaction
	Categories   []model.Category
}

// Snapshot loads the transactions in r and the categories of typ concurrently.
func (c *Client) Snapshot(ctx context.Context, r ledger.DateRange, typ model.CategoryType) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		txns, err := c.ListTransactions(gctx, r)
		if err != nil {
			return err
		}
		snap.Transactions = txns
		return nil
	})

	g.Go(func() error {
		cats, err := c.ListCategories(gctx, typ)
		if err != nil {
			return err
		}
		snap.Categories = cats
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
