package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Veraticus/ledger/internal/ledger"
	"github.com/Veraticus/ledger/internal/model"
)

// ListTransactions returns the transactions dated within r in the client's timezone.
func (c *Client) ListTransactions(ctx context.Context, r ledger.DateRange) ([]model.Transaction, error) {
	query := url.Values{}
	query.Set("startDate", r.Start.String())
	query.Set("endDate", r.End.String())
	query.Set("timezone", ledger.OffsetString(r.Start.Start(c.location), c.location))

	var dtos []transactionDTO
	if err := c.get(ctx, "/expenses/date-range", query, &dtos); err != nil {
		return nil, fmt.Errorf("failed to list transactions for %s: %w", r, err)
	}
	return c.convertTransactions(dtos), nil
}

// ListAllTransactions returns every transaction the server knows.
func (c *Client) ListAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	var dtos []transactionDTO
	if err := c.get(ctx, "/expenses", nil, &dtos); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return c.convertTransactions(dtos), nil
}

// CreateTransaction records a transaction and returns it as stored.
func (c *Client) CreateTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error) {
	var dto transactionDTO
	if err := c.send(ctx, http.MethodPost, "/expenses", newTransactionRequest(in), &dto); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	return c.savedTransaction(dto, in)
}

// savedTransaction fills what the server left out of a write response from
// the input. An id-less response still counts as saved; the id stays zero.
func (c *Client) savedTransaction(dto transactionDTO, in model.TransactionInput) (model.Transaction, error) {
	if dto.ID <= 0 {
		c.logger.Debug("create response carried no transaction", "currency", in.Currency)
		txn := model.Transaction{
			Description: in.Description,
			Currency:    in.Currency,
			Type:        in.Type,
			Sum:         in.Sum,
			Moment:      in.Moment,
		}
		if in.CategoryID != 0 {
			txn.Category = &model.TransactionCategory{ID: in.CategoryID}
		}
		return txn, nil
	}
	if len(dto.Sum) == 0 {
		dto.Sum = json.RawMessage(in.Sum.String())
	}
	if dto.Moment == "" {
		dto.Moment = in.Moment.Format(time.RFC3339Nano)
	}
	if dto.Currency == "" {
		dto.Currency = in.Currency
	}
	if dto.Description == "" {
		dto.Description = in.Description
	}
	if dto.Type == "" {
		dto.Type = string(in.Type)
	}
	txn, err := dto.toModel(c.location)
	if err != nil {
		return model.Transaction{}, err
	}
	if txn.Category == nil && in.CategoryID != 0 {
		txn.Category = &model.TransactionCategory{ID: in.CategoryID}
	}
	return txn, nil
}

// DeleteTransaction removes transaction id.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	path := "/expenses/" + strconv.FormatInt(id, 10)
	if err := c.send(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return nil
}
