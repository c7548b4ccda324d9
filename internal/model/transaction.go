// Package model defines the domain types shared by the API client, the
// aggregation core and the user interfaces.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currencies offered by the entry forms. Any other label received from the
// server is kept as-is; currencies are never converted.
var Currencies = []string{"USD", "EUR", "GBP", "JPY"}

// Transaction is a single expense or income record.
type Transaction struct {
	Moment      time.Time
	Category    *TransactionCategory
	Description string
	Currency    string
	Type        CategoryType
	Sum         decimal.Decimal
	ID          int64
}

// TransactionCategory is the category embedded in a transaction payload.
type TransactionCategory struct {
	Parent *CategoryRef
	Name   string
	ID     int64
}

// IsIncome reports whether the transaction adds money.
func (t Transaction) IsIncome() bool {
	return t.Type == CategoryTypeIncome
}

// TransactionInput is the payload for recording a transaction.
type TransactionInput struct {
	Moment      time.Time
	Description string
	Currency    string
	Type        CategoryType
	Sum         decimal.Decimal
	CategoryID  int64
}
