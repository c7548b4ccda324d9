package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/ledger/internal/common"
	"github.com/Veraticus/ledger/internal/model"
	"github.com/shopspring/decimal"
)

type refDTO struct {
	Name string `json:"name,omitempty"`
	ID   int64  `json:"id"`
}

type categoryDTO struct {
	Parent   *refDTO       `json:"parent"`
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	Children []categoryDTO `json:"children,omitempty"`
	ID       int64         `json:"id"`
}

type categoryRequest struct {
	Parent *refDTO `json:"parent"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
}

type transactionDTO struct {
	Category    *categoryDTO    `json:"category"`
	Description string          `json:"description"`
	Currency    string          `json:"currency"`
	Moment      string          `json:"moment"`
	Type        string          `json:"type"`
	Sum         json.RawMessage `json:"sum"`
	ID          int64           `json:"id"`
}

type transactionRequest struct {
	Category    refDTO      `json:"category"`
	Description string      `json:"description"`
	Currency    string      `json:"currency"`
	Moment      string      `json:"moment"`
	Type        string      `json:"type"`
	Sum         json.Number `json:"sum"`
}

func newCategoryRequest(in model.CategoryInput) categoryRequest {
	req := categoryRequest{Name: in.Name, Type: string(in.Type)}
	if in.ParentID != 0 {
		req.Parent = &refDTO{ID: in.ParentID}
	}
	return req
}

func newTransactionRequest(in model.TransactionInput) transactionRequest {
	return transactionRequest{
		Category:    refDTO{ID: in.CategoryID},
		Description: in.Description,
		Currency:    in.Currency,
		Moment:      in.Moment.UTC().Format(time.RFC3339),
		Type:        string(in.Type),
		Sum:         json.Number(in.Sum.String()),
	}
}

func parentRef(ref *refDTO) *model.CategoryRef {
	if ref == nil || ref.ID <= 0 {
		return nil
	}
	return &model.CategoryRef{ID: ref.ID, Name: ref.Name}
}

func parseType(raw string, fallback model.CategoryType) (model.CategoryType, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return model.ParseCategoryType(raw)
}

func (dto categoryDTO) toModel(fallback model.CategoryType) (model.Category, error) {
	if dto.ID <= 0 {
		return model.Category{}, fmt.Errorf("category without id: %w", common.ErrMalformed)
	}
	typ, err := parseType(dto.Type, fallback)
	if err != nil {
		return model.Category{}, fmt.Errorf("category %d: %w: %w", dto.ID, common.ErrMalformed, err)
	}
	return model.Category{
		ID:     dto.ID,
		Name:   strings.TrimSpace(dto.Name),
		Type:   typ,
		Parent: parentRef(dto.Parent),
	}, nil
}

// flattenCategories turns a list that may nest children into a flat snapshot
// with parent references. A category seen both nested and at the top level is
// kept once, at its first position, with whichever parent reference is known.
func (c *Client) flattenCategories(dtos []categoryDTO, typ model.CategoryType) []model.Category {
	var out []model.Category
	index := make(map[int64]int)

	var walk func(nodes []categoryDTO, parent *model.CategoryRef)
	walk = func(nodes []categoryDTO, parent *model.CategoryRef) {
		for _, dto := range nodes {
			cat, err := dto.toModel(typ)
			if err != nil {
				c.logger.Warn("skipping invalid category", "error", err)
				continue
			}
			if cat.Parent == nil && parent != nil {
				cat.Parent = parent
			}
			if i, seen := index[cat.ID]; seen {
				if out[i].Parent == nil {
					out[i].Parent = cat.Parent
				}
			} else {
				index[cat.ID] = len(out)
				out = append(out, cat)
			}
			if len(dto.Children) > 0 {
				walk(dto.Children, &model.CategoryRef{ID: cat.ID, Name: cat.Name})
			}
		}
	}
	walk(dtos, nil)

	if out == nil {
		out = []model.Category{}
	}
	return out
}

func parseSum(raw json.RawMessage) (decimal.Decimal, error) {
	text := string(bytes.TrimSpace(raw))
	if text == "" || text == "null" {
		return decimal.Decimal{}, errors.New("missing sum")
	}
	text = strings.Trim(text, `"`)
	sum, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("sum %q is not a number", text)
	}
	if sum.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("sum %s is negative", sum)
	}
	return sum, nil
}

func parseMoment(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	// Some servers serialize a local date-time without an offset.
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("moment %q is not an ISO-8601 instant", raw)
}

func (dto transactionDTO) toModel(loc *time.Location) (model.Transaction, error) {
	if dto.ID <= 0 {
		return model.Transaction{}, fmt.Errorf("transaction without id: %w", common.ErrMalformed)
	}
	sum, err := parseSum(dto.Sum)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %d: %w: %w", dto.ID, common.ErrMalformed, err)
	}
	moment, err := parseMoment(dto.Moment, loc)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %d: %w: %w", dto.ID, common.ErrMalformed, err)
	}
	typ, err := parseType(dto.Type, model.CategoryTypeExpense)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %d: %w: %w", dto.ID, common.ErrMalformed, err)
	}

	txn := model.Transaction{
		ID:          dto.ID,
		Description: dto.Description,
		Currency:    strings.TrimSpace(dto.Currency),
		Type:        typ,
		Sum:         sum,
		Moment:      moment,
	}
	if dto.Category != nil && dto.Category.ID > 0 {
		txn.Category = &model.TransactionCategory{
			ID:     dto.Category.ID,
			Name:   strings.TrimSpace(dto.Category.Name),
			Parent: parentRef(dto.Category.Parent),
		}
	}
	return txn, nil
}

func (c *Client) convertTransactions(dtos []transactionDTO) []model.Transaction {
	out := make([]model.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		txn, err := dto.toModel(c.location)
		if err != nil {
			c.logger.Warn("skipping invalid transaction", "error", err)
			continue
		}
		out = append(out, txn)
	}
	return out
}
