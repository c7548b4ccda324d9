package model

import (
	"fmt"
	"strings"
)

// CategoryType partitions categories and transactions into expenses and incomes.
type CategoryType string

const (
	// CategoryTypeExpense marks money going out.
	CategoryTypeExpense CategoryType = "EXPENSE"
	// CategoryTypeIncome marks money coming in.
	CategoryTypeIncome CategoryType = "INCOME"
)

// CategoryTypes lists the known types in display order.
var CategoryTypes = []CategoryType{CategoryTypeExpense, CategoryTypeIncome}

// ParseCategoryType accepts either case and returns the canonical type.
func ParseCategoryType(s string) (CategoryType, error) {
	switch CategoryType(strings.ToUpper(strings.TrimSpace(s))) {
	case CategoryTypeExpense:
		return CategoryTypeExpense, nil
	case CategoryTypeIncome:
		return CategoryTypeIncome, nil
	default:
		return "", fmt.Errorf("unknown category type %q", s)
	}
}

// Label returns the human form used in headings ("Expense", "Income").
func (t CategoryType) Label() string {
	if t == CategoryTypeIncome {
		return "Income"
	}
	return "Expense"
}

// Toggle flips between expense and income.
func (t CategoryType) Toggle() CategoryType {
	if t == CategoryTypeIncome {
		return CategoryTypeExpense
	}
	return CategoryTypeIncome
}

// CategoryRef is a weak reference to another category. Name is only
// populated when the server embedded it.
type CategoryRef struct {
	Name string
	ID   int64
}

// Category is a named bucket for transactions, optionally nested under a parent.
type Category struct {
	Parent *CategoryRef
	Name   string
	Type   CategoryType
	ID     int64
}

// IsRoot reports whether the category has no parent reference.
func (c Category) IsRoot() bool {
	return c.Parent == nil
}

// ParentID returns the parent id, or zero for roots.
func (c Category) ParentID() int64 {
	if c.Parent == nil {
		return 0
	}
	return c.Parent.ID
}

// CategoryInput is the payload for creating or updating a category.
type CategoryInput struct {
	Name     string
	Type     CategoryType
	ParentID int64 // zero means root
}
