package viewstate

import (
	"strings"
	"time"

	"github.com/Veraticus/ledger/internal/common"
	"github.com/Veraticus/ledger/internal/model"
	"github.com/shopspring/decimal"
)

// MomentLayout is the format of the entry form's date-time field.
const MomentLayout = "2006-01-02T15:04"

// ExpenseDraft is the unvalidated content of the entry form.
type ExpenseDraft struct {
	Sum         string
	Currency    string
	Moment      string
	Description string
	Type        model.CategoryType
	CategoryID  int64
}

// NewExpenseDraft returns an empty form preset to now.
func NewExpenseDraft(now time.Time, loc *time.Location, currency string) ExpenseDraft {
	if loc == nil {
		loc = time.Local
	}
	return ExpenseDraft{
		Type:     model.CategoryTypeExpense,
		Currency: currency,
		Moment:   now.In(loc).Format(MomentLayout),
	}
}

// Validate converts the draft into a submission. Nothing is sent when it fails.
func (d ExpenseDraft) Validate(loc *time.Location) (model.TransactionInput, error) {
	if loc == nil {
		loc = time.Local
	}
	sum := strings.TrimSpace(d.Sum)
	if sum == "" || d.CategoryID == 0 {
		return model.TransactionInput{}, common.NewValidationError("Please fill in amount and select a category")
	}
	amount, err := decimal.NewFromString(sum)
	if err != nil {
		return model.TransactionInput{}, common.NewValidationError("Amount must be a number")
	}
	if amount.IsNegative() {
		return model.TransactionInput{}, common.NewValidationError("Amount must not be negative")
	}
	currency := strings.ToUpper(strings.TrimSpace(d.Currency))
	if currency == "" {
		return model.TransactionInput{}, common.NewValidationError("Please select a currency")
	}
	moment, err := time.ParseInLocation(MomentLayout, strings.TrimSpace(d.Moment), loc)
	if err != nil {
		return model.TransactionInput{}, common.NewValidationError("Date must look like 2024-06-13T14:30")
	}
	typ := d.Type
	if typ == "" {
		typ = model.CategoryTypeExpense
	}
	return model.TransactionInput{
		Moment:      moment,
		Description: strings.TrimSpace(d.Description),
		Currency:    currency,
		Type:        typ,
		Sum:         amount,
		CategoryID:  d.CategoryID,
	}, nil
}

// Reset clears the fields a user fills in, keeping type and currency.
func (d ExpenseDraft) Reset(now time.Time, loc *time.Location) ExpenseDraft {
	next := NewExpenseDraft(now, loc, d.Currency)
	next.Type = d.Type
	return next
}

// CategoryDraft is the unvalidated content of the category form. A zero ID
// means the draft creates a new category.
type CategoryDraft struct {
	Name     string
	Type     model.CategoryType
	ID       int64
	ParentID int64
}

// DraftFromCategory copies a category into an edit buffer.
func DraftFromCategory(c model.Category) CategoryDraft {
	return CategoryDraft{
		ID:       c.ID,
		Name:     c.Name,
		Type:     c.Type,
		ParentID: c.ParentID(),
	}
}

// IsNew reports whether submitting the draft creates a category.
func (d CategoryDraft) IsNew() bool {
	return d.ID == 0
}

// Validate converts the draft into a submission.
func (d CategoryDraft) Validate() (model.CategoryInput, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return model.CategoryInput{}, common.NewValidationError("Please enter a category name")
	}
	if d.ID != 0 && d.ParentID == d.ID {
		return model.CategoryInput{}, common.NewValidationError("A category cannot be its own parent")
	}
	typ := d.Type
	if typ == "" {
		typ = model.CategoryTypeExpense
	}
	return model.CategoryInput{Name: name, Type: typ, ParentID: d.ParentID}, nil
}
