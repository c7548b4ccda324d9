package ledger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/ledger/internal/model"
)

// SortKey is a sortable transaction column.
type SortKey string

// Sortable columns.
const (
	SortMoment      SortKey = "moment"
	SortSum         SortKey = "sum"
	SortDescription SortKey = "description"
	SortCurrency    SortKey = "currency"
)

// Direction is the sort order.
type Direction string

// Sort orders.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseSortKey validates a column name from flags or config.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortMoment, SortSum, SortDescription, SortCurrency:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(s)); d {
	case Ascending, Descending:
		return d, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", s)
	}
}

// Sort is the single active sort column.
type Sort struct {
	Key       SortKey
	Direction Direction
}

// DefaultSort shows the newest transactions first.
func DefaultSort() Sort {
	return Sort{Key: SortMoment, Direction: Descending}
}

// Select returns the sort after the user picks key: the same key flips the
// direction, a new key starts ascending.
func (s Sort) Select(key SortKey) Sort {
	if s.Key == key {
		if s.Direction == Ascending {
			return Sort{Key: key, Direction: Descending}
		}
		return Sort{Key: key, Direction: Ascending}
	}
	return Sort{Key: key, Direction: Ascending}
}

// Indicator returns the header glyph for key under this sort.
func (s Sort) Indicator(key SortKey) string {
	if s.Key != key {
		return "↕"
	}
	if s.Direction == Descending {
		return "↓"
	}
	return "↑"
}

// SortBy returns a sorted copy of transactions. The sort is stable, so ties
// keep their input order; the input slice is not modified.
func SortBy(transactions []model.Transaction, s Sort) []model.Transaction {
	sorted := slices.Clone(transactions)
	if sorted == nil {
		sorted = []model.Transaction{}
	}
	cmp := comparator(s.Key)
	if cmp == nil {
		return sorted
	}
	slices.SortStableFunc(sorted, func(a, b model.Transaction) int {
		if s.Direction == Descending {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return sorted
}

func comparator(key SortKey) func(a, b model.Transaction) int {
	switch key {
	case SortMoment:
		return func(a, b model.Transaction) int { return a.Moment.Compare(b.Moment) }
	case SortSum:
		return func(a, b model.Transaction) int { return a.Sum.Cmp(b.Sum) }
	case SortDescription:
		return func(a, b model.Transaction) int {
			return strings.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description))
		}
	case SortCurrency:
		return func(a, b model.Transaction) int {
			return strings.Compare(strings.ToLower(a.Currency), strings.ToLower(b.Currency))
		}
	default:
		return nil
	}
}
