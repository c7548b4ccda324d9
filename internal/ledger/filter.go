package ledger

import (
	"time"

	"github.com/Veraticus/ledger/internal/model"
)

// DateRange is an inclusive range of calendar dates. Start == End selects a
// single day; Start after End selects nothing.
type DateRange struct {
	Start Date
	End   Date
}

// SingleDay returns the range covering exactly d.
func SingleDay(d Date) DateRange {
	return DateRange{Start: d, End: d}
}

// IsEmpty reports whether the range cannot contain any date.
func (r DateRange) IsEmpty() bool {
	return r.Start.After(r.End)
}

// Contains reports whether d lies within the range.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// String formats the range for status lines.
func (r DateRange) String() string {
	if r.Start == r.End {
		return r.Start.String()
	}
	return r.Start.String() + " → " + r.End.String()
}

// FilterByDateRange keeps the transactions whose moment falls on a date
// within r in loc. Order is preserved.
func FilterByDateRange(transactions []model.Transaction, r DateRange, loc *time.Location) []model.Transaction {
	filtered := make([]model.Transaction, 0, len(transactions))
	if r.IsEmpty() {
		return filtered
	}
	for _, txn := range transactions {
		if r.Contains(DateOf(txn.Moment, loc)) {
			filtered = append(filtered, txn)
		}
	}
	return filtered
}
