package ledger

import (
	"fmt"
	"time"
)

// QuickFilter names a preset date range relative to today.
type QuickFilter string

// Quick filter presets. Custom is the label shown once a bound is edited by hand.
const (
	QuickToday      QuickFilter = "today"
	QuickYesterday  QuickFilter = "yesterday"
	QuickThisWeek   QuickFilter = "thisWeek"
	QuickLastWeek   QuickFilter = "lastWeek"
	QuickThisMonth  QuickFilter = "thisMonth"
	QuickLast30Days QuickFilter = "last30Days"
	QuickCustom     QuickFilter = "custom"
)

// QuickFilters lists the selectable presets in menu order.
var QuickFilters = []QuickFilter{
	QuickToday,
	QuickYesterday,
	QuickThisWeek,
	QuickLastWeek,
	QuickThisMonth,
	QuickLast30Days,
}

// Label returns the menu text for the preset.
func (q QuickFilter) Label() string {
	switch q {
	case QuickToday:
		return "Today"
	case QuickYesterday:
		return "Yesterday"
	case QuickThisWeek:
		return "This Week"
	case QuickLastWeek:
		return "Last Week"
	case QuickThisMonth:
		return "This Month"
	case QuickLast30Days:
		return "Last 30 Days"
	case QuickCustom:
		return "Custom"
	default:
		return string(q)
	}
}

// ResolveQuickFilter computes the concrete range for name relative to today.
// Weeks start on Monday.
func ResolveQuickFilter(name QuickFilter, today Date) (DateRange, error) {
	switch name {
	case QuickToday:
		return SingleDay(today), nil

	case QuickYesterday:
		return SingleDay(today.AddDays(-1)), nil

	case QuickThisWeek:
		return DateRange{Start: today.AddDays(-daysSinceMonday(today)), End: today}, nil

	case QuickLastWeek:
		sinceSunday := int(today.Weekday())
		if today.Weekday() == time.Sunday {
			sinceSunday = 7
		}
		end := today.AddDays(-sinceSunday)
		return DateRange{Start: end.AddDays(-6), End: end}, nil

	case QuickThisMonth:
		return DateRange{Start: NewDate(today.Year, today.Month, 1), End: today}, nil

	case QuickLast30Days:
		return DateRange{Start: today.AddDays(-30), End: today}, nil

	default:
		return DateRange{}, fmt.Errorf("unknown quick filter %q", name)
	}
}

func daysSinceMonday(d Date) int {
	if d.Weekday() == time.Sunday {
		return 6
	}
	return int(d.Weekday()) - 1
}
