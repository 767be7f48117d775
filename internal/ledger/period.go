package ledger

import (
	"github.com/cashbook/backend/internal/types"
)

// Range is an inclusive date range. A zero bound is unbounded on that side.
type Range struct {
	From types.Date
	To   types.Date
}

// Contains reports whether d lies within the range, bounds included.
func (r Range) Contains(d types.Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}

	if !r.To.IsZero() && d.After(r.To) {
		return false
	}

	return true
}

// Inverted reports whether both bounds are set and From is after To.
// No date is contained in an inverted range.
func (r Range) Inverted() bool {
	return !r.From.IsZero() && !r.To.IsZero() && r.From.After(r.To)
}
