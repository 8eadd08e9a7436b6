package daterange

import (
	"fmt"

	"github.com/wbdash/wbdash/internal/common"
)

// DefaultSpanDays is how far back the default range reaches from today.
const DefaultSpanDays = 30

// Range is an inclusive [From, To] pair with From <= To.
type Range struct {
	From Date `json:"date_from"`
	To   Date `json:"date_to"`
}

// NewRange validates from <= to.
func NewRange(from, to Date) (Range, error) {
	if from.After(to) {
		return Range{}, fmt.Errorf("%w: date_from %s is after date_to %s", common.ErrValidation, from, to)
	}
	return Range{From: from, To: to}, nil
}

// Default is the trailing window [today-30, today].
func Default(today Date) Range {
	return Range{From: today.AddDays(-DefaultSpanDays), To: today}
}

// Days is the inclusive day count (to - from) + 1.
func (r Range) Days() int {
	return r.From.DaysUntil(r.To) + 1
}

// Previous returns the equal-length range ending the day before From.
func (r Range) Previous() Range {
	n := r.Days()
	return Range{From: r.From.AddDays(-n), To: r.From.AddDays(-1)}
}

// Contains reports whether d falls inside the range.
func (r Range) Contains(d Date) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

// Overlaps reports whether r and o share at least one day.
func (r Range) Overlaps(o Range) bool {
	return !r.To.Before(o.From) && !o.To.Before(r.From)
}

// Each calls fn for every day from From to To.
func (r Range) Each(fn func(Date)) {
	for d := r.From; !d.After(r.To); d = d.AddDays(1) {
		fn(d)
	}
}

func (r Range) String() string {
	return r.From.String() + ".." + r.To.String()
}
