// Package datefilter is the two-calendar date range picker that feeds the
// analytics views. It keeps from <= to and never accepts days after today.
package datefilter

import (
	"sync"
	"time"

	"github.com/wbdash/wbdash/internal/daterange"
)

// Calendar picks one of the two popups.
type Calendar int

const (
	From Calendar = iota
	To
)

func (c Calendar) String() string {
	if c == To {
		return "to"
	}
	return "from"
}

// ChangeFunc receives every accepted range.
type ChangeFunc func(r daterange.Range)

type calendar struct {
	open  bool
	month daterange.Date
}

type Filter struct {
	mu          sync.Mutex
	now         func() time.Time
	onChange    ChangeFunc
	initialized bool
	rng         daterange.Range
	cals        [2]calendar
}

func New(now func() time.Time, onChange ChangeFunc) *Filter {
	if now == nil {
		now = time.Now
	}
	f := &Filter{now: now, onChange: onChange}
	month := f.today().FirstOfMonth()
	f.cals[From].month = month
	f.cals[To].month = month
	return f
}

func (f *Filter) today() daterange.Date { return daterange.Today(f.now()) }

// Init sets the default [today-30, today] range and reports it. Only the
// first call does anything.
func (f *Filter) Init() {
	f.mu.Lock()
	if f.initialized {
		f.mu.Unlock()
		return
	}
	f.initialized = true
	f.rng = daterange.Default(f.today())
	r := f.rng
	f.mu.Unlock()

	f.report(r)
}

func (f *Filter) report(r daterange.Range) {
	if f.onChange != nil {
		f.onChange(r)
	}
}

// Range returns the current selection.
func (f *Filter) Range() daterange.Range {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rng
}

func (f *Filter) IsOpen(c Calendar) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cals[c].open
}

func (f *Filter) selected(c Calendar) daterange.Date {
	if c == To {
		return f.rng.To
	}
	return f.rng.From
}

// Toggle flips c and closes the other calendar. Opening jumps the grid to
// the month of the selected date.
func (f *Filter) Toggle(c Calendar) {
	f.mu.Lock()
	defer f.mu.Unlock()

	open := !f.cals[c].open
	f.cals[From].open = false
	f.cals[To].open = false
	f.cals[c].open = open

	if open && f.initialized {
		f.cals[c].month = f.selected(c).FirstOfMonth()
	}
}

// ClickOutside closes c.
func (f *Filter) ClickOutside(c Calendar) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cals[c].open = false
}

// Select applies a day picked in c and reports whether it was accepted.
// Future days are refused by both calendars; a "to" before "from" is
// refused; a "from" after "to" drags "to" along. Refusals change nothing.
// Before Init, the default range is applied and reported first.
func (f *Filter) Select(c Calendar, d daterange.Date) bool {
	f.Init()

	f.mu.Lock()
	if f.disabled(c, d) {
		f.mu.Unlock()
		return false
	}

	switch c {
	case From:
		f.rng.From = d
		if d.After(f.rng.To) {
			f.rng.To = d
		}
	case To:
		f.rng.To = d
	}
	f.cals[c].open = false
	r := f.rng
	f.mu.Unlock()

	f.report(r)
	return true
}

func (f *Filter) disabled(c Calendar, d daterange.Date) bool {
	if d.After(f.today()) {
		return true
	}
	return c == To && d.Before(f.rng.From)
}

func (f *Filter) PrevMonth(c Calendar) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cals[c].month = f.cals[c].month.AddMonths(-1)
}

func (f *Filter) NextMonth(c Calendar) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cals[c].month = f.cals[c].month.AddMonths(1)
}
