// Package daterange models inclusive calendar-date ranges and the
// equal-length preceding period used for period-over-period comparison.
package daterange

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/wbdash/wbdash/internal/common"
)

// Date is a calendar day with no time-of-day or zone. The zero value is
// 0001-01-01.
type Date struct {
	t time.Time
}

// New builds a Date; out-of-range month or day values normalise the way
// time.Date does.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the calendar day of now in now's location.
func Today(now time.Time) Date {
	y, m, d := now.Date()
	return New(y, m, d)
}

// Parse reads a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(common.DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: bad date %q", common.ErrValidation, s)
	}
	return Date{t: t}, nil
}

func (d Date) String() string { return d.t.Format(common.DateLayout) }

func (d Date) Year() int { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time { return d.t }

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return New(d.Year(), d.Month()+time.Month(n), 1) }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// DaysUntil returns o - d in whole days. Both values are UTC midnight, so
// Unix seconds divide evenly; time.Duration would clamp past ~292 years.
func (d Date) DaysUntil(o Date) int {
	return int((o.t.Unix() - d.t.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date { return New(d.Year(), d.Month(), 1) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
