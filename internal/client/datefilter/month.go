package datefilter

import (
	"fmt"
	"strings"
	"time"

	"github.com/wbdash/wbdash/internal/daterange"
)

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// WeekDays are the grid column headers, Monday first.
var WeekDays = [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// Cell is one grid slot. Empty cells pad the first week.
type Cell struct {
	Date     daterange.Date
	Empty    bool
	Disabled bool
	Selected bool
}

type Month struct {
	Calendar Calendar
	First    daterange.Date
	Cells    []Cell
}

func (m Month) Title() string {
	return fmt.Sprintf("%s %d", monthNames[m.First.Month()-1], m.First.Year())
}

// mondayOffset maps Sunday=0..Saturday=6 to Monday=0..Sunday=6.
func mondayOffset(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// Month returns the grid currently displayed by c.
func (f *Filter) Month(c Calendar) Month {
	f.mu.Lock()
	defer f.mu.Unlock()

	first := f.cals[c].month
	m := Month{Calendar: c, First: first}

	for i := 0; i < mondayOffset(first.Weekday()); i++ {
		m.Cells = append(m.Cells, Cell{Empty: true})
	}
	sel := f.selected(c)
	for d := first; d.Month() == first.Month(); d = d.AddDays(1) {
		m.Cells = append(m.Cells, Cell{
			Date:     d,
			Disabled: f.disabled(c, d),
			Selected: f.initialized && d.Equal(sel),
		})
	}
	return m
}

// Render draws the month as text: [dd] marks the selection, a trailing
// dot marks a disabled day.
func (m Month) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", m.Title(), m.Calendar)
	b.WriteString(strings.Join(WeekDays[:], "   "))
	b.WriteByte('\n')

	for i, c := range m.Cells {
		switch {
		case c.Empty:
			b.WriteString("    ")
		case c.Selected:
			fmt.Fprintf(&b, "[%2d]", c.Date.Day())
		case c.Disabled:
			fmt.Fprintf(&b, " %2d.", c.Date.Day())
		default:
			fmt.Fprintf(&b, " %2d ", c.Date.Day())
		}
		if i%7 == 6 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	if len(m.Cells)%7 != 0 {
		b.WriteByte('\n')
	}
	return b.String()
}
