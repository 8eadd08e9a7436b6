package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/wbdash/wbdash/internal/client/datefilter"
	"github.com/wbdash/wbdash/internal/client/router"
	"github.com/wbdash/wbdash/internal/client/services"
	"github.com/wbdash/wbdash/internal/client/view"
	"github.com/wbdash/wbdash/internal/daterange"
)

// onRangeChange is the date filter callback. The reload happens in
// applyRangeChange so it runs with the command's context.
func (a *App) onRangeChange(daterange.Range) {
	a.mu.Lock()
	a.rangeChanged = true
	a.mu.Unlock()
}

func (a *App) takeRangeChange() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	changed := a.rangeChanged
	a.rangeChanged = false
	return changed
}

// applyRangeChange reloads the period cards if the range moved while the
// analytics page is shown.
func (a *App) applyRangeChange(ctx context.Context) error {
	if !a.takeRangeChange() || a.currentPage() != router.PageAnalytics {
		return nil
	}
	return a.Stats(ctx)
}

// Stats loads and prints the period cards for the current range.
func (a *App) Stats(ctx context.Context) error {
	a.filter.Init()
	a.takeRangeChange()

	r := a.filter.Range()
	fmt.Fprintf(a.out, "Период: %s\n", r)

	st, err := a.stats.Load(ctx, r)
	if errors.Is(err, services.ErrStale) {
		return nil
	}
	fmt.Fprintln(a.out, view.RenderPeriodStats(st))
	return err
}

// SetDate picks a day in one of the calendars: "from 2024-06-01".
func (a *App) SetDate(ctx context.Context, c datefilter.Calendar, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s <YYYY-MM-DD>", c)
	}
	d, err := daterange.Parse(args[0])
	if err != nil {
		return err
	}
	if !a.filter.Select(c, d) {
		return fmt.Errorf("дата %s недоступна", d)
	}
	fmt.Fprintf(a.out, "Период: %s\n", a.filter.Range())
	return a.applyRangeChange(ctx)
}

// Calendar shows a month grid: "calendar from", "calendar to next",
// "calendar from close".
func (a *App) Calendar(_ context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: calendar from|to [prev|next|close]")
	}

	var c datefilter.Calendar
	switch args[0] {
	case "from":
		c = datefilter.From
	case "to":
		c = datefilter.To
	default:
		return fmt.Errorf("unknown calendar %q", args[0])
	}

	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}
	switch sub {
	case "":
		if !a.filter.IsOpen(c) {
			a.filter.Toggle(c)
		}
	case "prev":
		a.filter.PrevMonth(c)
	case "next":
		a.filter.NextMonth(c)
	case "close":
		a.filter.ClickOutside(c)
		return nil
	default:
		return fmt.Errorf("unknown calendar action %q", sub)
	}

	fmt.Fprint(a.out, a.filter.Month(c).Render())
	return nil
}

func (a *App) Products(ctx context.Context) error {
	a.filter.Init()
	st, err := a.products.Load(ctx, a.filter.Range())
	if err != nil {
		if errors.Is(err, services.ErrStale) {
			return nil
		}
		return err
	}
	fmt.Fprint(a.out, view.RenderProducts(st.Data))
	return nil
}

func (a *App) Orders(ctx context.Context) error {
	a.filter.Init()
	st, err := a.orders.Load(ctx, a.filter.Range())
	if err != nil {
		if errors.Is(err, services.ErrStale) {
			return nil
		}
		return err
	}
	fmt.Fprint(a.out, view.RenderOrdersChart(st.Data, chartWidth))
	return nil
}

// Refresh reloads the profile and drops selected accounts the user lost
// access to.
func (a *App) Refresh(ctx context.Context) error {
	u, err := a.auth.ReloadProfile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Профиль обновлён: %s, кабинетов %d\n", u.Nickname, len(u.WbLks))
	return nil
}
