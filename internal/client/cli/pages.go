package cli

import (
	"context"
	"fmt"

	"github.com/wbdash/wbdash/internal/client/router"
)

const inDevelopment = "Раздел в разработке"

// Go navigates to path, applying the auth redirects, and renders the page.
func (a *App) Go(ctx context.Context, path string) error {
	route := router.Resolve(path, a.isLoggedIn())

	a.mu.Lock()
	a.page, a.path = route.Page, route.Path
	a.mu.Unlock()

	if route.Redirect {
		fmt.Fprintln(a.out, "→", route.Path)
	}
	return a.render(ctx, route.Page)
}

func (a *App) render(ctx context.Context, page router.Page) error {
	switch page {
	case router.PageLogin:
		fmt.Fprintln(a.out, "Вход: команда login. Нет аккаунта? register.")
		return nil
	case router.PageRegister:
		fmt.Fprintln(a.out, "Регистрация: команда register.")
		return nil
	case router.PageDashboard:
		for _, m := range router.Modules {
			fmt.Fprintf(a.out, "%-28s %s: %s\n", router.PathFor(m.Page), m.Title, m.Description)
		}
		return nil
	case router.PageAnalytics:
		return a.Stats(ctx)
	case router.PageAccounts:
		return a.Accounts(ctx)
	}

	m, ok := router.ModuleFor(page)
	if !ok {
		return nil
	}
	fmt.Fprintf(a.out, "%s\n%s\n\n", m.Title, m.Description)
	if !m.Ready {
		fmt.Fprintln(a.out, inDevelopment)
	}
	return nil
}
