// Package router maps dashboard paths to pages and applies the auth
// redirects: anonymous users land on /login, signed-in users never see
// /login or /register.
package router

import "strings"

type Page string

const (
	PageLogin     Page = "login"
	PageRegister  Page = "register"
	PageDashboard Page = "dashboard"
	PageRepricer  Page = "repricer"
	PageAnalytics Page = "analytics"
	PageSorter    Page = "sorter"
	PageAccounts  Page = "wb-lk"
)

const (
	LoginPath     = "/login"
	RegisterPath  = "/register"
	DashboardPath = "/dashboard"
)

// Module describes a dashboard section.
type Module struct {
	Page        Page
	Title       string
	Description string
	// Ready is false for sections that only show a placeholder.
	Ready bool
}

// Modules lists the dashboard sections in menu order.
var Modules = []Module{
	{Page: PageRepricer, Title: "Репрайсер", Description: "Автоматическое управление ценами"},
	{Page: PageAnalytics, Title: "Дашборд", Description: "Аналитика и отчеты", Ready: true},
	{Page: PageSorter, Title: "Подсортировщик", Description: "Управление ассортиментом"},
	{Page: PageAccounts, Title: "Кабинеты WB", Description: "Подключение и доступ к кабинетам", Ready: true},
}

// ModuleFor returns the section rendered at page.
func ModuleFor(page Page) (Module, bool) {
	for _, m := range Modules {
		if m.Page == page {
			return m, true
		}
	}
	return Module{}, false
}

// Route is the outcome of resolving a path.
type Route struct {
	Path     string
	Page     Page
	Redirect bool
}

func PathFor(p Page) string {
	switch p {
	case PageLogin:
		return LoginPath
	case PageRegister:
		return RegisterPath
	case PageDashboard:
		return DashboardPath
	default:
		return DashboardPath + "/" + string(p)
	}
}

func to(p Page, redirect bool) Route {
	return Route{Path: PathFor(p), Page: p, Redirect: redirect}
}

func home(authenticated bool) Page {
	if authenticated {
		return PageDashboard
	}
	return PageLogin
}

// Resolve maps path to a page for a user who is or is not signed in.
func Resolve(path string, authenticated bool) Route {
	clean := "/" + strings.Trim(strings.TrimSpace(path), "/")

	switch clean {
	case LoginPath, RegisterPath:
		if authenticated {
			return to(PageDashboard, true)
		}
		if clean == LoginPath {
			return to(PageLogin, false)
		}
		return to(PageRegister, false)
	case DashboardPath:
		if !authenticated {
			return to(PageLogin, true)
		}
		return to(PageDashboard, false)
	}

	if rest, ok := strings.CutPrefix(clean, DashboardPath+"/"); ok {
		if !authenticated {
			return to(PageLogin, true)
		}
		if m, ok := ModuleFor(Page(rest)); ok {
			return to(m.Page, false)
		}
		return to(PageDashboard, true)
	}

	return to(home(authenticated), true)
}
