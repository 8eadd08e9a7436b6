package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path   string
		authed bool
		want   Route
	}{
		{"/login", false, Route{Path: "/login", Page: PageLogin}},
		{"/register", false, Route{Path: "/register", Page: PageRegister}},
		{"/login", true, Route{Path: "/dashboard", Page: PageDashboard, Redirect: true}},
		{"/register", true, Route{Path: "/dashboard", Page: PageDashboard, Redirect: true}},
		{"/dashboard", false, Route{Path: "/login", Page: PageLogin, Redirect: true}},
		{"/dashboard/analytics", false, Route{Path: "/login", Page: PageLogin, Redirect: true}},
		{"/dashboard", true, Route{Path: "/dashboard", Page: PageDashboard}},
		{"/dashboard/", true, Route{Path: "/dashboard", Page: PageDashboard}},
		{"/dashboard/repricer", true, Route{Path: "/dashboard/repricer", Page: PageRepricer}},
		{"dashboard/analytics", true, Route{Path: "/dashboard/analytics", Page: PageAnalytics}},
		{"/dashboard/sorter", true, Route{Path: "/dashboard/sorter", Page: PageSorter}},
		{"/dashboard/wb-lk", true, Route{Path: "/dashboard/wb-lk", Page: PageAccounts}},
		{"/dashboard/nope", true, Route{Path: "/dashboard", Page: PageDashboard, Redirect: true}},
		{"/", true, Route{Path: "/dashboard", Page: PageDashboard, Redirect: true}},
		{"/", false, Route{Path: "/login", Page: PageLogin, Redirect: true}},
		{"/anything", false, Route{Path: "/login", Page: PageLogin, Redirect: true}},
		{"/anything", true, Route{Path: "/dashboard", Page: PageDashboard, Redirect: true}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.path, tt.authed))
		})
	}
}

func TestModules(t *testing.T) {
	m, ok := ModuleFor(PageRepricer)
	assert.True(t, ok)
	assert.False(t, m.Ready)

	m, ok = ModuleFor(PageAnalytics)
	assert.True(t, ok)
	assert.True(t, m.Ready)

	_, ok = ModuleFor(PageLogin)
	assert.False(t, ok)
}
