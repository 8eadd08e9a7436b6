package httpapi

import (
	"context"

	"github.com/wbdash/wbdash/internal/daterange"
	"github.com/wbdash/wbdash/internal/server/models"
	"github.com/wbdash/wbdash/internal/server/services"
)

type fakeUsers struct {
	registered *services.RegisterInput
	user       *models.User
	login      *services.LoginResult
	profile    *models.Profile
	err        error
	gotID      int64
}

func (f *fakeUsers) Register(_ context.Context, in services.RegisterInput) (*models.User, error) {
	f.registered = &in
	return f.user, f.err
}

func (f *fakeUsers) Login(_ context.Context, _, _ string) (*services.LoginResult, error) {
	return f.login, f.err
}

func (f *fakeUsers) Profile(_ context.Context, id int64) (*models.Profile, error) {
	f.gotID = id
	return f.profile, f.err
}

type call struct {
	user, lk, target int64
}

type fakeLks struct {
	list     []models.LinkedAccount
	grantees []models.Grantee
	created  *services.AccountInput
	err      error
	last     call
}

func (f *fakeLks) Create(_ context.Context, owner int64, in services.AccountInput) (*models.LinkedAccount, error) {
	f.created = &in
	f.last = call{user: owner}
	if f.err != nil {
		return nil, f.err
	}
	return &models.LinkedAccount{ID: 10, Name: in.Name, Token: in.Token, OwnerID: owner, IsOwner: true}, nil
}

func (f *fakeLks) List(_ context.Context, user int64) ([]models.LinkedAccount, error) {
	f.last = call{user: user}
	return f.list, f.err
}

func (f *fakeLks) Share(_ context.Context, owner, lk, target int64) error {
	f.last = call{owner, lk, target}
	return f.err
}

func (f *fakeLks) Users(_ context.Context, owner, lk int64) ([]models.Grantee, error) {
	f.last = call{user: owner, lk: lk}
	return f.grantees, f.err
}

func (f *fakeLks) Unshare(_ context.Context, owner, lk, target int64) error {
	f.last = call{owner, lk, target}
	return f.err
}

type fakeAnalytics struct {
	chart    *models.OrdersChart
	products []models.Product
	stocks   int64
	err      error

	gotUser  int64
	gotIDs   []int64
	gotRange daterange.Range
}

func (f *fakeAnalytics) OrdersChart(_ context.Context, user int64, ids []int64, r daterange.Range) (*models.OrdersChart, error) {
	f.gotUser, f.gotIDs, f.gotRange = user, ids, r
	return f.chart, f.err
}

func (f *fakeAnalytics) Products(_ context.Context, user int64, ids []int64, r daterange.Range) ([]models.Product, error) {
	f.gotUser, f.gotIDs, f.gotRange = user, ids, r
	return f.products, f.err
}

func (f *fakeAnalytics) Stocks(_ context.Context, user int64, ids []int64) (int64, error) {
	f.gotUser, f.gotIDs = user, ids
	return f.stocks, f.err
}
