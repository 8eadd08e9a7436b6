package services

import (
	"context"
	"database/sql"
	"slices"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/wbdash/wbdash/internal/common"
	"github.com/wbdash/wbdash/internal/daterange"
	"github.com/wbdash/wbdash/internal/dbx"
	"github.com/wbdash/wbdash/internal/server/config"
	"github.com/wbdash/wbdash/internal/server/models"
	"github.com/wbdash/wbdash/internal/server/repositories/analytics"
	"github.com/wbdash/wbdash/internal/server/repositories/users"
	"github.com/wbdash/wbdash/internal/server/repositories/wblks"
)

// --- repository manager ---

type fakeRM struct {
	users     *fakeUsers
	lks       *fakeLks
	analytics *fakeAnalytics
}

func newFakeRM() *fakeRM {
	return &fakeRM{
		users:     &fakeUsers{byID: map[int64]*models.User{}},
		lks:       &fakeLks{byID: map[int64]*models.LinkedAccount{}, access: map[int64][]int64{}},
		analytics: &fakeAnalytics{},
	}
}

func (m *fakeRM) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRM) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRM) WbLks(dbx.DBTX) wblks.Repository              { return m.lks }
func (m *fakeRM) Analytics(dbx.DBTX) analytics.Repository      { return m.analytics }

// --- users ---

type fakeUsers struct {
	byID      map[int64]*models.User
	created   *models.User
	createErr error
	getErr    error
}

func (f *fakeUsers) add(u *models.User) { f.byID[u.ID] = u }

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = int64(len(f.byID) + 1)
	u.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	f.created = u
	f.add(u)
	return u, nil
}

func (f *fakeUsers) GetByNickname(_ context.Context, nickname string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Nickname == nickname {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

// --- linked accounts ---

type fakeLks struct {
	byID     map[int64]*models.LinkedAccount
	access   map[int64][]int64
	grantErr error
}

func (f *fakeLks) Create(_ context.Context, lk *models.LinkedAccount) (*models.LinkedAccount, error) {
	lk.ID = int64(len(f.byID) + 10)
	f.byID[lk.ID] = lk
	return lk, nil
}

func (f *fakeLks) Get(_ context.Context, id int64) (*models.LinkedAccount, error) {
	lk, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *lk
	return &cp, nil
}

func (f *fakeLks) ListForUser(_ context.Context, userID int64) ([]models.LinkedAccount, error) {
	out := []models.LinkedAccount{}
	for id, lk := range f.byID {
		if lk.OwnerID == userID || slices.Contains(f.access[id], userID) {
			cp := *lk
			cp.IsOwner = lk.OwnerID == userID
			out = append(out, cp)
		}
	}
	slices.SortFunc(out, func(a, b models.LinkedAccount) int { return int(a.ID - b.ID) })
	return out, nil
}

func (f *fakeLks) Grant(_ context.Context, lkID, userID int64) error {
	if f.grantErr != nil {
		return f.grantErr
	}
	if slices.Contains(f.access[lkID], userID) {
		return common.ErrorAlreadyExists
	}
	f.access[lkID] = append(f.access[lkID], userID)
	return nil
}

func (f *fakeLks) Revoke(_ context.Context, lkID, userID int64) error {
	i := slices.Index(f.access[lkID], userID)
	if i < 0 {
		return common.ErrorNotFound
	}
	f.access[lkID] = slices.Delete(f.access[lkID], i, i+1)
	return nil
}

func (f *fakeLks) Grantees(_ context.Context, lkID int64) ([]models.Grantee, error) {
	out := []models.Grantee{}
	for _, id := range f.access[lkID] {
		out = append(out, models.Grantee{ID: id, IsOwner: id == f.byID[lkID].OwnerID})
	}
	return out, nil
}

func (f *fakeLks) AccessibleIDs(_ context.Context, userID int64, ids []int64) ([]int64, error) {
	out := []int64{}
	for _, id := range ids {
		lk, ok := f.byID[id]
		if ok && (lk.OwnerID == userID || slices.Contains(f.access[id], userID)) {
			out = append(out, id)
		}
	}
	return out, nil
}

// --- analytics ---

type fakeAnalytics struct {
	days     []analytics.DaySales
	products []analytics.ProductRow
	stocks   int64

	gotIDs      []int64
	gotRange    daterange.Range
	gotWeekFrom daterange.Date
	calls       int
}

func (f *fakeAnalytics) OrdersByDay(_ context.Context, ids []int64, r daterange.Range) ([]analytics.DaySales, error) {
	f.calls++
	f.gotIDs, f.gotRange = ids, r
	return f.days, nil
}

func (f *fakeAnalytics) Products(_ context.Context, ids []int64, r daterange.Range, weekFrom daterange.Date) ([]analytics.ProductRow, error) {
	f.calls++
	f.gotIDs, f.gotRange, f.gotWeekFrom = ids, r, weekFrom
	return f.products, nil
}

func (f *fakeAnalytics) TotalStocks(_ context.Context, ids []int64) (int64, error) {
	f.calls++
	f.gotIDs = ids
	return f.stocks, nil
}

func (f *fakeAnalytics) UpsertOrder(context.Context, *models.Order) error { return nil }
func (f *fakeAnalytics) UpsertStock(context.Context, *models.Stock) error { return nil }

// --- helpers ---

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour}
}
