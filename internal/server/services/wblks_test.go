package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbdash/wbdash/internal/common"
	"github.com/wbdash/wbdash/internal/server/models"
)

func TestWbLkCreate_GrantsOwnerInTx(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	rm := newFakeRM()
	svc := NewWbLkService(db, rm)

	lk, err := svc.Create(context.Background(), 1, AccountInput{Name: " Shop ", Token: "tok", INN: ptr(int64(7707))})
	require.NoError(t, err)
	assert.Equal(t, int64(10), lk.ID)
	assert.Equal(t, "Shop", lk.Name)
	assert.True(t, lk.IsOwner)
	assert.Equal(t, []int64{1}, rm.lks.access[10])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWbLkCreate_RollsBackOnGrantError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	rm := newFakeRM()
	rm.lks.grantErr = errors.New("grant failed")
	svc := NewWbLkService(db, rm)

	_, err := svc.Create(context.Background(), 1, AccountInput{Name: "Shop", Token: "tok"})
	require.ErrorContains(t, err, "grant failed")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWbLkCreate_Validation(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewWbLkService(db, newFakeRM())

	_, err := svc.Create(context.Background(), 1, AccountInput{Name: "Shop"})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "token is required")
}

func sharingFixture(t *testing.T) (*WbLkService, *fakeRM) {
	t.Helper()
	db, _ := newMockDB(t)
	rm := newFakeRM()
	rm.users.add(&models.User{ID: 1, Nickname: "owner"})
	rm.users.add(&models.User{ID: 2, Nickname: "friend"})
	rm.lks.byID[10] = &models.LinkedAccount{ID: 10, Name: "Shop", OwnerID: 1}
	rm.lks.access[10] = []int64{1}
	return NewWbLkService(db, rm), rm
}

func TestShare(t *testing.T) {
	svc, rm := sharingFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Share(ctx, 1, 10, 2))
	assert.Equal(t, []int64{1, 2}, rm.lks.access[10])

	assert.ErrorIs(t, svc.Share(ctx, 1, 10, 2), common.ErrorAlreadyExists)
	assert.ErrorIs(t, svc.Share(ctx, 2, 10, 1), ErrNotOwner)
	assert.ErrorIs(t, svc.Share(ctx, 1, 10, 99), common.ErrorNotFound)
	assert.ErrorIs(t, svc.Share(ctx, 1, 77, 2), common.ErrorNotFound)
}

func TestUsersAndUnshare(t *testing.T) {
	svc, rm := sharingFixture(t)
	ctx := context.Background()
	rm.lks.access[10] = []int64{1, 2}

	got, err := svc.Users(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []models.Grantee{{ID: 1, IsOwner: true}, {ID: 2}}, got)

	_, err = svc.Users(ctx, 2, 10)
	assert.ErrorIs(t, err, common.ErrorForbidden)

	assert.ErrorIs(t, svc.Unshare(ctx, 1, 10, 1), ErrOwnerAccess)
	require.NoError(t, svc.Unshare(ctx, 1, 10, 2))
	assert.Equal(t, []int64{1}, rm.lks.access[10])
	assert.ErrorIs(t, svc.Unshare(ctx, 1, 10, 2), common.ErrorNotFound)
}

func TestList(t *testing.T) {
	svc, rm := sharingFixture(t)
	rm.lks.byID[11] = &models.LinkedAccount{ID: 11, Name: "Other", OwnerID: 2}

	got, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(10), got[0].ID)
}
