package services

import (
	"context"
	"sync"

	"github.com/wbdash/wbdash/internal/client/client"
	"github.com/wbdash/wbdash/internal/client/models"
)

type fakeClient struct {
	LoginRet   client.LoginResult
	LoginErr   error
	ProfileRet models.User
	ProfileErr error

	RegisterErr  error
	LastRegister client.RegisterInput

	CreateRet models.LinkedAccount
	CreateErr error
	ShareMsg  string
	ShareErr  error
	UsersRet  []models.Grantee
	RevokeMsg string

	Calls []string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(_ context.Context, nickname, _ string) (client.LoginResult, error) {
	f.Calls = append(f.Calls, "login:"+nickname)
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, in client.RegisterInput) (models.User, error) {
	f.Calls = append(f.Calls, "register")
	f.LastRegister = in
	return models.User{ID: 10, Nickname: in.Nickname, Email: in.Email}, f.RegisterErr
}

func (f *fakeClient) Profile(context.Context) (models.User, error) {
	f.Calls = append(f.Calls, "profile")
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) ListAccounts(context.Context) ([]models.LinkedAccount, error) {
	f.Calls = append(f.Calls, "list")
	return f.ProfileRet.WbLks, nil
}

func (f *fakeClient) CreateAccount(context.Context, models.AccountInput) (models.LinkedAccount, error) {
	f.Calls = append(f.Calls, "create")
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) ShareAccount(context.Context, int64, int64) (string, error) {
	f.Calls = append(f.Calls, "share")
	return f.ShareMsg, f.ShareErr
}

func (f *fakeClient) AccountUsers(context.Context, int64) ([]models.Grantee, error) {
	f.Calls = append(f.Calls, "users")
	return f.UsersRet, nil
}

func (f *fakeClient) RevokeAccess(context.Context, int64, int64) (string, error) {
	f.Calls = append(f.Calls, "revoke")
	return f.RevokeMsg, nil
}

type fakeSession struct {
	mu    sync.Mutex
	user  *models.User
	token string

	LoginErr error
}

func (s *fakeSession) Login(_ context.Context, u models.User, token string) error {
	if s.LoginErr != nil {
		return s.LoginErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user, s.token = &u, token
	return nil
}

func (s *fakeSession) Refresh(_ context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	return nil
}

func (s *fakeSession) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user, s.token = nil, ""
	return nil
}

func (s *fakeSession) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}
