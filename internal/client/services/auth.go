// Package services contains the dashboard client's application services:
// authentication, linked-account management and the data views behind the
// analytics pages.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/wbdash/wbdash/internal/client/client"
	"github.com/wbdash/wbdash/internal/client/models"
	"github.com/wbdash/wbdash/internal/common"
	"github.com/wbdash/wbdash/internal/logging"
)

// SessionStore is the part of session.Session the services mutate.
type SessionStore interface {
	Login(ctx context.Context, user models.User, token string) error
	Refresh(ctx context.Context, user models.User) error
	Clear(ctx context.Context) error
	User() (models.User, bool)
}

type AuthService struct {
	api  client.Client
	sess SessionStore
	log  logging.Logger
}

func NewAuthService(api client.Client, sess SessionStore, log logging.Logger) *AuthService {
	return &AuthService{api: api, sess: sess, log: log}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", common.ErrValidation, field)
	}
	return nil
}

// Login signs in and installs the session. When the response carries a
// user id the full profile (with linked accounts) replaces it; otherwise
// the response record itself is kept as the user.
func (s *AuthService) Login(ctx context.Context, nickname, password string) (models.User, error) {
	if err := required("nickname", nickname); err != nil {
		return models.User{}, err
	}
	if err := required("password", password); err != nil {
		return models.User{}, err
	}

	res, err := s.api.Login(ctx, strings.TrimSpace(nickname), password)
	if err != nil {
		return models.User{}, err
	}

	if err := s.sess.Login(ctx, res.User, res.AccessToken); err != nil {
		return models.User{}, err
	}
	if !res.User.HasID() {
		s.log.Warn(ctx, "login response has no user id, keeping raw record")
		return res.User, nil
	}

	profile, err := s.api.Profile(ctx)
	if err != nil {
		s.log.Warn(ctx, "profile fetch after login failed", "error", err)
		return res.User, nil
	}
	if err := s.sess.Refresh(ctx, profile); err != nil {
		return res.User, err
	}
	return profile, nil
}

func (s *AuthService) Register(ctx context.Context, in client.RegisterInput) (models.User, error) {
	for _, f := range []struct{ name, value string }{
		{"nickname", in.Nickname},
		{"password", in.Password},
		{"email", in.Email},
	} {
		if err := required(f.name, f.value); err != nil {
			return models.User{}, err
		}
	}
	if !strings.Contains(in.Email, "@") {
		return models.User{}, fmt.Errorf("%w: email is malformed", common.ErrValidation)
	}

	return s.api.Register(ctx, in)
}

// ReloadProfile fetches the profile and replaces the session user.
func (s *AuthService) ReloadProfile(ctx context.Context) (models.User, error) {
	profile, err := s.api.Profile(ctx)
	if err != nil {
		return models.User{}, err
	}
	if err := s.sess.Refresh(ctx, profile); err != nil {
		return models.User{}, err
	}
	return profile, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.sess.Clear(ctx)
}
