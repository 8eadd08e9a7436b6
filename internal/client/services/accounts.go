package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/wbdash/wbdash/internal/client/client"
	"github.com/wbdash/wbdash/internal/client/models"
	"github.com/wbdash/wbdash/internal/common"
)

var (
	ErrNotOwner       = errors.New("only the owner can manage access to this account")
	ErrOwnerGrantee   = errors.New("the owner's access cannot be revoked")
	ErrNotSignedIn    = errors.New("not signed in")
	ErrUnknownAccount = fmt.Errorf("linked account %w", common.ErrorNotFound)
)

// AccountService manages linked accounts and their sharing. Share, Users
// and Revoke are refused locally for accounts the user does not own; the
// server enforces the same rule.
type AccountService struct {
	api  client.Client
	sess SessionStore
}

func NewAccountService(api client.Client, sess SessionStore) *AccountService {
	return &AccountService{api: api, sess: sess}
}

func (s *AccountService) List(ctx context.Context) ([]models.LinkedAccount, error) {
	return s.api.ListAccounts(ctx)
}

// Create adds an account and appends it to the session user.
func (s *AccountService) Create(ctx context.Context, in models.AccountInput) (models.LinkedAccount, error) {
	if err := required("name", in.Name); err != nil {
		return models.LinkedAccount{}, err
	}
	if err := required("token", in.Token); err != nil {
		return models.LinkedAccount{}, err
	}

	lk, err := s.api.CreateAccount(ctx, in)
	if err != nil {
		return models.LinkedAccount{}, err
	}

	if u, ok := s.sess.User(); ok {
		u.WbLks = append(slices.Clone(u.WbLks), lk)
		if err := s.sess.Refresh(ctx, u); err != nil {
			return lk, err
		}
	}
	return lk, nil
}

func (s *AccountService) owned(lkID int64) (models.LinkedAccount, error) {
	u, ok := s.sess.User()
	if !ok {
		return models.LinkedAccount{}, ErrNotSignedIn
	}
	lk, ok := u.Account(lkID)
	if !ok {
		return models.LinkedAccount{}, ErrUnknownAccount
	}
	if !lk.IsOwner {
		return models.LinkedAccount{}, ErrNotOwner
	}
	return lk, nil
}

// Share grants userID access to lkID and returns the server's message.
func (s *AccountService) Share(ctx context.Context, lkID, userID int64) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("%w: user id must be positive", common.ErrValidation)
	}
	if _, err := s.owned(lkID); err != nil {
		return "", err
	}
	return s.api.ShareAccount(ctx, lkID, userID)
}

func (s *AccountService) Users(ctx context.Context, lkID int64) ([]models.Grantee, error) {
	if _, err := s.owned(lkID); err != nil {
		return nil, err
	}
	return s.api.AccountUsers(ctx, lkID)
}

// Revoke removes a non-owner grantee.
func (s *AccountService) Revoke(ctx context.Context, lkID, userID int64) (string, error) {
	lk, err := s.owned(lkID)
	if err != nil {
		return "", err
	}
	if userID == lk.OwnerID {
		return "", ErrOwnerGrantee
	}
	return s.api.RevokeAccess(ctx, lkID, userID)
}
