package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/wbdash/wbdash/internal/dbx"
	"github.com/wbdash/wbdash/internal/server/models"
	"github.com/wbdash/wbdash/internal/server/repositories/repomanager"
)

type WbLkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewWbLkService(db *sql.DB, m repomanager.RepositoryManager) *WbLkService {
	return &WbLkService{db: db, repomanager: m}
}

type AccountInput struct {
	Name        string  `json:"name"`
	Token       string  `json:"token"`
	Number      *int64  `json:"number"`
	Cookie      *string `json:"cookie"`
	AuthorizeV3 *string `json:"authorizev3"`
	INN         *int64  `json:"inn"`
	TgID        *int64  `json:"tg_id"`
}

// Create stores a linked account owned by ownerID and grants the owner
// access in the same transaction.
func (s *WbLkService) Create(ctx context.Context, ownerID int64, in AccountInput) (*models.LinkedAccount, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Token = strings.TrimSpace(in.Token)
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	if err := required("token", in.Token); err != nil {
		return nil, err
	}

	lk := &models.LinkedAccount{
		Name:        in.Name,
		Token:       in.Token,
		Number:      in.Number,
		Cookie:      in.Cookie,
		AuthorizeV3: in.AuthorizeV3,
		INN:         in.INN,
		TgID:        in.TgID,
		OwnerID:     ownerID,
		IsOwner:     true,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.WbLks(tx)
		var err error
		if lk, err = repo.Create(ctx, lk); err != nil {
			return err
		}
		return repo.Grant(ctx, lk.ID, ownerID)
	})
	if err != nil {
		return nil, err
	}
	return lk, nil
}

func (s *WbLkService) List(ctx context.Context, userID int64) ([]models.LinkedAccount, error) {
	return s.repomanager.WbLks(s.db).ListForUser(ctx, userID)
}

// owned loads lkID and checks that userID owns it.
func (s *WbLkService) owned(ctx context.Context, userID, lkID int64) (*models.LinkedAccount, error) {
	lk, err := s.repomanager.WbLks(s.db).Get(ctx, lkID)
	if err != nil {
		return nil, err
	}
	if lk.OwnerID != userID {
		return nil, ErrNotOwner
	}
	lk.IsOwner = true
	return lk, nil
}

// Share grants targetID access to lkID. Only the owner may share; the
// target must exist and must not already have access.
func (s *WbLkService) Share(ctx context.Context, ownerID, lkID, targetID int64) error {
	if _, err := s.owned(ctx, ownerID, lkID); err != nil {
		return err
	}
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.repomanager.WbLks(s.db).Grant(ctx, lkID, targetID)
}

// Users lists everyone with access to lkID, owner included.
func (s *WbLkService) Users(ctx context.Context, ownerID, lkID int64) ([]models.Grantee, error) {
	if _, err := s.owned(ctx, ownerID, lkID); err != nil {
		return nil, err
	}
	return s.repomanager.WbLks(s.db).Grantees(ctx, lkID)
}

func (s *WbLkService) Unshare(ctx context.Context, ownerID, lkID, targetID int64) error {
	lk, err := s.owned(ctx, ownerID, lkID)
	if err != nil {
		return err
	}
	if targetID == lk.OwnerID {
		return ErrOwnerAccess
	}
	return s.repomanager.WbLks(s.db).Revoke(ctx, lkID, targetID)
}
