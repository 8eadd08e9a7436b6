package wblks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wbdash/wbdash/internal/common"
	"github.com/wbdash/wbdash/internal/dbx"
	"github.com/wbdash/wbdash/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const lkColumns = `l.id, l.name, l.token, l.number, l.cookie, l.authorizev3, l.inn, l.tg_id, l.owner_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner, extra ...any) (models.LinkedAccount, error) {
	var lk models.LinkedAccount
	dest := []any{&lk.ID, &lk.Name, &lk.Token, &lk.Number, &lk.Cookie, &lk.AuthorizeV3, &lk.INN, &lk.TgID, &lk.OwnerID}
	err := s.Scan(append(dest, extra...)...)
	return lk, err
}

func (r *PostgresRepository) Create(ctx context.Context, lk *models.LinkedAccount) (*models.LinkedAccount, error) {
	query :=
		`INSERT INTO wb_lks (name, token, number, cookie, authorizev3, inn, tg_id, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		lk.Name, lk.Token, lk.Number, lk.Cookie, lk.AuthorizeV3, lk.INN, lk.TgID, lk.OwnerID).Scan(&lk.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return lk, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.LinkedAccount, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+lkColumns+` FROM wb_lks l WHERE l.id = $1`, id)
	lk, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &lk, nil
}

// ListForUser returns owned and shared accounts ordered by id.
func (r *PostgresRepository) ListForUser(ctx context.Context, userID int64) ([]models.LinkedAccount, error) {
	query := `SELECT ` + lkColumns + `, l.owner_id = $1 AS is_owner
		 FROM wb_lks l
		 WHERE l.owner_id = $1
		    OR EXISTS (SELECT 1 FROM wb_lk_access a WHERE a.wb_lk_id = l.id AND a.user_id = $1)
		 ORDER BY l.id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.LinkedAccount, 0)
	for rows.Next() {
		var isOwner bool
		lk, err := scanAccount(rows, &isOwner)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		lk.IsOwner = isOwner
		result = append(result, lk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Grant adds an access row; an existing grant yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Grant(ctx context.Context, lkID, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO wb_lk_access (wb_lk_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, lkID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if dbx.RowsAffected(res) == 0 {
		return common.ErrorAlreadyExists
	}
	return nil
}

// Revoke removes an access row; a missing grant yields common.ErrorNotFound.
func (r *PostgresRepository) Revoke(ctx context.Context, lkID, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM wb_lk_access WHERE wb_lk_id = $1 AND user_id = $2`, lkID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if dbx.RowsAffected(res) == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Grantees(ctx context.Context, lkID int64) ([]models.Grantee, error) {
	query :=
		`SELECT u.id, u.nickname, u.email, u.id = l.owner_id, a.granted_at
		 FROM wb_lk_access a
		 JOIN frontend_users u ON u.id = a.user_id
		 JOIN wb_lks l ON l.id = a.wb_lk_id
		 WHERE a.wb_lk_id = $1
		 ORDER BY a.granted_at, u.id`

	rows, err := r.db.QueryContext(ctx, query, lkID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Grantee, 0)
	for rows.Next() {
		var g models.Grantee
		if err := rows.Scan(&g.ID, &g.Nickname, &g.Email, &g.IsOwner, &g.Granted); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// AccessibleIDs intersects ids with the accounts userID may see.
func (r *PostgresRepository) AccessibleIDs(ctx context.Context, userID int64, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	query :=
		`SELECT l.id FROM wb_lks l
		 WHERE l.id = ANY($2::bigint[])
		   AND (l.owner_id = $1
		        OR EXISTS (SELECT 1 FROM wb_lk_access a WHERE a.wb_lk_id = l.id AND a.user_id = $1))
		 ORDER BY l.id`

	rows, err := r.db.QueryContext(ctx, query, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]int64, 0, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
