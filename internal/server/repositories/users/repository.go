package users

import (
	"context"

	"github.com/wbdash/wbdash/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
