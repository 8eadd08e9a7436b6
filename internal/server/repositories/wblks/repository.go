package wblks

import (
	"context"

	"github.com/wbdash/wbdash/internal/server/models"
)

// Repository stores linked accounts and who may see them. The owner always
// holds an access row too.
type Repository interface {
	Create(ctx context.Context, lk *models.LinkedAccount) (*models.LinkedAccount, error)
	Get(ctx context.Context, id int64) (*models.LinkedAccount, error)
	ListForUser(ctx context.Context, userID int64) ([]models.LinkedAccount, error)
	Grant(ctx context.Context, lkID, userID int64) error
	Revoke(ctx context.Context, lkID, userID int64) error
	Grantees(ctx context.Context, lkID int64) ([]models.Grantee, error)
	AccessibleIDs(ctx context.Context, userID int64, ids []int64) ([]int64, error)
}
