package services

import (
	"fmt"

	"github.com/wbdash/wbdash/internal/common"
)

var (
	// ErrNotActivated is returned by Login for a valid but inactive account.
	ErrNotActivated = fmt.Errorf("account is not activated: %w", common.ErrorForbidden)

	// ErrNotOwner guards sharing operations.
	ErrNotOwner = fmt.Errorf("only the owner can manage access: %w", common.ErrorForbidden)

	// ErrOwnerAccess is returned when trying to revoke the owner's own grant.
	ErrOwnerAccess = fmt.Errorf("%w: owner access cannot be revoked", common.ErrValidation)
)

func required(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", common.ErrValidation, field)
	}
	return nil
}
