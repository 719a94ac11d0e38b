package repositories

import (
	"context"

	"github.com/vilaserena/care_finance_app/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for operator accounts.
type UserRepositoryFacade interface {
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
