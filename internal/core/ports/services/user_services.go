package services

import (
	"context"

	"github.com/vilaserena/care_finance_app/internal/core/domain"
)

// UserSvcFacade exposes the operator-account operations the auth surface needs.
type UserSvcFacade interface {
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
