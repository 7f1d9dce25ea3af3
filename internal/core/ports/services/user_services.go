package services

import (
	"context"

	"github.com/dallyhq/dally_backend/internal/core/domain"
	"github.com/dallyhq/dally_backend/internal/dto"
)

// UserSvcFacade covers the thin auth glue: registration, credential checks
// and lookups for token subjects.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
