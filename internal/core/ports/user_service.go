package ports

import (
	"context"

	"github.com/librisys/library-system/internal/core/domain"
)

// UserService defines borrower use cases.
type UserService interface {
	Register(ctx context.Context, id, name string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id, newName string) (*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
}
