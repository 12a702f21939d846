package ports

import (
	"context"

	"github.com/librisys/library-system/internal/core/domain"
)

// UserRepository defines persistence operations for borrowers. FindByID
// signals absence with domain.ErrUserNotFound.
type UserRepository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}
