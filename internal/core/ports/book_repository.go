package ports

import (
	"context"

	"github.com/librisys/library-system/internal/core/domain"
)

// BookRepository defines persistence operations for catalog books. FindByIsbn
// signals absence with domain.ErrBookNotFound; list queries return an empty
// slice when nothing matches.
type BookRepository interface {
	Save(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByIsbn(ctx context.Context, isbn string) (*domain.Book, error)
	FindAll(ctx context.Context) ([]*domain.Book, error)
	ExistsByIsbn(ctx context.Context, isbn string) (bool, error)
	// DeleteByIsbn removes a book and reports whether it existed.
	DeleteByIsbn(ctx context.Context, isbn string) (bool, error)
}
