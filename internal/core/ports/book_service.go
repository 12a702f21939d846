package ports

import (
	"context"

	"github.com/librisys/library-system/internal/core/domain"
)

// RegisterPhysicalBookInput carries the data to add a physical book.
type RegisterPhysicalBookInput struct {
	Title       string
	Author      string
	ISBN        string
	TotalCopies int
}

// RegisterDigitalBookInput carries the data to add a digital book.
type RegisterDigitalBookInput struct {
	Title  string
	Author string
	ISBN   string
}

// UpdatePhysicalBookInput updates details and resizes inventory.
type UpdatePhysicalBookInput struct {
	Title       string
	Author      string
	TotalCopies int
}

// UpdateDigitalBookInput updates descriptive details only.
type UpdateDigitalBookInput struct {
	Title  string
	Author string
}

// BookService defines catalog use cases.
type BookService interface {
	RegisterPhysical(ctx context.Context, in RegisterPhysicalBookInput) (*domain.Book, error)
	RegisterDigital(ctx context.Context, in RegisterDigitalBookInput) (*domain.Book, error)
	UpdatePhysical(ctx context.Context, isbn string, in UpdatePhysicalBookInput) (*domain.Book, error)
	UpdateDigital(ctx context.Context, isbn string, in UpdateDigitalBookInput) (*domain.Book, error)
	FindByIsbn(ctx context.Context, isbn string) (*domain.Book, error)
	ListAll(ctx context.Context) ([]*domain.Book, error)
	Delete(ctx context.Context, isbn string) error
}
