package ports

import (
	"context"

	"github.com/librisys/library-system/internal/core/domain"
)

// LoanRepository defines persistence operations for loans. FindByID signals
// absence with domain.ErrLoanNotFound; every list query returns an empty
// slice, never nil semantics, when nothing matches.
type LoanRepository interface {
	Save(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	FindByID(ctx context.Context, id string) (*domain.Loan, error)
	FindAll(ctx context.Context) ([]*domain.Loan, error)
	FindByUserID(ctx context.Context, userID string) ([]*domain.Loan, error)
	FindByBookIsbn(ctx context.Context, isbn string) ([]*domain.Loan, error)
	FindActiveByUserID(ctx context.Context, userID string) ([]*domain.Loan, error)
	FindAllActive(ctx context.Context) ([]*domain.Loan, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}
