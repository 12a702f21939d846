package ports

import (
	"context"
	"time"

	"github.com/librisys/library-system/internal/core/domain"
)

// CreateLoanInput carries the data to open a loan. A zero LoanDate means
// "today" and a zero PeriodDays selects the service default (14 days),
// replacing the convenience overloads of the original workflow.
type CreateLoanInput struct {
	UserID     string
	ISBN       string
	LoanDate   time.Time
	PeriodDays int
}

// BookLoanCount is one row of the usage report: a book and how many loans it
// has accumulated, returned or not.
type BookLoanCount struct {
	Book  *domain.Book `json:"book"`
	Count int64        `json:"count"`
}

// LoanReport aggregates library usage. PerBook is ordered by count
// descending, ties broken by ISBN ascending.
type LoanReport struct {
	TotalLoans int64           `json:"total_loans"`
	PerBook    []BookLoanCount `json:"loans_per_book"`
}

// LoanService orchestrates users, books and loans: it is the only writer of
// book inventory counts and user loan history.
type LoanService interface {
	CreateLoan(ctx context.Context, in CreateLoanInput) (*domain.Loan, error)
	// ReturnLoan closes a loan. A zero returnDate means "today".
	ReturnLoan(ctx context.Context, loanID string, returnDate time.Time) (*domain.Loan, error)

	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)
	GetLoansByUser(ctx context.Context, userID string) ([]*domain.Loan, error)
	GetActiveLoansByUser(ctx context.Context, userID string) ([]*domain.Loan, error)
	GetLoansByBook(ctx context.Context, isbn string) ([]*domain.Loan, error)
	GetAllActiveLoans(ctx context.Context) ([]*domain.Loan, error)
	GetAllLoans(ctx context.Context) ([]*domain.Loan, error)

	// GetOverdueLoans returns active loans strictly past due at the given
	// date. A zero date means "today".
	GetOverdueLoans(ctx context.Context, at time.Time) ([]*domain.Loan, error)
	IsLoanOverdue(ctx context.Context, loanID string) (bool, error)

	GenerateLoanReport(ctx context.Context) (*LoanReport, error)
}
