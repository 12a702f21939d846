package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/librisys/library-system/internal/core/domain"
)

// LoanRepository stores loans keyed by id, preserving insertion order so list
// queries are deterministic.
type LoanRepository struct {
	mu    sync.RWMutex
	loans map[string]*domain.Loan
	order []string
}

func NewLoanRepository() *LoanRepository {
	return &LoanRepository{loans: make(map[string]*domain.Loan)}
}

func cloneLoan(l *domain.Loan) *domain.Loan {
	clone := *l
	if l.ReturnDate != nil {
		rd := *l.ReturnDate
		clone.ReturnDate = &rd
	}
	return &clone
}

func (r *LoanRepository) Save(_ context.Context, loan *domain.Loan) (*domain.Loan, error) {
	if loan == nil {
		return nil, fmt.Errorf("%w: loan must not be nil", domain.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.loans[loan.ID]; !ok {
		r.order = append(r.order, loan.ID)
	}
	r.loans[loan.ID] = cloneLoan(loan)
	return cloneLoan(loan), nil
}

func (r *LoanRepository) FindByID(_ context.Context, id string) (*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loan, ok := r.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	return cloneLoan(loan), nil
}

func (r *LoanRepository) FindAll(_ context.Context) ([]*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(*domain.Loan) bool { return true }), nil
}

func (r *LoanRepository) FindByUserID(_ context.Context, userID string) ([]*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(l *domain.Loan) bool { return l.UserID == userID }), nil
}

func (r *LoanRepository) FindByBookIsbn(_ context.Context, isbn string) ([]*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(l *domain.Loan) bool { return l.BookISBN == isbn }), nil
}

func (r *LoanRepository) FindActiveByUserID(_ context.Context, userID string) ([]*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(l *domain.Loan) bool { return l.UserID == userID && !l.Returned() }), nil
}

func (r *LoanRepository) FindAllActive(_ context.Context) ([]*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(l *domain.Loan) bool { return !l.Returned() }), nil
}

func (r *LoanRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.loans[id]
	return ok, nil
}

func (r *LoanRepository) DeleteByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.loans[id]; !ok {
		return false, nil
	}
	delete(r.loans, id)
	for i, key := range r.order {
		if key == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// filter must be called with the read lock held.
func (r *LoanRepository) filter(keep func(*domain.Loan) bool) []*domain.Loan {
	out := make([]*domain.Loan, 0)
	for _, id := range r.order {
		if loan := r.loans[id]; keep(loan) {
			out = append(out, cloneLoan(loan))
		}
	}
	return out
}
