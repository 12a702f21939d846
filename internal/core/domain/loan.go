package domain

import (
	"fmt"
	"time"
)

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanReturned LoanStatus = "returned"
)

// validTransitions defines the allowed state machine transitions. A returned
// loan is terminal.
var validTransitions = map[LoanStatus][]LoanStatus{
	LoanActive: {LoanReturned},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s LoanStatus) CanTransitionTo(next LoanStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Loan records one borrowing of one book by one user. UserID and BookISBN are
// identifier references resolved through the owning repositories, not
// embedded object graphs. Dates are calendar dates at UTC midnight.
type Loan struct {
	ID         string     `json:"id" bson:"_id"`
	UserID     string     `json:"user_id" bson:"user_id"`
	BookISBN   string     `json:"book_isbn" bson:"book_isbn"`
	LoanDate   time.Time  `json:"loan_date" bson:"loan_date"`
	DueDate    time.Time  `json:"due_date" bson:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty" bson:"return_date,omitempty"`
	Status     LoanStatus `json:"status" bson:"status"`
}

// NewLoan builds an active loan. The due date must not precede the loan date.
func NewLoan(id, userID, bookISBN string, loanDate, dueDate time.Time) (*Loan, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: loan id is required", ErrValidation)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if bookISBN == "" {
		return nil, fmt.Errorf("%w: book isbn is required", ErrValidation)
	}
	if loanDate.IsZero() || dueDate.IsZero() {
		return nil, fmt.Errorf("%w: loan date and due date are required", ErrValidation)
	}
	if dueDate.Before(loanDate) {
		return nil, fmt.Errorf("%w: due date %s precedes loan date %s",
			ErrValidation, dueDate.Format(DateLayout), loanDate.Format(DateLayout))
	}
	return &Loan{
		ID:       id,
		UserID:   userID,
		BookISBN: bookISBN,
		LoanDate: loanDate,
		DueDate:  dueDate,
		Status:   LoanActive,
	}, nil
}

// Returned reports whether the loan has reached its terminal state.
func (l *Loan) Returned() bool {
	return l.Status == LoanReturned
}

// MarkReturned transitions the loan to its terminal state, recording the
// return date. It is the only legal mutation after construction and succeeds
// exactly once.
func (l *Loan) MarkReturned(returnDate time.Time) error {
	if returnDate.IsZero() {
		return fmt.Errorf("%w: return date is required", ErrValidation)
	}
	if returnDate.Before(l.LoanDate) {
		return fmt.Errorf("%w: return date %s precedes loan date %s",
			ErrValidation, returnDate.Format(DateLayout), l.LoanDate.Format(DateLayout))
	}
	if !l.Status.CanTransitionTo(LoanReturned) {
		return fmt.Errorf("%w: loan %s", ErrLoanAlreadyReturned, l.ID)
	}
	l.ReturnDate = &returnDate
	l.Status = LoanReturned
	return nil
}

// IsOverdue reports whether the loan is active and past due at the given
// date. A loan is not overdue on its due date, only strictly after it.
func (l *Loan) IsOverdue(at time.Time) bool {
	return !l.Returned() && at.After(l.DueDate)
}

// DateLayout is the wire format for loan dates.
const DateLayout = "2006-01-02"

// Date truncates t to a calendar date at UTC midnight.
func Date(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
