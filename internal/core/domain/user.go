package domain

import "fmt"

// User models a registered borrower. LoanHistory holds loan ids in the
// chronological order the loans were taken; it is append-only and owned by
// the loan workflow, never set directly.
type User struct {
	ID          string   `json:"id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	LoanHistory []string `json:"loan_history" bson:"loan_history"`
}

// NewUser builds a user with an empty loan history.
func NewUser(id, name string) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: user name is required", ErrValidation)
	}
	return &User{ID: id, Name: name}, nil
}

// Rename changes the user's display name.
func (u *User) Rename(name string) error {
	if name == "" {
		return fmt.Errorf("%w: user name is required", ErrValidation)
	}
	u.Name = name
	return nil
}

// AddLoanToHistory appends a loan id. Called by the loan workflow on every
// successful loan creation.
func (u *User) AddLoanToHistory(loanID string) {
	u.LoanHistory = append(u.LoanHistory, loanID)
}
