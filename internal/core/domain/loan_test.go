package domain

import (
	"errors"
	"testing"
	"time"
)

func date(value string) time.Time {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNewLoan_StartsActive(t *testing.T) {
	loan, err := NewLoan("LOAN-1", "user_1", "978-1", date("2024-01-01"), date("2024-01-15"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loan.Status != LoanActive {
		t.Errorf("expected status %q, got %q", LoanActive, loan.Status)
	}
	if loan.ReturnDate != nil {
		t.Error("new loan must have no return date")
	}
}

func TestNewLoan_RejectsDueDateBeforeLoanDate(t *testing.T) {
	_, err := NewLoan("LOAN-1", "user_1", "978-1", date("2024-01-15"), date("2024-01-01"))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestNewLoan_AllowsSameDayDueDate(t *testing.T) {
	_, err := NewLoan("LOAN-1", "user_1", "978-1", date("2024-01-01"), date("2024-01-01"))
	if err != nil {
		t.Errorf("same-day due date must be allowed, got %v", err)
	}
}

func TestLoan_MarkReturned_TransitionsOnce(t *testing.T) {
	loan, _ := NewLoan("LOAN-1", "user_1", "978-1", date("2024-01-01"), date("2024-01-15"))

	if err := loan.MarkReturned(date("2024-01-10")); err != nil {
		t.Fatalf("return failed: %v", err)
	}
	if loan.Status != LoanReturned {
		t.Errorf("expected status %q, got %q", LoanReturned, loan.Status)
	}
	if loan.ReturnDate == nil || !loan.ReturnDate.Equal(date("2024-01-10")) {
		t.Error("return date not recorded")
	}

	if err := loan.MarkReturned(date("2024-01-11")); !errors.Is(err, ErrLoanAlreadyReturned) {
		t.Errorf("second return must fail with ErrLoanAlreadyReturned, got %v", err)
	}
}

func TestLoan_MarkReturned_RejectsDateBeforeLoanDate(t *testing.T) {
	loan, _ := NewLoan("LOAN-1", "user_1", "978-1", date("2024-01-05"), date("2024-01-19"))

	if err := loan.MarkReturned(date("2024-01-04")); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if loan.Status != LoanActive {
		t.Error("rejected return must leave the loan active")
	}
}

func TestLoan_IsOverdue_StrictlyAfterDueDate(t *testing.T) {
	loan, _ := NewLoan("LOAN-1", "user_1", "978-1", date("2024-01-01"), date("2024-01-15"))

	if loan.IsOverdue(date("2024-01-15")) {
		t.Error("loan must not be overdue on its due date")
	}
	if !loan.IsOverdue(date("2024-01-16")) {
		t.Error("loan must be overdue the day after its due date")
	}
}

func TestLoan_IsOverdue_ReturnedLoanNeverOverdue(t *testing.T) {
	loan, _ := NewLoan("LOAN-1", "user_1", "978-1", date("2024-01-01"), date("2024-01-15"))
	_ = loan.MarkReturned(date("2024-01-20"))

	if loan.IsOverdue(date("2024-02-01")) {
		t.Error("returned loan must never be overdue")
	}
}

func TestLoanStatus_Transitions(t *testing.T) {
	if !LoanActive.CanTransitionTo(LoanReturned) {
		t.Error("active → returned must be allowed")
	}
	if LoanReturned.CanTransitionTo(LoanActive) {
		t.Error("returned is terminal")
	}
	if LoanReturned.CanTransitionTo(LoanReturned) {
		t.Error("returned → returned must be rejected")
	}
}

func TestDate_TruncatesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2024, 3, 15, 2, 30, 45, 0, loc) // 2024-03-14 21:30:45 UTC

	got := Date(in)
	want := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
