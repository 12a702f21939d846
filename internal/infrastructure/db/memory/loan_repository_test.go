package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/librisys/library-system/internal/core/domain"
)

func newLoan(t *testing.T, id, userID, isbn string) *domain.Loan {
	t.Helper()
	loanDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loan, err := domain.NewLoan(id, userID, isbn, loanDate, loanDate.AddDate(0, 0, 14))
	if err != nil {
		t.Fatalf("new loan: %v", err)
	}
	return loan
}

func TestLoanRepository_SaveAndFind(t *testing.T) {
	repo := NewLoanRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, newLoan(t, "LOAN-1", "user_1", "978-1"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	found, err := repo.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.UserID != "user_1" || found.BookISBN != "978-1" {
		t.Errorf("unexpected loan: %+v", found)
	}
}

func TestLoanRepository_FindByID_NotFound(t *testing.T) {
	repo := NewLoanRepository()

	_, err := repo.FindByID(context.Background(), "LOAN-missing")
	if !errors.Is(err, domain.ErrLoanNotFound) {
		t.Errorf("expected ErrLoanNotFound, got %v", err)
	}
}

func TestLoanRepository_ClonesOnWayInAndOut(t *testing.T) {
	repo := NewLoanRepository()
	ctx := context.Background()

	original := newLoan(t, "LOAN-1", "user_1", "978-1")
	_, _ = repo.Save(ctx, original)

	// Mutating the caller's copy must not leak into the store.
	original.UserID = "tampered"

	first, _ := repo.FindByID(ctx, "LOAN-1")
	if first.UserID != "user_1" {
		t.Errorf("stored loan mutated through caller reference: %q", first.UserID)
	}

	// Mutating a returned copy must not leak either.
	first.Status = domain.LoanReturned
	second, _ := repo.FindByID(ctx, "LOAN-1")
	if second.Status != domain.LoanActive {
		t.Errorf("stored loan mutated through returned reference: %q", second.Status)
	}
}

func TestLoanRepository_FindAll_PreservesInsertionOrder(t *testing.T) {
	repo := NewLoanRepository()
	ctx := context.Background()

	ids := []string{"LOAN-3", "LOAN-1", "LOAN-2"}
	for _, id := range ids {
		_, _ = repo.Save(ctx, newLoan(t, id, "user_1", "978-1"))
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 loans, got %d", len(all))
	}
	for i, id := range ids {
		if all[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, all[i].ID)
		}
	}
}

func TestLoanRepository_ActiveFilters(t *testing.T) {
	repo := NewLoanRepository()
	ctx := context.Background()

	active := newLoan(t, "LOAN-1", "user_1", "978-1")
	returned := newLoan(t, "LOAN-2", "user_1", "978-2")
	if err := returned.MarkReturned(returned.LoanDate.AddDate(0, 0, 3)); err != nil {
		t.Fatalf("mark returned: %v", err)
	}
	other := newLoan(t, "LOAN-3", "user_2", "978-1")

	for _, l := range []*domain.Loan{active, returned, other} {
		_, _ = repo.Save(ctx, l)
	}

	allActive, _ := repo.FindAllActive(ctx)
	if len(allActive) != 2 {
		t.Errorf("expected 2 active loans, got %d", len(allActive))
	}

	userActive, _ := repo.FindActiveByUserID(ctx, "user_1")
	if len(userActive) != 1 || userActive[0].ID != "LOAN-1" {
		t.Errorf("expected only LOAN-1 active for user_1, got %d loans", len(userActive))
	}

	byBook, _ := repo.FindByBookIsbn(ctx, "978-1")
	if len(byBook) != 2 {
		t.Errorf("expected 2 loans for 978-1, got %d", len(byBook))
	}

	byUser, _ := repo.FindByUserID(ctx, "user_1")
	if len(byUser) != 2 {
		t.Errorf("expected 2 loans for user_1, got %d", len(byUser))
	}
}

func TestLoanRepository_DeleteByID(t *testing.T) {
	repo := NewLoanRepository()
	ctx := context.Background()

	_, _ = repo.Save(ctx, newLoan(t, "LOAN-1", "user_1", "978-1"))

	deleted, err := repo.DeleteByID(ctx, "LOAN-1")
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, got deleted=%v err=%v", deleted, err)
	}

	deleted, err = repo.DeleteByID(ctx, "LOAN-1")
	if err != nil || deleted {
		t.Errorf("second delete must report false, got deleted=%v err=%v", deleted, err)
	}

	all, _ := repo.FindAll(ctx)
	if len(all) != 0 {
		t.Errorf("expected empty repository, got %d loans", len(all))
	}
}
