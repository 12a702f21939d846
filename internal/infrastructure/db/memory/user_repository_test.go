package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/librisys/library-system/internal/core/domain"
)

func newUser(t *testing.T, id string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(id, "User "+id)
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	return user
}

func TestUserRepository_SaveAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, newUser(t, "user_1"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	found, err := repo.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Name != "User user_1" {
		t.Errorf("unexpected user: %+v", found)
	}
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	repo := NewUserRepository()

	_, err := repo.FindByID(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_DeepClonesLoanHistory(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := newUser(t, "user_1")
	user.AddLoanToHistory("LOAN-1")
	_, _ = repo.Save(ctx, user)

	// Appending through the caller's slice must not leak into the store.
	user.AddLoanToHistory("LOAN-tampered")

	first, _ := repo.FindByID(ctx, "user_1")
	if len(first.LoanHistory) != 1 || first.LoanHistory[0] != "LOAN-1" {
		t.Errorf("stored history mutated through caller reference: %v", first.LoanHistory)
	}

	// Mutating a returned copy's history must not leak either.
	first.LoanHistory[0] = "LOAN-overwritten"
	second, _ := repo.FindByID(ctx, "user_1")
	if second.LoanHistory[0] != "LOAN-1" {
		t.Errorf("stored history mutated through returned reference: %v", second.LoanHistory)
	}
}

func TestUserRepository_FindAll_PreservesInsertionOrder(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	ids := []string{"user_c", "user_a", "user_b"}
	for _, id := range ids {
		_, _ = repo.Save(ctx, newUser(t, id))
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 users, got %d", len(all))
	}
	for i, id := range ids {
		if all[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, all[i].ID)
		}
	}
}

func TestUserRepository_ExistsAndDelete(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, _ = repo.Save(ctx, newUser(t, "user_1"))

	exists, _ := repo.ExistsByID(ctx, "user_1")
	if !exists {
		t.Error("expected user to exist")
	}

	deleted, _ := repo.DeleteByID(ctx, "user_1")
	if !deleted {
		t.Error("expected delete to report true")
	}

	deleted, _ = repo.DeleteByID(ctx, "user_1")
	if deleted {
		t.Error("second delete must report false")
	}

	all, _ := repo.FindAll(ctx)
	if len(all) != 0 {
		t.Errorf("expected empty repository, got %d users", len(all))
	}
}
