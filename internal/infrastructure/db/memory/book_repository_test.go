package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/librisys/library-system/internal/core/domain"
)

func newBook(t *testing.T, isbn string, copies int) *domain.Book {
	t.Helper()
	book, err := domain.NewPhysicalBook("Title "+isbn, "Author", isbn, copies)
	if err != nil {
		t.Fatalf("new book: %v", err)
	}
	return book
}

func TestBookRepository_SaveIsUpsert(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()

	_, _ = repo.Save(ctx, newBook(t, "978-1", 2))

	updated := newBook(t, "978-1", 5)
	if _, err := repo.Save(ctx, updated); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	found, _ := repo.FindByIsbn(ctx, "978-1")
	if found.TotalCopies != 5 {
		t.Errorf("expected updated copy count 5, got %d", found.TotalCopies)
	}

	all, _ := repo.FindAll(ctx)
	if len(all) != 1 {
		t.Errorf("upsert must not duplicate entries, got %d", len(all))
	}
}

func TestBookRepository_FindByIsbn_NotFound(t *testing.T) {
	repo := NewBookRepository()

	_, err := repo.FindByIsbn(context.Background(), "978-missing")
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookRepository_ClonesStoredState(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()

	book := newBook(t, "978-1", 2)
	_, _ = repo.Save(ctx, book)

	book.Title = "tampered"

	found, _ := repo.FindByIsbn(ctx, "978-1")
	if found.Title != "Title 978-1" {
		t.Errorf("stored book mutated through caller reference: %q", found.Title)
	}
}

func TestBookRepository_ExistsAndDelete(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()

	_, _ = repo.Save(ctx, newBook(t, "978-1", 1))

	exists, _ := repo.ExistsByIsbn(ctx, "978-1")
	if !exists {
		t.Error("expected book to exist")
	}

	deleted, _ := repo.DeleteByIsbn(ctx, "978-1")
	if !deleted {
		t.Error("expected delete to report true")
	}

	exists, _ = repo.ExistsByIsbn(ctx, "978-1")
	if exists {
		t.Error("expected book to be gone")
	}

	deleted, _ = repo.DeleteByIsbn(ctx, "978-1")
	if deleted {
		t.Error("second delete must report false")
	}
}
