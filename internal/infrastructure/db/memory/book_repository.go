// Package memory provides mutex-guarded in-memory repositories. It is the
// default backend for local runs and tests; every entity is cloned on the way
// in and out so the repository keeps exclusive ownership of stored state.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/librisys/library-system/internal/core/domain"
)

// BookRepository stores books keyed by isbn, preserving insertion order for
// FindAll.
type BookRepository struct {
	mu    sync.RWMutex
	books map[string]*domain.Book
	order []string
}

func NewBookRepository() *BookRepository {
	return &BookRepository{books: make(map[string]*domain.Book)}
}

func (r *BookRepository) Save(_ context.Context, book *domain.Book) (*domain.Book, error) {
	if book == nil {
		return nil, fmt.Errorf("%w: book must not be nil", domain.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[book.ISBN]; !ok {
		r.order = append(r.order, book.ISBN)
	}
	clone := *book
	r.books[book.ISBN] = &clone

	out := clone
	return &out, nil
}

func (r *BookRepository) FindByIsbn(_ context.Context, isbn string) (*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.books[isbn]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	clone := *book
	return &clone, nil
}

func (r *BookRepository) FindAll(_ context.Context) ([]*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Book, 0, len(r.order))
	for _, isbn := range r.order {
		clone := *r.books[isbn]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *BookRepository) ExistsByIsbn(_ context.Context, isbn string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.books[isbn]
	return ok, nil
}

func (r *BookRepository) DeleteByIsbn(_ context.Context, isbn string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[isbn]; !ok {
		return false, nil
	}
	delete(r.books, isbn)
	for i, key := range r.order {
		if key == isbn {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}
