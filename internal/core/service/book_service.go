package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

// BookService implements catalog use cases. Availability and copy-count rules
// live on the Book entity; this layer adds identity checks and persistence.
type BookService struct {
	repo   ports.BookRepository
	logger zerolog.Logger
}

func NewBookService(repo ports.BookRepository, logger zerolog.Logger) *BookService {
	return &BookService{repo: repo, logger: logger}
}

// RegisterPhysical adds a physical book with all copies available.
func (s *BookService) RegisterPhysical(ctx context.Context, in ports.RegisterPhysicalBookInput) (*domain.Book, error) {
	book, err := domain.NewPhysicalBook(in.Title, in.Author, in.ISBN, in.TotalCopies)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByIsbn(ctx, in.ISBN)
	if err != nil {
		return nil, fmt.Errorf("register physical book: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateISBN, in.ISBN)
	}

	saved, err := s.repo.Save(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("register physical book: %w", err)
	}

	s.logger.Info().Str("isbn", saved.ISBN).Int("total_copies", saved.TotalCopies).Msg("physical book registered")
	return saved, nil
}

// RegisterDigital adds a digital book.
func (s *BookService) RegisterDigital(ctx context.Context, in ports.RegisterDigitalBookInput) (*domain.Book, error) {
	book, err := domain.NewDigitalBook(in.Title, in.Author, in.ISBN)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByIsbn(ctx, in.ISBN)
	if err != nil {
		return nil, fmt.Errorf("register digital book: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateISBN, in.ISBN)
	}

	saved, err := s.repo.Save(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("register digital book: %w", err)
	}

	s.logger.Info().Str("isbn", saved.ISBN).Msg("digital book registered")
	return saved, nil
}

// UpdatePhysical changes details and resizes inventory of a physical book.
func (s *BookService) UpdatePhysical(ctx context.Context, isbn string, in ports.UpdatePhysicalBookInput) (*domain.Book, error) {
	book, err := s.FindByIsbn(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if book.Kind != domain.KindPhysical {
		return nil, fmt.Errorf("%w: isbn %s", domain.ErrNotPhysicalBook, isbn)
	}

	if err := book.UpdateDetails(in.Title, in.Author); err != nil {
		return nil, err
	}
	if err := book.SetTotalCopies(in.TotalCopies); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("update physical book: %w", err)
	}
	return saved, nil
}

// UpdateDigital changes details of a digital book.
func (s *BookService) UpdateDigital(ctx context.Context, isbn string, in ports.UpdateDigitalBookInput) (*domain.Book, error) {
	book, err := s.FindByIsbn(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if book.Kind != domain.KindDigital {
		return nil, fmt.Errorf("%w: isbn %s", domain.ErrNotDigitalBook, isbn)
	}

	if err := book.UpdateDetails(in.Title, in.Author); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("update digital book: %w", err)
	}
	return saved, nil
}

// FindByIsbn retrieves one book.
func (s *BookService) FindByIsbn(ctx context.Context, isbn string) (*domain.Book, error) {
	if isbn == "" {
		return nil, fmt.Errorf("%w: isbn is required", domain.ErrValidation)
	}
	book, err := s.repo.FindByIsbn(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("find book %s: %w", isbn, err)
	}
	return book, nil
}

// ListAll returns the whole catalog in repository order.
func (s *BookService) ListAll(ctx context.Context) ([]*domain.Book, error) {
	return s.repo.FindAll(ctx)
}

// Delete removes a book from the catalog.
func (s *BookService) Delete(ctx context.Context, isbn string) error {
	if isbn == "" {
		return fmt.Errorf("%w: isbn is required", domain.ErrValidation)
	}
	deleted, err := s.repo.DeleteByIsbn(ctx, isbn)
	if err != nil {
		return fmt.Errorf("delete book %s: %w", isbn, err)
	}
	if !deleted {
		return fmt.Errorf("%w: %s", domain.ErrBookNotFound, isbn)
	}
	s.logger.Info().Str("isbn", isbn).Msg("book deleted")
	return nil
}
