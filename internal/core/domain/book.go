package domain

import "fmt"

// BookKind distinguishes the two book variants in the catalog.
type BookKind string

const (
	KindPhysical BookKind = "physical"
	KindDigital  BookKind = "digital"
)

// Book is the catalog aggregate. The ISBN is its identity key and is
// immutable after creation. Physical books carry copy counts; digital books
// have unlimited availability and both counts stay zero.
type Book struct {
	ISBN            string   `json:"isbn" bson:"_id"`
	Title           string   `json:"title" bson:"title"`
	Author          string   `json:"author" bson:"author"`
	Kind            BookKind `json:"kind" bson:"kind"`
	TotalCopies     int      `json:"total_copies,omitempty" bson:"total_copies"`
	AvailableCopies int      `json:"available_copies,omitempty" bson:"available_copies"`
}

// NewPhysicalBook builds a physical book with all copies available.
func NewPhysicalBook(title, author, isbn string, totalCopies int) (*Book, error) {
	if title == "" || author == "" || isbn == "" {
		return nil, fmt.Errorf("%w: title, author and isbn are required", ErrValidation)
	}
	if totalCopies < 0 {
		return nil, fmt.Errorf("%w: total copies must not be negative", ErrValidation)
	}
	return &Book{
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		Kind:            KindPhysical,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}, nil
}

// NewDigitalBook builds a digital book. Digital books are always loanable.
func NewDigitalBook(title, author, isbn string) (*Book, error) {
	if title == "" || author == "" || isbn == "" {
		return nil, fmt.Errorf("%w: title, author and isbn are required", ErrValidation)
	}
	return &Book{
		ISBN:   isbn,
		Title:  title,
		Author: author,
		Kind:   KindDigital,
	}, nil
}

// IsAvailableForLoan reports whether at least one copy can be lent right now.
func (b *Book) IsAvailableForLoan() bool {
	if b.Kind == KindDigital {
		return true
	}
	return b.AvailableCopies > 0
}

// RegisterLoan decrements the available copy count. The availability check
// belongs to the caller; a decrement below zero is an inventory-consistency
// violation, not a business outcome.
func (b *Book) RegisterLoan() error {
	if b.Kind == KindDigital {
		return nil
	}
	if b.AvailableCopies <= 0 {
		return fmt.Errorf("%w: no copies left to lend for isbn %s", ErrNoCopiesAvailable, b.ISBN)
	}
	b.AvailableCopies--
	return nil
}

// RegisterReturn increments the available copy count, guarding the
// availableCopies <= totalCopies invariant.
func (b *Book) RegisterReturn() error {
	if b.Kind == KindDigital {
		return nil
	}
	if b.AvailableCopies >= b.TotalCopies {
		return fmt.Errorf("%w: return would exceed %d total copies for isbn %s",
			ErrInvalidCopyCount, b.TotalCopies, b.ISBN)
	}
	b.AvailableCopies++
	return nil
}

// UpdateDetails changes the mutable descriptive fields.
func (b *Book) UpdateDetails(title, author string) error {
	if title == "" || author == "" {
		return fmt.Errorf("%w: title and author are required", ErrValidation)
	}
	b.Title = title
	b.Author = author
	return nil
}

// SetTotalCopies resizes the physical inventory. Copies currently on loan
// must stay representable: lowering the total below the on-loan count is
// rejected rather than clamped, so an active loan can never be orphaned.
func (b *Book) SetTotalCopies(newTotal int) error {
	if b.Kind != KindPhysical {
		return fmt.Errorf("%w: isbn %s", ErrNotPhysicalBook, b.ISBN)
	}
	if newTotal < 0 {
		return fmt.Errorf("%w: total copies must not be negative", ErrValidation)
	}
	onLoan := b.TotalCopies - b.AvailableCopies
	if newTotal < onLoan {
		return fmt.Errorf("%w: %d copies are on loan, cannot lower total to %d",
			ErrInvalidCopyCount, onLoan, newTotal)
	}
	b.TotalCopies = newTotal
	b.AvailableCopies = newTotal - onLoan
	return nil
}
