package domain

import "errors"

// Sentinel errors for the loan core. Services wrap these with context via
// fmt.Errorf("...: %w", Err...) so callers can still match with errors.Is.
var (
	// ErrValidation marks malformed input (blank id/isbn, zero date,
	// non-positive loan period, negative copy counts). It is always raised
	// before any mutation.
	ErrValidation = errors.New("invalid input")

	ErrBookNotFound = errors.New("book not found")
	ErrUserNotFound = errors.New("user not found")
	ErrLoanNotFound = errors.New("loan not found")

	ErrDuplicateISBN = errors.New("book with this isbn already exists")
	ErrDuplicateUser = errors.New("user with this id already exists")

	// ErrNoCopiesAvailable means the book exists but every physical copy is
	// currently on loan. Distinct from ErrBookNotFound.
	ErrNoCopiesAvailable = errors.New("no copies available")

	ErrLoanAlreadyReturned = errors.New("loan has already been returned")
	ErrNotPhysicalBook     = errors.New("book is not a physical book")
	ErrNotDigitalBook      = errors.New("book is not a digital book")

	// ErrInvalidCopyCount covers inventory-consistency violations: lowering
	// total copies below the number currently on loan, or an increment that
	// would push available copies past the total.
	ErrInvalidCopyCount = errors.New("invalid copy count")
)
