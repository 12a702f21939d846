package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

const defaultLoanPeriodDays = 14

// ReportCache abstracts the optional loan-report cache (Redis). Get returns
// (nil, nil) on a miss.
type ReportCache interface {
	Get(ctx context.Context) (*ports.LoanReport, error)
	Set(ctx context.Context, report *ports.LoanReport) error
	Invalidate(ctx context.Context) error
}

// LoanService orchestrates users, books and loans. It is the only writer of
// book inventory counts and user loan history, and it serializes every
// read-modify-write on shared state: inventory per book isbn (create and
// return), the returned transition per loan id, and the history append per
// user id. Lock order is loan → book → user; no path acquires them the other
// way round.
type LoanService struct {
	loans      ports.LoanRepository
	books      ports.BookRepository
	users      ports.UserRepository
	cache      ReportCache // optional, may be nil
	periodDays int
	logger     zerolog.Logger

	bookLocks stripedLock
	loanLocks stripedLock
	userLocks stripedLock
}

// NewLoanService wires the three repositories. periodDays <= 0 selects the
// 14-day default; cache may be nil to disable report caching.
func NewLoanService(
	loans ports.LoanRepository,
	books ports.BookRepository,
	users ports.UserRepository,
	cache ReportCache,
	periodDays int,
	logger zerolog.Logger,
) *LoanService {
	if periodDays <= 0 {
		periodDays = defaultLoanPeriodDays
	}
	return &LoanService{
		loans:      loans,
		books:      books,
		users:      users,
		cache:      cache,
		periodDays: periodDays,
		logger:     logger,
	}
}

// CreateLoan opens a loan against available inventory. The book save, loan
// save and user-history save form one logical unit: a failure after the
// inventory decrement rolls the earlier writes back so no copy is left
// unaccounted for.
func (s *LoanService) CreateLoan(ctx context.Context, in ports.CreateLoanInput) (*domain.Loan, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	if in.ISBN == "" {
		return nil, fmt.Errorf("%w: isbn is required", domain.ErrValidation)
	}
	if in.PeriodDays < 0 {
		return nil, fmt.Errorf("%w: loan period must not be negative", domain.ErrValidation)
	}

	loanDate := domain.Date(in.LoanDate)
	if in.LoanDate.IsZero() {
		loanDate = domain.Date(time.Now())
	}
	periodDays := in.PeriodDays
	if periodDays == 0 {
		periodDays = s.periodDays
	}

	// Serialize availability check + decrement per isbn: two concurrent
	// creates against the last copy must not both succeed.
	mu := s.bookLocks.of(in.ISBN)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		return nil, fmt.Errorf("create loan: user %s: %w", in.UserID, err)
	}

	book, err := s.books.FindByIsbn(ctx, in.ISBN)
	if err != nil {
		return nil, fmt.Errorf("create loan: book %s: %w", in.ISBN, err)
	}

	if !book.IsAvailableForLoan() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoCopiesAvailable, book.Title)
	}

	dueDate := loanDate.AddDate(0, 0, periodDays)
	loan, err := domain.NewLoan(generateLoanID(), in.UserID, in.ISBN, loanDate, dueDate)
	if err != nil {
		return nil, err
	}

	if err := book.RegisterLoan(); err != nil {
		return nil, err
	}
	if _, err := s.books.Save(ctx, book); err != nil {
		return nil, fmt.Errorf("create loan: save book: %w", err)
	}

	if _, err := s.loans.Save(ctx, loan); err != nil {
		s.rollbackBookLoan(ctx, book)
		return nil, fmt.Errorf("create loan: save loan: %w", err)
	}

	if err := s.appendLoanToHistory(ctx, in.UserID, loan.ID); err != nil {
		if _, delErr := s.loans.DeleteByID(ctx, loan.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("loan_id", loan.ID).Msg("rollback: failed to delete loan")
		}
		s.rollbackBookLoan(ctx, book)
		return nil, fmt.Errorf("create loan: save user: %w", err)
	}

	s.invalidateReportCache(ctx)

	s.logger.Info().
		Str("loan_id", loan.ID).
		Str("user_id", in.UserID).
		Str("isbn", in.ISBN).
		Str("due_date", dueDate.Format(domain.DateLayout)).
		Msg("loan created")

	return loan, nil
}

// appendLoanToHistory serializes the read-modify-write of a user's loan
// history. Two concurrent creates by the same user against different books
// hold different book stripes, so the append needs its own lock to keep the
// history append-only: a stale snapshot must never overwrite a newer one.
func (s *LoanService) appendLoanToHistory(ctx context.Context, userID, loanID string) error {
	mu := s.userLocks.of(userID)
	mu.Lock()
	defer mu.Unlock()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.AddLoanToHistory(loanID)
	_, err = s.users.Save(ctx, user)
	return err
}

// rollbackBookLoan undoes an inventory decrement after a later persist step
// failed. Best effort: a failure here is logged, not surfaced.
func (s *LoanService) rollbackBookLoan(ctx context.Context, book *domain.Book) {
	if err := book.RegisterReturn(); err != nil {
		s.logger.Error().Err(err).Str("isbn", book.ISBN).Msg("rollback: failed to restore copy count")
		return
	}
	if _, err := s.books.Save(ctx, book); err != nil {
		s.logger.Error().Err(err).Str("isbn", book.ISBN).Msg("rollback: failed to save book")
	}
}

// ReturnLoan transitions a loan to returned and puts the copy back on the
// shelf. The is-returned check and the transition are serialized per loan id;
// the inventory increment additionally takes the book's stripe so it cannot
// race a concurrent CreateLoan on the same isbn.
func (s *LoanService) ReturnLoan(ctx context.Context, loanID string, returnDate time.Time) (*domain.Loan, error) {
	if loanID == "" {
		return nil, fmt.Errorf("%w: loan id is required", domain.ErrValidation)
	}
	date := domain.Date(returnDate)
	if returnDate.IsZero() {
		date = domain.Date(time.Now())
	}

	mu := s.loanLocks.of(loanID)
	mu.Lock()
	defer mu.Unlock()

	loan, err := s.loans.FindByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("return loan %s: %w", loanID, err)
	}
	if loan.Returned() {
		return nil, fmt.Errorf("%w: %s", domain.ErrLoanAlreadyReturned, loanID)
	}

	if err := loan.MarkReturned(date); err != nil {
		return nil, err
	}

	// The inventory increment must hold the same stripe a concurrent
	// CreateLoan takes for its decrement, or one of the two writes gets
	// overwritten by the other's stale read.
	bmu := s.bookLocks.of(loan.BookISBN)
	bmu.Lock()
	defer bmu.Unlock()

	// Books are never deleted while referenced by a loan, so a missing book
	// here is a consistency fault, not a business outcome.
	book, err := s.books.FindByIsbn(ctx, loan.BookISBN)
	if err != nil {
		return nil, fmt.Errorf("return loan %s: book %s: %w", loanID, loan.BookISBN, err)
	}
	if err := book.RegisterReturn(); err != nil {
		return nil, err
	}
	if _, err := s.books.Save(ctx, book); err != nil {
		return nil, fmt.Errorf("return loan %s: save book: %w", loanID, err)
	}

	if _, err := s.loans.Save(ctx, loan); err != nil {
		// Undo the increment so inventory stays consistent with the
		// still-active loan.
		if rbErr := book.RegisterLoan(); rbErr == nil {
			if _, saveErr := s.books.Save(ctx, book); saveErr != nil {
				s.logger.Error().Err(saveErr).Str("isbn", book.ISBN).Msg("rollback: failed to save book")
			}
		}
		return nil, fmt.Errorf("return loan %s: save loan: %w", loanID, err)
	}

	s.invalidateReportCache(ctx)

	s.logger.Info().
		Str("loan_id", loanID).
		Str("isbn", loan.BookISBN).
		Str("return_date", date.Format(domain.DateLayout)).
		Msg("loan returned")

	return loan, nil
}

// FindLoanByID retrieves one loan.
func (s *LoanService) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if loanID == "" {
		return nil, fmt.Errorf("%w: loan id is required", domain.ErrValidation)
	}
	loan, err := s.loans.FindByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("find loan %s: %w", loanID, err)
	}
	return loan, nil
}

// GetLoansByUser returns every loan a user has ever taken.
func (s *LoanService) GetLoansByUser(ctx context.Context, userID string) ([]*domain.Loan, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	return s.loans.FindByUserID(ctx, userID)
}

// GetActiveLoansByUser returns a user's not-yet-returned loans.
func (s *LoanService) GetActiveLoansByUser(ctx context.Context, userID string) ([]*domain.Loan, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	return s.loans.FindActiveByUserID(ctx, userID)
}

// GetLoansByBook returns every loan ever taken against an isbn.
func (s *LoanService) GetLoansByBook(ctx context.Context, isbn string) ([]*domain.Loan, error) {
	if isbn == "" {
		return nil, fmt.Errorf("%w: isbn is required", domain.ErrValidation)
	}
	return s.loans.FindByBookIsbn(ctx, isbn)
}

// GetAllActiveLoans returns all not-yet-returned loans.
func (s *LoanService) GetAllActiveLoans(ctx context.Context) ([]*domain.Loan, error) {
	return s.loans.FindAllActive(ctx)
}

// GetAllLoans returns every loan in the system.
func (s *LoanService) GetAllLoans(ctx context.Context) ([]*domain.Loan, error) {
	return s.loans.FindAll(ctx)
}

// GetOverdueLoans returns active loans strictly past due at the given date.
func (s *LoanService) GetOverdueLoans(ctx context.Context, at time.Time) ([]*domain.Loan, error) {
	date := domain.Date(at)
	if at.IsZero() {
		date = domain.Date(time.Now())
	}

	active, err := s.loans.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("overdue loans: %w", err)
	}

	overdue := make([]*domain.Loan, 0)
	for _, loan := range active {
		if loan.IsOverdue(date) {
			overdue = append(overdue, loan)
		}
	}
	return overdue, nil
}

// IsLoanOverdue evaluates one loan against today's date.
func (s *LoanService) IsLoanOverdue(ctx context.Context, loanID string) (bool, error) {
	loan, err := s.FindLoanByID(ctx, loanID)
	if err != nil {
		return false, err
	}
	return loan.IsOverdue(domain.Date(time.Now())), nil
}

// GenerateLoanReport aggregates loan counts per book, most borrowed first,
// ties broken by isbn ascending. Served from the report cache when fresh.
func (s *LoanService) GenerateLoanReport(ctx context.Context) (*ports.LoanReport, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("report cache read failed, recomputing")
		} else if cached != nil {
			return cached, nil
		}
	}

	all, err := s.loans.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loan report: %w", err)
	}

	counts := make(map[string]int64)
	for _, loan := range all {
		counts[loan.BookISBN]++
	}

	perBook := make([]ports.BookLoanCount, 0, len(counts))
	for isbn, count := range counts {
		book, err := s.books.FindByIsbn(ctx, isbn)
		if err != nil {
			// The catalog entry may have been removed after its loans were
			// recorded; keep the row with the isbn as the only detail.
			book = &domain.Book{ISBN: isbn}
		}
		perBook = append(perBook, ports.BookLoanCount{Book: book, Count: count})
	}

	sort.Slice(perBook, func(i, j int) bool {
		if perBook[i].Count != perBook[j].Count {
			return perBook[i].Count > perBook[j].Count
		}
		return perBook[i].Book.ISBN < perBook[j].Book.ISBN
	})

	report := &ports.LoanReport{
		TotalLoans: int64(len(all)),
		PerBook:    perBook,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, report); err != nil {
			s.logger.Warn().Err(err).Msg("report cache write failed")
		}
	}

	return report, nil
}

func (s *LoanService) invalidateReportCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("report cache invalidation failed")
	}
}

// generateLoanID returns a globally unique loan id. Random rather than
// sequential so concurrent creates need no coordination.
func generateLoanID() string {
	return "LOAN-" + uuid.NewString()
}
