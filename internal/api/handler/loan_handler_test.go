package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

type stubLoanService struct {
	createFn  func(ctx context.Context, in ports.CreateLoanInput) (*domain.Loan, error)
	returnFn  func(ctx context.Context, loanID string, returnDate time.Time) (*domain.Loan, error)
	overdueFn func(ctx context.Context, at time.Time) ([]*domain.Loan, error)
	reportFn  func(ctx context.Context) (*ports.LoanReport, error)
}

func (s *stubLoanService) CreateLoan(ctx context.Context, in ports.CreateLoanInput) (*domain.Loan, error) {
	return s.createFn(ctx, in)
}

func (s *stubLoanService) ReturnLoan(ctx context.Context, loanID string, returnDate time.Time) (*domain.Loan, error) {
	return s.returnFn(ctx, loanID, returnDate)
}

func (s *stubLoanService) FindLoanByID(context.Context, string) (*domain.Loan, error) {
	return nil, domain.ErrLoanNotFound
}

func (s *stubLoanService) GetLoansByUser(context.Context, string) ([]*domain.Loan, error) {
	return nil, nil
}

func (s *stubLoanService) GetActiveLoansByUser(context.Context, string) ([]*domain.Loan, error) {
	return nil, nil
}

func (s *stubLoanService) GetLoansByBook(context.Context, string) ([]*domain.Loan, error) {
	return nil, nil
}

func (s *stubLoanService) GetAllActiveLoans(context.Context) ([]*domain.Loan, error) {
	return nil, nil
}

func (s *stubLoanService) GetAllLoans(context.Context) ([]*domain.Loan, error) {
	return nil, nil
}

func (s *stubLoanService) GetOverdueLoans(ctx context.Context, at time.Time) ([]*domain.Loan, error) {
	return s.overdueFn(ctx, at)
}

func (s *stubLoanService) IsLoanOverdue(context.Context, string) (bool, error) {
	return false, nil
}

func (s *stubLoanService) GenerateLoanReport(ctx context.Context) (*ports.LoanReport, error) {
	return s.reportFn(ctx)
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func testLoan(id string) *domain.Loan {
	loanDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Loan{
		ID:       id,
		UserID:   "user_1",
		BookISBN: "978-1",
		LoanDate: loanDate,
		DueDate:  loanDate.AddDate(0, 0, 14),
		Status:   domain.LoanActive,
	}
}

func TestLoanHandler_Create_Success(t *testing.T) {
	stub := &stubLoanService{
		createFn: func(_ context.Context, in ports.CreateLoanInput) (*domain.Loan, error) {
			if in.UserID != "user_1" || in.ISBN != "978-1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if got := in.LoanDate.Format(domain.DateLayout); got != "2024-01-01" {
				t.Fatalf("expected parsed loan date 2024-01-01, got %s", got)
			}
			return testLoan("LOAN-abc"), nil
		},
	}
	h := NewLoanHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/v1/loans",
		`{"user_id":"user_1","isbn":"978-1","loan_date":"2024-01-01"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "LOAN-abc" || resp["status"] != "active" {
		t.Errorf("unexpected payload: %+v", resp)
	}
	links, ok := resp["_links"].(map[string]any)
	if !ok || links["return"] != "/v1/loans/LOAN-abc/return" {
		t.Errorf("unexpected links: %+v", resp["_links"])
	}
}

func TestLoanHandler_Create_MissingFields(t *testing.T) {
	stub := &stubLoanService{
		createFn: func(context.Context, ports.CreateLoanInput) (*domain.Loan, error) {
			t.Fatal("service must not be called on invalid payload")
			return nil, nil
		},
	}
	h := NewLoanHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/v1/loans", `{"user_id":"user_1"}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestLoanHandler_Create_BadDateFormat(t *testing.T) {
	stub := &stubLoanService{
		createFn: func(context.Context, ports.CreateLoanInput) (*domain.Loan, error) {
			t.Fatal("service must not be called on invalid payload")
			return nil, nil
		},
	}
	h := NewLoanHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/v1/loans",
		`{"user_id":"user_1","isbn":"978-1","loan_date":"01/15/2024"}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestLoanHandler_Create_PropagatesDomainError(t *testing.T) {
	stub := &stubLoanService{
		createFn: func(context.Context, ports.CreateLoanInput) (*domain.Loan, error) {
			return nil, domain.ErrNoCopiesAvailable
		},
	}
	h := NewLoanHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/v1/loans", `{"user_id":"user_1","isbn":"978-1"}`)

	if err := h.Create(c); !errors.Is(err, domain.ErrNoCopiesAvailable) {
		t.Fatalf("domain error must pass through for central mapping, got %v", err)
	}
}

func TestLoanHandler_Return_Success(t *testing.T) {
	stub := &stubLoanService{
		returnFn: func(_ context.Context, loanID string, returnDate time.Time) (*domain.Loan, error) {
			if loanID != "LOAN-abc" {
				t.Fatalf("unexpected loan id %q", loanID)
			}
			if !returnDate.IsZero() {
				t.Fatalf("empty body must pass a zero return date, got %v", returnDate)
			}
			loan := testLoan(loanID)
			rd := loan.LoanDate.AddDate(0, 0, 5)
			loan.ReturnDate = &rd
			loan.Status = domain.LoanReturned
			return loan, nil
		},
	}
	h := NewLoanHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/v1/loans/LOAN-abc/return", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("LOAN-abc")

	if err := h.Return(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["status"] != "returned" || resp["return_date"] != "2024-01-06" {
		t.Errorf("unexpected payload: %+v", resp)
	}
}

func TestLoanHandler_ListOverdue_PassesDate(t *testing.T) {
	stub := &stubLoanService{
		overdueFn: func(_ context.Context, at time.Time) ([]*domain.Loan, error) {
			if got := at.Format(domain.DateLayout); got != "2024-02-01" {
				t.Fatalf("expected evaluation date 2024-02-01, got %s", got)
			}
			return []*domain.Loan{testLoan("LOAN-late")}, nil
		},
	}
	h := NewLoanHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/loans/overdue?date=2024-02-01", "")

	if err := h.ListOverdue(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []map[string]any `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Data) != 1 || resp.Data[0]["id"] != "LOAN-late" {
		t.Errorf("unexpected payload: %+v", resp.Data)
	}
}

func TestLoanHandler_Report(t *testing.T) {
	stub := &stubLoanService{
		reportFn: func(context.Context) (*ports.LoanReport, error) {
			book, _ := domain.NewPhysicalBook("Title", "Author", "978-1", 2)
			return &ports.LoanReport{
				TotalLoans: 3,
				PerBook:    []ports.BookLoanCount{{Book: book, Count: 3}},
			}, nil
		},
	}
	h := NewLoanHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/reports/loans", "")

	if err := h.Report(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		TotalLoans int64 `json:"total_loans"`
		PerBook    []struct {
			Book  map[string]any `json:"book"`
			Count int64          `json:"count"`
		} `json:"loans_per_book"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.TotalLoans != 3 || len(resp.PerBook) != 1 {
		t.Fatalf("unexpected report: %+v", resp)
	}
	if resp.PerBook[0].Book["isbn"] != "978-1" || resp.PerBook[0].Count != 3 {
		t.Errorf("unexpected row: %+v", resp.PerBook[0])
	}
}
