package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/librisys/library-system/internal/api/metrics"
	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

// LoanHandler handles HTTP requests for the loan lifecycle and reports.
type LoanHandler struct {
	service ports.LoanService
}

func NewLoanHandler(service ports.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

// Create handles POST /v1/loans.
//
// @Summary      Create a loan against available inventory
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        body  body      createLoanRequest  true  "Loan details"
// @Success      201   {object}  loanResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/loans [post]
func (h *LoanHandler) Create(c echo.Context) error {
	var req createLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	loanDate, err := parseDate(req.LoanDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "loan_date must be formatted as 2006-01-02")
	}

	loan, err := h.service.CreateLoan(c.Request().Context(), ports.CreateLoanInput{
		UserID:     req.UserID,
		ISBN:       req.ISBN,
		LoanDate:   loanDate,
		PeriodDays: req.PeriodDays,
	})
	if err != nil {
		return err
	}

	metrics.LoansCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toLoanResponse(loan))
}

// Return handles POST /v1/loans/:id/return.
//
// @Summary      Return a loan
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        id    path      string             true   "Loan id"
// @Param        body  body      returnLoanRequest  false  "Return details"
// @Success      200   {object}  loanResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/loans/{id}/return [post]
func (h *LoanHandler) Return(c echo.Context) error {
	var req returnLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	returnDate, err := parseDate(req.ReturnDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "return_date must be formatted as 2006-01-02")
	}

	loan, err := h.service.ReturnLoan(c.Request().Context(), c.Param("id"), returnDate)
	if err != nil {
		return err
	}

	metrics.LoansReturnedTotal.Inc()
	return c.JSON(http.StatusOK, toLoanResponse(loan))
}

// Get handles GET /v1/loans/:id.
//
// @Summary      Get a loan by id
// @Tags         loans
// @Produce      json
// @Param        id   path      string  true  "Loan id"
// @Success      200  {object}  loanResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/loans/{id} [get]
func (h *LoanHandler) Get(c echo.Context) error {
	loan, err := h.service.FindLoanByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoanResponse(loan))
}

// List handles GET /v1/loans. With ?active=true only active loans are listed.
//
// @Summary      List loans
// @Tags         loans
// @Produce      json
// @Param        active  query     bool  false  "Only active loans"
// @Success      200     {object}  loanListResponse
// @Router       /v1/loans [get]
func (h *LoanHandler) List(c echo.Context) error {
	var (
		loans []*domain.Loan
		err   error
	)
	if c.QueryParam("active") == "true" {
		loans, err = h.service.GetAllActiveLoans(c.Request().Context())
	} else {
		loans, err = h.service.GetAllLoans(c.Request().Context())
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoanListResponse(loans))
}

// ListOverdue handles GET /v1/loans/overdue. An optional ?date=2006-01-02
// evaluates overdue against that date instead of today.
//
// @Summary      List overdue loans
// @Tags         loans
// @Produce      json
// @Param        date  query     string  false  "Evaluation date (2006-01-02)"
// @Success      200   {object}  loanListResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/loans/overdue [get]
func (h *LoanHandler) ListOverdue(c echo.Context) error {
	at, err := parseDate(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be formatted as 2006-01-02")
	}

	loans, err := h.service.GetOverdueLoans(c.Request().Context(), at)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoanListResponse(loans))
}

// GetOverdue handles GET /v1/loans/:id/overdue.
//
// @Summary      Check whether one loan is overdue today
// @Tags         loans
// @Produce      json
// @Param        id   path      string  true  "Loan id"
// @Success      200  {object}  loanOverdueResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/loans/{id}/overdue [get]
func (h *LoanHandler) GetOverdue(c echo.Context) error {
	loanID := c.Param("id")
	overdue, err := h.service.IsLoanOverdue(c.Request().Context(), loanID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loanOverdueResponse{LoanID: loanID, Overdue: overdue})
}

// ListByUser handles GET /v1/users/:id/loans. With ?active=true only the
// user's active loans are listed.
//
// @Summary      List a user's loans
// @Tags         loans
// @Produce      json
// @Param        id      path      string  true   "User id"
// @Param        active  query     bool    false  "Only active loans"
// @Success      200     {object}  loanListResponse
// @Router       /v1/users/{id}/loans [get]
func (h *LoanHandler) ListByUser(c echo.Context) error {
	var (
		loans []*domain.Loan
		err   error
	)
	if c.QueryParam("active") == "true" {
		loans, err = h.service.GetActiveLoansByUser(c.Request().Context(), c.Param("id"))
	} else {
		loans, err = h.service.GetLoansByUser(c.Request().Context(), c.Param("id"))
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoanListResponse(loans))
}

// ListByBook handles GET /v1/books/:isbn/loans.
//
// @Summary      List a book's loans
// @Tags         loans
// @Produce      json
// @Param        isbn  path      string  true  "Book ISBN"
// @Success      200   {object}  loanListResponse
// @Router       /v1/books/{isbn}/loans [get]
func (h *LoanHandler) ListByBook(c echo.Context) error {
	loans, err := h.service.GetLoansByBook(c.Request().Context(), c.Param("isbn"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoanListResponse(loans))
}

// Report handles GET /v1/reports/loans.
//
// @Summary      Aggregate loan counts per book, most borrowed first
// @Tags         reports
// @Produce      json
// @Success      200  {object}  loanReportResponse
// @Router       /v1/reports/loans [get]
func (h *LoanHandler) Report(c echo.Context) error {
	report, err := h.service.GenerateLoanReport(c.Request().Context())
	if err != nil {
		return err
	}

	rows := make([]bookLoanCountResponse, len(report.PerBook))
	for i, row := range report.PerBook {
		rows[i] = bookLoanCountResponse{Book: toBookResponse(row.Book), Count: row.Count}
	}
	return c.JSON(http.StatusOK, loanReportResponse{
		TotalLoans: report.TotalLoans,
		PerBook:    rows,
	})
}

// parseDate parses an optional 2006-01-02 date; empty yields the zero time,
// which the service layer reads as "today".
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(domain.DateLayout, s)
}

func toLoanResponse(l *domain.Loan) loanResponse {
	resp := loanResponse{
		ID:       l.ID,
		UserID:   l.UserID,
		BookISBN: l.BookISBN,
		LoanDate: l.LoanDate.Format(domain.DateLayout),
		DueDate:  l.DueDate.Format(domain.DateLayout),
		Status:   string(l.Status),
		Links: loanLinks{
			Self:   "/v1/loans/" + l.ID,
			Return: "/v1/loans/" + l.ID + "/return",
		},
	}
	if l.ReturnDate != nil {
		resp.ReturnDate = l.ReturnDate.Format(domain.DateLayout)
	}
	return resp
}

func toLoanListResponse(loans []*domain.Loan) loanListResponse {
	out := make([]loanResponse, len(loans))
	for i, l := range loans {
		out[i] = toLoanResponse(l)
	}
	return loanListResponse{Data: out}
}
