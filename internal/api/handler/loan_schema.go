package handler

// --- Request / Response types ---

type createLoanRequest struct {
	UserID string `json:"user_id" validate:"required"`
	ISBN   string `json:"isbn"    validate:"required"`
	// LoanDate is optional; empty means today. Format: 2006-01-02.
	LoanDate string `json:"loan_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	// PeriodDays is optional; zero selects the service default.
	PeriodDays int `json:"period_days,omitempty" validate:"gte=0"`
}

type returnLoanRequest struct {
	// ReturnDate is optional; empty means today. Format: 2006-01-02.
	ReturnDate string `json:"return_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type loanLinks struct {
	Self   string `json:"self"`
	Return string `json:"return"`
}

type loanResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	BookISBN   string    `json:"book_isbn"`
	LoanDate   string    `json:"loan_date"`
	DueDate    string    `json:"due_date"`
	ReturnDate string    `json:"return_date,omitempty"`
	Status     string    `json:"status"`
	Links      loanLinks `json:"_links"`
}

type loanListResponse struct {
	Data []loanResponse `json:"data"`
}

type loanOverdueResponse struct {
	LoanID  string `json:"loan_id"`
	Overdue bool   `json:"overdue"`
}

type bookLoanCountResponse struct {
	Book  bookResponse `json:"book"`
	Count int64        `json:"count"`
}

type loanReportResponse struct {
	TotalLoans int64                   `json:"total_loans"`
	PerBook    []bookLoanCountResponse `json:"loans_per_book"`
}
