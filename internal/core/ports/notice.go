package ports

import (
	"context"
	"time"
)

// OverdueNotice describes one overdue loan found by a sweep. It is the unit
// of work handed to the notice dispatcher.
type OverdueNotice struct {
	LoanID      string
	UserID      string
	BookISBN    string
	DueDate     time.Time
	DaysOverdue int
}

// NoticeService handles a single overdue notice.
type NoticeService interface {
	Notify(ctx context.Context, notice OverdueNotice) error
}
