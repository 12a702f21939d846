package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/core/ports"
)

// noticeService records overdue notices. Actual delivery (mail, push) belongs
// to an external collaborator; this implementation logs the notice so the
// sweep pipeline is observable end to end.
type noticeService struct {
	log zerolog.Logger
}

// NewNoticeService returns a NoticeService implementation.
func NewNoticeService(log zerolog.Logger) ports.NoticeService {
	return &noticeService{log: log}
}

func (s *noticeService) Notify(_ context.Context, n ports.OverdueNotice) error {
	s.log.Warn().
		Str("loan_id", n.LoanID).
		Str("user_id", n.UserID).
		Str("isbn", n.BookISBN).
		Int("days_overdue", n.DaysOverdue).
		Msg("loan overdue")
	return nil
}
