package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/api/metrics"
	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

// Sweeper periodically scans for overdue loans and feeds them to the notice
// dispatcher. One notice is enqueued per overdue loan per sweep.
type Sweeper struct {
	loans      ports.LoanService
	dispatcher *Dispatcher
	interval   time.Duration
	log        zerolog.Logger
}

// NewSweeper creates a Sweeper. An interval <= 0 defaults to one hour.
func NewSweeper(loans ports.LoanService, dispatcher *Dispatcher, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{loans: loans, dispatcher: dispatcher, interval: interval, log: log}
}

// Start runs the sweep loop until ctx is cancelled. The first sweep happens
// after one full interval.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *Sweeper) sweep(ctx context.Context) {
	today := domain.Date(time.Now())

	overdue, err := s.loans.GetOverdueLoans(ctx, today)
	if err != nil {
		s.log.Error().Err(err).Msg("overdue sweep failed")
		return
	}

	metrics.OverdueLoans.Set(float64(len(overdue)))
	if len(overdue) == 0 {
		return
	}

	notices := make([]ports.OverdueNotice, 0, len(overdue))
	for _, loan := range overdue {
		notices = append(notices, ports.OverdueNotice{
			LoanID:      loan.ID,
			UserID:      loan.UserID,
			BookISBN:    loan.BookISBN,
			DueDate:     loan.DueDate,
			DaysOverdue: int(today.Sub(loan.DueDate).Hours() / 24),
		})
	}
	s.dispatcher.EnqueueBatch(notices)

	s.log.Info().Int("overdue", len(overdue)).Msg("overdue sweep completed")
}
