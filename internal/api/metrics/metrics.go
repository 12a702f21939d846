// Package metrics defines all custom Prometheus metrics for the library loan
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library"

// ── Loan metrics ──────────────────────────────────────────────────────────────

// LoansCreatedTotal counts successfully created loans.
var LoansCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_created_total",
		Help:      "Total number of loans successfully created.",
	},
)

// LoansReturnedTotal counts successfully processed returns.
var LoansReturnedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_returned_total",
		Help:      "Total number of loans successfully returned.",
	},
)

// LoanRejectionsTotal counts loan operations rejected by a business rule.
// Label:
//   - reason: "no_copies", "user_not_found", "book_not_found",
//     "loan_not_found", "already_returned", "validation"
var LoanRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loan_rejections_total",
		Help:      "Total number of loan operations rejected, by reason.",
	},
	[]string{"reason"},
)

// ── Overdue metrics ───────────────────────────────────────────────────────────

// OverdueLoans tracks the number of overdue loans found by the last sweep.
var OverdueLoans = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "overdue_loans",
		Help:      "Number of overdue loans observed by the most recent sweep.",
	},
)

// OverdueNoticesTotal counts overdue notices handed to the dispatcher workers.
var OverdueNoticesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "overdue_notices_total",
		Help:      "Total number of overdue notices processed.",
	},
)

// NoticeQueueDepth tracks the number of notices waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NoticeQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notice_queue_depth",
		Help:      "Current number of notices pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
