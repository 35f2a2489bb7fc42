// Package metrics defines and registers all custom Prometheus metrics for the
// commerce API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry at package init
// via promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "commerce"

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartMutationsTotal counts successful cart ledger mutations.
// Label:
//   - op: "add", "remove", "update_quantity", "clear"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of successful cart mutations, by operation.",
	},
	[]string{"op"},
)

// PromoTotal counts promo code applications.
// Label:
//   - result: "applied" or "rejected"
var PromoTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "promo_total",
		Help:      "Total number of promo code attempts, by result.",
	},
	[]string{"result"},
)

// ── Checkout metrics ──────────────────────────────────────────────────────────

// CheckoutTransitionsTotal counts checkout stage transitions.
// Labels:
//   - from, to: stage names (e.g. "shipping" → "payment")
var CheckoutTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_transitions_total",
		Help:      "Total number of checkout stage transitions.",
	},
	[]string{"from", "to"},
)

// OrdersPlacedTotal counts order submissions.
// Label:
//   - result: "success" or "failure"
var OrdersPlacedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of order submission attempts, by result.",
	},
	[]string{"result"},
)

// OrderValue observes the grand total of successfully placed orders.
var OrderValue = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_value_dollars",
		Help:      "Grand total of placed orders, in dollars.",
		Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000},
	},
)

// ── Onboarding metrics ────────────────────────────────────────────────────────

// OnboardingCompletedTotal counts onboarding completions.
var OnboardingCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "onboarding_completed_total",
		Help:      "Total number of completed onboarding flows.",
	},
)

// OnboardingSubmissionsTotal counts backend profile submissions.
// Label:
//   - result: "success" or "failure"
var OnboardingSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "onboarding_submissions_total",
		Help:      "Total number of onboarding backend submissions, by result.",
	},
	[]string{"result"},
)

// ── Store persistence metrics ─────────────────────────────────────────────────

// PersistTotal counts successful partition writes to durable storage.
// Label:
//   - partition: "auth", "cart", "onboarding"
var PersistTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_persist_total",
		Help:      "Total number of partition blobs written to durable storage.",
	},
	[]string{"partition"},
)

// PersistErrorsTotal counts failed partition writes.
// Label:
//   - partition: "auth", "cart", "onboarding"
var PersistErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_persist_errors_total",
		Help:      "Total number of partition persistence failures.",
	},
	[]string{"partition"},
)

// PersistDuration measures how long a single partition write takes.
// Label:
//   - partition: "auth", "cart", "onboarding"
var PersistDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_persist_duration_seconds",
		Help:      "Duration of a partition blob write to durable storage.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"partition"},
)

// PersistQueueDepth tracks the jobs waiting in each persist worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1")
var PersistQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "store_persist_queue_depth",
		Help:      "Current number of persist jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)
