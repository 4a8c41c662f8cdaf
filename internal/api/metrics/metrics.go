// Package metrics defines and registers all custom Prometheus metrics for the
// FoodBridge donation platform. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foodbridge"

// ── Listing metrics ───────────────────────────────────────────────────────────

// ListingsCreatedTotal counts newly published listings.
// Label:
//   - dietary_type: "Vegetarian", "Non-Vegetarian", or "Vegan"
var ListingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of food listings created, by dietary type.",
	},
	[]string{"dietary_type"},
)

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsTotal counts booking attempts by outcome.
// Label:
//   - result: "booked" (won the conditional update), "conflict" (listing was
//     already claimed), or "not_found"
var BookingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_total",
		Help:      "Total number of booking attempts, by result.",
	},
	[]string{"result"},
)

// CancellationsTotal counts cancellation attempts by outcome.
// Label:
//   - result: "cancelled", "window_closed", "forbidden", "conflict", or "not_found"
var CancellationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cancellations_total",
		Help:      "Total number of booking cancellation attempts, by result.",
	},
	[]string{"result"},
)

// ── Sweeper metrics ───────────────────────────────────────────────────────────

// SweeperDeletedTotal counts stale available listings reclaimed by the
// expiry sweeper.
var SweeperDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweeper_deleted_total",
		Help:      "Total number of stale unbooked listings deleted by the sweeper.",
	},
)

// SweeperRunsTotal counts sweeper runs by outcome.
// Label:
//   - result: "ok" or "error"
var SweeperRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweeper_runs_total",
		Help:      "Total number of expiry sweep runs, by result.",
	},
	[]string{"result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsQueueDepth tracks the current number of notifications waiting
// in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationsTotal counts delivery attempts by outcome.
// Label:
//   - result: "sent" or "error"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification deliveries, by result.",
	},
	[]string{"result"},
)
