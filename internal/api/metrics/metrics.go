// Package metrics defines and registers the custom Prometheus metrics of the
// user service. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users"

// ── Auth workflow ─────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - outcome: "created", "invalid", "duplicate", "blacklisted", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success", "rejected", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// TokenRejectionsTotal counts requests refused by the bearer-token middleware.
// Label:
//   - reason: "missing", "malformed", "invalid"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected for a missing or invalid bearer token.",
	},
	[]string{"reason"},
)

// ── Eligibility screening ─────────────────────────────────────────────────────

// EligibilityChecksTotal counts screening calls.
// Label:
//   - result: "allowed", "blocked", "error", "cache_hit"
var EligibilityChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "eligibility_checks_total",
		Help:      "Total number of eligibility screening checks, by result.",
	},
	[]string{"result"},
)

// EligibilityCheckDuration measures the round trip to the screening service.
var EligibilityCheckDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "eligibility_check_duration_seconds",
		Help:      "Duration of calls to the external eligibility screening service.",
		Buckets:   prometheus.DefBuckets,
	},
)
