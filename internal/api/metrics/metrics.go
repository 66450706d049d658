// Package metrics defines the custom Prometheus metrics of the finance API.
// HTTP request metrics come from the echoprometheus middleware; the ones
// here describe authentication and ledger activity.
//
// Metrics register with the default registry on package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fintrack"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "duplicate", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "invalid" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests refused by the bearer token check.
// Label:
//   - reason: "missing", "malformed", "expired" or "invalid"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the auth middleware.",
	},
	[]string{"reason"},
)

// ── Entry metrics ─────────────────────────────────────────────────────────────

// EntriesCreatedTotal counts created entries.
// Label:
//   - kind: "income" or "expense"
var EntriesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_created_total",
		Help:      "Total number of ledger entries created, by kind.",
	},
	[]string{"kind"},
)

// IdempotentReplaysTotal counts entry creations answered from an earlier
// request with the same Idempotency-Key.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of entry creations served from a previous idempotent request.",
	},
)

// EntryAmount tracks the distribution of created entry amounts.
// Label:
//   - kind: "income" or "expense"
var EntryAmount = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "entry_amount",
		Help:      "Amounts of created ledger entries, by kind.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10), // 1 .. 262144
	},
	[]string{"kind"},
)
