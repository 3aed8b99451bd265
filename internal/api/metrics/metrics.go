// Package metrics defines the custom Prometheus metrics of the account API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Call Register once at startup, before the HTTP server starts. The collectors
// work unregistered, so tests need not register them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "account"

// ── Authentication ───────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GuardRejectionsTotal counts requests rejected by the guard chain.
// Labels:
//   - guard: "auth" or "owner"
//   - reason: e.g. "missing_token", "invalid_token", "revoked_token", "mismatch"
var GuardRejectionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by an authentication or ownership guard.",
	},
	[]string{"guard", "reason"},
)

// ── Accounts ─────────────────────────────────────────────────────────────────

// SignupsTotal counts signup outcomes.
// Label:
//   - result: "created", "conflict" or "error"
var SignupsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup requests, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logout requests.
var LogoutsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout requests.",
	},
)

// Register registers every collector of this package with reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		LoginAttemptsTotal,
		GuardRejectionsTotal,
		SignupsTotal,
		LogoutsTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
