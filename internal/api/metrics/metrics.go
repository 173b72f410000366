// Package metrics defines and registers all custom Prometheus metrics for the
// metaverse API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Collectors register with the default Prometheus registry on package load
// via promauto; echoprometheus serves them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "metaverse"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts.
// Labels:
//   - method: "password", "google" or "facebook"
//   - result: "success" or "failure"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// SignUpsTotal counts accounts created through the sign-up endpoint.
// Label:
//   - role: "User" or "Admin"
var SignUpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ups_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// AdminDeniedTotal counts requests rejected by the admin gate.
// Label:
//   - route: the matched route path (e.g. "/maps")
var AdminDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_denied_total",
		Help:      "Total number of admin-only requests denied for lack of role.",
	},
	[]string{"route"},
)

// ── Space metrics ─────────────────────────────────────────────────────────────

// SpacesCreatedTotal counts newly created spaces.
var SpacesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "spaces_created_total",
		Help:      "Total number of spaces created.",
	},
)

// PlacementsTotal counts placement changes.
// Labels:
//   - container: "map" or "space"
//   - op: "add" or "remove"
var PlacementsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "placements_total",
		Help:      "Total number of element placements added or removed.",
	},
	[]string{"container", "op"},
)
