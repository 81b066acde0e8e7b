// Package metrics defines the custom Prometheus metrics for the catalog
// API. It is the single source of truth for metric names, labels, and
// help strings; registration happens at import time via promauto.
//
// Request-level HTTP metrics (latency, status codes) come from the
// echoprometheus middleware; the counters here track domain events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// SignupsTotal counts successful account registrations.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups.",
	},
)

// LoginsTotal counts login attempts by result ("success" or "failure").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests rejected by the auth middleware.
// Label:
//   - reason: "missing_header", "invalid_header", "invalid_token", or "unknown_user"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected during authentication, by reason.",
	},
	[]string{"reason"},
)

// ResourcesCreatedTotal counts created resources by kind ("category" or
// "product").
var ResourcesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_created_total",
		Help:      "Total number of categories and products created, by kind.",
	},
	[]string{"kind"},
)

// OwnershipRefusalsTotal counts mutations refused by the owner filter
// (the conflated not-found-or-forbidden responses), by resource kind.
var OwnershipRefusalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ownership_refusals_total",
		Help:      "Total number of mutations refused by the ownership filter, by kind.",
	},
	[]string{"kind"},
)
