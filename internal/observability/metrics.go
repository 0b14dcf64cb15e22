package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TriageDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verification_triage_decisions_total",
			Help: "Total number of operator decisions on verification submissions",
		},
		[]string{"decision"},
	)

	OffersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "property_offers_created_total",
			Help: "Total number of property offers created",
		},
	)

	OfferTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "property_offer_transitions_total",
			Help: "Total number of offer status transitions",
		},
		[]string{"to_status"},
	)

	OffersExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "property_offers_expired_total",
			Help: "Total number of offers expired by the sweep job",
		},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_dispatch_failures_total",
			Help: "Total number of failed notification dispatches",
		},
		[]string{"event_type"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "path", "status"},
	)
)
