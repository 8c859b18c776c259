// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	URLsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "urlshortener_urls_created_total",
		Help: "Number of short URLs created.",
	})

	Redirects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "urlshortener_redirects_total",
		Help: "Redirect requests by outcome.",
	}, []string{"outcome"})

	VisitsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "urlshortener_visits_recorded_total",
		Help: "Visit rows recorded.",
	})

	RateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "urlshortener_rate_limit_rejections_total",
		Help: "Requests rejected by the rate limiter.",
	})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "urlshortener_cache_lookups_total",
		Help: "Short URL cache lookups by result.",
	}, []string{"result"})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "urlshortener_events_published_total",
		Help: "Domain events published by channel and status.",
	}, []string{"channel", "status"})
)
