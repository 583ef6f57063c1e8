// Package observability holds the prometheus collectors shared across the service.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stride",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests handled, labeled by method and status code.",
	}, []string{"method", "code"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stride",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time spent serving HTTP requests.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{"method"})

	activitiesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stride",
		Subsystem: "activities",
		Name:      "changes_total",
		Help:      "Activity writes, labeled by operation (created, updated, deleted).",
	}, []string{"op"})

	likesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stride",
		Subsystem: "likes",
		Name:      "changes_total",
		Help:      "Like writes, labeled by operation (liked, unliked).",
	}, []string{"op"})

	accountsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "stride",
		Subsystem: "accounts",
		Name:      "registered_total",
		Help:      "Accounts created through registration or SSO provisioning.",
	})

	eventFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "stride",
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Activity events that could not be published.",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, activitiesCounter, likesCounter, accountsCounter, eventFailures)
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(method string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// RecordActivity counts an activity write; op is created, updated or deleted.
func RecordActivity(op string) {
	activitiesCounter.WithLabelValues(op).Inc()
}

// RecordLike counts a like write; op is liked or unliked.
func RecordLike(op string) {
	likesCounter.WithLabelValues(op).Inc()
}

// RecordAccountCreated counts a new account.
func RecordAccountCreated() {
	accountsCounter.Inc()
}

// RecordEventFailure counts an event that failed to publish.
func RecordEventFailure() {
	eventFailures.Inc()
}
