package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/xavierca1/contactsync/internal/infra/httpclient"
)

// Registry holds every contactsync metric. It is pushed to a Pushgateway at the
// end of a run because the process does not live long enough to be scraped.
var Registry = prometheus.NewRegistry()

var (
	factory = promauto.With(Registry)

	remoteRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contactsync_remote_requests_total",
			Help: "Total number of requests sent to remote services",
		},
		[]string{"service", "method", "status"},
	)

	remoteRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contactsync_remote_request_duration_seconds",
			Help:    "Duration of requests sent to remote services in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method"},
	)

	// SyncRuns counts finished runs by outcome: created, updated or failed.
	SyncRuns = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contactsync_runs_total",
			Help: "Total number of sync runs by outcome",
		},
		[]string{"outcome"},
	)

	integrationErrors = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contactsync_integration_errors_total",
			Help: "Total number of failed calls to remote services",
		},
		[]string{"service"},
	)
)

type instrumentedDoer struct {
	service string
	next    httpclient.Doer
}

// InstrumentDoer wraps next so every request to service is counted and timed.
// Transport failures and non-2xx responses also count as integration errors.
func InstrumentDoer(service string, next httpclient.Doer) httpclient.Doer {
	return &instrumentedDoer{service: service, next: next}
}

func (d *instrumentedDoer) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := d.next.Do(req)

	remoteRequestDuration.WithLabelValues(d.service, req.Method).Observe(time.Since(start).Seconds())

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	remoteRequestsTotal.WithLabelValues(d.service, req.Method, status).Inc()

	if err != nil || resp.StatusCode < 200 || resp.StatusCode > 299 {
		RecordIntegrationError(d.service)
	}

	return resp, err
}

func RecordSyncRun(outcome string) {
	SyncRuns.WithLabelValues(outcome).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}

// Push sends the registry to a Prometheus Pushgateway under the given job name.
func Push(ctx context.Context, gatewayURL, job string) error {
	return push.New(gatewayURL, job).
		Gatherer(Registry).
		PushContext(ctx)
}
