package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes used as the "outcome" label
const (
	OutcomeAccepted   = "accepted"
	OutcomeInvalid    = "invalid"
	OutcomeMalformed  = "malformed"
	OutcomeFailed     = "failed"
	unmatchedRouteKey = "unmatched"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000},
		},
		[]string{"method", "endpoint"},
	)

	// Business metrics
	contactSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact form submissions by outcome",
		},
		[]string{"outcome"},
	)
)

// Middleware records request metrics. Routes are labelled by their pattern so
// unknown paths cannot blow up label cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = unmatchedRouteKey
		}

		if c.Request.ContentLength > 0 {
			httpRequestSize.WithLabelValues(c.Request.Method, endpoint).Observe(float64(c.Request.ContentLength))
		}

		c.Next()

		statusCode := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, statusCode).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint, statusCode).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry in the Prometheus text format
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// RecordContactSubmission records the outcome of one contact form submission
func RecordContactSubmission(outcome string) {
	contactSubmissionsTotal.WithLabelValues(outcome).Inc()
}

// SubmissionCounter returns the submission counter for one outcome
func SubmissionCounter(outcome string) prometheus.Counter {
	return contactSubmissionsTotal.WithLabelValues(outcome)
}
