// Package metrics exposes Prometheus counters for the KYC workflow.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const namespace = "kyc"

// Result label values.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Recorder owns the workflow collectors. A nil *Recorder records nothing.
type Recorder struct {
	uploads     *prometheus.CounterVec
	submissions *prometheus.CounterVec
	reviews     *prometheus.CounterVec
	deletions   *prometheus.CounterVec
	requests    *prometheus.SummaryVec
	logEvents   *prometheus.CounterVec
	gatherer    prometheus.Gatherer
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	r := &Recorder{
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Count of document uploads by document type and result",
		}, []string{"document_type", "result"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Count of submissions for review by result",
		}, []string{"result"}),
		reviews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_total",
			Help:      "Count of reviewer decisions",
		}, []string{"decision"}),
		deletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletions_total",
			Help:      "Count of document deletions by result",
		}, []string{"result"}),
		requests: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Namespace:  namespace,
			Subsystem:  "http",
			Name:       "request_duration_seconds",
			Help:       "HTTP request durations",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}, []string{"method", "route", "status"}),
		logEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "log_events_total",
			Help:      "Count of warning and error log entries",
		}, []string{"level"}),
		gatherer: reg,
	}
	reg.MustRegister(
		r.uploads, r.submissions, r.reviews, r.deletions, r.requests, r.logEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

func (r *Recorder) Upload(documentType, result string) {
	if r == nil {
		return
	}
	r.uploads.WithLabelValues(documentType, result).Inc()
}

func (r *Recorder) Submission(result string) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(result).Inc()
}

func (r *Recorder) Review(decision string) {
	if r == nil {
		return
	}
	r.reviews.WithLabelValues(decision).Inc()
}

func (r *Recorder) Deletion(result string) {
	if r == nil {
		return
	}
	r.deletions.WithLabelValues(result).Inc()
}

// HTTPRequest records one served request. route is the matched route
// template, not the raw path.
func (r *Recorder) HTTPRequest(method, route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, route, http.StatusText(status)).Observe(d.Seconds())
}

// LogHook returns a logrus hook counting warning and error entries.
func (r *Recorder) LogHook() logrus.Hook {
	return &logHook{events: r.logEvents}
}

type logHook struct {
	events *prometheus.CounterVec
}

func (h *logHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.WarnLevel, logrus.ErrorLevel, logrus.PanicLevel}
}

func (h *logHook) Fire(e *logrus.Entry) error {
	h.events.WithLabelValues(e.Level.String()).Inc()
	return nil
}
