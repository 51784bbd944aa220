// Package metrics exposes Prometheus instrumentation for the generic
// list pipeline: extraction volumes, SPARQL traffic and registry uploads.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the status-labelled counters.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusUploaded = "uploaded"
	StatusFailed   = "failed"
)

var (
	// Extraction metrics
	rowsExtracted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genericlist_rows_extracted_total",
			Help: "Total number of distinct form rows extracted",
		},
	)

	patientsExcluded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genericlist_patients_excluded_total",
			Help: "Total number of patients excluded for missing required values",
		},
	)

	unresolvedValues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genericlist_unresolved_total",
			Help: "Total number of values no recode rule could resolve",
		},
		[]string{"column"},
	)

	// SPARQL endpoint metrics
	sparqlRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genericlist_sparql_requests_total",
			Help: "Total number of SPARQL endpoint requests",
		},
		[]string{"status"},
	)

	sparqlDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "genericlist_sparql_duration_seconds",
			Help:    "SPARQL request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// LibreClinica upload metrics
	uploadSubjects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genericlist_upload_subjects_total",
			Help: "Total number of study subjects pushed to LibreClinica",
		},
		[]string{"status"},
	)

	lcRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genericlist_lc_request_duration_seconds",
			Help:    "LibreClinica SOAP request duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRowsExtracted records the row count of one extraction run
func RecordRowsExtracted(count int) {
	rowsExtracted.Add(float64(count))
}

// RecordPatientsExcluded records patients dropped by a run
func RecordPatientsExcluded(count int) {
	patientsExcluded.Add(float64(count))
}

// RecordUnresolved records a value no recode rule matched
func RecordUnresolved(column string) {
	unresolvedValues.WithLabelValues(column).Inc()
}

// RecordSPARQLRequest records one SPARQL endpoint round trip
func RecordSPARQLRequest(status string, duration time.Duration) {
	sparqlRequests.WithLabelValues(status).Inc()
	sparqlDuration.Observe(duration.Seconds())
}

// RecordUploadSubject records one subject upload outcome
func RecordUploadSubject(status string) {
	uploadSubjects.WithLabelValues(status).Inc()
}

// RecordLCRequest records a LibreClinica SOAP request duration
func RecordLCRequest(operation string, duration time.Duration) {
	lcRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
