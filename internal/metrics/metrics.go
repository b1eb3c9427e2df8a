// Package metrics exposes Prometheus instruments for the statement pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bankfusion"

// Outcome labels for files processed.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Pipeline counts per-file outcomes, transactions and durations.
type Pipeline struct {
	files        *prometheus.CounterVec
	transactions *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	runs         prometheus.Counter
}

// NewPipeline creates the pipeline instruments and registers them on reg.
func NewPipeline(reg prometheus.Registerer) *Pipeline {
	p := &Pipeline{
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_processed_total",
			Help:      "Statement PDFs processed, by bank folder and outcome.",
		}, []string{"bank", "outcome"}),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_extracted_total",
			Help:      "Transactions extracted, by bank folder.",
		}, []string{"bank"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_seconds",
			Help:      "Time spent extracting and normalizing one PDF.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"bank"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_runs_total",
			Help:      "Batch runs started.",
		}),
	}
	reg.MustRegister(p.files, p.transactions, p.duration, p.runs)
	return p
}

// RunStarted counts one batch run.
func (p *Pipeline) RunStarted() {
	if p == nil {
		return
	}
	p.runs.Inc()
}

// FileDone records one processed file. err decides the outcome label.
func (p *Pipeline) FileDone(bank string, transactions int, elapsed time.Duration, err error) {
	if p == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	p.files.WithLabelValues(bank, outcome).Inc()
	p.transactions.WithLabelValues(bank).Add(float64(transactions))
	p.duration.WithLabelValues(bank).Observe(elapsed.Seconds())
}
