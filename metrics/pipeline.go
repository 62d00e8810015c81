package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"flip-order-labels/apperrors"
)

const (
	PipelineExport = "export"
	PipelineLabels = "labels"
	PipelineXLSX   = "xlsx"
)

// PipelineMetrics records outcomes of report exports and label prints.
// A nil *PipelineMetrics is valid and records nothing.
type PipelineMetrics struct {
	duration      *prometheus.HistogramVec
	success       *prometheus.CounterVec
	failure       *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	labelsPrinted prometheus.Counter
}

// NewPipelineMetrics registers the pipeline metrics on the provided registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_duration_seconds",
		Help:    "Duration of report and label pipelines in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"pipeline"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_success_total",
		Help: "Successful pipeline runs.",
	}, []string{"pipeline"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_failure_total",
		Help: "Failed pipeline runs.",
	}, []string{"pipeline"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_rejected_total",
		Help: "Pipeline runs refused because of invalid input.",
	}, []string{"pipeline"})
	labelsPrinted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "labels_printed_total",
		Help: "Label pages written to generated documents.",
	})
	reg.MustRegister(duration, success, failure, rejected, labelsPrinted)
	return &PipelineMetrics{
		duration:      duration,
		success:       success,
		failure:       failure,
		rejected:      rejected,
		labelsPrinted: labelsPrinted,
	}
}

// Observe records the duration and outcome of one pipeline run. Validation errors
// count as rejections, not failures.
func (m *PipelineMetrics) Observe(pipeline string, started time.Time, err error) {
	if m == nil || m.duration == nil {
		return
	}
	label := normalizeLabel(pipeline)
	m.duration.WithLabelValues(label).Observe(time.Since(started).Seconds())
	if typed := apperrors.As(err); typed != nil && typed.Code() == apperrors.CodeValidation {
		m.rejected.WithLabelValues(label).Inc()
		return
	}
	if err != nil {
		m.failure.WithLabelValues(label).Inc()
		return
	}
	m.success.WithLabelValues(label).Inc()
}

// AddLabels counts printed label pages.
func (m *PipelineMetrics) AddLabels(n int) {
	if m == nil || m.labelsPrinted == nil || n <= 0 {
		return
	}
	m.labelsPrinted.Add(float64(n))
}

func normalizeLabel(pipeline string) string {
	if pipeline == "" {
		return "unknown"
	}
	return pipeline
}
