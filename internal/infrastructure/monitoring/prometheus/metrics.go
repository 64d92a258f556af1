package prometheus

import (
	"time"
)

// AppMetrics holds all engine metrics.
type AppMetrics struct {
	// Pipeline Layer
	RunsTotal     CounterVec
	RunDuration   HistogramVec
	StepDuration  HistogramVec
	ActiveRuns    GaugeVec
	RecordsFilled CounterVec

	// Imputation Layer
	ImputedFieldsTotal CounterVec
	ImputationRounds   HistogramVec
	ImputationDuration HistogramVec

	// Prediction Layer
	PredictionsTotal   CounterVec
	PredictionDuration HistogramVec
	PredictorsLoaded   GaugeVec

	// Artifact Layer
	ArtifactLoadsTotal   CounterVec
	ArtifactLoadDuration HistogramVec
	ArtifactBytes        GaugeVec

	// Validation Layer
	ValidationFailuresTotal CounterVec

	// Dataset Layer
	DatasetRowsTotal     CounterVec
	DatasetBuildDuration HistogramVec

	// System Health
	ServiceUptime GaugeVec
	ErrorsTotal   CounterVec
}

// Default Buckets
var (
	// Pipeline steps run in-process against loaded models, so the
	// interesting range is sub-millisecond to a few hundred milliseconds.
	DefaultStepDurationBuckets = []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1, .25}

	// A full run covers all six steps plus per-KPI fan-out.
	DefaultRunDurationBuckets = []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

	// Artifact loads hit disk or object storage.
	DefaultArtifactLoadBuckets = []float64{.001, .005, .01, .05, .1, .5, 1, 2.5, 5, 10}

	// Iterative imputation converges within a handful of rounds.
	DefaultRoundBuckets = []float64{1, 2, 3, 5, 8, 10, 15, 20}

	// Synthetic dataset builds scale with row count.
	DefaultDatasetBuildBuckets = []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120}
)

// NewAppMetrics registers all metrics and returns the AppMetrics struct.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	// Pipeline
	m.RunsTotal = collector.RegisterCounter("runs_total", "Assessment pipeline runs", "operation", "status")
	m.RunDuration = collector.RegisterHistogram("run_duration_seconds", "Assessment pipeline run duration", DefaultRunDurationBuckets, "operation")
	m.StepDuration = collector.RegisterHistogram("step_duration_seconds", "Pipeline step duration", DefaultStepDurationBuckets, "step")
	m.ActiveRuns = collector.RegisterGauge("active_runs", "Pipeline runs in flight", "operation")
	m.RecordsFilled = collector.RegisterCounter("records_filled_total", "Records with all gaps filled", "source")

	// Imputation
	m.ImputedFieldsTotal = collector.RegisterCounter("imputed_fields_total", "Fields filled by the imputer", "kind")
	m.ImputationRounds = collector.RegisterHistogram("imputation_rounds", "Iterative imputation rounds executed", DefaultRoundBuckets)
	m.ImputationDuration = collector.RegisterHistogram("imputation_duration_seconds", "Imputer transform duration", DefaultStepDurationBuckets)

	// Prediction
	m.PredictionsTotal = collector.RegisterCounter("predictions_total", "Indicator predictions attempted", "kpi", "status")
	m.PredictionDuration = collector.RegisterHistogram("prediction_duration_seconds", "Single indicator prediction duration", DefaultStepDurationBuckets, "kpi")
	m.PredictorsLoaded = collector.RegisterGauge("predictors_loaded", "Predictor models currently loaded", "kind")

	// Artifacts
	m.ArtifactLoadsTotal = collector.RegisterCounter("artifact_loads_total", "Model artifact load attempts", "artifact", "status")
	m.ArtifactLoadDuration = collector.RegisterHistogram("artifact_load_duration_seconds", "Model artifact load duration", DefaultArtifactLoadBuckets, "artifact")
	m.ArtifactBytes = collector.RegisterGauge("artifact_bytes", "Size of the loaded artifact", "artifact")

	// Validation
	m.ValidationFailuresTotal = collector.RegisterCounter("validation_failures_total", "Input validation failures", "field", "reason")

	// Dataset
	m.DatasetRowsTotal = collector.RegisterCounter("dataset_rows_total", "Synthetic dataset rows produced", "format")
	m.DatasetBuildDuration = collector.RegisterHistogram("dataset_build_duration_seconds", "Synthetic dataset build duration", DefaultDatasetBuildBuckets, "format")

	// System Health
	m.ServiceUptime = collector.RegisterGauge("service_uptime_seconds", "Service uptime", "service")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "code")

	return m
}

// Helpers

// RecordRun records the completion of one pipeline run.
func RecordRun(metrics *AppMetrics, operation string, success bool, duration time.Duration) {
	if metrics == nil {
		return
	}
	status := "success"
	if !success {
		status = "failure"
	}
	metrics.RunsTotal.WithLabelValues(operation, status).Inc()
	metrics.RunDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordStep records the duration of one pipeline step.
func RecordStep(metrics *AppMetrics, step string, duration time.Duration) {
	if metrics == nil {
		return
	}
	metrics.StepDuration.WithLabelValues(step).Observe(duration.Seconds())
}

// RecordPrediction records one indicator prediction attempt.  Failed
// attempts are counted but never abort the surrounding run.
func RecordPrediction(metrics *AppMetrics, kpi string, success bool, duration time.Duration) {
	if metrics == nil {
		return
	}
	status := "success"
	if !success {
		status = "failure"
	}
	metrics.PredictionsTotal.WithLabelValues(kpi, status).Inc()
	metrics.PredictionDuration.WithLabelValues(kpi).Observe(duration.Seconds())
}

// RecordImputation records how much the imputer had to fill in.
func RecordImputation(metrics *AppMetrics, categoricalFilled, numericFilled int, rounds int, duration time.Duration) {
	if metrics == nil {
		return
	}
	if categoricalFilled > 0 {
		metrics.ImputedFieldsTotal.WithLabelValues("categorical").Add(float64(categoricalFilled))
	}
	if numericFilled > 0 {
		metrics.ImputedFieldsTotal.WithLabelValues("numeric").Add(float64(numericFilled))
	}
	metrics.ImputationRounds.WithLabelValues().Observe(float64(rounds))
	metrics.ImputationDuration.WithLabelValues().Observe(duration.Seconds())
}

// RecordArtifactLoad records one artifact fetch from the store.
func RecordArtifactLoad(metrics *AppMetrics, artifact string, size int64, err error, duration time.Duration) {
	if metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.ArtifactLoadsTotal.WithLabelValues(artifact, status).Inc()
	metrics.ArtifactLoadDuration.WithLabelValues(artifact).Observe(duration.Seconds())
	if err == nil && size > 0 {
		metrics.ArtifactBytes.WithLabelValues(artifact).Set(float64(size))
	}
}

// RecordValidationFailure records one rejected input field.
func RecordValidationFailure(metrics *AppMetrics, field, reason string) {
	if metrics == nil {
		return
	}
	metrics.ValidationFailuresTotal.WithLabelValues(field, reason).Inc()
}

// RecordError records an error by component and code.
func RecordError(metrics *AppMetrics, component, code string) {
	if metrics == nil {
		return
	}
	metrics.ErrorsTotal.WithLabelValues(component, code).Inc()
}

//Personal.AI order the ending
