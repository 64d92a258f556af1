package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultArtifactsBackend = "filesystem"
	DefaultArtifactsDir     = "./models"

	DefaultMinIOEndpoint       = "localhost:9000"
	DefaultMinIOBucket         = "alloyance-models"
	DefaultMinIOConnectTimeout = 10 * time.Second

	// One worker per indicator model.
	DefaultPredictorConcurrency = 5

	DefaultDatasetRows   = 25000
	DefaultDatasetSeed   = 42
	DefaultDatasetOutput = "lca_dataset.csv"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "alloyance"
)

// ApplyDefaults fills every zero-value field in cfg with the engine default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.  It must be called
// after unmarshalling raw config data and before Validate() so that
// optional-but-defaulted fields are never seen as missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Artifacts ─────────────────────────────────────────────────────────────
	if cfg.Artifacts.Backend == "" {
		cfg.Artifacts.Backend = DefaultArtifactsBackend
	}
	if cfg.Artifacts.Dir == "" {
		cfg.Artifacts.Dir = DefaultArtifactsDir
	}
	if cfg.Artifacts.MinIO.Endpoint == "" {
		cfg.Artifacts.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.Artifacts.MinIO.Bucket == "" {
		cfg.Artifacts.MinIO.Bucket = DefaultMinIOBucket
	}
	if cfg.Artifacts.MinIO.ConnectTimeout == 0 {
		cfg.Artifacts.MinIO.ConnectTimeout = DefaultMinIOConnectTimeout
	}

	// ── Pipeline ──────────────────────────────────────────────────────────────
	if cfg.Pipeline.PredictorConcurrency == 0 {
		cfg.Pipeline.PredictorConcurrency = DefaultPredictorConcurrency
	}
	// ImputationRounds zero means "use the round count from the artifact".

	// ── Dataset ───────────────────────────────────────────────────────────────
	if cfg.Dataset.Rows == 0 {
		cfg.Dataset.Rows = DefaultDatasetRows
	}
	if cfg.Dataset.Seed == 0 {
		cfg.Dataset.Seed = DefaultDatasetSeed
	}
	if cfg.Dataset.Output == "" {
		cfg.Dataset.Output = DefaultDatasetOutput
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stdout"}
	}
	if len(cfg.Log.ErrorOutputPaths) == 0 {
		cfg.Log.ErrorOutputPaths = []string{"stderr"}
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}

//Personal.AI order the ending
