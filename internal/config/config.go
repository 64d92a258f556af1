// Package config defines all configuration structures for the
// Alloyance-Intelligence engine.  No I/O or parsing logic lives here — only
// plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ArtifactsConfig selects and parameterises the model artifact store.
type ArtifactsConfig struct {
	Backend string `mapstructure:"backend"` // "filesystem" | "minio"
	Dir     string `mapstructure:"dir"`

	// VerifyChecksums enables manifest SHA-256 verification of loaded
	// artifacts.  Defaults to true at the loader level; verification is
	// skipped anyway when no manifest is present.
	VerifyChecksums bool `mapstructure:"verify_checksums"`

	MinIO MinIOConfig `mapstructure:"minio"`
}

// MinIOConfig holds MinIO / S3-compatible object-storage parameters.
type MinIOConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	AccessKey      string        `mapstructure:"access_key"`
	SecretKey      string        `mapstructure:"secret_key"`
	Bucket         string        `mapstructure:"bucket"`
	Prefix         string        `mapstructure:"prefix"`
	UseSSL         bool          `mapstructure:"use_ssl"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// PipelineConfig holds assessment pipeline tunables.
type PipelineConfig struct {
	// StrictValidation rejects inputs that fail range checks instead of
	// treating the offending field as missing.
	StrictValidation bool `mapstructure:"strict_validation"`

	// PredictorConcurrency bounds the per-indicator prediction fan-out.
	PredictorConcurrency int `mapstructure:"predictor_concurrency"`

	// ImputationRounds overrides the round count stored in the imputer
	// artifact when greater than zero.
	ImputationRounds int `mapstructure:"imputation_rounds"`
}

// DatasetConfig holds synthetic dataset generator parameters.
type DatasetConfig struct {
	Rows        int     `mapstructure:"rows"`
	Seed        int64   `mapstructure:"seed"`
	MissingRate float64 `mapstructure:"missing_rate"`
	Output      string  `mapstructure:"output"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format           string   `mapstructure:"format"` // "json" | "console"
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// MetricsConfig holds Prometheus metrics parameters.
type MetricsConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	Namespace            string `mapstructure:"namespace"`
	Subsystem            string `mapstructure:"subsystem"`
	EnableGoMetrics      bool   `mapstructure:"enable_go_metrics"`
	EnableProcessMetrics bool   `mapstructure:"enable_process_metrics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the engine.  Every
// infrastructure component and application service reads its settings from
// the relevant sub-struct.
type Config struct {
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Artifacts
	switch c.Artifacts.Backend {
	case "filesystem":
		if c.Artifacts.Dir == "" {
			return fmt.Errorf("config: artifacts.dir is required for the filesystem backend")
		}
	case "minio":
		if c.Artifacts.MinIO.Endpoint == "" {
			return fmt.Errorf("config: artifacts.minio.endpoint is required for the minio backend")
		}
		if c.Artifacts.MinIO.Bucket == "" {
			return fmt.Errorf("config: artifacts.minio.bucket is required for the minio backend")
		}
	default:
		return fmt.Errorf("config: artifacts.backend %q is invalid; expected filesystem|minio", c.Artifacts.Backend)
	}

	// Pipeline
	if c.Pipeline.PredictorConcurrency < 1 {
		return fmt.Errorf("config: pipeline.predictor_concurrency must be >= 1, got %d", c.Pipeline.PredictorConcurrency)
	}
	if c.Pipeline.ImputationRounds < 0 {
		return fmt.Errorf("config: pipeline.imputation_rounds must be >= 0, got %d", c.Pipeline.ImputationRounds)
	}

	// Dataset
	if c.Dataset.Rows < 1 {
		return fmt.Errorf("config: dataset.rows must be >= 1, got %d", c.Dataset.Rows)
	}
	if c.Dataset.MissingRate < 0 || c.Dataset.MissingRate >= 1 {
		return fmt.Errorf("config: dataset.missing_rate %v is out of range [0, 1)", c.Dataset.MissingRate)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}

	return nil
}

//Personal.AI order the ending
