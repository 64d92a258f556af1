package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/Alloyance-Intelligence/internal/config"
)

// validConfig returns a Config that passes Validate() with all required fields set.
func validConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_InvalidArtifactsBackend(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Artifacts.Backend = "s3"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artifacts.backend")
}

func TestConfig_Validate_FilesystemBackendRequiresDir(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Artifacts.Backend = "filesystem"
	cfg.Artifacts.Dir = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artifacts.dir")
}

func TestConfig_Validate_MinIOBackendRequiresEndpoint(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Artifacts.Backend = "minio"
	cfg.Artifacts.MinIO.Endpoint = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artifacts.minio.endpoint")
}

func TestConfig_Validate_MinIOBackendRequiresBucket(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Artifacts.Backend = "minio"
	cfg.Artifacts.MinIO.Bucket = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artifacts.minio.bucket")
}

func TestConfig_Validate_PredictorConcurrencyLessThanOne(t *testing.T) {
	t.Parallel()
	cases := []int{0, -1, -5}
	for _, n := range cases {
		n := n
		t.Run("", func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			cfg.Pipeline.PredictorConcurrency = n
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "pipeline.predictor_concurrency")
		})
	}
}

func TestConfig_Validate_NegativeImputationRounds(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Pipeline.ImputationRounds = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline.imputation_rounds")
}

func TestConfig_Validate_DatasetRowsLessThanOne(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Dataset.Rows = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset.rows")
}

func TestConfig_Validate_DatasetMissingRateOutOfRange(t *testing.T) {
	t.Parallel()
	cases := []float64{-0.1, 1.0, 1.5}
	for _, r := range cases {
		r := r
		t.Run("", func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			cfg.Dataset.MissingRate = r
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "dataset.missing_rate")
		})
	}
}

func TestConfig_Validate_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Log.Level = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestConfig_Validate_InvalidLogFormat(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Log.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
}

func TestConfig_Validate_EnabledMetricsRequireNamespace(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Metrics.Enabled = true
	cfg.Metrics.Namespace = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics.namespace")
}

func TestConfig_SubStructs_ZeroValues(t *testing.T) {
	t.Parallel()

	cfg := config.Config{}
	assert.Equal(t, "", cfg.Artifacts.Backend)
	assert.Equal(t, "", cfg.Artifacts.Dir)
	assert.False(t, cfg.Artifacts.VerifyChecksums)
	assert.Equal(t, 0, cfg.Pipeline.PredictorConcurrency)
	assert.Equal(t, 0, cfg.Dataset.Rows)
	assert.Equal(t, "", cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

//Personal.AI order the ending
