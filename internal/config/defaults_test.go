package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultArtifactsBackend, cfg.Artifacts.Backend)
	assert.Equal(t, DefaultArtifactsDir, cfg.Artifacts.Dir)
	assert.Equal(t, DefaultPredictorConcurrency, cfg.Pipeline.PredictorConcurrency)
	assert.Equal(t, DefaultDatasetRows, cfg.Dataset.Rows)
	assert.Equal(t, int64(DefaultDatasetSeed), cfg.Dataset.Seed)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, []string{"stdout"}, cfg.Log.OutputPaths)
	assert.Equal(t, DefaultMetricsNamespace, cfg.Metrics.Namespace)
}

func TestApplyDefaults_PreserveExistingValues(t *testing.T) {
	cfg := &Config{}
	cfg.Artifacts.Dir = "/opt/models"
	cfg.Pipeline.PredictorConcurrency = 2
	ApplyDefaults(cfg)

	assert.Equal(t, "/opt/models", cfg.Artifacts.Dir)
	assert.Equal(t, 2, cfg.Pipeline.PredictorConcurrency)
}

func TestApplyDefaults_NilConfigIsSafe(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

//Personal.AI order the ending
