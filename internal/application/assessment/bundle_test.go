package assessment

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Alloyance-Intelligence/internal/config"
	"github.com/turtacn/Alloyance-Intelligence/internal/domain/schema"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/artifacts"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Alloyance-Intelligence/internal/intelligence/common"
	"github.com/turtacn/Alloyance-Intelligence/internal/testutil"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return payload
}

func kpiArtifactPayload(t *testing.T, kpi string, intercept float64) []byte {
	t.Helper()
	return mustJSON(t, &common.KPIModelArtifact{
		KPI: kpi,
		Estimator: common.EstimatorEnvelope{
			Type:         common.EstimatorLinear,
			Features:     []string{"Circularity_Score"},
			Intercept:    intercept,
			Coefficients: []float64{1},
		},
	})
}

func writeBundleArtifact(t *testing.T, dir, name string, payload []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), payload, 0o644))
}

// bundleDir writes an imputer and two KPI models into a fresh directory and
// returns it together with the payloads, keyed by artifact name.
func bundleDir(t *testing.T) (string, map[string][]byte) {
	t.Helper()
	dir := t.TempDir()
	arts := map[string][]byte{}
	arts[lca.ArtifactImputer] = mustJSON(t, testImputerArtifact(schema.Canonical()))
	arts[lca.KPIArtifactName(lca.KPIRecycledContent)] = kpiArtifactPayload(t, lca.KPIRecycledContent, 5)
	arts[lca.KPIArtifactName(lca.KPIRecoveryRate)] = kpiArtifactPayload(t, lca.KPIRecoveryRate, 5)
	for name, payload := range arts {
		writeBundleArtifact(t, dir, name, payload)
	}
	return dir, arts
}

func writeTestManifest(t *testing.T, dir string, arts map[string][]byte) {
	t.Helper()
	var b strings.Builder
	for name, payload := range arts {
		fmt.Fprintf(&b, "%s: %s\n", name, artifacts.Digest(payload))
	}
	writeBundleArtifact(t, dir, lca.ArtifactManifest, []byte(b.String()))
}

func openBundleStore(t *testing.T, dir string) artifacts.Store {
	t.Helper()
	store, err := artifacts.NewFilesystemStore(dir, logging.NewNopLogger())
	require.NoError(t, err)
	return store
}

func bundleConfig(dir string) *config.Config {
	return &config.Config{
		Artifacts: config.ArtifactsConfig{
			Backend:         artifacts.BackendFilesystem,
			Dir:             dir,
			VerifyChecksums: true,
		},
		Pipeline: config.PipelineConfig{PredictorConcurrency: 2},
	}
}

func loadTestBundle(t *testing.T, dir string, cfg *config.Config) (*Bundle, error) {
	t.Helper()
	return LoadBundle(context.Background(), LoadOptions{
		Store:  openBundleStore(t, dir),
		Config: cfg,
		Logger: logging.NewNopLogger(),
	})
}

func TestLoadBundleComplete(t *testing.T) {
	dir, arts := bundleDir(t)
	writeTestManifest(t, dir, arts)

	bundle, err := loadTestBundle(t, dir, bundleConfig(dir))
	require.NoError(t, err)

	// No encoders and no reference dataset, so the built-in schema serves.
	assert.Same(t, schema.Canonical(), bundle.Registry)

	assert.ElementsMatch(t,
		[]string{lca.KPIRecycledContent, lca.KPIRecoveryRate},
		bundle.Predictor.KPIs())

	require.Equal(t, 3, bundle.Models.Len())
	imp, ok := bundle.Models.Get(lca.ArtifactImputer)
	require.True(t, ok)
	assert.Equal(t, common.ModelKindImputer, imp.Kind)
	assert.Equal(t, artifacts.Digest(arts[lca.ArtifactImputer]), imp.Checksum)
	assert.Equal(t, int64(len(arts[lca.ArtifactImputer])), imp.SizeBytes)
	assert.False(t, imp.LoadedAt.IsZero())

	rc, ok := bundle.Models.Get(lca.KPIArtifactName(lca.KPIRecycledContent))
	require.True(t, ok)
	assert.Equal(t, common.ModelKindKPI, rc.Kind)
	assert.Equal(t, lca.KPIRecycledContent, rc.KPI)
	assert.Equal(t, common.EstimatorLinear, rc.Estimator)

	assert.Equal(t,
		[]string{lca.KPIRecoveryRate, lca.KPIRecycledContent},
		bundle.Models.KPIs())
}

func TestLoadBundleMissingImputer(t *testing.T) {
	dir := t.TempDir()
	writeBundleArtifact(t, dir,
		lca.KPIArtifactName(lca.KPIRecycledContent),
		kpiArtifactPayload(t, lca.KPIRecycledContent, 5))

	_, err := loadTestBundle(t, dir, bundleConfig(dir))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeImputerUnavailable))
}

func TestLoadBundleChecksumMismatch(t *testing.T) {
	t.Run("imputer", func(t *testing.T) {
		dir, arts := bundleDir(t)
		writeTestManifest(t, dir, arts)
		// Re-write the artifact after the manifest pinned its digest.
		writeBundleArtifact(t, dir, lca.ArtifactImputer, append(arts[lca.ArtifactImputer], '\n'))

		_, err := loadTestBundle(t, dir, bundleConfig(dir))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeChecksumMismatch))
	})

	t.Run("kpi model", func(t *testing.T) {
		dir, arts := bundleDir(t)
		writeTestManifest(t, dir, arts)
		// A tampered indicator model fails the whole load; absence would
		// merely disable the indicator, tampering must never.
		writeBundleArtifact(t, dir,
			lca.KPIArtifactName(lca.KPIRecoveryRate),
			kpiArtifactPayload(t, lca.KPIRecoveryRate, 6))

		_, err := loadTestBundle(t, dir, bundleConfig(dir))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeChecksumMismatch))
	})
}

func TestLoadBundleBrokenKPIModelDisablesIndicator(t *testing.T) {
	dir, _ := bundleDir(t)
	writeBundleArtifact(t, dir,
		lca.KPIArtifactName(lca.KPIRecycledContent),
		[]byte("{not json"))

	bundle, err := loadTestBundle(t, dir, bundleConfig(dir))
	require.NoError(t, err)

	assert.Equal(t, []string{lca.KPIRecoveryRate}, bundle.Predictor.KPIs())
	_, ok := bundle.Models.Get(lca.KPIArtifactName(lca.KPIRecycledContent))
	assert.False(t, ok)
}

func TestLoadBundleMismatchedKPIDeclaration(t *testing.T) {
	dir, _ := bundleDir(t)
	// The file name promises Recycled Content but the payload declares
	// Recovery Rate; serving it would answer the wrong question.
	writeBundleArtifact(t, dir,
		lca.KPIArtifactName(lca.KPIRecycledContent),
		kpiArtifactPayload(t, lca.KPIRecoveryRate, 5))

	bundle, err := loadTestBundle(t, dir, bundleConfig(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{lca.KPIRecoveryRate}, bundle.Predictor.KPIs())
}

func TestLoadBundleWithoutManifest(t *testing.T) {
	dir, _ := bundleDir(t)

	// verify_checksums is on but the store ships no manifest, so
	// verification is skipped rather than failing the load.
	bundle, err := loadTestBundle(t, dir, bundleConfig(dir))
	require.NoError(t, err)
	assert.Equal(t, 3, bundle.Models.Len())
}

func TestLoadBundleVerificationDisabled(t *testing.T) {
	dir, arts := bundleDir(t)
	writeTestManifest(t, dir, arts)
	writeBundleArtifact(t, dir, lca.ArtifactImputer, append(arts[lca.ArtifactImputer], '\n'))

	cfg := bundleConfig(dir)
	cfg.Artifacts.VerifyChecksums = false

	// The stale manifest is never consulted.
	_, err := loadTestBundle(t, dir, cfg)
	require.NoError(t, err)
}

func TestLoadBundleSchemaFromEncoders(t *testing.T) {
	dir, _ := bundleDir(t)
	writeBundleArtifact(t, dir, lca.ArtifactEncoders, mustJSON(t, map[string][]string{
		"Transport Mode": {"Truck", "Rail", "Ship", "Pipeline"},
	}))

	bundle, err := loadTestBundle(t, dir, bundleConfig(dir))
	require.NoError(t, err)

	assert.NotSame(t, schema.Canonical(), bundle.Registry)
	vocab, err := bundle.Registry.Vocabulary("Transport Mode")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pipeline", "Rail", "Ship", "Truck"}, vocab)

	enc, ok := bundle.Models.Get(lca.ArtifactEncoders)
	require.True(t, ok)
	assert.Equal(t, common.ModelKindEncoders, enc.Kind)
}

// datasetCSV renders a three-row reference dataset over the canonical columns:
// categoricals rotate through their vocabulary, numerics count up from ten.
func datasetCSV(t *testing.T) []byte {
	t.Helper()
	reg := schema.Canonical()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.Write(reg.FieldNames()))
	for r := 0; r < 3; r++ {
		row := make([]string, reg.Len())
		for i, f := range reg.Fields() {
			if f.IsCategorical() {
				row[i] = f.Classes[r%len(f.Classes)]
			} else {
				row[i] = strconv.Itoa(10 + r)
			}
		}
		require.NoError(t, w.Write(row))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return buf.Bytes()
}

func TestLoadBundleSchemaFromDataset(t *testing.T) {
	dir, _ := bundleDir(t)
	writeBundleArtifact(t, dir, lca.ArtifactDataset, datasetCSV(t))

	bundle, err := loadTestBundle(t, dir, bundleConfig(dir))
	require.NoError(t, err)

	assert.NotSame(t, schema.Canonical(), bundle.Registry)
	assert.Equal(t, schema.Canonical().Len(), bundle.Registry.Len())

	// Three rows expose at most three labels per column.
	pf, err := schema.Canonical().Field("Process Stage")
	require.NoError(t, err)
	vocab, err := bundle.Registry.Vocabulary("Process Stage")
	require.NoError(t, err)
	assert.Equal(t, pf.Classes[:3], vocab)

	learned, err := bundle.Registry.Field(lca.KPIRecycledContent)
	require.NoError(t, err)
	assert.True(t, learned.IsNumeric())
}

func TestLoadBundleRegistryOverride(t *testing.T) {
	dir, _ := bundleDir(t)
	// An encoders artifact that would reshape the vocabulary, were it read.
	writeBundleArtifact(t, dir, lca.ArtifactEncoders, mustJSON(t, map[string][]string{
		"Transport Mode": {"Canal Barge"},
	}))

	bundle, err := LoadBundle(context.Background(), LoadOptions{
		Store:    openBundleStore(t, dir),
		Config:   bundleConfig(dir),
		Registry: schema.Canonical(),
		Logger:   logging.NewNopLogger(),
	})
	require.NoError(t, err)

	assert.Same(t, schema.Canonical(), bundle.Registry)
	_, ok := bundle.Models.Get(lca.ArtifactEncoders)
	assert.False(t, ok)
}

func TestLoadBundleRoundsOverride(t *testing.T) {
	dir, _ := bundleDir(t)

	cfg := bundleConfig(dir)
	cfg.Pipeline.ImputationRounds = 7
	bundle, err := loadTestBundle(t, dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, 7, bundle.Imputer.Model().Rounds())

	// Zero means "as fitted".
	bundle, err = loadTestBundle(t, dir, bundleConfig(dir))
	require.NoError(t, err)
	assert.Equal(t, 1, bundle.Imputer.Model().Rounds())
}

func TestLoadBundleStoreUnavailable(t *testing.T) {
	store := testutil.NewMemStore()
	store.FailWith(errors.New(errors.ErrCodeStoreUnavailable, "backend offline"))

	_, err := LoadBundle(context.Background(), LoadOptions{
		Store:  store,
		Config: bundleConfig(t.TempDir()),
		Logger: logging.NewNopLogger(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeStoreUnavailable))
}

func TestLoadBundleFromMemoryStore(t *testing.T) {
	store := testutil.NewMemStore().
		Put(lca.ArtifactImputer, mustJSON(t, testImputerArtifact(schema.Canonical()))).
		Put(lca.KPIArtifactName(lca.KPIRecycledContent), kpiArtifactPayload(t, lca.KPIRecycledContent, 5))

	bundle, err := LoadBundle(context.Background(), LoadOptions{
		Store:  store,
		Config: bundleConfig(t.TempDir()),
		Logger: logging.NewNopLogger(),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{lca.KPIRecycledContent}, bundle.Predictor.KPIs())
}

func TestLoadBundleOptionsValidation(t *testing.T) {
	dir, _ := bundleDir(t)

	_, err := LoadBundle(context.Background(), LoadOptions{Config: bundleConfig(dir)})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidParam))

	_, err = LoadBundle(context.Background(), LoadOptions{Store: openBundleStore(t, dir)})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidParam))
}

func TestNewEngineFromConfig(t *testing.T) {
	dir, _ := bundleDir(t)

	engine, err := NewEngineFromConfig(context.Background(), bundleConfig(dir), logging.NewNopLogger(), nil)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{lca.KPIRecycledContent, lca.KPIRecoveryRate},
		engine.KPIs())

	outcome, err := engine.Run(context.Background(), testPayload())
	require.NoError(t, err)
	rc, ok := outcome.KPI(lca.KPIRecycledContent)
	require.True(t, ok)
	require.False(t, rc.Missing)
	assert.InDelta(t, 85, rc.Value, 1e-9)
}

func TestNewEngineFromConfigValidation(t *testing.T) {
	_, err := NewEngineFromConfig(context.Background(), nil, logging.NewNopLogger(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidParam))

	cfg := bundleConfig(t.TempDir())
	cfg.Artifacts.Backend = "s3"
	_, err = NewEngineFromConfig(context.Background(), cfg, logging.NewNopLogger(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidConfig))
}

//Personal.AI order the ending
