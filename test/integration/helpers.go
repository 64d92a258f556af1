// Package integration exercises the assessment pipeline end to end: artifact
// bundles are laid out in temporary stores with hand-computable model
// parameters, loaded through the real bundle loader, and driven through the
// engine and the embeddable client. Everything runs in-process; only the
// object-store scenario needs a live MinIO and gates itself on an
// environment variable.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/turtacn/Alloyance-Intelligence/internal/application/assessment"
	"github.com/turtacn/Alloyance-Intelligence/internal/application/dataset"
	"github.com/turtacn/Alloyance-Intelligence/internal/config"
	"github.com/turtacn/Alloyance-Intelligence/internal/domain/schema"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/artifacts"
	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Alloyance-Intelligence/internal/intelligence/common"
	pkgErrors "github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// ---------------------------------------------------------------------------
// Environment detection
// ---------------------------------------------------------------------------

const (
	// EnvMinIOEndpoint points the object-store scenario at a live MinIO.
	// Unset means the scenario skips itself; everything else in this
	// package runs without external services.
	EnvMinIOEndpoint = "ALLOYANCE_TEST_MINIO_ENDPOINT"

	// EnvMinIOAccessKey overrides the default test access key.
	EnvMinIOAccessKey = "ALLOYANCE_TEST_MINIO_ACCESS_KEY"

	// EnvMinIOSecretKey overrides the default test secret key.
	EnvMinIOSecretKey = "ALLOYANCE_TEST_MINIO_SECRET_KEY"

	// DefaultMinIOCredential matches the stock MinIO dev container.
	DefaultMinIOCredential = "minioadmin"

	// TestTimeout is the maximum duration for a single scenario.
	TestTimeout = 60 * time.Second
)

// RequireMinIO skips the calling test unless a MinIO endpoint is configured,
// and returns the endpoint plus credentials when one is.
func RequireMinIO(t *testing.T) (endpoint, accessKey, secretKey string) {
	t.Helper()
	endpoint = os.Getenv(EnvMinIOEndpoint)
	if endpoint == "" {
		t.Skipf("skipping: set %s to run object-store scenarios", EnvMinIOEndpoint)
	}
	accessKey = os.Getenv(EnvMinIOAccessKey)
	if accessKey == "" {
		accessKey = DefaultMinIOCredential
	}
	secretKey = os.Getenv(EnvMinIOSecretKey)
	if secretKey == "" {
		secretKey = DefaultMinIOCredential
	}
	return endpoint, accessKey, secretKey
}

// testContext returns a context bounded by TestTimeout and tied to the test
// lifetime.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	t.Cleanup(cancel)
	return ctx
}

// ---------------------------------------------------------------------------
// Artifact fixtures
//
// Every model parameter below is chosen so the expected pipeline output is
// computable by hand. With the sparse payload (Circularity_Score = 80,
// categorical gaps filled to code 1, numeric gaps to 10):
//
//	Transport Mode            step pins code 2            -> "Truck"
//	Total_Cost                10 + 10                     -> 20
//	Circular_Economy_Index    0.5 * Total_Cost            -> 10
//	Recycled Content          5 + Circularity_Score       -> 85
//	Resource Efficiency       60 + 0.25 * Circularity     -> 80
//	Extended Product Life     gbtree: 6 + leaf(80 >= 50)  -> 9
//	Recovery Rate             70 + 0.2 * Circularity      -> 86
//	Reuse Potential           50 + 0.5 * Total_Cost       -> 60
// ---------------------------------------------------------------------------

// imputerArtifact builds the full-width imputer: categorical gaps fill with
// code 1, numeric gaps with 10, two refinement rounds, and three steps. The
// Total_Cost step reads two cells the initial fill just populated, and the
// Circular_Economy_Index step reads Total_Cost's refined value, so the chain
// only comes out right when steps run in order over the working record.
func imputerArtifact(t *testing.T) []byte {
	t.Helper()
	reg := schema.Canonical()
	fields := reg.Fields()
	art := &common.ImputerArtifact{
		SchemaVersion: 1,
		Columns:       reg.FieldNames(),
		InitialFill:   make([]float64, len(fields)),
		Rounds:        2,
	}
	for i, f := range fields {
		if f.IsCategorical() {
			art.InitialFill[i] = 1
		} else {
			art.InitialFill[i] = 10
		}
	}
	art.Steps = []common.ImputerStep{
		{
			Target: "Transport Mode",
			Estimator: common.EstimatorEnvelope{
				Type:         common.EstimatorLinear,
				Features:     []string{"Transport Distance (km)"},
				Intercept:    2,
				Coefficients: []float64{0},
			},
		},
		{
			Target: "Total_Cost",
			Estimator: common.EstimatorEnvelope{
				Type:         common.EstimatorLinear,
				Features:     []string{"Material Cost (USD)", "Processing Cost (USD)"},
				Intercept:    0,
				Coefficients: []float64{1, 1},
			},
		},
		{
			Target: "Circular_Economy_Index",
			Estimator: common.EstimatorEnvelope{
				Type:         common.EstimatorLinear,
				Features:     []string{"Total_Cost"},
				Intercept:    0,
				Coefficients: []float64{0.5},
			},
		},
	}
	return marshalArtifact(t, art)
}

// linearModel builds an indicator model predicting
// intercept + coef * feature.
func linearModel(t *testing.T, kpi, feature string, intercept, coef float64) []byte {
	t.Helper()
	return marshalArtifact(t, &common.KPIModelArtifact{
		KPI: kpi,
		Estimator: common.EstimatorEnvelope{
			Type:         common.EstimatorLinear,
			Features:     []string{feature},
			Intercept:    intercept,
			Coefficients: []float64{coef},
		},
	})
}

// treeModel builds a one-tree gbtree indicator model over Circularity_Score:
// base 6, leaf 2 below 50, leaf 3 at or above.
func treeModel(t *testing.T, kpi string) []byte {
	t.Helper()
	low, high := 2.0, 3.0
	return marshalArtifact(t, &common.KPIModelArtifact{
		KPI: kpi,
		Estimator: common.EstimatorEnvelope{
			Type:      common.EstimatorGBTree,
			Features:  []string{"Circularity_Score"},
			BaseScore: 6,
			Trees: []common.TreeEnvelope{
				{Nodes: []common.NodeEnvelope{
					{Feature: 0, Threshold: 50, Left: 1, Right: 2},
					{Leaf: &low},
					{Leaf: &high},
				}},
			},
		},
	})
}

func marshalArtifact(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal artifact fixture: %v", err)
	}
	return data
}

// encodersArtifact serialises a label_encoders.json payload.
func encodersArtifact(t *testing.T, vocabs map[string][]string) []byte {
	t.Helper()
	return marshalArtifact(t, vocabs)
}

// datasetCSV renders a deterministic reference dataset with every cell
// populated.
func datasetCSV(t *testing.T, rows int) []byte {
	t.Helper()
	gen, err := dataset.NewGenerator(config.DatasetConfig{Rows: rows, Seed: 42}, nil, nil)
	if err != nil {
		t.Fatalf("construct dataset generator: %v", err)
	}
	var buf bytes.Buffer
	if _, err := gen.WriteCSV(testContext(t), &buf); err != nil {
		t.Fatalf("generate dataset fixture: %v", err)
	}
	return buf.Bytes()
}

// fullArtifactSet returns the complete serving bundle: the imputer and all
// five indicator models.
func fullArtifactSet(t *testing.T) map[string][]byte {
	t.Helper()
	return map[string][]byte{
		lca.ArtifactImputer:                             imputerArtifact(t),
		lca.KPIArtifactName(lca.KPIRecycledContent):     linearModel(t, lca.KPIRecycledContent, "Circularity_Score", 5, 1),
		lca.KPIArtifactName(lca.KPIResourceEfficiency):  linearModel(t, lca.KPIResourceEfficiency, "Circularity_Score", 60, 0.25),
		lca.KPIArtifactName(lca.KPIExtendedProductLife): treeModel(t, lca.KPIExtendedProductLife),
		lca.KPIArtifactName(lca.KPIRecoveryRate):        linearModel(t, lca.KPIRecoveryRate, "Circularity_Score", 70, 0.2),
		lca.KPIArtifactName(lca.KPIReusePotential):      linearModel(t, lca.KPIReusePotential, "Total_Cost", 50, 0.5),
	}
}

// buildManifest renders a manifest covering every artifact in arts, names
// sorted.
func buildManifest(arts map[string][]byte) []byte {
	names := make([]string, 0, len(arts))
	for name := range arts {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s\n", name, artifacts.Digest(arts[name]))
	}
	return []byte(b.String())
}

// writeBundle lays arts out in a fresh temp directory, appending a covering
// manifest when asked, and returns the directory.
func writeBundle(t *testing.T, arts map[string][]byte, withManifest bool) string {
	t.Helper()
	dir := t.TempDir()
	for name, payload := range arts {
		if err := os.WriteFile(filepath.Join(dir, name), payload, 0o644); err != nil {
			t.Fatalf("write artifact %s: %v", name, err)
		}
	}
	if withManifest {
		if err := os.WriteFile(filepath.Join(dir, lca.ArtifactManifest), buildManifest(arts), 0o644); err != nil {
			t.Fatalf("write manifest: %v", err)
		}
	}
	return dir
}

// fullBundleDir is the default scenario layout: complete artifact set plus
// manifest.
func fullBundleDir(t *testing.T) string {
	t.Helper()
	return writeBundle(t, fullArtifactSet(t), true)
}

// ---------------------------------------------------------------------------
// Payloads
// ---------------------------------------------------------------------------

// sparsePayload supplies three observed fields and an explicit null for
// Transport Mode; everything else is left for the imputer.
func sparsePayload() map[string]any {
	return map[string]any{
		"Process Stage":     "Manufacturing",
		"Technology":        "Emerging",
		"Circularity_Score": 80.0,
		"Transport Mode":    nil,
	}
}

// ---------------------------------------------------------------------------
// Engine construction
// ---------------------------------------------------------------------------

// bundleConfig builds a filesystem-backed config over dir with checksum
// verification on, mirroring the loader defaults.
func bundleConfig(dir string) *config.Config {
	cfg := &config.Config{}
	cfg.Artifacts.Backend = "filesystem"
	cfg.Artifacts.Dir = dir
	cfg.Artifacts.VerifyChecksums = true
	config.ApplyDefaults(cfg)
	return cfg
}

// newEngine assembles an engine over the artifact directory, applying any
// config mutators first.
func newEngine(t *testing.T, dir string, mutate ...func(*config.Config)) *assessment.Engine {
	t.Helper()
	engine, err := tryEngine(t, dir, mutate...)
	if err != nil {
		t.Fatalf("assemble engine over %s: %v", dir, err)
	}
	return engine
}

// tryEngine is newEngine without the fatal: degradation scenarios assert on
// the returned error.
func tryEngine(t *testing.T, dir string, mutate ...func(*config.Config)) (*assessment.Engine, error) {
	t.Helper()
	cfg := bundleConfig(dir)
	for _, m := range mutate {
		m(cfg)
	}
	return assessment.NewEngineFromConfig(testContext(t), cfg, logging.NewNopLogger(), nil)
}

// loadBundle runs the artifact loader over an arbitrary store.
func loadBundle(t *testing.T, store artifacts.Store, mutate ...func(*config.Config)) (*assessment.Bundle, error) {
	t.Helper()
	cfg := bundleConfig("unused")
	for _, m := range mutate {
		m(cfg)
	}
	return assessment.LoadBundle(testContext(t), assessment.LoadOptions{
		Store:  store,
		Config: cfg,
		Logger: logging.NewNopLogger(),
	})
}

// ---------------------------------------------------------------------------
// Assertion helpers
// ---------------------------------------------------------------------------

// AssertNoError fails the test if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertErrorCode checks that err carries the given application error code.
func AssertErrorCode(t *testing.T, err error, expected pkgErrors.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s but got nil", expected)
	}
	if got := pkgErrors.GetCode(err); got != expected {
		t.Fatalf("expected error code %s, got %s (error: %v)", expected, got, err)
	}
}

// AssertValue checks a float against an expected value within 1e-9.
func AssertValue(t *testing.T, got, expected float64, label string) {
	t.Helper()
	diff := got - expected
	if diff < -1e-9 || diff > 1e-9 {
		t.Fatalf("%s: expected %.6f, got %.6f", label, expected, got)
	}
}

// AssertInRange checks that val is within [min, max].
func AssertInRange(t *testing.T, val, min, max float64, label string) {
	t.Helper()
	if val < min || val > max {
		t.Fatalf("%s: expected value in [%.4f, %.4f], got %.4f", label, min, max, val)
	}
}

// MeasureDuration returns the wall-clock duration of fn.
func MeasureDuration(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

// AssertDurationUnder fails if fn takes longer than maxDuration.
func AssertDurationUnder(t *testing.T, label string, maxDuration time.Duration, fn func()) {
	t.Helper()
	d := MeasureDuration(fn)
	if d > maxDuration {
		t.Fatalf("%s took %v, exceeding limit of %v", label, d, maxDuration)
	}
	t.Logf("%s completed in %v (limit: %v)", label, d, maxDuration)
}

//Personal.AI order the ending
