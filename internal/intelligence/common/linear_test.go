package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

func testLinearEnvelope() EstimatorEnvelope {
	return EstimatorEnvelope{
		Type:         EstimatorLinear,
		Features:     []string{"a", "b", "c"},
		Intercept:    2,
		Coefficients: []float64{1.5, -2, 0.5},
		Fill:         []float64{0, 7, 0},
	}
}

func TestLinearPredictDotProduct(t *testing.T) {
	est, err := CompileEstimator(testLinearEnvelope())
	require.NoError(t, err)

	// 2 + 1.5*4 - 2*1 + 0.5*10 = 11
	got := est.Predict(lca.EncodedRecord{
		lca.FilledCell(4),
		lca.FilledCell(1),
		lca.FilledCell(10),
	})
	assert.InDelta(t, 11, got, 1e-12)
}

func TestLinearPredictFillsMissingCells(t *testing.T) {
	est, err := CompileEstimator(testLinearEnvelope())
	require.NoError(t, err)

	// b is missing and takes its fill value 7: 2 + 6 - 14 + 5 = -1.
	got := est.Predict(lca.EncodedRecord{
		lca.FilledCell(4),
		lca.MissingCell(),
		lca.FilledCell(10),
	})
	assert.InDelta(t, -1, got, 1e-12)
}

func TestLinearPredictShortVectorFillsTail(t *testing.T) {
	est, err := CompileEstimator(testLinearEnvelope())
	require.NoError(t, err)

	// Only a present: 2 + 6 - 2*7 + 0 = -6.
	got := est.Predict(lca.EncodedRecord{lca.FilledCell(4)})
	assert.InDelta(t, -6, got, 1e-12)
}

func TestLinearDefaultFillIsZero(t *testing.T) {
	env := testLinearEnvelope()
	env.Fill = nil
	est, err := CompileEstimator(env)
	require.NoError(t, err)

	got := est.Predict(lca.EncodedRecord{
		lca.MissingCell(),
		lca.MissingCell(),
		lca.FilledCell(2),
	})
	assert.InDelta(t, 3, got, 1e-12)
}

func TestLinearCompileValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*EstimatorEnvelope)
	}{
		{"coefficient width", func(e *EstimatorEnvelope) { e.Coefficients = []float64{1} }},
		{"fill width", func(e *EstimatorEnvelope) { e.Fill = []float64{1, 2} }},
		{"intercept NaN", func(e *EstimatorEnvelope) { e.Intercept = math.NaN() }},
		{"coefficient Inf", func(e *EstimatorEnvelope) { e.Coefficients[1] = math.Inf(1) }},
		{"fill NaN", func(e *EstimatorEnvelope) { e.Fill[2] = math.NaN() }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := testLinearEnvelope()
			tc.mutate(&env)
			_, err := CompileEstimator(env)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeEstimatorInvalid))
		})
	}
}

func TestLinearCompileCopiesEnvelopeSlices(t *testing.T) {
	env := testLinearEnvelope()
	est, err := CompileEstimator(env)
	require.NoError(t, err)

	env.Coefficients[0] = 1000
	env.Fill[1] = 1000

	got := est.Predict(lca.EncodedRecord{
		lca.FilledCell(4),
		lca.FilledCell(1),
		lca.FilledCell(10),
	})
	assert.InDelta(t, 11, got, 1e-12, "estimator must not alias the envelope's slices")
}

//Personal.AI order the ending
