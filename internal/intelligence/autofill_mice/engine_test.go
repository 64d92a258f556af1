package autofill_mice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Alloyance-Intelligence/internal/intelligence/common"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	model, err := NewModel(testArtifact(), testRegistry(t))
	require.NoError(t, err)
	eng, err := NewEngine(model, nil)
	require.NoError(t, err)
	return eng
}

func TestNewEngineNilModel(t *testing.T) {
	_, err := NewEngine(nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeImputerUnavailable))
}

func TestImputeFillsAllGaps(t *testing.T) {
	eng := testEngine(t)

	// energy observed at 4; distance and mode missing.
	// Initial fill: [4, 20, 1].
	// Round 1: distance = 1 + 0.5*4 = 3; mode = 4 + 3 = 7, clamped to 2.
	// Round 2 re-derives the same values.
	rec := lca.EncodedRecord{
		lca.FilledCell(4),
		lca.MissingCell(),
		lca.MissingCell(),
	}

	out, err := eng.Impute(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, lca.EncodedRecord{
		lca.FilledCell(4),
		lca.FilledCell(3),
		lca.FilledCell(2),
	}, out)
	assert.Zero(t, out.MissingCount())
}

func TestImputeNeverTouchesObservedCells(t *testing.T) {
	eng := testEngine(t)

	// distance arrives observed at 100, far from the 3 its step would
	// estimate; it must stay 100 while mode is estimated from it.
	rec := lca.EncodedRecord{
		lca.FilledCell(4),
		lca.FilledCell(100),
		lca.MissingCell(),
	}

	out, err := eng.Impute(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, lca.FilledCell(100), out[1])
	// mode = 4 + 100 = 104, clamped into the 3-class range.
	assert.Equal(t, lca.FilledCell(2), out[2])
}

func TestImputeCompleteRecordFastPath(t *testing.T) {
	eng := testEngine(t)

	rec := lca.EncodedRecord{
		lca.FilledCell(4),
		lca.FilledCell(50),
		lca.FilledCell(0),
	}

	out, err := eng.Impute(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, rec, out)

	out[0] = lca.FilledCell(999)
	assert.Equal(t, lca.FilledCell(4), rec[0], "fast path must return a copy")
}

func TestImputeDoesNotMutateInput(t *testing.T) {
	eng := testEngine(t)

	rec := lca.EncodedRecord{
		lca.FilledCell(4),
		lca.MissingCell(),
		lca.MissingCell(),
	}

	_, err := eng.Impute(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, rec[1].Missing)
	assert.True(t, rec[2].Missing)
}

func TestImputeWidthMismatch(t *testing.T) {
	eng := testEngine(t)

	_, err := eng.Impute(context.Background(), lca.EncodedRecord{lca.FilledCell(1)})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeImputerWidthMismatch))
}

func TestImputeClampsNegativeCategoricalEstimate(t *testing.T) {
	eng := testEngine(t)

	// mode = -10 + 0 = -10, clamped to code 0.
	rec := lca.EncodedRecord{
		lca.FilledCell(-10),
		lca.FilledCell(0),
		lca.MissingCell(),
	}

	out, err := eng.Impute(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, lca.FilledCell(0), out[2])
}

func TestImputeColumnWithoutStepKeepsInitialFill(t *testing.T) {
	eng := testEngine(t)

	// No step targets the energy column, so its gap keeps the fitted
	// statistic 10.
	rec := lca.EncodedRecord{
		lca.MissingCell(),
		lca.FilledCell(5),
		lca.FilledCell(0),
	}

	out, err := eng.Impute(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, lca.FilledCell(10), out[0])
	assert.Equal(t, lca.FilledCell(5), out[1])
	assert.Equal(t, lca.FilledCell(0), out[2])
}

func TestImputeRoundsRefineEstimates(t *testing.T) {
	// Two mutually dependent steps: a = 1 + b, b = 2a.  With initial fill 0
	// the first round yields a=1, b=2; the second refines to a=3, b=6.
	art := &common.ImputerArtifact{
		SchemaVersion: 1,
		Columns: []string{
			"Energy Input Quantity (MJ)",
			"Transport Distance (km)",
			"Transport Mode",
		},
		InitialFill: []float64{0, 0, 0},
		Rounds:      2,
		Steps: []common.ImputerStep{
			{
				Target: "Energy Input Quantity (MJ)",
				Estimator: common.EstimatorEnvelope{
					Type:         common.EstimatorLinear,
					Features:     []string{"Transport Distance (km)"},
					Intercept:    1,
					Coefficients: []float64{1},
				},
			},
			{
				Target: "Transport Distance (km)",
				Estimator: common.EstimatorEnvelope{
					Type:         common.EstimatorLinear,
					Features:     []string{"Energy Input Quantity (MJ)"},
					Intercept:    0,
					Coefficients: []float64{2},
				},
			},
		},
	}
	model, err := NewModel(art, testRegistry(t))
	require.NoError(t, err)
	eng, err := NewEngine(model, nil)
	require.NoError(t, err)

	rec := lca.EncodedRecord{
		lca.MissingCell(),
		lca.MissingCell(),
		lca.FilledCell(0),
	}

	out, err := eng.Impute(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, lca.FilledCell(3), out[0])
	assert.Equal(t, lca.FilledCell(6), out[1])
}

func TestImputeNonFiniteEstimateFails(t *testing.T) {
	art := testArtifact()
	// 1e308 + 1e308*10 overflows float64 at evaluation time.
	art.Steps[0].Estimator.Intercept = 1e308
	art.Steps[0].Estimator.Coefficients = []float64{1e308}

	model, err := NewModel(art, testRegistry(t))
	require.NoError(t, err)
	eng, err := NewEngine(model, nil)
	require.NoError(t, err)

	rec := lca.EncodedRecord{
		lca.FilledCell(10),
		lca.MissingCell(),
		lca.FilledCell(0),
	}

	_, err = eng.Impute(context.Background(), rec)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeImputationFailed))
}

func TestImputeHonoursCancelledContext(t *testing.T) {
	eng := testEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := lca.EncodedRecord{
		lca.FilledCell(4),
		lca.MissingCell(),
		lca.MissingCell(),
	}

	_, err := eng.Impute(ctx, rec)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeImputationFailed))
}

//Personal.AI order the ending
