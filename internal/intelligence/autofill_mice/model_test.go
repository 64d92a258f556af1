package autofill_mice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Alloyance-Intelligence/internal/domain/schema"
	"github.com/turtacn/Alloyance-Intelligence/internal/intelligence/common"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := schema.NewRegistry([]schema.Field{
		{Name: "Energy Input Quantity (MJ)", Kind: lca.FieldKindNumeric},
		{Name: "Transport Distance (km)", Kind: lca.FieldKindNumeric},
		{Name: "Transport Mode", Kind: lca.FieldKindCategorical, Classes: []string{"Rail", "Ship", "Truck"}},
	})
	require.NoError(t, err)
	return reg
}

func testArtifact() *common.ImputerArtifact {
	return &common.ImputerArtifact{
		SchemaVersion: 1,
		Columns: []string{
			"Energy Input Quantity (MJ)",
			"Transport Distance (km)",
			"Transport Mode",
		},
		InitialFill: []float64{10, 20, 1},
		Rounds:      2,
		Steps: []common.ImputerStep{
			{
				Target: "Transport Distance (km)",
				Estimator: common.EstimatorEnvelope{
					Type:         common.EstimatorLinear,
					Features:     []string{"Energy Input Quantity (MJ)"},
					Intercept:    1,
					Coefficients: []float64{0.5},
				},
			},
			{
				Target: "Transport Mode",
				Estimator: common.EstimatorEnvelope{
					Type:         common.EstimatorLinear,
					Features:     []string{"Energy Input Quantity (MJ)", "Transport Distance (km)"},
					Intercept:    0,
					Coefficients: []float64{1, 1},
				},
			},
		},
	}
}

func TestNewModel(t *testing.T) {
	model, err := NewModel(testArtifact(), testRegistry(t))
	require.NoError(t, err)

	assert.Equal(t, 1, model.SchemaVersion())
	assert.Equal(t, 3, model.Width())
	assert.Equal(t, 2, model.Rounds())
	assert.Equal(t, []string{"Transport Distance (km)", "Transport Mode"}, model.Targets())
}

func TestNewModelNilArtifact(t *testing.T) {
	_, err := NewModel(nil, testRegistry(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeImputerUnavailable))
}

func TestNewModelNilRegistry(t *testing.T) {
	_, err := NewModel(testArtifact(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidParam))
}

func TestNewModelWidthMismatch(t *testing.T) {
	art := testArtifact()
	art.Columns = art.Columns[:2]
	art.InitialFill = art.InitialFill[:2]

	_, err := NewModel(art, testRegistry(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeImputerWidthMismatch))
}

func TestNewModelColumnOrderMismatch(t *testing.T) {
	art := testArtifact()
	art.Columns[0], art.Columns[1] = art.Columns[1], art.Columns[0]

	_, err := NewModel(art, testRegistry(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeImputerWidthMismatch))
}

func TestNewModelUnknownStepTarget(t *testing.T) {
	art := testArtifact()
	art.Steps[0].Target = "Warp Drive Output"

	_, err := NewModel(art, testRegistry(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeArtifactCorrupt))
}

func TestNewModelDuplicateStepTarget(t *testing.T) {
	art := testArtifact()
	art.Steps[1].Target = art.Steps[0].Target

	_, err := NewModel(art, testRegistry(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeArtifactCorrupt))
}

func TestNewModelNonFiniteInitialFill(t *testing.T) {
	art := testArtifact()
	art.InitialFill[1] = math.NaN()

	_, err := NewModel(art, testRegistry(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeArtifactCorrupt))
}

func TestNewModelKeepsEstimatorErrorCode(t *testing.T) {
	art := testArtifact()
	art.Steps[1].Estimator.Type = "svm"

	_, err := NewModel(art, testRegistry(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeEstimatorTypeUnknown))
	assert.Contains(t, err.Error(), "Transport Mode")
}

func TestModelClamp(t *testing.T) {
	model, err := NewModel(testArtifact(), testRegistry(t))
	require.NoError(t, err)

	// Column 2 is categorical with 3 classes; columns 0-1 are numeric.
	assert.Equal(t, 2.0, model.clamp(2, 7))
	assert.Equal(t, 0.0, model.clamp(2, -1))
	assert.Equal(t, 1.4, model.clamp(2, 1.4))
	assert.Equal(t, 123.4, model.clamp(0, 123.4))
	assert.Equal(t, -55.0, model.clamp(1, -55))
}

//Personal.AI order the ending
