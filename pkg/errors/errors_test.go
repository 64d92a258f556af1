// Package errors_test provides unit tests for the AppError type, factory
// functions, and error-chain helpers defined in pkg/errors/errors.go.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// TestNew
// ─────────────────────────────────────────────────────────────────────────────

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"unknown field", errors.ErrCodeUnknownField, "no such field"},
		{"invalid param", errors.CodeInvalidParam, "payload must not be empty"},
		{"imputer unavailable", errors.ErrCodeImputerUnavailable, "imputer model not loaded"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail, "Detail should be empty for bare New()")
			assert.Nil(t, ae.Cause, "Cause should be nil for bare New()")
		})
	}
}

func TestNewf_FormatsMessage(t *testing.T) {
	t.Parallel()

	ae := errors.Newf(errors.ErrCodeUnknownKPI, "no predictor registered for %q", "Recovery Rate (%)")
	require.NotNil(t, ae)
	assert.Equal(t, `no predictor registered for "Recovery Rate (%)"`, ae.Message)
}

// ─────────────────────────────────────────────────────────────────────────────
// TestWrap
// ─────────────────────────────────────────────────────────────────────────────

func TestWrap_NilErrReturnsNil(t *testing.T) {
	t.Parallel()

	result := errors.Wrap(nil, errors.CodeInternal, "should not matter")
	assert.Nil(t, result)
}

func TestWrap_CauseChainIsPreserved(t *testing.T) {
	t.Parallel()

	root := stderrors.New("read artifacts/imputer.json: no such file")
	wrapped := errors.Wrap(root, errors.ErrCodeArtifactNotFound, "artifact fetch failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, errors.ErrCodeArtifactNotFound, wrapped.Code)
	assert.Equal(t, "artifact fetch failed", wrapped.Message)
	assert.Equal(t, root, wrapped.Cause)
}

func TestWrap_UnwrapReturnsCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("original")
	ae := errors.Wrap(cause, errors.ErrCodeArtifactDecode, "decode failed")

	unwrapped := stderrors.Unwrap(ae)
	assert.Equal(t, cause, unwrapped)
}

func TestWrap_CodeUnknownPreservesOriginalCode(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeImputerUnavailable, "imputer model not loaded")
	outer := errors.Wrap(inner, errors.CodeUnknown, "run aborted")

	require.NotNil(t, outer)
	assert.Equal(t, errors.ErrCodeImputerUnavailable, outer.Code,
		"wrapping with CodeUnknown must keep the inner classification")
}

// ─────────────────────────────────────────────────────────────────────────────
// TestError formatting
// ─────────────────────────────────────────────────────────────────────────────

func TestError_FormatWithAndWithoutDetail(t *testing.T) {
	t.Parallel()

	bare := errors.New(errors.ErrCodeUnknownField, "unknown schema field")
	assert.Equal(t, "[SCH_001] unknown schema field", bare.Error())

	detailed := bare.WithDetail(`field="Transport Mode 2"`)
	assert.Equal(t, `[SCH_001] unknown schema field: field="Transport Mode 2"`, detailed.Error())
	assert.Empty(t, bare.Detail, "WithDetail must not mutate the receiver")
}

func TestError_ImplementsErrorInterface(t *testing.T) {
	t.Parallel()

	var err error = errors.Internal("boom")
	assert.True(t, strings.Contains(err.Error(), "boom"))
}

// ─────────────────────────────────────────────────────────────────────────────
// TestIsCode / TestGetCode / TestIsFatal
// ─────────────────────────────────────────────────────────────────────────────

func TestIsCode_FindsCodeAnywhereInChain(t *testing.T) {
	t.Parallel()

	inner := errors.ImputerUnavailable()
	mid := fmt.Errorf("stage impute: %w", inner)
	outer := errors.Wrap(mid, errors.ErrCodePipelineError, "run failed")

	assert.True(t, errors.IsCode(outer, errors.ErrCodeImputerUnavailable))
	assert.True(t, errors.IsCode(outer, errors.ErrCodePipelineError))
	assert.False(t, errors.IsCode(outer, errors.ErrCodePredictorFailure))
}

func TestIsCode_NilAndPlainErrors(t *testing.T) {
	t.Parallel()

	assert.False(t, errors.IsCode(nil, errors.CodeInternal))
	assert.False(t, errors.IsCode(stderrors.New("plain"), errors.CodeInternal))
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrCodePredictorFailure,
		errors.GetCode(errors.PredictorFailed("Reuse Potential (%)", stderrors.New("bad tree"))))
}

func TestIsFatal_DistinguishesPipelineFatalFromPerKPI(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsFatal(errors.ImputerUnavailable()))
	assert.True(t, errors.IsFatal(errors.Pipeline("encode", stderrors.New("width mismatch"))))
	assert.False(t, errors.IsFatal(errors.PredictorFailed("Recovery Rate (%)", stderrors.New("x"))))
	assert.False(t, errors.IsFatal(nil))
}

// ─────────────────────────────────────────────────────────────────────────────
// Convenience factories
// ─────────────────────────────────────────────────────────────────────────────

func TestUnknownField_EmbedsFieldName(t *testing.T) {
	t.Parallel()

	ae := errors.UnknownField("Banana Curvature")
	require.NotNil(t, ae)
	assert.Equal(t, errors.ErrCodeUnknownField, ae.Code)
	assert.Contains(t, ae.Message, `"Banana Curvature"`)
}

func TestPipeline_TagsFailingStep(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("vector width 44, want 45")
	ae := errors.Pipeline("encode", cause)

	require.NotNil(t, ae)
	assert.Equal(t, errors.ErrCodePipelineError, ae.Code)
	assert.Contains(t, ae.Message, `"encode"`)
	assert.True(t, stderrors.Is(ae, cause))
}

func TestPredictorFailed_WrapsCauseWithoutFatality(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("tree 3 references feature 99")
	ae := errors.PredictorFailed("Recycled Content (%)", cause)

	require.NotNil(t, ae)
	assert.True(t, stderrors.Is(ae, cause))
	assert.False(t, errors.IsFatal(ae))
}

func TestWithCause_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := errors.SchemaUnavailable("no categorical fields")
	cause := stderrors.New("empty dataset")
	withCause := base.WithCause(cause)

	assert.Nil(t, base.Cause)
	assert.Equal(t, cause, withCause.Cause)
}

func TestNilReceiver_BuildersReturnNil(t *testing.T) {
	t.Parallel()

	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
	assert.Nil(t, ae.WithCause(stderrors.New("y")))
}

//Personal.AI order the ending
