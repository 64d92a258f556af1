package errors

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "COMMON_001", ErrCodeInternal.String())
}

func TestDefaultMessageForCode(t *testing.T) {
	assert.Equal(t, "internal error", DefaultMessageForCode(ErrCodeInternal))
	assert.Equal(t, "imputer model not loaded", DefaultMessageForCode(ErrCodeImputerUnavailable))
	assert.Equal(t, "unknown error", DefaultMessageForCode(ErrorCode("UNKNOWN")))
}

func TestIsFatalCode(t *testing.T) {
	assert.True(t, IsFatalCode(ErrCodeImputerUnavailable))
	assert.True(t, IsFatalCode(ErrCodePipelineError))
	assert.True(t, IsFatalCode(ErrCodeSchemaUnavailable))
	assert.False(t, IsFatalCode(ErrCodePredictorFailure))
	assert.False(t, IsFatalCode(ErrCodeValidationFailed))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "COMMON", ModuleForCode(ErrCodeInternal))
	assert.Equal(t, "SCH", ModuleForCode(ErrCodeUnknownField))
	assert.Equal(t, "REC", ModuleForCode(ErrCodeRecordParseFailed))
	assert.Equal(t, "VAL", ModuleForCode(ErrCodeValidationFailed))
	assert.Equal(t, "IMP", ModuleForCode(ErrCodeImputerUnavailable))
	assert.Equal(t, "KPI", ModuleForCode(ErrCodePredictorFailure))
	assert.Equal(t, "PIP", ModuleForCode(ErrCodePipelineError))
	assert.Equal(t, "EST", ModuleForCode(ErrCodeEstimatorInvalid))
	assert.Equal(t, "ART", ModuleForCode(ErrCodeArtifactNotFound))
	assert.Equal(t, "CFG", ModuleForCode(ErrCodeInvalidConfig))
	assert.Equal(t, "UNKNOWN", ModuleForCode(ErrorCode("")))
}

func TestErrorCodeFormat_Convention(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z]+_\d{3}$`)
	allCodes := []ErrorCode{
		ErrCodeInternal, ErrCodeInvalidParam, ErrCodeUnknownField, ErrCodeSchemaUnavailable,
		ErrCodeRecordParseFailed, ErrCodeValidationFailed, ErrCodeImputerUnavailable,
		ErrCodePredictorFailure, ErrCodePipelineError, ErrCodeEstimatorInvalid,
		ErrCodeArtifactNotFound, ErrCodeInvalidConfig, ErrCodeDatasetGenerateFailed,
	}
	for _, code := range allCodes {
		assert.Regexp(t, re, string(code))
	}
}

func TestErrorCodeMessages_Completeness(t *testing.T) {
	allCodes := []ErrorCode{
		ErrCodeInternal, ErrCodeUnknownField, ErrCodeSchemaUnavailable,
		ErrCodeRecordParseFailed, ErrCodeValidationFailed, ErrCodeImputerUnavailable,
		ErrCodePredictorFailure, ErrCodePipelineError, ErrCodeEstimatorInvalid,
		ErrCodeArtifactNotFound, ErrCodeChecksumMismatch, ErrCodeInvalidConfig,
	}
	for _, code := range allCodes {
		_, hasMessage := ErrorCodeMessage[code]
		assert.True(t, hasMessage, "missing message for %s", code)
	}
}

//Personal.AI order the ending
