package errors

import (
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeInvalidParam       ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTimeout            ErrorCode = "COMMON_005"
	ErrCodeSerialization      ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_007"
	ErrCodeNotImplemented     ErrorCode = "COMMON_008"
)

// Aliases kept short for the most frequent call sites.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeInvalidParam
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// Schema Module Error Codes
const (
	ErrCodeUnknownField      ErrorCode = "SCH_001"
	ErrCodeSchemaUnavailable ErrorCode = "SCH_002"
	ErrCodeFieldKindMismatch ErrorCode = "SCH_003"
	ErrCodeSchemaLearnFailed ErrorCode = "SCH_004"
)

// Record Module Error Codes
const (
	ErrCodeRecordParseFailed ErrorCode = "REC_001"
	ErrCodeRecordNotAligned  ErrorCode = "REC_002"
)

// Validation Error Codes
const (
	ErrCodeValidationFailed      ErrorCode = "VAL_001"
	ErrCodeRequiredFieldMissing  ErrorCode = "VAL_002"
	ErrCodeValueOutOfRange       ErrorCode = "VAL_003"
	ErrCodeLabelNotInVocabulary  ErrorCode = "VAL_004"
	ErrCodeNonFiniteNumericValue ErrorCode = "VAL_005"
)

// Imputer Module Error Codes
const (
	ErrCodeImputerUnavailable   ErrorCode = "IMP_001"
	ErrCodeImputerWidthMismatch ErrorCode = "IMP_002"
	ErrCodeImputationFailed     ErrorCode = "IMP_003"
)

// KPI Predictor Module Error Codes
const (
	ErrCodePredictorFailure   ErrorCode = "KPI_001"
	ErrCodeUnknownKPI         ErrorCode = "KPI_002"
	ErrCodePredictorNotLoaded ErrorCode = "KPI_003"
)

// Pipeline Error Codes
const (
	ErrCodePipelineError ErrorCode = "PIP_001"
)

// Estimator Error Codes
const (
	ErrCodeEstimatorInvalid     ErrorCode = "EST_001"
	ErrCodeEstimatorTypeUnknown ErrorCode = "EST_002"
)

// Artifact Store Error Codes
const (
	ErrCodeArtifactNotFound ErrorCode = "ART_001"
	ErrCodeArtifactCorrupt  ErrorCode = "ART_002"
	ErrCodeArtifactDecode   ErrorCode = "ART_003"
	ErrCodeStoreUnavailable ErrorCode = "ART_004"
	ErrCodeChecksumMismatch ErrorCode = "ART_005"
)

// Configuration Error Codes
const (
	ErrCodeInvalidConfig ErrorCode = "CFG_001"
)

// Dataset Tooling Error Codes
const (
	ErrCodeDatasetGenerateFailed ErrorCode = "DAT_001"
	ErrCodeDatasetReadFailed     ErrorCode = "DAT_002"
)

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal error",
	ErrCodeInvalidParam:       "invalid parameter",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTimeout:            "operation timed out",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeUnknownField:      "unknown schema field",
	ErrCodeSchemaUnavailable: "no categorical schema available",
	ErrCodeFieldKindMismatch: "operation not valid for field kind",
	ErrCodeSchemaLearnFailed: "failed to learn schema from reference data",

	ErrCodeRecordParseFailed: "failed to parse input record",
	ErrCodeRecordNotAligned:  "record is not schema-aligned",

	ErrCodeValidationFailed:      "record validation failed",
	ErrCodeRequiredFieldMissing:  "required field missing",
	ErrCodeValueOutOfRange:       "numeric value out of range",
	ErrCodeLabelNotInVocabulary:  "label not in field vocabulary",
	ErrCodeNonFiniteNumericValue: "numeric value is NaN or infinite",

	ErrCodeImputerUnavailable:   "imputer model not loaded",
	ErrCodeImputerWidthMismatch: "encoded record width does not match imputer",
	ErrCodeImputationFailed:     "imputation failed",

	ErrCodePredictorFailure:   "KPI predictor failed",
	ErrCodeUnknownKPI:         "unknown KPI name",
	ErrCodePredictorNotLoaded: "KPI predictor not loaded",

	ErrCodePipelineError: "pipeline execution failed",

	ErrCodeEstimatorInvalid:     "estimator artifact invalid",
	ErrCodeEstimatorTypeUnknown: "unknown estimator type",

	ErrCodeArtifactNotFound: "artifact not found",
	ErrCodeArtifactCorrupt:  "artifact corrupt",
	ErrCodeArtifactDecode:   "failed to decode artifact",
	ErrCodeStoreUnavailable: "artifact store unavailable",
	ErrCodeChecksumMismatch: "artifact checksum mismatch",

	ErrCodeInvalidConfig: "invalid configuration",

	ErrCodeDatasetGenerateFailed: "dataset generation failed",
	ErrCodeDatasetReadFailed:     "failed to read dataset",
}

// fatalCodes lists codes that abort a whole pipeline invocation. Everything
// else is either recoverable in place (per-KPI failures) or local to a
// support operation.
var fatalCodes = map[ErrorCode]bool{
	ErrCodeImputerUnavailable:   true,
	ErrCodeImputerWidthMismatch: true,
	ErrCodePipelineError:        true,
	ErrCodeSchemaUnavailable:    true,
	ErrCodeRecordNotAligned:     true,
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsFatalCode reports whether the code aborts the whole pipeline invocation
// rather than degrading a single KPI result.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
