// Package errors provides the unified error type and factory functions for the
// Alloyance-Intelligence engine.  Every layer of the application (domain,
// application, infrastructure, interfaces) uses AppError as the single carrier
// for structured error information, enabling consistent CLI output, logging,
// and monitoring.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Stack capture
// ─────────────────────────────────────────────────────────────────────────────

// stackDepth is the maximum number of frames captured per error.
const stackDepth = 32

// captureStack returns a formatted call-stack string starting two frames above
// the caller (skipping captureStack itself and New/Wrap).
func captureStack(skip int) string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		f, more := frames.Next()
		// Trim standard-library noise to keep traces readable.
		if !strings.Contains(f.File, "runtime/") {
			fmt.Fprintf(&sb, "\n\t%s:%d %s", f.File, f.Line, f.Function)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// AppError — the canonical engine error type
// ─────────────────────────────────────────────────────────────────────────────

// AppError is the single structured error type used throughout
// Alloyance-Intelligence.  It satisfies the standard error interface and
// supports Go 1.13+ error wrapping so that errors.Is / errors.As /
// errors.Unwrap work transparently across all layers.
//
// Usage:
//
//	return errors.New(errors.ErrCodeUnknownField, "no such field \"Transport Mode 2\"")
//	return errors.Wrap(decodeErr, errors.ErrCodeArtifactDecode, "failed to decode imputer artifact")
//	return errors.UnknownField("Transport Mode 2").WithDetail("registry has 45 fields")
type AppError struct {
	// Code is the typed error code that uniquely identifies the failure category.
	Code ErrorCode

	// Message is the primary human-readable description of the error, suitable
	// for inclusion in results returned to callers.
	Message string

	// Detail carries supplementary context (field names, artifact paths, etc.)
	// that aids debugging without bloating the primary message.
	Detail string

	// Cause is the underlying error that triggered this AppError, enabling
	// errors.Is / errors.As traversal of the full error chain.
	Cause error

	// Stack contains the formatted call-stack captured at the point of error
	// creation.  It is intentionally not included in Error() output to keep
	// error messages clean; callers that need it can inspect the field
	// directly (e.g. structured logger fields).
	Stack string
}

// ─────────────────────────────────────────────────────────────────────────────
// error interface implementation
// ─────────────────────────────────────────────────────────────────────────────

// Error implements the standard error interface.
// Format: "[<code>] <message>: <detail>"; the detail segment is omitted when
// Detail is empty.
func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code.String(), e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap returns the underlying cause error, enabling errors.Is and errors.As
// to traverse the full error chain without additional boilerplate at call sites.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// ─────────────────────────────────────────────────────────────────────────────
// Fluent builder methods
// ─────────────────────────────────────────────────────────────────────────────

// WithDetail returns a shallow copy of the receiver with Detail set to the
// supplied string.  Safe to call on a nil pointer (returns nil).
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithCause returns a shallow copy of the receiver with Cause set to err.
// Use this to attach a lower-level error to an already-constructed AppError
// without going through Wrap.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Cause = err
	return &clone
}

// ─────────────────────────────────────────────────────────────────────────────
// Primary factory functions
// ─────────────────────────────────────────────────────────────────────────────

// New constructs a fresh AppError with the given code and message.
// A call-stack snapshot is captured automatically.
//
// New is the preferred factory for errors that originate in the current layer
// without an underlying cause from a lower layer.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Newf constructs a fresh AppError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(1),
	}
}

// Wrap constructs an AppError that wraps an existing error.
// If err is nil, Wrap returns nil so it can be used inline:
//
//	return errors.Wrap(store.Get(ctx, name), errors.ErrCodeStoreUnavailable, "artifact fetch failed")
//
// When err is already an *AppError and code is CodeUnknown the original code
// is preserved, preventing loss of the original classification during
// cross-layer propagation.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	// Preserve original code when the caller is just adding context.
	if code == CodeUnknown {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		}
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
		Stack:   captureStack(1),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Error-chain inspection helpers
// ─────────────────────────────────────────────────────────────────────────────

// IsCode reports whether any error in err's chain is an *AppError with the
// given code.  It is the idiomatic way to check specific failure modes:
//
//	if errors.IsCode(err, errors.ErrCodeImputerUnavailable) { ... }
func IsCode(err error, code ErrorCode) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsFatal reports whether any error in err's chain carries a code that aborts
// the whole pipeline invocation (as opposed to degrading a single KPI).
func IsFatal(err error) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && IsFatalCode(ae.Code) {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the ErrorCode from the first *AppError found in err's
// chain.  If no *AppError is present, CodeUnknown is returned.
//
// Useful in CLI / logging layers that need a single code to emit as a metric
// label without coupling to specific domain errors.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// ─────────────────────────────────────────────────────────────────────────────
// Convenience factory functions for the most common error conditions
// ─────────────────────────────────────────────────────────────────────────────
// Each function mirrors the call-site shape used across the engine so that
// returns read naturally:
//
//   return errors.UnknownField("Transport Mode 2")
//   return errors.InvalidParam("record payload must not be empty")

// UnknownField constructs an ErrCodeUnknownField AppError for a schema lookup
// on an undeclared field name.
func UnknownField(field string) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownField,
		Message: fmt.Sprintf("unknown schema field %q", field),
		Stack:   captureStack(1),
	}
}

// SchemaUnavailable constructs an ErrCodeSchemaUnavailable AppError, raised
// when no schema source yields at least one categorical field.
func SchemaUnavailable(message string) *AppError {
	return &AppError{
		Code:    ErrCodeSchemaUnavailable,
		Message: message,
		Stack:   captureStack(1),
	}
}

// ImputerUnavailable constructs an ErrCodeImputerUnavailable AppError.  This
// is fatal for a pipeline invocation: an all-null completion would be worse
// than refusing.
func ImputerUnavailable() *AppError {
	return &AppError{
		Code:    ErrCodeImputerUnavailable,
		Message: DefaultMessageForCode(ErrCodeImputerUnavailable),
		Stack:   captureStack(1),
	}
}

// PredictorFailed constructs an ErrCodePredictorFailure AppError for a single
// KPI model.  Callers record it against that KPI only; it never aborts a run.
func PredictorFailed(kpi string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodePredictorFailure,
		Message: fmt.Sprintf("prediction failed for %q", kpi),
		Cause:   cause,
		Stack:   captureStack(1),
	}
}

// Pipeline constructs an ErrCodePipelineError AppError tagged with the failing
// step, wrapping the original cause.
func Pipeline(step string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodePipelineError,
		Message: fmt.Sprintf("pipeline failed at step %q", step),
		Cause:   cause,
		Stack:   captureStack(1),
	}
}

// NotFound constructs an ErrCodeNotFound AppError.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: message,
		Stack:   captureStack(1),
	}
}

// InvalidParam constructs an ErrCodeInvalidParam AppError.
func InvalidParam(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidParam,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Validation constructs an ErrCodeValidationFailed AppError.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidationFailed,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Internal constructs an ErrCodeInternal AppError.
// Use this for unexpected failures where no more specific code applies.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Stack:   captureStack(1),
	}
}

//Personal.AI order the ending
