package errors

import (
	"fmt"
	"strings"
)

// UserError provides user-friendly error messages with suggestions
type UserError struct {
	Operation  string // The operation that failed (e.g., "ruleset.execute")
	File       string // File path where error occurred
	Err        error  // Original error
	Suggestion string // Helpful suggestion for the user
	Code       string // Error code for programmatic handling
}

// Error implements the error interface
func (e UserError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Error: %s", e.Err)

	if e.Operation != "" {
		fmt.Fprintf(&buf, "\nOperation: %s", e.Operation)
	}

	if e.File != "" {
		fmt.Fprintf(&buf, "\nFile: %s", e.File)
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&buf, "\n\nSuggestion: %s", e.Suggestion)
	}

	return buf.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e UserError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code for programmatic handling
func (e UserError) ErrorCode() string {
	return e.Code
}

// Common error codes for the file-organization domain
const (
	ErrCodeInvalidRuleset        = "INVALID_RULESET"
	ErrCodeSourceNotFound        = "SOURCE_NOT_FOUND"
	ErrCodeDestinationUnwritable = "DESTINATION_UNWRITABLE"
	ErrCodeTemplateUnresolved    = "TEMPLATE_UNRESOLVED"
	ErrCodeCollision             = "COLLISION"
	ErrCodePermissionDenied      = "PERMISSION_DENIED"
	ErrCodeDiskFull              = "DISK_FULL"
	ErrCodeCrossDevice           = "CROSS_DEVICE"
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeOperation             = "OPERATION_FAILED"
	ErrCodeInvalidConfig         = "INVALID_CONFIG"
)

// ErrorBuilder helps construct user-friendly errors with suggestions
type ErrorBuilder struct {
	operation  string
	file       string
	err        error
	suggestion string
	code       string
}

// NewErrorBuilder creates a new error builder
func NewErrorBuilder() *ErrorBuilder {
	return &ErrorBuilder{}
}

// WithOperation sets the operation context
func (b *ErrorBuilder) WithOperation(operation string) *ErrorBuilder {
	b.operation = operation
	return b
}

// WithFile sets the file context
func (b *ErrorBuilder) WithFile(file string) *ErrorBuilder {
	b.file = file
	return b
}

// WithError sets the underlying error
func (b *ErrorBuilder) WithError(err error) *ErrorBuilder {
	b.err = err
	return b
}

// WithSuggestion sets a helpful suggestion
func (b *ErrorBuilder) WithSuggestion(suggestion string) *ErrorBuilder {
	b.suggestion = suggestion
	return b
}

// WithCode sets the error code
func (b *ErrorBuilder) WithCode(code string) *ErrorBuilder {
	b.code = code
	return b
}

// Build creates the UserError
func (b *ErrorBuilder) Build() UserError {
	return UserError{
		Operation:  b.operation,
		File:       b.file,
		Err:        b.err,
		Suggestion: b.suggestion,
		Code:       b.code,
	}
}

// NewSourceNotFoundError creates an error for a missing ruleset source_dir.
func NewSourceNotFoundError(dir string) UserError {
	return NewErrorBuilder().
		WithOperation("ruleset.execute").
		WithFile(dir).
		WithError(fmt.Errorf("source directory not found: %s", dir)).
		WithCode(ErrCodeSourceNotFound).
		WithSuggestion("Check that the source_dir path exists and is spelled correctly.").
		Build()
}

// NewInvalidRulesetError creates an error for a ruleset that fails
// validation.
func NewInvalidRulesetError(name string, details string) UserError {
	return NewErrorBuilder().
		WithOperation("ruleset.validate").
		WithError(fmt.Errorf("ruleset %q is invalid: %s", name, details)).
		WithCode(ErrCodeInvalidRuleset).
		WithSuggestion("Run 'filo ruleset add --id <id>' to fix the reported field, or check the filters block has at least one sub-filter set.").
		Build()
}

// NewTemplateUnresolvedError creates an error for a file skipped because a
// destination template variable could not be resolved.
func NewTemplateUnresolvedError(file string, reason string) UserError {
	return NewErrorBuilder().
		WithOperation("template.resolve").
		WithFile(file).
		WithError(fmt.Errorf("could not resolve destination template: %s", reason)).
		WithCode(ErrCodeTemplateUnresolved).
		WithSuggestion("Check the filename filter's regex has a named capture group for every {name} used in destination_dir.").
		Build()
}

// NewConfigError creates an error for configuration issues
func NewConfigError(configPath string, details string) UserError {
	return NewErrorBuilder().
		WithOperation("configuration loading").
		WithFile(configPath).
		WithError(fmt.Errorf("configuration error: %s", details)).
		WithCode(ErrCodeInvalidConfig).
		WithSuggestion("Check your configuration file for syntax errors and ensure all required fields are present.").
		Build()
}

// NewPermissionError creates an error for permission issues
func NewPermissionError(file string, operation string) UserError {
	return NewErrorBuilder().
		WithOperation(operation).
		WithFile(file).
		WithError(fmt.Errorf("permission denied accessing file: %s", file)).
		WithCode(ErrCodePermissionDenied).
		WithSuggestion("Check that you have read/write permissions for this file and its parent directory.").
		Build()
}

// ErrorHandler provides consistent error formatting
type ErrorHandler struct {
	verbose bool
	quiet   bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose, quiet bool) *ErrorHandler {
	return &ErrorHandler{
		verbose: verbose,
		quiet:   quiet,
	}
}

// Handle processes an error and returns a formatted message
func (h *ErrorHandler) Handle(err error) string {
	if err == nil {
		return ""
	}

	if userErr, ok := err.(UserError); ok {
		return h.formatUserError(userErr)
	}

	return h.formatRegularError(err)
}

// formatUserError formats a UserError based on verbosity settings
func (h *ErrorHandler) formatUserError(err UserError) string {
	if h.quiet {
		return err.Err.Error()
	}

	var buf strings.Builder

	errorColor := "\033[31m"
	contextColor := "\033[33m"
	suggestionColor := "\033[36m"
	resetColor := "\033[0m"

	fmt.Fprintf(&buf, "%sError:%s %s\n", errorColor, resetColor, err.Err.Error())

	if err.Operation != "" {
		fmt.Fprintf(&buf, "%sOperation:%s %s\n", contextColor, resetColor, err.Operation)
	}
	if err.File != "" {
		fmt.Fprintf(&buf, "%sFile:%s %s\n", contextColor, resetColor, err.File)
	}

	if err.Suggestion != "" {
		fmt.Fprintf(&buf, "\n%sSuggestion:%s %s\n", suggestionColor, resetColor, err.Suggestion)
	}

	if h.verbose && err.Code != "" {
		fmt.Fprintf(&buf, "\nError Code: %s\n", err.Code)
	}

	return buf.String()
}

// formatRegularError formats a regular error with basic enhancement
func (h *ErrorHandler) formatRegularError(err error) string {
	if h.quiet {
		return err.Error()
	}

	errMsg := err.Error()

	var suggestion string
	switch {
	case strings.Contains(errMsg, "no such file or directory"):
		suggestion = "Check that the file path is correct and the file exists."
	case strings.Contains(errMsg, "permission denied"):
		suggestion = "Check that you have the necessary permissions to access this file."
	case strings.Contains(errMsg, "no space left on device"):
		suggestion = "Free up disk space on the destination and try again."
	case strings.Contains(errMsg, "invalid character"):
		suggestion = "Check for syntax errors in your ruleset YAML."
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Error: %s", errMsg)

	if suggestion != "" {
		fmt.Fprintf(&buf, "\n\nSuggestion: %s", suggestion)
	}

	return buf.String()
}

// WrapError wraps a regular error into a UserError with context
func WrapError(err error, operation, file string) UserError {
	return NewErrorBuilder().
		WithOperation(operation).
		WithFile(file).
		WithError(err).
		Build()
}

// ExitCode returns an appropriate exit code for an error
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	if userErr, ok := err.(UserError); ok {
		switch userErr.Code {
		case ErrCodeSourceNotFound, ErrCodeNotFound:
			return 2
		case ErrCodePermissionDenied:
			return 3
		case ErrCodeInvalidConfig, ErrCodeInvalidRuleset:
			return 4
		case ErrCodeDiskFull:
			return 5
		case ErrCodeCrossDevice:
			return 6
		default:
			return 1
		}
	}

	return 1
}
