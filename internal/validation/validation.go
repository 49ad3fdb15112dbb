// Package validation provides a small accumulating validator for CLI-level
// field checks, ahead of constructing a ruleset.Ruleset. It complements
// ruleset.Validate (which enforces the data model's own invariants) rather
// than duplicating it.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/eddybean/filo/internal/errors"
)

// Field-level validation error codes. These are distinct from the
// operation-level codes in internal/errors, which describe what went wrong
// with a ruleset or transfer rather than a single CLI flag.
const (
	CodeMissingField     = "MISSING_FIELD"
	CodeInvalidType      = "INVALID_TYPE"
	CodeInvalidValue     = "INVALID_VALUE"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodePathInvalid      = "PATH_INVALID"
	CodeFileNotFound     = "FILE_NOT_FOUND"
)

// ValidationResult holds validation results
type ValidationResult struct {
	errors []errors.UserError
}

// Validator provides input validation functionality
type Validator struct {
	result *ValidationResult
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		result: &ValidationResult{
			errors: make([]errors.UserError, 0),
		},
	}
}

// HasErrors returns true if validation errors were found
func (v *Validator) HasErrors() bool {
	return len(v.result.errors) > 0
}

// GetErrors returns all validation errors
func (v *Validator) GetErrors() []errors.UserError {
	return v.result.errors
}

// addError adds a validation error
func (v *Validator) addError(code, field, message string) {
	userErr := errors.NewErrorBuilder().
		WithOperation(fmt.Sprintf("validation.%s", field)).
		WithError(fmt.Errorf("%s", message)).
		WithCode(code).
		Build()
	v.result.errors = append(v.result.errors, userErr)
}

// ValidateRequired checks if a value is present
func (v *Validator) ValidateRequired(field string, value interface{}, message ...string) *Validator {
	msg := fmt.Sprintf("Field '%s' is required", field)
	if len(message) > 0 {
		msg = message[0]
	}

	if value == nil {
		v.addError(CodeMissingField, field, msg)
		return v
	}

	switch val := value.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			v.addError(CodeMissingField, field, msg)
		}
	case []interface{}:
		if len(val) == 0 {
			v.addError(CodeMissingField, field, msg)
		}
	case []string:
		if len(val) == 0 {
			v.addError(CodeMissingField, field, msg)
		}
	}

	return v
}

// ValidateString checks string constraints
func (v *Validator) ValidateString(field string, value interface{}, constraints StringConstraints) *Validator {
	str, ok := value.(string)
	if !ok {
		if value != nil {
			v.addError(CodeInvalidType, field, fmt.Sprintf("Field '%s' must be a string", field))
		}
		return v
	}

	if constraints.MinLength > 0 && len(str) < constraints.MinLength {
		v.addError(CodeInvalidValue, field,
			fmt.Sprintf("Field '%s' must be at least %d characters long", field, constraints.MinLength))
	}

	if constraints.MaxLength > 0 && len(str) > constraints.MaxLength {
		v.addError(CodeInvalidValue, field,
			fmt.Sprintf("Field '%s' must be at most %d characters long", field, constraints.MaxLength))
	}

	if constraints.Pattern != "" {
		if matched, err := regexp.MatchString(constraints.Pattern, str); err != nil {
			v.addError(CodeValidationFailed, field,
				fmt.Sprintf("Invalid pattern for field '%s': %v", field, err))
		} else if !matched {
			v.addError(CodeInvalidValue, field,
				fmt.Sprintf("Field '%s' does not match required pattern", field))
		}
	}

	if len(constraints.AllowedValues) > 0 {
		allowed := false
		for _, allowedValue := range constraints.AllowedValues {
			if str == allowedValue {
				allowed = true
				break
			}
		}
		if !allowed {
			v.addError(CodeInvalidValue, field,
				fmt.Sprintf("Field '%s' must be one of: %s", field, strings.Join(constraints.AllowedValues, ", ")))
		}
	}

	return v
}

// ValidateNumber checks numeric constraints
func (v *Validator) ValidateNumber(field string, value interface{}, constraints NumberConstraints) *Validator {
	var num float64
	var ok bool

	switch val := value.(type) {
	case int:
		num = float64(val)
		ok = true
	case int64:
		num = float64(val)
		ok = true
	case float64:
		num = val
		ok = true
	case string:
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			num = parsed
			ok = true
		}
	}

	if !ok {
		if value != nil {
			v.addError(CodeInvalidType, field, fmt.Sprintf("Field '%s' must be a number", field))
		}
		return v
	}

	if constraints.Min != nil && num < *constraints.Min {
		v.addError(CodeInvalidValue, field,
			fmt.Sprintf("Field '%s' must be at least %g", field, *constraints.Min))
	}

	if constraints.Max != nil && num > *constraints.Max {
		v.addError(CodeInvalidValue, field,
			fmt.Sprintf("Field '%s' must be at most %g", field, *constraints.Max))
	}

	if constraints.PositiveOnly && num <= 0 {
		v.addError(CodeInvalidValue, field,
			fmt.Sprintf("Field '%s' must be positive", field))
	}

	return v
}

// ValidatePath checks file path constraints such as existence, directory or
// file kind, and allowed extensions.
func (v *Validator) ValidatePath(field string, value interface{}, constraints PathConstraints) *Validator {
	path, ok := value.(string)
	if !ok {
		if value != nil {
			v.addError(CodeInvalidType, field, fmt.Sprintf("Field '%s' must be a path string", field))
		}
		return v
	}

	path = filepath.Clean(path)

	if constraints.MustExist {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			v.addError(CodeFileNotFound, field, fmt.Sprintf("Path '%s' does not exist", path))
		}
	}

	if constraints.MustBeDirectory {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			v.addError(CodePathInvalid, field, fmt.Sprintf("Field '%s' must be a directory", field))
		}
	}

	if constraints.MustBeFile {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			v.addError(CodePathInvalid, field, fmt.Sprintf("Field '%s' must be a file", field))
		}
	}

	if len(constraints.AllowedExtensions) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		allowed := false
		for _, allowedExt := range constraints.AllowedExtensions {
			if ext == strings.ToLower(allowedExt) {
				allowed = true
				break
			}
		}
		if !allowed {
			v.addError(CodePathInvalid, field,
				fmt.Sprintf("Field '%s' must have one of these extensions: %s",
					field, strings.Join(constraints.AllowedExtensions, ", ")))
		}
	}

	return v
}

// ValidateDate checks date constraints on a time.Time or a date string in
// RFC 3339 or one of the fallback layouts below.
func (v *Validator) ValidateDate(field string, value interface{}, constraints DateConstraints) *Validator {
	var date time.Time
	var err error

	switch val := value.(type) {
	case time.Time:
		date = val
	case string:
		formats := []string{
			time.RFC3339,
			"2006-01-02",
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
		}

		if constraints.Format != "" {
			formats = []string{constraints.Format}
		}

		for _, format := range formats {
			parsed, parseErr := time.Parse(format, val)
			if parseErr == nil {
				date = parsed
				break
			}
			err = parseErr
		}

		if date.IsZero() {
			v.addError(CodeInvalidValue, field, fmt.Sprintf("Field '%s' is not a valid date: %v", field, err))
			return v
		}
	default:
		if value != nil {
			v.addError(CodeInvalidType, field, fmt.Sprintf("Field '%s' must be a date", field))
		}
		return v
	}

	if constraints.After != nil && date.Before(*constraints.After) {
		v.addError(CodeInvalidValue, field,
			fmt.Sprintf("Field '%s' must be after %s", field, constraints.After.Format("2006-01-02")))
	}

	if constraints.Before != nil && date.After(*constraints.Before) {
		v.addError(CodeInvalidValue, field,
			fmt.Sprintf("Field '%s' must be before %s", field, constraints.Before.Format("2006-01-02")))
	}

	return v
}

// ValidateArray checks array constraints: length bounds and, optionally,
// unique values.
func (v *Validator) ValidateArray(field string, value interface{}, constraints ArrayConstraints) *Validator {
	var arr []interface{}
	var ok bool

	switch val := value.(type) {
	case []interface{}:
		arr = val
		ok = true
	case []string:
		arr = make([]interface{}, len(val))
		for i, s := range val {
			arr[i] = s
		}
		ok = true
	}

	if !ok {
		if value != nil {
			v.addError(CodeInvalidType, field, fmt.Sprintf("Field '%s' must be an array", field))
		}
		return v
	}

	if constraints.MinLength > 0 && len(arr) < constraints.MinLength {
		v.addError(CodeInvalidValue, field,
			fmt.Sprintf("Field '%s' must have at least %d items", field, constraints.MinLength))
	}

	if constraints.MaxLength > 0 && len(arr) > constraints.MaxLength {
		v.addError(CodeInvalidValue, field,
			fmt.Sprintf("Field '%s' must have at most %d items", field, constraints.MaxLength))
	}

	if constraints.UniqueValues {
		seen := make(map[interface{}]bool)
		for _, item := range arr {
			if seen[item] {
				v.addError(CodeInvalidValue, field, fmt.Sprintf("Field '%s' must have unique values", field))
				break
			}
			seen[item] = true
		}
	}

	return v
}

// Constraint types

// StringConstraints defines validation rules for string fields
type StringConstraints struct {
	MinLength     int
	MaxLength     int
	Pattern       string
	AllowedValues []string
}

// NumberConstraints defines validation rules for numeric fields
type NumberConstraints struct {
	Min          *float64
	Max          *float64
	PositiveOnly bool
}

// PathConstraints defines validation rules for file paths
type PathConstraints struct {
	MustExist         bool
	MustBeDirectory   bool
	MustBeFile        bool
	AllowedExtensions []string
}

// DateConstraints defines validation rules for dates
type DateConstraints struct {
	Format string
	After  *time.Time
	Before *time.Time
}

// ArrayConstraints defines validation rules for arrays
type ArrayConstraints struct {
	MinLength    int
	MaxLength    int
	UniqueValues bool
}

// Helper functions

// TimePtr returns a pointer to a time.Time value
func TimePtr(t time.Time) *time.Time {
	return &t
}

// ValidateYAMLExtension validates that path has a YAML extension, used for
// the file argument of 'filo ruleset export'.
func ValidateYAMLExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return nil
	}
	return fmt.Errorf("file must have a YAML extension (.yaml, .yml)")
}
