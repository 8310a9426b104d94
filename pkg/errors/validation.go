package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxStepNameLength bounds a single step label.
const maxStepNameLength = 256

// ValidateStepName validates a single step label.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters (including null bytes and newlines)
//   - Maximum length of 256 characters
func ValidateStepName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "step name cannot be empty")
	}

	if len(name) > maxStepNameLength {
		return New(ErrCodeInvalidInput, "step name too long (max %d characters)", maxStepNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "step name %q contains invalid control characters", name)
		}
	}

	return nil
}

// ValidateStepNames checks that names is either empty (auto-generated labels)
// or has exactly one valid entry per step value.
func ValidateStepNames(names []string, steps int) error {
	if len(names) == 0 {
		return nil
	}
	if len(names) != steps {
		return New(ErrCodeShapeMismatch, "got %d step names for %d step values", len(names), steps)
	}
	for _, n := range names {
		if err := ValidateStepName(n); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFinite rejects NaN and infinite step values, which cannot be
// positioned on a value axis.
func ValidateFinite(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "step value %d is not a finite number: %v", i+1, v)
		}
	}
	return nil
}

// ValidateOutputPath validates a file path that rendered output is written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No backslashes (Windows-style paths)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
