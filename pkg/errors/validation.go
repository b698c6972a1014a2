package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"
)

// ValidateCoordinate checks that a pointer coordinate is finite once stored
// as a float32. NaN never compares equal to anything, so a node placed at NaN
// could never be found again by an exact-point lookup.
func ValidateCoordinate(axis string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s coordinate must be finite, got %v", axis, v)
	}
	if math.Abs(v) > math.MaxFloat32 {
		return New(ErrCodeInvalidInput, "%s coordinate %v is out of range", axis, v)
	}
	return nil
}

// ValidatePath rejects empty paths, paths over 4096 bytes and paths with
// control characters.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed output formats.
// The comparison is case-sensitive.
func ValidateFormat(format string, allowed []string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(allowed, ", "))
}
