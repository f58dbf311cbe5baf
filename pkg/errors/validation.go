package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateViewport checks that a viewport size is usable for layout.
// Both dimensions must be finite and strictly positive.
func ValidateViewport(width, height float64) error {
	for _, v := range []struct {
		name string
		val  float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return New(ErrCodeInvalidViewport, "%s must be finite", v.name)
		}
		if v.val <= 0 {
			return New(ErrCodeInvalidViewport, "%s must be positive, got %v", v.name, v.val)
		}
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	return nil
}

// ValidateOrigin validates a site origin used to resolve card links.
// It ensures the origin has a safe scheme (http or https).
func ValidateOrigin(origin string) error {
	if origin == "" {
		return New(ErrCodeInvalidInput, "origin cannot be empty")
	}

	if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
		return New(ErrCodeInvalidInput, "origin must use http or https scheme")
	}

	return nil
}
