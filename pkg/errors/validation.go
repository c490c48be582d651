package errors

import (
	"math"
	"strings"
	"unicode"
)

// MIDI note number bounds accepted by [ValidatePitch].
const (
	MinPitch = 0
	MaxPitch = 127
)

// minStaffWidth is the width below which both margins overlap.
const minStaffWidth = 24.0

// ValidatePitch checks that p is a MIDI note number.
// The layout engine accepts any integer; hosts sanitize before adding notes.
func ValidatePitch(p int) error {
	if p < MinPitch || p > MaxPitch {
		return New(ErrCodeInvalidPitch, "pitch %d out of range (%d-%d)", p, MinPitch, MaxPitch)
	}
	return nil
}

// ValidateGeometry checks that a staff size is finite and leaves room
// between the horizontal margins.
func ValidateGeometry(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidGeometry, "staff size must be finite, got %vx%v", width, height)
		}
	}
	if width <= minStaffWidth {
		return New(ErrCodeInvalidGeometry, "staff width %v leaves no room between margins (must exceed %v)", width, minStaffWidth)
	}
	if height <= 0 {
		return New(ErrCodeInvalidGeometry, "staff height must be positive, got %v", height)
	}
	return nil
}

// ValidatePath validates a score or output file path supplied by the user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
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
