package errors

import (
	"strings"
	"unicode"
)

// ValidateAttributeName validates a dataset attribute name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
//
// Attribute names come from CSV headers and end up in DOT output and log
// lines, so they must be printable.
func ValidateAttributeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidData, "attribute name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidData, "attribute name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidData, "attribute name contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidFormat, "output path cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeInvalidFormat, "output path too long (max 500 characters)")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFormat, "output path contains invalid control characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidFormat, "output path cannot contain traversal sequences")
	}

	return nil
}
