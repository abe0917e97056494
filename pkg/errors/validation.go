package errors

import (
	"strings"
	"unicode"
)

// Input limits for user-supplied names and paths.
const (
	maxNameLength = 256
	maxPathLength = 500
)

// hasControl reports whether s contains a control character.
func hasControl(s string) bool {
	return strings.ContainsFunc(s, unicode.IsControl)
}

// ValidateLevelName validates the display name of an archived level.
// Names are display strings rather than paths, so slashes and spaces are
// fine; only empty, oversized, or control-character names are rejected.
func ValidateLevelName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidInput, "level name cannot be empty")
	case len(name) > maxNameLength:
		return New(ErrCodeInvalidInput, "level name too long (max %d characters)", maxNameLength)
	case hasControl(name):
		return New(ErrCodeInvalidInput, "level name contains invalid control characters")
	}
	return nil
}

// ValidateURL checks that a level URL uses an http or https scheme. Full
// parsing happens later in the fetch path; this guards against file: and
// other local schemes reaching it at all.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}

// ValidateLevelPath validates a local level file path before it is opened.
func ValidateLevelPath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case len(path) > maxPathLength:
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	case hasControl(path):
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}
	return nil
}
