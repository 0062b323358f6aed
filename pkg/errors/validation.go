package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateRelativePath validates a file path received over the API for
// safety. It prevents path traversal attacks and ensures reasonable length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateRelativePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// profileNameRegex matches valid viewport profile names.
var profileNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateProfileName validates a viewport profile name.
func ValidateProfileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidProfile, "profile name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidProfile, "profile name too long (max 64 characters)")
	}

	if !profileNameRegex.MatchString(name) {
		return New(ErrCodeInvalidProfile, "invalid profile name: %q", name)
	}

	return nil
}

// ruleNameRegex matches valid rule identifiers.
var ruleNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateRuleName validates a rule identifier from a config file.
func ValidateRuleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "rule name cannot be empty")
	}

	if !ruleNameRegex.MatchString(name) {
		return New(ErrCodeInvalidConfig, "invalid rule name: %q", name)
	}

	return nil
}
