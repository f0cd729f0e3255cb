package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateProfileID validates a preference profile identifier.
// Profile IDs double as file names in the file-backed store, so the rules
// reject anything that could escape the store directory:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - No control characters or null bytes
//   - No path separators or traversal sequences
func ValidateProfileID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidProfile, "profile id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidProfile, "profile id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidProfile, "profile id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidProfile, "profile id contains invalid characters: %q", pattern)
		}
	}

	if strings.HasPrefix(id, ".") {
		return New(ErrCodeInvalidProfile, "profile id cannot start with a dot")
	}

	return nil
}

// interestRegex matches interest tags such as "art" or "natural-history".
var interestRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateInterest validates an interest tag.
// Tags are lowercase words joined by single dashes.
func ValidateInterest(interest string) error {
	if interest == "" {
		return New(ErrCodeInvalidInput, "interest cannot be empty")
	}
	if len(interest) > 64 {
		return New(ErrCodeInvalidInput, "interest too long (max 64 characters)")
	}
	if !interestRegex.MatchString(interest) {
		return New(ErrCodeInvalidInput, "invalid interest %q (use lowercase words joined by dashes)", interest)
	}
	return nil
}

// ValidateGridColumns validates a grid width.
// Widths below 2 cannot hold the wide footprints the assigner hands out,
// and very wide grids defeat the purpose of a board layout.
func ValidateGridColumns(cols int) error {
	if cols < 2 {
		return New(ErrCodeInvalidConfig, "grid must have at least 2 columns, got %d", cols)
	}
	if cols > 64 {
		return New(ErrCodeInvalidConfig, "grid too wide (max 64 columns), got %d", cols)
	}
	return nil
}
