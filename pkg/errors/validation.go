package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// hexColorRe matches #rgb, #rrggbb and #rrggbbaa colors.
var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateKey validates a node or edge key.
//
// The validation rules are intentionally conservative:
//   - No empty keys
//   - No control characters
//   - Maximum length of 512 characters
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "key cannot be empty")
	}

	if len(key) > 512 {
		return New(ErrCodeInvalidInput, "key too long (max 512 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "key contains invalid control characters")
		}
	}

	return nil
}

// ValidateColor validates a hex color string such as "#fc9044".
// Named colors are not accepted; renderers receive colors verbatim.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidConfig, "color cannot be empty")
	}
	if !hexColorRe.MatchString(color) {
		return New(ErrCodeInvalidConfig, "invalid hex color: %q", color)
	}
	return nil
}

// ValidateConfigPath validates a configuration file path and returns its
// normalized format ("toml" or "yaml").
func ValidateConfigPath(path string) (string, error) {
	if path == "" {
		return "", New(ErrCodeInvalidConfig, "config path cannot be empty")
	}
	if strings.Contains(path, "\x00") {
		return "", New(ErrCodeInvalidConfig, "config path contains null byte")
	}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".toml"):
		return "toml", nil
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return "yaml", nil
	}
	return "", New(ErrCodeInvalidFormat, "unsupported config format: %s", path)
}
