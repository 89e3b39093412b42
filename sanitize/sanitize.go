package sanitize

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// UserInputString strips control characters from a user supplied value
// to avoid log injection (CWE-117)
func UserInputString(key string, value string) zapcore.Field {
	return zap.String(key, NoControl(value))
}

// NoControl removes line breaks and any other control character
func NoControl(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
