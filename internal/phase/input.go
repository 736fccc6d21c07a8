package phase

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DecodeInput turns raw host input into a market ticker.
// Surrounding whitespace is trimmed; an empty result is not rejected.
func DecodeInput(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%d input bytes are not valid utf-8", len(raw))
	}
	return strings.TrimSpace(string(raw)), nil
}
