package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// NewAccessCode returns the 8-hex-character shared code a client uses to open
// their gallery. Codes are matched case-sensitively, so they are normalized to
// upper case at generation time.
func NewAccessCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate access code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}
