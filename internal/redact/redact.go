// Package redact produces log-safe stand-ins for personal identifiers.
package redact

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Email returns a short, stable fingerprint of an email address for logs.
//
// The address is normalized (trimmed, lowercased), hashed with BLAKE2b-256 and
// truncated to 6 bytes (12 hex chars). The domain is kept so operators can
// still tell providers apart.
func Email(email string) string {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(e))
	fp := hex.EncodeToString(sum[:6])
	if at := strings.LastIndexByte(e, '@'); at >= 0 && at < len(e)-1 {
		return fp + "@" + e[at+1:]
	}
	return fp
}
