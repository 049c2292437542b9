package session

import (
	"os"
	"strings"

	"github.com/google/uuid"
)

// NewID returns the session identifier: an explicit QUILL_SESSION_ID
// override when set (sanitized for filesystem safety, since the ID
// names the session's log file), otherwise a random UUID.
func NewID() string {
	if id := os.Getenv("QUILL_SESSION_ID"); id != "" {
		return sanitizeID(id)
	}
	return uuid.NewString()
}

// sanitizeID replaces every rune outside a strict filename-safe
// whitelist with an underscore.
func sanitizeID(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isFilenameSafe(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// isFilenameSafe allows a-z, A-Z, 0-9, dot, hyphen, and underscore;
// everything else, including path separators and Windows reserved
// characters, is unsafe.
func isFilenameSafe(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '.' || r == '-' || r == '_'
}
