package service

import (
	"strings"
	"unicode"
)

// GenerateSlug derives a URL-safe slug from a display name. The name
// is lowercased, punctuation is stripped, runs of whitespace collapse
// to a single hyphen, and leading or trailing hyphens are trimmed.
// The same input always yields the same slug.
func GenerateSlug(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen {
				b.WriteByte('-')
				pendingHyphen = false
			}
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if b.Len() > 0 {
				pendingHyphen = true
			}
		}
	}
	return b.String()
}
