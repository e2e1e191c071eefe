package projects

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// SlugNormalizer exposes the slug normalizer interface.
type SlugNormalizer = slug.Normalizer

// GenerateSlug derives a URL-safe slug from a title: lowercased, diacritics
// transliterated to base letters ("Café São João" becomes "cafe-sao-joao"),
// punctuation removed, whitespace collapsed to single hyphens. Collision
// disambiguation (-1, -2, ...) is handled by the service, not here.
func GenerateSlug(title string) (string, error) {
	normalized, err := slug.HashNormalize(title)
	if err != nil {
		return "", err
	}
	return sanitizeSlug(normalized), nil
}

// IsValidSlug reports whether the value matches the default slug rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}

// sanitizeSlug drops the residual characters the transliterating normalizer
// keeps (slashes, equals) and collapses any resulting hyphen runs.
func sanitizeSlug(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	lastHyphen := false
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-':
			if !lastHyphen && b.Len() > 0 {
				b.WriteRune(r)
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
