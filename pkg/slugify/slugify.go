package slugify

import (
	"strings"

	"github.com/gosimple/slug"
)

// Make converts a display name into a URL-safe, lowercased, hyphenated slug.
// Non-ASCII characters are transliterated, so "Café Crème" becomes "cafe-creme".
func Make(name string) string {
	return slug.Make(name)
}

// MakeMax works like Make but keeps the result within maxLen characters,
// cutting on the last hyphen before the limit when there is one.
func MakeMax(name string, maxLen int) string {
	s := Make(name)
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}

	// Make only ever returns ASCII, so byte offsets are safe here.
	cut := s[:maxLen]
	if i := strings.LastIndex(cut, "-"); i > 0 {
		cut = cut[:i]
	}
	return strings.Trim(cut, "-")
}
