package util

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ToSlug converts arbitrary text into a URL-friendly slug: lowercase ASCII
// with dashes. Diacritics are folded (NFD decomposition, combining marks
// dropped) so Vietnamese category names slug cleanly, e.g.
// "Tin Tức Công Nghệ" -> "tin-tuc-cong-nghe".
func ToSlug(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return ""
	}

	// đ has no combining-mark decomposition.
	s = strings.ReplaceAll(s, "đ", "d")

	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark, dropped
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// SlugWithSuffix appends a numeric suffix for uniqueness collisions.
func SlugWithSuffix(base string, suffix int) string {
	return base + "-" + strconv.Itoa(suffix)
}
