package lib

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	slugUnsafe     = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugDashes     = regexp.MustCompile(`-+`)
)

// Slugify strips diacritics and keeps ASCII letters, digits and dashes:
// "Kraft Kağıt Çanta" becomes "kraft-kagt-canta".
func Slugify(text string) string {
	decomposed := norm.NFD.String(text)
	stripped := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, decomposed)

	s := slugUnsafe.ReplaceAllString(stripped, "")
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugWhitespace.ReplaceAllString(s, "-")
	return slugDashes.ReplaceAllString(s, "-")
}
