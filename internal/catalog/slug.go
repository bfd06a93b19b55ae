package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugFolder strips diacritics so "Schmürz Gauge" slugs the same as
// "Schmurz Gauge".
var slugFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe identifier from a title: lowercase, diacritics
// folded, non-alphanumeric runs collapsed to a single hyphen, leading and
// trailing hyphens stripped. A stored slug always wins over a derived one;
// this is only the fallback for records created without an explicit slug.
func Slugify(title string) string {
	folded, _, err := transform.String(slugFolder, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	b.Grow(len(folded))
	pending := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// CategoryNameFromRoute decodes a category route segment back into a display
// name for matching: hyphens become spaces, comparison is done trimmed and
// lowercased by the caller. "paper-testing-equipment" -> "paper testing equipment".
func CategoryNameFromRoute(segment string) string {
	return strings.ReplaceAll(segment, "-", " ")
}

// titleFold normalises a name-join key: trimmed and lowercased.
func titleFold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
