package media

import "strings"

// PublicIDFromURL derives the host-side public id from a delivery URL: the
// path after the upload segment, minus the optional transformation and
// version segments and the file extension. Returns false for URLs that are
// not hosted uploads, so externally sourced image links are never pruned.
func PublicIDFromURL(rawURL string) (string, bool) {
	const marker = "/upload/"
	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return "", false
	}
	rest := rawURL[idx+len(marker):]
	if cut := strings.IndexAny(rest, "?#"); cut >= 0 {
		rest = rest[:cut]
	}
	rest = strings.Trim(rest, "/")

	parts := strings.Split(rest, "/")
	for len(parts) > 1 && (isVersionSegment(parts[0]) || strings.Contains(parts[0], ",")) {
		parts = parts[1:]
	}

	id := strings.Join(parts, "/")
	if dot := strings.LastIndex(id, "."); dot > strings.LastIndex(id, "/") {
		id = id[:dot]
	}
	if id == "" {
		return "", false
	}
	return id, true
}

// isVersionSegment matches the host's v<digits> upload version component.
func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
