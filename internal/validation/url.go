package validation

import "strings"

// wikipediaMarkers are matched as substrings, not parsed. A non-Wikipedia
// host that happens to contain a marker is accepted.
var wikipediaMarkers = []string{
	"wikipedia.org/wiki/",
	"en.wikipedia.org/wiki/",
	"en.m.wikipedia.org/wiki/",
}

// IsWikipediaURL reports whether url looks like a Wikipedia article URL.
func IsWikipediaURL(url string) bool {
	for _, marker := range wikipediaMarkers {
		if strings.Contains(url, marker) {
			return true
		}
	}
	return false
}
