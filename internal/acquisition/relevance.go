package acquisition

import "strings"

var deniedFragments = []string{
	"facebook",
	"twitter",
	"linkedin",
	"instagram",
	"tiktok",
	"whatsapp",
	"youtube",
	"youtu.be",
	"vimeo",
	"maps.",
	"google.com/maps",
	"goo.gl/maps",
}

// IsRelevant reports whether a discovered URL is worth probing. Mail links
// and social, map, and video hosts never serve tender documents.
func IsRelevant(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	if strings.Contains(lower, "mailto:") {
		return false
	}
	for _, fragment := range deniedFragments {
		if strings.Contains(lower, fragment) {
			return false
		}
	}
	return true
}

// Candidates trims, deduplicates (keeping first occurrences in order), and
// filters urls through IsRelevant. Applying it to its own output is a no-op.
func Candidates(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))

	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}

		if IsRelevant(u) {
			out = append(out, u)
		}
	}

	return out
}
