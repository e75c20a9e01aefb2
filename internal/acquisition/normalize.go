package acquisition

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s and strips diacritical marks so that "Técnico" and
// "tecnico" compare equal. Lowercasing happens before decomposition so that
// characters whose lowercase form carries a combining mark fold as well.
func Normalize(s string) string {
	lowered := strings.ToLower(s)

	// transform chains hold state and are not safe for concurrent reuse.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lowered)
	if err != nil {
		return lowered
	}
	return folded
}
