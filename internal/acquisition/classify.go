package acquisition

import (
	"path"
	"strings"
)

// Category labels a tender document.
type Category string

const (
	CategoryAdmin   Category = "ADMIN"
	CategoryTech    Category = "TECH"
	CategoryUnknown Category = "UNKNOWN"
)

// ClassifiedFile pairs a downloaded file with its category.
type ClassifiedFile struct {
	File     *File    `json:"file"`
	Category Category `json:"category"`
}

// Keywords are matched against Normalize output, so they carry no accents.
var (
	adminFileKeywords = []string{
		"clausula",
		"administrativ",
		"caratula",
		"juridic",
		"pcap",
	}

	techFileKeywords = []string{
		"prescripcion",
		"tecnic",
		"memoria",
		"proyecto",
		"ppt",
	}

	adminLinkKeywords = append([]string{
		"bases",
		"anexo",
		"administr",
	}, adminFileKeywords...)

	techLinkKeywords = append([]string{
		"especificacion",
	}, techFileKeywords...)
)

// ClassifyFilename labels a file by its base name. Administrative keywords
// take precedence over technical ones.
func ClassifyFilename(name string) Category {
	base := Normalize(path.Base(strings.ReplaceAll(name, `\`, "/")))

	switch {
	case containsAny(base, adminFileKeywords):
		return CategoryAdmin
	case containsAny(base, techFileKeywords):
		return CategoryTech
	default:
		return CategoryUnknown
	}
}

// LinkContext carries the searchable parts of an HTML anchor.
type LinkContext struct {
	Text      string
	Title     string
	AriaLabel string
	ID        string
	Class     string
	Href      string
}

// String joins every part of the anchor into one normalized search string.
func (lc LinkContext) String() string {
	return Normalize(strings.Join([]string{
		lc.Text,
		lc.Title,
		lc.AriaLabel,
		lc.ID,
		lc.Class,
		lc.Href,
	}, " "))
}

// ClassifyLink applies the link keyword sets to the combined anchor context.
// Both flags may be true; callers decide precedence.
func ClassifyLink(lc LinkContext) (isAdmin, isTech bool) {
	s := lc.String()
	return containsAny(s, adminLinkKeywords), containsAny(s, techLinkKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
