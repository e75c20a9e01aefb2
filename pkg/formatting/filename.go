package formatting

import (
	"path"
	"strings"
	"unicode"
)

const maxFilenameLen = 200

var filenameReplacer = strings.NewReplacer(
	":", "_", "*", "_", "?", "_", "\"", "_",
	"<", "_", ">", "_", "|", "_",
)

// SanitizeFilename reduces s to a safe base filename: directory components
// are dropped, control characters removed, and reserved characters replaced
// with underscores. Returns "" when nothing usable remains.
func SanitizeFilename(s string) string {
	s = path.Base(strings.ReplaceAll(s, `\`, "/"))
	if s == "." || s == ".." || s == "/" {
		return ""
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, s)
	s = filenameReplacer.Replace(s)
	s = strings.Trim(s, " .")

	if len(s) > maxFilenameLen {
		ext := path.Ext(s)
		if len(ext) > 16 {
			ext = ""
		}
		s = strings.ToValidUTF8(s[:maxFilenameLen-len(ext)], "") + ext
	}

	return s
}
