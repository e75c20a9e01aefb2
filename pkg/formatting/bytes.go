// Package formatting holds the parsing and presentation helpers shared by
// configuration, acquisition logging and the probe CLI: byte sizes, safe
// file names and JSON objects embedded in model output.
package formatting

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const unitBase = 1024

// units are base-1024 multiples. Upload and download limits never exceed
// terabytes, so larger units are omitted.
var units = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders n with the largest unit that keeps the value at or
// above one. precision sets the decimals; negative values count as zero.
func FormatBytes(n int64, precision int) string {
	precision = max(precision, 0)

	v, i := float64(n), 0
	for math.Abs(v) >= unitBase && i < len(units)-1 {
		v /= unitBase
		i++
	}

	if i == 0 {
		return strconv.FormatInt(n, 10) + " B"
	}
	return strconv.FormatFloat(v, 'f', precision, 64) + " " + units[i]
}

// ParseBytes reads sizes such as "50MB", "1.5 gb", "512B" or a bare byte
// count. Units are case-insensitive and the IEC spellings (KiB, MiB, ...)
// are accepted as synonyms.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	number, unit := s, ""
	if split >= 0 {
		number, unit = s[:split], strings.TrimSpace(s[split:])
	}
	if number == "" {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number: %w", err)
	}

	exp, err := unitExponent(unit)
	if err != nil {
		return 0, err
	}

	return int64(value * math.Pow(unitBase, float64(exp))), nil
}

func unitExponent(unit string) (int, error) {
	u := strings.ToUpper(unit)
	if u == "" {
		return 0, nil
	}
	if len(u) == 3 && u[1] == 'I' {
		u = u[:1] + u[2:]
	}
	for i, name := range units {
		if u == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown byte size unit: %q", unit)
}
