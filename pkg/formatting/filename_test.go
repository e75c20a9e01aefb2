package formatting_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/tenderboard/pkg/formatting"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "PCAP.pdf", "PCAP.pdf"},
		{"keeps spaces and accents", "Pliego Técnico.pdf", "Pliego Técnico.pdf"},
		{"drops unix directories", "../../etc/passwd", "passwd"},
		{"drops windows directories", `C:\tmp\memoria.pdf`, "memoria.pdf"},
		{"replaces reserved characters", `a:b*c?.pdf`, "a_b_c_.pdf"},
		{"removes control characters", "bad\x00name\n.pdf", "badname.pdf"},
		{"dot only", ".", ""},
		{"empty", "", ""},
		{"trailing dots and spaces", " report. ", "report"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	t.Run("truncates long names keeping extension", func(t *testing.T) {
		got := formatting.SanitizeFilename(strings.Repeat("a", 500) + ".pdf")
		if len(got) != 200 {
			t.Errorf("len = %d, want 200", len(got))
		}
		if !strings.HasSuffix(got, ".pdf") {
			t.Errorf("got %q, want .pdf suffix", got[len(got)-8:])
		}
	})
}
