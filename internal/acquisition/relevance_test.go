package acquisition_test

import (
	"slices"
	"testing"

	"github.com/JaimeStill/tenderboard/internal/acquisition"
)

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://contratacion.example.es/docs/PCAP.pdf", true},
		{"https://example.com/download?id=42", true},
		{"mailto:contratacion@example.es", false},
		{"https://www.facebook.com/ayuntamiento", false},
		{"https://twitter.com/share?url=x", false},
		{"https://www.linkedin.com/company/x", false},
		{"https://www.instagram.com/x", false},
		{"https://www.youtube.com/watch?v=1", false},
		{"https://youtu.be/abc", false},
		{"https://vimeo.com/1", false},
		{"https://maps.google.com/?q=plaza", false},
		{"https://www.google.com/maps/place/x", false},
		{"https://WWW.FACEBOOK.COM/x", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := acquisition.IsRelevant(tt.url); got != tt.want {
				t.Errorf("IsRelevant(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	input := []string{
		"https://a.example/1.pdf",
		" https://a.example/2.pdf ",
		"https://a.example/1.pdf",
		"",
		"mailto:x@example.com",
		"https://facebook.com/x",
		"https://a.example/3.pdf",
	}
	want := []string{
		"https://a.example/1.pdf",
		"https://a.example/2.pdf",
		"https://a.example/3.pdf",
	}

	got := acquisition.Candidates(input)
	if !slices.Equal(got, want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}

	t.Run("idempotent", func(t *testing.T) {
		if again := acquisition.Candidates(got); !slices.Equal(again, got) {
			t.Errorf("Candidates(Candidates(x)) = %v, want %v", again, got)
		}
	})

	t.Run("nil input", func(t *testing.T) {
		if got := acquisition.Candidates(nil); len(got) != 0 {
			t.Errorf("Candidates(nil) = %v, want empty", got)
		}
	})
}
