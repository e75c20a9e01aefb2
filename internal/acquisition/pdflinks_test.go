package acquisition_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/tenderboard/internal/acquisition"
)

// buildPDF writes a single-page PDF whose page carries the given annotation
// dictionaries, with a correct cross-reference table.
func buildPDF(annots ...string) []byte {
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
	}

	refs := make([]string, len(annots))
	for i := range annots {
		refs[i] = fmt.Sprintf("%d 0 R", 4+i)
	}
	objs = append(objs, fmt.Sprintf(
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> /Annots [%s] >>",
		strings.Join(refs, " "),
	))
	objs = append(objs, annots...)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	return buf.Bytes()
}

func uriAnnot(uri string) string {
	return fmt.Sprintf("<< /Type /Annot /Subtype /Link /Rect [0 0 100 20] /A << /S /URI /URI (%s) >> >>", uri)
}

func TestLinkExtractor(t *testing.T) {
	extractor := acquisition.NewLinkExtractor(discardLogger())

	t.Run("collects unique absolute uris", func(t *testing.T) {
		hexURI := hex.EncodeToString([]byte("https://tenders.example/hex.pdf"))
		pdf := buildPDF(
			uriAnnot("https://tenders.example/PCAP.pdf"),
			uriAnnot("https://tenders.example/PPT.pdf"),
			uriAnnot("https://tenders.example/PCAP.pdf"),
			uriAnnot("relative/doc.pdf"),
			"<< /Type /Annot /Subtype /Text /Rect [0 0 10 10] /Contents (note) >>",
			"<< /Type /Annot /Subtype /Link /Rect [0 0 10 10] /A << /S /GoTo /D [3 0 R /Fit] >> >>",
			fmt.Sprintf("<< /Type /Annot /Subtype /Link /Rect [0 0 10 10] /A << /S /URI /URI <%s> >> >>", hexURI),
		)

		got := extractor.Extract(context.Background(), bytes.NewReader(pdf))
		want := []string{
			"https://tenders.example/PCAP.pdf",
			"https://tenders.example/PPT.pdf",
			"https://tenders.example/hex.pdf",
		}
		if !slices.Equal(got, want) {
			t.Errorf("Extract = %v, want %v", got, want)
		}
	})

	t.Run("no annotations", func(t *testing.T) {
		got := extractor.Extract(context.Background(), bytes.NewReader(buildPDF()))
		if got == nil || len(got) != 0 {
			t.Errorf("Extract = %#v, want empty non-nil slice", got)
		}
	})

	t.Run("malformed input", func(t *testing.T) {
		got := extractor.Extract(context.Background(), strings.NewReader("this is not a pdf"))
		if got == nil || len(got) != 0 {
			t.Errorf("Extract = %#v, want empty non-nil slice", got)
		}
	})
}
