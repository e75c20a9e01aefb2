package intake_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"

	"github.com/JaimeStill/tenderboard/internal/acquisition"
	"github.com/JaimeStill/tenderboard/internal/analysis"
	"github.com/JaimeStill/tenderboard/internal/intake"
	"github.com/JaimeStill/tenderboard/internal/staging"
	"github.com/JaimeStill/tenderboard/pkg/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeAcquisition struct {
	mu        sync.Mutex
	links     []string
	probed    []string
	probe     acquisition.ProbeResult
	scraped   []string
	scrape    acquisition.ScrapedLinks
	downloads map[string]*acquisition.File
}

func (f *fakeAcquisition) Download(_ context.Context, rawURL, _ string) acquisition.Outcome[*acquisition.File] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if file, ok := f.downloads[rawURL]; ok {
		return acquisition.Found(file)
	}
	return acquisition.NotFound[*acquisition.File]()
}

func (f *fakeAcquisition) ExtractLinks(context.Context, []byte) []string {
	return f.links
}

func (f *fakeAcquisition) Scrape(_ context.Context, pageURL string) acquisition.ScrapedLinks {
	f.scraped = append(f.scraped, pageURL)
	return f.scrape
}

func (f *fakeAcquisition) Probe(_ context.Context, urls []string, progress acquisition.ProgressFunc) acquisition.ProbeResult {
	f.probed = urls
	if progress != nil {
		n := len(acquisition.Candidates(urls))
		progress(n, n)
	}
	return f.probe
}

type fakeAnalysis struct {
	extractFn func(ctx context.Context, doc analysis.Document) (*analysis.Extraction, error)
}

func (f *fakeAnalysis) Extract(ctx context.Context, doc analysis.Document) (*analysis.Extraction, error) {
	return f.extractFn(ctx, doc)
}

func (f *fakeAnalysis) Analyze(context.Context, analysis.AnalyzeRequest) (*analysis.Report, error) {
	return nil, errors.New("not used")
}

type fakeStaging struct {
	mu    sync.Mutex
	n     int
	files map[string][]byte
	fail  bool
}

func newFakeStaging() *fakeStaging {
	return &fakeStaging{files: make(map[string][]byte)}
}

func (f *fakeStaging) Handler(maxUploadSize int64) *staging.Handler {
	return staging.NewHandler(f, discardLogger(), maxUploadSize)
}

func (f *fakeStaging) Stage(_ context.Context, cmd staging.StageCommand) (*staging.StoredFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("store unavailable")
	}
	f.n++
	key := fmt.Sprintf("staging/%d/%s", f.n, cmd.Filename)
	f.files[key] = cmd.Data
	return &staging.StoredFile{
		Key:         key,
		Filename:    cmd.Filename,
		ContentType: cmd.ContentType,
		SizeBytes:   int64(len(cmd.Data)),
		SourceURL:   cmd.SourceURL,
	}, nil
}

func (f *fakeStaging) Open(_ context.Context, key string) (*storage.BlobResult, error) {
	data, err := f.Read(context.Background(), key)
	if err != nil {
		return nil, err
	}
	return &storage.BlobResult{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeStaging) Read(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[key]
	if !ok {
		return nil, staging.ErrNotFound
	}
	return data, nil
}

func (f *fakeStaging) Discard(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, key)
	return nil
}

func pdfFile(name, source string) *acquisition.File {
	return &acquisition.File{
		Name:        name,
		ContentType: "application/pdf",
		SourceURL:   source,
		Data:        []byte("%PDF-1.7 " + name),
	}
}

func summaryRequest() intake.Request {
	return intake.Request{
		Filename:    "resumen.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.7 resumen"),
	}
}

func extracted(e analysis.Extraction) *fakeAnalysis {
	return &fakeAnalysis{
		extractFn: func(context.Context, analysis.Document) (*analysis.Extraction, error) {
			return &e, nil
		},
	}
}

func TestIntakeProbeFindsBoth(t *testing.T) {
	acq := &fakeAcquisition{
		links: []string{"https://host.es/docs/ppt.pdf", "mailto:info@host.es"},
		probe: acquisition.ProbeResult{
			Admin: pdfFile("PCAP.pdf", "https://host.es/docs/pcap.pdf"),
			Tech:  pdfFile("PPT.pdf", "https://host.es/docs/ppt.pdf"),
		},
	}
	an := extracted(analysis.Extraction{
		Name:     "Servicio de limpieza",
		Budget:   "80.000 €",
		AdminURL: "https://host.es/docs/pcap.pdf",
	})
	stg := newFakeStaging()

	sys := intake.New(acq, an, stg, discardLogger())
	draft, err := sys.Intake(context.Background(), summaryRequest())
	if err != nil {
		t.Fatalf("Intake: %v", err)
	}

	want := []string{"https://host.es/docs/pcap.pdf", "https://host.es/docs/ppt.pdf", "mailto:info@host.es"}
	if !slices.Equal(acq.probed, want) {
		t.Errorf("probed = %v, want %v", acq.probed, want)
	}
	if draft.Candidates != 2 || draft.Probed != 2 {
		t.Errorf("candidates = %d probed = %d, want 2/2", draft.Candidates, draft.Probed)
	}
	if len(acq.scraped) != 0 {
		t.Errorf("scraped %v, want no scrape when probe is complete", acq.scraped)
	}

	cmd := draft.Tender
	if cmd.Name != "Servicio de limpieza" || cmd.Budget != "80.000 €" {
		t.Errorf("metadata = %+v", cmd)
	}
	if cmd.SummaryFile == nil || cmd.AdminFile == nil || cmd.TechFile == nil {
		t.Fatalf("files = %v %v %v", cmd.SummaryFile, cmd.AdminFile, cmd.TechFile)
	}
	if cmd.TechURL != "https://host.es/docs/ppt.pdf" {
		t.Errorf("tech url = %q, want source of probed file", cmd.TechURL)
	}
	if draft.AdminFrom != intake.SourceProbe || draft.TechFrom != intake.SourceProbe {
		t.Errorf("sources = %q %q", draft.AdminFrom, draft.TechFrom)
	}
	if err := cmd.Validate(); err != nil {
		t.Errorf("draft is not a valid create command: %v", err)
	}
	if len(stg.files) != 3 {
		t.Errorf("staged %d files, want 3", len(stg.files))
	}
}

func TestIntakeFallsBackToScraper(t *testing.T) {
	acq := &fakeAcquisition{
		scrape: acquisition.ScrapedLinks{
			AdminURL: "https://host.es/l/pcap.pdf",
			TechURL:  "https://host.es/l/ppt.pdf",
		},
		downloads: map[string]*acquisition.File{
			"https://host.es/l/pcap.pdf": pdfFile("administrativo.pdf", "https://host.es/l/pcap.pdf"),
		},
	}
	an := extracted(analysis.Extraction{
		Name:          "Obras de urbanización",
		TenderPageURL: "https://extracted.example/page",
	})

	req := summaryRequest()
	req.TenderPageURL = "https://host.es/licitacion/7"

	draft, err := intake.New(acq, an, newFakeStaging(), discardLogger()).Intake(context.Background(), req)
	if err != nil {
		t.Fatalf("Intake: %v", err)
	}

	if !slices.Equal(acq.scraped, []string{"https://host.es/licitacion/7"}) {
		t.Errorf("scraped = %v, want request url to win", acq.scraped)
	}

	cmd := draft.Tender
	if cmd.AdminFile == nil || draft.AdminFrom != intake.SourceScraper {
		t.Errorf("admin = %v from %q", cmd.AdminFile, draft.AdminFrom)
	}
	if cmd.TechFile != nil || draft.TechFrom != intake.SourceNone {
		t.Errorf("tech = %v from %q, want empty", cmd.TechFile, draft.TechFrom)
	}
	if cmd.TechURL != "https://host.es/l/ppt.pdf" {
		t.Errorf("tech url = %q, want scraped guess", cmd.TechURL)
	}
}

func TestIntakeWithoutPageSkipsScraper(t *testing.T) {
	acq := &fakeAcquisition{}
	an := extracted(analysis.Extraction{Name: "Sin enlaces"})

	draft, err := intake.New(acq, an, newFakeStaging(), discardLogger()).Intake(context.Background(), summaryRequest())
	if err != nil {
		t.Fatalf("Intake: %v", err)
	}
	if len(acq.scraped) != 0 {
		t.Errorf("scraped = %v", acq.scraped)
	}
	if draft.Tender.AdminFile != nil || draft.Tender.TechFile != nil {
		t.Error("expected empty document slots")
	}
	if draft.Links == nil {
		t.Error("links should be an empty list, not nil")
	}
}

func TestIntakeErrors(t *testing.T) {
	t.Run("extraction failure discards summary", func(t *testing.T) {
		an := &fakeAnalysis{
			extractFn: func(context.Context, analysis.Document) (*analysis.Extraction, error) {
				return nil, analysis.ErrNotConfigured
			},
		}
		stg := newFakeStaging()

		_, err := intake.New(&fakeAcquisition{}, an, stg, discardLogger()).Intake(context.Background(), summaryRequest())
		if !errors.Is(err, intake.ErrExtraction) || !errors.Is(err, analysis.ErrNotConfigured) {
			t.Fatalf("err = %v", err)
		}
		if len(stg.files) != 0 {
			t.Errorf("staged files left behind: %d", len(stg.files))
		}
		if got := intake.MapHTTPStatus(err); got != 503 {
			t.Errorf("status = %d, want 503", got)
		}
	})

	t.Run("empty summary", func(t *testing.T) {
		req := summaryRequest()
		req.Data = nil
		_, err := intake.New(&fakeAcquisition{}, extracted(analysis.Extraction{Name: "x"}), newFakeStaging(), discardLogger()).Intake(context.Background(), req)
		if !errors.Is(err, intake.ErrNoSummary) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("invalid page url", func(t *testing.T) {
		req := summaryRequest()
		req.TenderPageURL = "javascript:void(0)"
		_, err := intake.New(&fakeAcquisition{}, extracted(analysis.Extraction{Name: "x"}), newFakeStaging(), discardLogger()).Intake(context.Background(), req)
		if !errors.Is(err, intake.ErrInvalidURL) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("staging failure", func(t *testing.T) {
		stg := newFakeStaging()
		stg.fail = true
		_, err := intake.New(&fakeAcquisition{}, extracted(analysis.Extraction{Name: "x"}), stg, discardLogger()).Intake(context.Background(), summaryRequest())
		if !errors.Is(err, intake.ErrStaging) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestScrape(t *testing.T) {
	acq := &fakeAcquisition{scrape: acquisition.ScrapedLinks{AdminURL: "https://host.es/pcap.pdf"}}
	sys := intake.New(acq, &fakeAnalysis{}, newFakeStaging(), discardLogger())

	links, err := sys.Scrape(context.Background(), "https://host.es/licitacion")
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if links.AdminURL != "https://host.es/pcap.pdf" {
		t.Errorf("links = %+v", links)
	}

	if _, err := sys.Scrape(context.Background(), "host.es/licitacion"); !errors.Is(err, intake.ErrInvalidURL) {
		t.Errorf("relative url err = %v", err)
	}
}
