package analysis

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Document is a file attached to a service call.
type Document struct {
	Label       string
	Name        string
	ContentType string
	Data        []byte
}

// IsPDF reports whether the document can be sent as a PDF block.
func (d Document) IsPDF() bool {
	return strings.Contains(d.ContentType, "pdf") ||
		strings.HasSuffix(strings.ToLower(d.Name), ".pdf")
}

// Completion is one request to the language model.
type Completion struct {
	System    string
	Prompt    string
	Documents []Document
}

// Completer sends a completion request and returns the response text.
type Completer interface {
	Complete(ctx context.Context, req Completion) (string, error)
	Model() string
}

type anthropicCompleter struct {
	cfg    *Config
	logger *slog.Logger

	once   sync.Once
	client anthropic.Client
}

// NewAnthropic creates a Completer backed by the Anthropic Messages API. The
// API key is checked on first use rather than at construction.
func NewAnthropic(cfg *Config, logger *slog.Logger) Completer {
	return &anthropicCompleter{
		cfg:    cfg,
		logger: logger.With("component", "anthropic"),
	}
}

func (c *anthropicCompleter) Model() string {
	return c.cfg.Model
}

func (c *anthropicCompleter) Complete(ctx context.Context, req Completion) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrNotConfigured
	}

	c.once.Do(func() {
		c.client = anthropic.NewClient(
			option.WithAPIKey(c.cfg.APIKey),
			option.WithRequestTimeout(c.cfg.TimeoutDuration()),
		)
	})

	blocks := make([]anthropic.ContentBlockParamUnion, 0, 2*len(req.Documents)+1)
	for _, doc := range req.Documents {
		if !doc.IsPDF() {
			c.logger.Warn("skipping non-pdf attachment", "name", doc.Name, "content_type", doc.ContentType)
			continue
		}
		blocks = append(blocks,
			anthropic.NewTextBlock(fmt.Sprintf("Documento adjunto (%s): %s", doc.Label, doc.Name)),
			anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
				Data: base64.StdEncoding.EncodeToString(doc.Data),
			}),
		)
	}
	blocks = append(blocks, anthropic.NewTextBlock(req.Prompt))

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.Model),
		MaxTokens: c.cfg.MaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: req.System, CacheControl: anthropic.NewCacheControlEphemeralParam()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	c.logger.Info("completion finished",
		"model", c.cfg.Model,
		"tokens_in", message.Usage.InputTokens,
		"tokens_out", message.Usage.OutputTokens,
	)

	for _, block := range message.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", ErrEmptyResponse
}
