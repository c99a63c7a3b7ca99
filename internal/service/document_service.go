package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/nurpe/quote-studio/internal/layout"
	"github.com/nurpe/quote-studio/internal/model"
	"github.com/nurpe/quote-studio/internal/quote"
	"github.com/nurpe/quote-studio/internal/styles"
)

type Renderer interface {
	Render(ctx context.Context, doc *layout.Document) ([]byte, error)
}

type SpreadsheetGenerator interface {
	Generate(q model.Quotation) ([]byte, error)
}

type DocumentService struct {
	catalog  *styles.Catalog
	renderer Renderer
	excel    SpreadsheetGenerator
	company  model.CompanyInfo
	now      func() time.Time
	log      zerolog.Logger
}

type GenerateResult struct {
	FileName    string
	Content     []byte
	QuoteNumber string
	Style       styles.Name
	GeneratedAt time.Time
}

func NewDocumentService(
	catalog *styles.Catalog,
	renderer Renderer,
	excel SpreadsheetGenerator,
	company model.CompanyInfo,
	now func() time.Time,
	log zerolog.Logger,
) *DocumentService {
	if now == nil {
		now = time.Now
	}
	return &DocumentService{
		catalog:  catalog,
		renderer: renderer,
		excel:    excel,
		company:  company,
		now:      now,
		log:      log,
	}
}

// Check reports whether q can be rendered with style without starting any
// work.
func (s *DocumentService) Check(q model.Quotation, style styles.Name) error {
	if !style.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidInput, styles.ErrUnknownStyle, style)
	}
	if !q.IsComplete() {
		return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(q.Missing(), ", "))
	}
	return nil
}

// Generate renders q as a PDF in the given style.
func (s *DocumentService) Generate(ctx context.Context, q model.Quotation, style styles.Name) (*GenerateResult, error) {
	if err := s.Check(q, style); err != nil {
		return nil, err
	}

	now := s.now()
	q.QuoteNumber = quote.Number(now)

	doc, err := s.catalog.Build(style, q, s.company)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	doc.GeneratedAt = now

	started := time.Now()
	content, err := s.renderer.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	s.log.Info().
		Str("quote_number", q.QuoteNumber).
		Str("style", string(style)).
		Int("bytes", len(content)).
		Dur("took", time.Since(started)).
		Msg("document rendered")

	label := s.catalog.LabelsFor(style).DocLabel
	return &GenerateResult{
		FileName:    buildFileName(label, q, string(style), now, "pdf"),
		Content:     content,
		QuoteNumber: q.QuoteNumber,
		Style:       style,
		GeneratedAt: now,
	}, nil
}

// ExportSpreadsheet writes q as an xlsx workbook.
func (s *DocumentService) ExportSpreadsheet(_ context.Context, q model.Quotation) (*GenerateResult, error) {
	if !q.IsComplete() {
		return nil, fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(q.Missing(), ", "))
	}

	now := s.now()
	q.QuoteNumber = quote.Number(now)

	content, err := s.excel.Generate(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return &GenerateResult{
		FileName:    buildFileName(s.catalog.Labels().DocLabel, q, "", now, "xlsx"),
		Content:     content,
		QuoteNumber: q.QuoteNumber,
		GeneratedAt: now,
	}, nil
}

// Styles lists the available styles with their descriptions.
func (s *DocumentService) Styles() []styles.Description {
	return s.catalog.Descriptions()
}

func buildFileName(label string, q model.Quotation, style string, now time.Time, ext string) string {
	customer := ""
	if q.Customer != nil {
		customer = sanitizeFileName(q.Customer.CompanyName)
	}
	if customer == "" {
		customer = "customer"
	}
	parts := []string{sanitizeFileName(label), customer}
	if style != "" {
		parts = append(parts, style)
	}
	parts = append(parts, now.UTC().Format("2006-01-02"))
	return fmt.Sprintf("%s.%s", strings.Join(parts, "_"), ext)
}

// sanitizeFileName keeps letters and digits of any script.
func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
