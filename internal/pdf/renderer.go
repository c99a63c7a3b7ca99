package pdf

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/nurpe/quote-studio/internal/fonts"
	"github.com/nurpe/quote-studio/internal/layout"
)

// Renderer turns a document tree into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, doc *layout.Document) ([]byte, error)
}

type Engine string

const (
	EngineGofpdf Engine = "gofpdf"
	EngineMaroto Engine = "maroto"
)

func NewRenderer(engine Engine, resolver *fonts.Resolver, log zerolog.Logger) (Renderer, error) {
	switch Engine(strings.ToLower(string(engine))) {
	case EngineGofpdf, "":
		return NewGofpdfEngine(resolver, log), nil
	case EngineMaroto:
		return NewMarotoEngine(resolver, log), nil
	default:
		return nil, fmt.Errorf("unknown pdf engine %q", engine)
	}
}

const (
	// mmPerPoint converts font sizes to millimetres.
	mmPerPoint  = 25.4 / 72
	lineSpacing = 1.3
	cellPadding = 1.5
)

func lineHeight(size float64) float64 {
	return size * mmPerPoint * lineSpacing
}

func pageDimensions(p layout.Page) (w, h float64) {
	// A4 is the only supported size.
	w, h = 210, 297
	if p.Orientation == layout.Landscape {
		w, h = h, w
	}
	return w, h
}

func prepare(ctx context.Context, resolver *fonts.Resolver, doc *layout.Document) (fonts.Set, error) {
	if doc == nil {
		return fonts.Set{}, fmt.Errorf("%w: document is nil", layout.ErrInvalidDocument)
	}
	if err := doc.Validate(); err != nil {
		return fonts.Set{}, err
	}
	if resolver == nil {
		resolver = fonts.NewResolver(zerolog.Nop())
	}
	texts := doc.Texts()
	if doc.Page.PageNumbers != "" {
		texts = append(texts, doc.Page.PageNumbers)
	}
	return resolver.Resolve(ctx, texts)
}

// estimateLines approximates how many lines content wraps to in a cell of
// the given width, assuming an average glyph of half the font size and
// full width for wide runes.
func estimateLines(content string, size, width float64) int {
	if content == "" {
		return 1
	}
	avail := width - 2*cellPadding
	if avail <= 0 {
		return 1
	}
	total := 0
	for _, part := range strings.Split(content, "\n") {
		units := 0.0
		for _, r := range part {
			if utf8.RuneLen(r) > 2 {
				units += 1
			} else {
				units += 0.5
			}
		}
		n := int(math.Ceil(units * size * mmPerPoint / avail))
		if n < 1 {
			n = 1
		}
		total += n
	}
	return total
}
