package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/rs/zerolog"

	"github.com/nurpe/quote-studio/internal/fonts"
	"github.com/nurpe/quote-studio/internal/layout"
)

// MarotoEngine maps the document tree onto maroto's 12-column grid.
// Maroto breaks pages itself.
type MarotoEngine struct {
	fonts *fonts.Resolver
	log   zerolog.Logger
}

func NewMarotoEngine(resolver *fonts.Resolver, log zerolog.Logger) *MarotoEngine {
	return &MarotoEngine{fonts: resolver, log: log}
}

func (e *MarotoEngine) Render(ctx context.Context, doc *layout.Document) ([]byte, error) {
	set, err := prepare(ctx, e.fonts, doc)
	if err != nil {
		return nil, err
	}

	page := doc.Page
	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(page.Margins.Left).
		WithTopMargin(page.Margins.Top).
		WithRightMargin(page.Margins.Right).
		WithBottomMargin(page.Margins.Bottom).
		WithTitle(doc.Title, true).
		WithAuthor(doc.Author, true).
		WithCreator("quote-studio", true)
	if page.Orientation == layout.Landscape {
		builder = builder.WithOrientation(orientation.Horizontal)
	}
	if !doc.GeneratedAt.IsZero() {
		builder = builder.WithCreationDate(doc.GeneratedAt)
	}
	if page.PageNumbers != "" {
		builder = builder.WithPageNumber(props.PageNumber{
			Pattern: page.PageNumbers,
			Place:   props.Bottom,
			Size:    8,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		})
	}

	family := fontfamily.Helvetica
	if !set.Core() {
		custom, err := repository.New().
			AddUTF8FontFromBytes(set.Family, fontstyle.Normal, set.Regular).
			AddUTF8FontFromBytes(set.Family, fontstyle.Bold, set.BoldOrRegular()).
			Load()
		if err != nil {
			return nil, fmt.Errorf("load fonts into maroto: %w", err)
		}
		family = set.Family
		builder = builder.WithCustomFonts(custom)
	}
	builder = builder.WithDefaultFont(&props.Font{Family: family, Size: 10})

	w, _ := pageDimensions(page)
	colWidth := (w - page.Margins.Left - page.Margins.Right) / layout.GridColumns

	m := maroto.New(builder.Build())
	for _, section := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, r := range section.Rows {
			m.AddRows(marotoRow(r, family, colWidth))
		}
	}

	out, err := m.Generate()
	if err != nil {
		e.log.Error().Err(err).Str("title", doc.Title).Msg("maroto generate failed")
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return out.GetBytes(), nil
}

func marotoRow(r layout.Row, family string, colWidth float64) core.Row {
	height := r.MinHeight
	cols := make([]core.Col, 0, len(r.Cells))
	for _, cell := range r.Cells {
		width := float64(cell.Span) * colWidth
		c := col.New(cell.Span)
		top := 1.0
		for _, t := range cell.Texts {
			c.Add(text.New(t.Content, marotoText(t.Style, family, top)))
			top += float64(estimateLines(t.Content, t.Style.Size, width)) * lineHeight(t.Style.Size)
		}
		if top+1 > height {
			height = top + 1
		}
		if style := marotoCell(cell); style != nil {
			c.WithStyle(style)
		}
		cols = append(cols, c)
	}
	if height <= 0 {
		height = 1
	}
	return row.New(height).Add(cols...)
}

func marotoText(style layout.TextStyle, family string, top float64) props.Text {
	weight := fontstyle.Normal
	if style.Bold {
		weight = fontstyle.Bold
	}
	return props.Text{
		Family: family,
		Style:  weight,
		Size:   style.Size,
		Align:  marotoAlign(style.Align),
		Color:  marotoColor(style.Color),
		Top:    top,
		Left:   cellPadding,
		Right:  cellPadding,
	}
}

func marotoCell(cell layout.Cell) *props.Cell {
	if cell.Fill == nil && cell.Border == layout.BorderNone {
		return nil
	}
	style := &props.Cell{BorderType: marotoBorder(cell.Border)}
	if cell.Fill != nil {
		style.BackgroundColor = marotoColor(*cell.Fill)
	}
	if cell.Border != layout.BorderNone {
		style.BorderColor = marotoColor(cell.BorderColor)
		style.BorderThickness = 0.2
	}
	return style
}

// marotoBorder maps edge flags onto the single border type maroto supports
// per cell. Mixed edges draw the full box.
func marotoBorder(b layout.Border) border.Type {
	switch b {
	case layout.BorderNone:
		return border.None
	case layout.BorderTop:
		return border.Top
	case layout.BorderBottom:
		return border.Bottom
	case layout.BorderLeft:
		return border.Left
	case layout.BorderRight:
		return border.Right
	default:
		return border.Full
	}
}

func marotoAlign(a layout.Align) align.Type {
	switch a {
	case layout.AlignCenter:
		return align.Center
	case layout.AlignRight:
		return align.Right
	default:
		return align.Left
	}
}

func marotoColor(c layout.Color) *props.Color {
	return &props.Color{Red: int(c.R), Green: int(c.G), Blue: int(c.B)}
}
