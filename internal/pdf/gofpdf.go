package pdf

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"github.com/nurpe/quote-studio/internal/fonts"
	"github.com/nurpe/quote-studio/internal/layout"
)

const footerReserve = 6

// GofpdfEngine draws the document tree with manual row layout and explicit
// page breaks.
type GofpdfEngine struct {
	fonts *fonts.Resolver
	log   zerolog.Logger
}

func NewGofpdfEngine(resolver *fonts.Resolver, log zerolog.Logger) *GofpdfEngine {
	return &GofpdfEngine{fonts: resolver, log: log}
}

type gofpdfPage struct {
	pdf    *gofpdf.Fpdf
	family string
	tr     func(string) string

	left, top, bottom float64
	colWidth          float64
}

func (e *GofpdfEngine) Render(ctx context.Context, doc *layout.Document) ([]byte, error) {
	set, err := prepare(ctx, e.fonts, doc)
	if err != nil {
		return nil, err
	}

	page := doc.Page
	pdf := gofpdf.New(string(page.Orientation), "mm", string(page.Size), "")
	pdf.SetMargins(page.Margins.Left, page.Margins.Top, page.Margins.Right)
	pdf.SetAutoPageBreak(false, page.Margins.Bottom)
	pdf.SetCellMargin(cellPadding)
	pdf.SetCatalogSort(true)
	if !doc.GeneratedAt.IsZero() {
		pdf.SetCreationDate(doc.GeneratedAt)
		pdf.SetModificationDate(doc.GeneratedAt)
	}
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator("quote-studio", true)

	p := &gofpdfPage{pdf: pdf, family: set.Family, tr: func(s string) string { return s }}
	if set.Core() {
		p.tr = pdf.UnicodeTranslatorFromDescriptor("")
	} else {
		pdf.AddUTF8FontFromBytes(set.Family, "", set.Regular)
		pdf.AddUTF8FontFromBytes(set.Family, "B", set.BoldOrRegular())
	}
	if err := pdf.Error(); err != nil {
		return nil, err
	}

	w, h := pageDimensions(page)
	p.left = page.Margins.Left
	p.top = page.Margins.Top
	p.bottom = h - page.Margins.Bottom
	p.colWidth = (w - page.Margins.Left - page.Margins.Right) / layout.GridColumns

	if page.PageNumbers != "" {
		p.bottom -= footerReserve
		pdf.AliasNbPages("")
		pdf.SetFooterFunc(func() {
			label := strings.NewReplacer("{current}", strconv.Itoa(pdf.PageNo()), "{total}", "{nb}").Replace(page.PageNumbers)
			pdf.SetFont(p.family, "", 8)
			pdf.SetTextColor(120, 120, 120)
			pdf.SetXY(p.left, h-page.Margins.Bottom)
			pdf.CellFormat(p.colWidth*layout.GridColumns, 5, p.tr(label), "", 0, "C", false, 0, "")
		})
	}

	pdf.AddPage()
	for _, section := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, row := range section.Rows {
			p.drawRow(row)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		e.log.Error().Err(err).Str("title", doc.Title).Msg("gofpdf output failed")
		return nil, err
	}
	return buf.Bytes(), nil
}

type wrappedText struct {
	text  layout.Text
	lines []string
}

func (p *gofpdfPage) setFont(style layout.TextStyle) {
	weight := ""
	if style.Bold {
		weight = "B"
	}
	p.pdf.SetFont(p.family, weight, style.Size)
}

func (p *gofpdfPage) drawRow(row layout.Row) {
	cells := make([][]wrappedText, len(row.Cells))
	height := row.MinHeight
	for i, cell := range row.Cells {
		width := float64(cell.Span) * p.colWidth
		contentHeight := 0.0
		for _, t := range cell.Texts {
			p.setFont(t.Style)
			lines := p.wrap(t.Content, width-2*cellPadding)
			cells[i] = append(cells[i], wrappedText{text: t, lines: lines})
			contentHeight += float64(len(lines)) * lineHeight(t.Style.Size)
		}
		if contentHeight+2 > height {
			height = contentHeight + 2
		}
	}

	if height > p.bottom-p.top {
		p.drawSplitRow(row, cells)
		return
	}

	y := p.pdf.GetY()
	if y+height > p.bottom && y > p.top {
		p.pdf.AddPage()
		y = p.pdf.GetY()
	}

	x := p.left
	for i, cell := range row.Cells {
		width := float64(cell.Span) * p.colWidth
		if cell.Fill != nil {
			p.pdf.SetFillColor(int(cell.Fill.R), int(cell.Fill.G), int(cell.Fill.B))
			p.pdf.Rect(x, y, width, height, "F")
		}
		p.drawBorders(cell, x, y, width, height)

		contentHeight := 0.0
		for _, wt := range cells[i] {
			contentHeight += float64(len(wt.lines)) * lineHeight(wt.text.Style.Size)
		}
		cy := y + (height-contentHeight)/2
		for _, wt := range cells[i] {
			p.setFont(wt.text.Style)
			c := wt.text.Style.Color
			p.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
			lh := lineHeight(wt.text.Style.Size)
			for _, line := range wt.lines {
				p.pdf.SetXY(x, cy)
				p.pdf.CellFormat(width, lh, p.tr(line), "", 0, string(wt.text.Style.Align), false, 0, "")
				cy += lh
			}
		}
		x += width
	}
	p.pdf.SetXY(p.left, y+height)
}

type wrappedLine struct {
	style layout.TextStyle
	text  string
}

// drawSplitRow draws a row taller than a page. Each page gets the lines
// that fit below the cursor, top aligned, and the rest continues on the
// next page.
func (p *gofpdfPage) drawSplitRow(row layout.Row, cells [][]wrappedText) {
	pending := make([][]wrappedLine, len(cells))
	for i, texts := range cells {
		for _, wt := range texts {
			for _, line := range wt.lines {
				pending[i] = append(pending[i], wrappedLine{style: wt.text.Style, text: line})
			}
		}
	}

	for {
		y := p.pdf.GetY()
		avail := p.bottom - y - 2
		take := make([]int, len(pending))
		segment := 0.0
		for i, lines := range pending {
			used := 0.0
			for _, line := range lines {
				lh := lineHeight(line.style.Size)
				if used+lh > avail {
					break
				}
				used += lh
				take[i]++
			}
			segment = max(segment, used)
		}
		if segment == 0 {
			if y > p.top {
				p.pdf.AddPage()
				continue
			}
			// a single line taller than the page still advances
			for i := range pending {
				if len(pending[i]) > 0 {
					take[i] = 1
					segment = max(segment, lineHeight(pending[i][0].style.Size))
				}
			}
		}
		height := segment + 2

		x := p.left
		for i, cell := range row.Cells {
			width := float64(cell.Span) * p.colWidth
			if cell.Fill != nil {
				p.pdf.SetFillColor(int(cell.Fill.R), int(cell.Fill.G), int(cell.Fill.B))
				p.pdf.Rect(x, y, width, height, "F")
			}
			p.drawBorders(cell, x, y, width, height)

			cy := y + 1
			for _, line := range pending[i][:take[i]] {
				p.setFont(line.style)
				c := line.style.Color
				p.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
				lh := lineHeight(line.style.Size)
				p.pdf.SetXY(x, cy)
				p.pdf.CellFormat(width, lh, p.tr(line.text), "", 0, string(line.style.Align), false, 0, "")
				cy += lh
			}
			pending[i] = pending[i][take[i]:]
			x += width
		}
		p.pdf.SetXY(p.left, y+height)

		done := true
		for _, lines := range pending {
			if len(lines) > 0 {
				done = false
				break
			}
		}
		if done {
			return
		}
		p.pdf.AddPage()
	}
}

func (p *gofpdfPage) drawBorders(cell layout.Cell, x, y, w, h float64) {
	if cell.Border == layout.BorderNone {
		return
	}
	c := cell.BorderColor
	p.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	p.pdf.SetLineWidth(0.2)
	if cell.Border.Has(layout.BorderTop) {
		p.pdf.Line(x, y, x+w, y)
	}
	if cell.Border.Has(layout.BorderBottom) {
		p.pdf.Line(x, y+h, x+w, y+h)
	}
	if cell.Border.Has(layout.BorderLeft) {
		p.pdf.Line(x, y, x, y+h)
	}
	if cell.Border.Has(layout.BorderRight) {
		p.pdf.Line(x+w, y, x+w, y+h)
	}
}

// wrap breaks content into lines no wider than width using the current
// font. Words longer than a line are split by rune.
func (p *gofpdfPage) wrap(content string, width float64) []string {
	if content == "" {
		return []string{""}
	}
	fits := func(s string) bool { return p.pdf.GetStringWidth(p.tr(s)) <= width }

	var lines []string
	for _, paragraph := range strings.Split(content, "\n") {
		line := ""
		for _, word := range strings.Fields(paragraph) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if fits(candidate) {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			for !fits(word) {
				cut := splitPoint(word, fits)
				lines = append(lines, word[:cut])
				word = word[cut:]
			}
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

// splitPoint returns the byte offset of the longest rune prefix of word
// that fits, and at least one rune.
func splitPoint(word string, fits func(string) bool) int {
	cut := 0
	for i := range word {
		if i > 0 && !fits(word[:i]) {
			break
		}
		cut = i
	}
	if cut == 0 {
		for i := range word {
			if i > 0 {
				return i
			}
		}
		return len(word)
	}
	return cut
}
