// Package layout describes documents as a tree of sections, rows and cells
// on a 12-column grid. The tree carries no engine-specific state, so the same
// document can be handed to any renderer.
package layout

import (
	"errors"
	"fmt"
	"time"
)

// GridColumns is the number of columns a row is divided into.
const GridColumns = 12

type PageSize string

const PageA4 PageSize = "A4"

type Orientation string

const (
	Portrait  Orientation = "P"
	Landscape Orientation = "L"
)

type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Border is a bit set of cell edges.
type Border uint8

const (
	BorderTop Border = 1 << iota
	BorderRight
	BorderBottom
	BorderLeft

	BorderNone Border = 0
	BorderAll         = BorderTop | BorderRight | BorderBottom | BorderLeft
)

func (b Border) Has(edge Border) bool { return b&edge == edge }

type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

type TextStyle struct {
	Size  float64
	Bold  bool
	Color Color
	Align Align
}

type Text struct {
	Content string
	Style   TextStyle
}

type Cell struct {
	Span        int
	Texts       []Text
	Fill        *Color
	Border      Border
	BorderColor Color
}

type Row struct {
	// MinHeight in millimetres; engines grow the row to fit its text.
	MinHeight float64
	Cells     []Cell
}

type Section struct {
	Name string
	Rows []Row
}

type Margins struct {
	Left, Top, Right, Bottom float64
}

type Page struct {
	Size        PageSize
	Orientation Orientation
	Margins     Margins
	// PageNumbers is a pattern with {current} and {total} placeholders;
	// empty disables numbering.
	PageNumbers string
}

type Document struct {
	Title       string
	Author      string
	Page        Page
	Sections    []Section
	GeneratedAt time.Time
}

var ErrInvalidDocument = errors.New("invalid document")

func DefaultPage() Page {
	return Page{
		Size:        PageA4,
		Orientation: Portrait,
		Margins:     Margins{Left: 15, Top: 15, Right: 15, Bottom: 15},
		PageNumbers: "{current} / {total}",
	}
}

// Validate checks the structural rules engines rely on.
func (d *Document) Validate() error {
	if d.Page.Size == "" {
		return fmt.Errorf("%w: page size is required", ErrInvalidDocument)
	}
	for _, section := range d.Sections {
		for i, row := range section.Rows {
			span := 0
			for _, cell := range row.Cells {
				if cell.Span < 1 {
					return fmt.Errorf("%w: section %q row %d has a cell with span %d", ErrInvalidDocument, section.Name, i, cell.Span)
				}
				span += cell.Span
			}
			if span > GridColumns {
				return fmt.Errorf("%w: section %q row %d spans %d columns", ErrInvalidDocument, section.Name, i, span)
			}
		}
	}
	return nil
}

func (d *Document) Section(name string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

func (d *Document) SectionNames() []string {
	names := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		names = append(names, s.Name)
	}
	return names
}

// Texts flattens every text content in document order.
func (d *Document) Texts() []string {
	var out []string
	for _, s := range d.Sections {
		out = append(out, s.Texts()...)
	}
	return out
}

func (s Section) Texts() []string {
	var out []string
	for _, row := range s.Rows {
		for _, cell := range row.Cells {
			for _, t := range cell.Texts {
				out = append(out, t.Content)
			}
		}
	}
	return out
}
