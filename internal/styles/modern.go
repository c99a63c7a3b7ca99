package styles

import (
	"github.com/nurpe/quote-studio/internal/layout"
	"github.com/nurpe/quote-studio/internal/model"
)

var modernTheme = theme{
	text:        layout.Color{R: 31, G: 41, B: 55},
	muted:       layout.Color{R: 107, G: 114, B: 128},
	accent:      layout.Color{R: 37, G: 99, B: 235},
	rule:        layout.Color{R: 229, G: 231, B: 235},
	headFill:    layout.Color{R: 243, G: 244, B: 246},
	headText:    layout.Color{R: 55, G: 65, B: 81},
	sectionText: layout.Color{R: 37, G: 99, B: 235},
	sectionRule: true,
	rowBorder:   layout.BorderBottom,
	titleSize:   24,
	bodySize:    10,
}

// modern is a minimal layout with a blue accent and hairline row rules.
func modern(q model.Quotation, c model.CompanyInfo, l Labels) *layout.Document {
	t := modernTheme
	return assemble(t, l, centeredHeader(t, l, l.Title, q, c), q, c, Modern.FoldsBankInfo())
}
