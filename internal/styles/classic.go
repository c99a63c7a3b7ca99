package styles

import (
	"github.com/nurpe/quote-studio/internal/layout"
	"github.com/nurpe/quote-studio/internal/model"
)

var (
	classicGray  = layout.Color{R: 245, G: 245, B: 245}
	classicTheme = theme{
		text:        layout.Black,
		muted:       layout.Color{R: 85, G: 85, B: 85},
		accent:      layout.Black,
		rule:        layout.Black,
		headFill:    layout.Color{R: 51, G: 51, B: 51},
		headText:    layout.White,
		sectionFill: &classicGray,
		sectionText: layout.Black,
		rowBorder:   layout.BorderAll,
		titleSize:   26,
		bodySize:    10,
	}
)

// classic is a formal black and white layout with boxed table cells.
func classic(q model.Quotation, c model.CompanyInfo, l Labels) *layout.Document {
	t := classicTheme
	return assemble(t, l, centeredHeader(t, l, l.Title, q, c), q, c, Classic.FoldsBankInfo())
}
