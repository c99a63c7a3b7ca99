package styles

import (
	"github.com/nurpe/quote-studio/internal/layout"
	"github.com/nurpe/quote-studio/internal/model"
)

var (
	colorfulSection = layout.Color{R: 243, G: 232, B: 255}
	colorfulZebra   = layout.Color{R: 250, G: 245, B: 255}
	colorfulTheme   = theme{
		text:        layout.Color{R: 55, G: 48, B: 107},
		muted:       layout.Color{R: 124, G: 58, B: 237},
		accent:      layout.Color{R: 147, G: 51, B: 234},
		rule:        layout.Color{R: 216, G: 180, B: 254},
		headFill:    layout.Color{R: 147, G: 51, B: 234},
		headText:    layout.White,
		sectionFill: &colorfulSection,
		sectionText: layout.Color{R: 107, G: 33, B: 168},
		rowBorder:   layout.BorderNone,
		zebra:       &colorfulZebra,
		titleSize:   26,
		bodySize:    10,
	}
)

// colorful is a purple themed layout with striped item rows. Bank details
// are printed in the footer.
func colorful(q model.Quotation, c model.CompanyInfo, l Labels) *layout.Document {
	t := colorfulTheme
	return assemble(t, l, centeredHeader(t, l, l.Title, q, c), q, c, Colorful.FoldsBankInfo())
}
