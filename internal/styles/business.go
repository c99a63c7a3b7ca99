package styles

import (
	"fmt"

	"github.com/nurpe/quote-studio/internal/layout"
	"github.com/nurpe/quote-studio/internal/model"
)

var (
	businessZebra = layout.Color{R: 239, G: 243, B: 250}
	businessTheme = theme{
		text:        layout.Color{R: 17, G: 24, B: 39},
		muted:       layout.Color{R: 75, G: 85, B: 99},
		accent:      layout.Color{R: 30, G: 58, B: 138},
		rule:        layout.Color{R: 30, G: 58, B: 138},
		headFill:    layout.Color{R: 30, G: 58, B: 138},
		headText:    layout.White,
		sectionText: layout.Color{R: 30, G: 58, B: 138},
		sectionRule: true,
		rowBorder:   layout.BorderBottom,
		zebra:       &businessZebra,
		titleSize:   22,
		bodySize:    9,
	}
)

// businessHeader puts the issuer on the left and the quote identity on
// the right.
func businessHeader(t theme, l Labels, q model.Quotation, c model.CompanyInfo) layout.Section {
	var date string
	if q.Project != nil {
		date = FormatDate(q.Project.QuoteDate, l)
	}
	left := layout.NewCell(7,
		layout.NewText(c.Name, t.style(t.bodySize+5, true, t.accent, layout.AlignLeft)),
		layout.NewText(c.Address, t.style(t.bodySize, false, t.muted, layout.AlignLeft)),
		layout.NewText(fmt.Sprintf("%s: %s | %s: %s", l.Tel, safeValue(c.Phone), l.Email, safeValue(c.Email)),
			t.style(t.bodySize, false, t.muted, layout.AlignLeft)),
	)
	right := layout.NewCell(5,
		layout.NewText(l.Title, t.style(t.titleSize, true, t.accent, layout.AlignRight)),
		layout.NewText(fmt.Sprintf("%s: %s", l.QuoteNumber, safeValue(q.QuoteNumber)), t.style(t.bodySize, false, t.text, layout.AlignRight)),
		layout.NewText(fmt.Sprintf("%s: %s", l.QuoteDate, safeValue(date)), t.style(t.bodySize, false, t.text, layout.AlignRight)),
	)
	return layout.Section{Name: SectionHeader, Rows: []layout.Row{
		{MinHeight: 24, Cells: []layout.Cell{left, right}},
		layout.Line(t.rule),
		layout.Spacer(4),
	}}
}

// business is a corporate layout printed with English labels regardless
// of the configured language.
func business(q model.Quotation, c model.CompanyInfo, _ Labels) *layout.Document {
	t := businessTheme
	l := LabelsFor(English)
	return assemble(t, l, businessHeader(t, l, q, c), q, c, Business.FoldsBankInfo())
}
