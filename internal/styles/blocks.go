package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nurpe/quote-studio/internal/layout"
	"github.com/nurpe/quote-studio/internal/model"
)

// Section names shared by every template.
const (
	SectionHeader   = "header"
	SectionCustomer = "customer"
	SectionProject  = "project"
	SectionItems    = "items"
	SectionTotals   = "totals"
	SectionNotes    = "notes"
	SectionBank     = "bank"
	SectionFooter   = "footer"
)

// itemColumns are the grid spans of the item table: category, name and
// description, unit price, quantity, man-days, line total.
var itemColumns = [6]int{2, 4, 2, 1, 1, 2}

type theme struct {
	text   layout.Color
	muted  layout.Color
	accent layout.Color
	rule   layout.Color

	headFill layout.Color
	headText layout.Color

	sectionFill *layout.Color
	sectionText layout.Color
	sectionRule bool

	rowBorder layout.Border
	zebra     *layout.Color

	titleSize float64
	bodySize  float64
}

func (t theme) style(size float64, bold bool, color layout.Color, align layout.Align) layout.TextStyle {
	return layout.TextStyle{Size: size, Bold: bold, Color: color, Align: align}
}

func (t theme) body(align layout.Align) layout.TextStyle {
	return t.style(t.bodySize, false, t.text, align)
}

func (t theme) label() layout.TextStyle {
	return t.style(t.bodySize, true, t.text, layout.AlignLeft)
}

func (t theme) small() layout.TextStyle {
	return t.style(t.bodySize-1, false, t.muted, layout.AlignCenter)
}

func (t theme) sectionTitle(title string) layout.Row {
	cell := layout.NewCell(layout.GridColumns, layout.NewText(title, t.style(t.bodySize+2, true, t.sectionText, layout.AlignLeft)))
	if t.sectionFill != nil {
		cell = cell.WithFill(*t.sectionFill)
	}
	if t.sectionRule {
		cell = cell.WithBorder(layout.BorderBottom, t.accent)
	}
	return layout.Row{MinHeight: 8, Cells: []layout.Cell{cell}}
}

func (t theme) infoRow(label, value string) layout.Row {
	return layout.Row{MinHeight: 6, Cells: []layout.Cell{
		layout.NewCell(3, layout.NewText(label, t.label())),
		layout.NewCell(9, layout.NewText(safeValue(value), t.body(layout.AlignLeft))),
	}}
}

// centeredHeader is the title block shared by the modern, classic and
// colorful templates.
func centeredHeader(t theme, l Labels, title string, q model.Quotation, c model.CompanyInfo) layout.Section {
	contact := fmt.Sprintf("%s: %s | %s: %s", l.Tel, safeValue(c.Phone), l.Email, safeValue(c.Email))
	return layout.Section{Name: SectionHeader, Rows: []layout.Row{
		layout.FullRow(14, layout.NewText(title, t.style(t.titleSize, true, t.accent, layout.AlignCenter))),
		layout.FullRow(5, layout.NewText(c.Name, t.small())),
		layout.FullRow(5, layout.NewText(c.Address, t.small())),
		layout.FullRow(5, layout.NewText(contact, t.small())),
		layout.FullRow(6, layout.NewText(fmt.Sprintf("%s: %s", l.QuoteNumber, safeValue(q.QuoteNumber)),
			t.style(t.bodySize, false, t.muted, layout.AlignRight))),
		layout.Line(t.rule),
		layout.Spacer(4),
	}}
}

func customerSection(t theme, l Labels, q model.Quotation) layout.Section {
	var c model.CustomerInfo
	if q.Customer != nil {
		c = *q.Customer
	}
	return layout.Section{Name: SectionCustomer, Rows: []layout.Row{
		t.sectionTitle(l.CustomerTitle),
		t.infoRow(l.CompanyName, c.CompanyName),
		t.infoRow(l.Contact, c.ContactPerson),
		t.infoRow(l.Phone, c.Phone),
		t.infoRow(l.Email, c.Email),
		t.infoRow(l.Address, c.Address),
		layout.Spacer(4),
	}}
}

func projectSection(t theme, l Labels, q model.Quotation) layout.Section {
	var p model.ProjectInfo
	if q.Project != nil {
		p = *q.Project
	}
	rows := []layout.Row{
		t.sectionTitle(l.ProjectTitle),
		t.infoRow(l.ProjectName, p.ProjectName),
		t.infoRow(l.QuoteDate, FormatDate(p.QuoteDate, l)),
		t.infoRow(l.ValidUntil, FormatDate(p.ValidUntil, l)),
		t.infoRow(l.Duration, p.ProjectDuration),
	}
	if !p.DeliveryDate.IsZero() {
		rows = append(rows, t.infoRow(l.DeliveryDate, FormatDate(p.DeliveryDate, l)))
	}
	rows = append(rows, layout.Spacer(4))
	return layout.Section{Name: SectionProject, Rows: rows}
}

// ItemHeaders returns the item table column titles in print order.
func ItemHeaders(l Labels) []string {
	return []string{l.ColCategory, l.ColItem, l.ColUnitPrice, l.ColQuantity, l.ColManDays, l.ColAmount}
}

func itemsSection(t theme, l Labels, q model.Quotation) layout.Section {
	headerStyle := t.style(t.bodySize, true, t.headText, layout.AlignCenter)
	head := layout.Row{MinHeight: 8}
	for i, title := range ItemHeaders(l) {
		style := headerStyle
		if i == len(itemColumns)-1 {
			style.Align = layout.AlignRight
		}
		head.Cells = append(head.Cells, layout.NewCell(itemColumns[i], layout.NewText(title, style)).WithFill(t.headFill))
	}

	rows := []layout.Row{t.sectionTitle(l.ItemsTitle), head}
	for i, item := range q.Items {
		nameTexts := []layout.Text{layout.NewText(item.Name, t.style(t.bodySize, true, t.text, layout.AlignLeft))}
		if strings.TrimSpace(item.Description) != "" {
			nameTexts = append(nameTexts, layout.NewText(item.Description, t.style(t.bodySize-1, false, t.muted, layout.AlignLeft)))
		}
		cells := []layout.Cell{
			layout.NewCell(itemColumns[0], layout.NewText(item.Category, t.body(layout.AlignLeft))),
			layout.NewCell(itemColumns[1], nameTexts...),
			layout.NewCell(itemColumns[2], layout.NewText(FormatCurrency(item.UnitPrice, l), t.body(layout.AlignRight))),
			layout.NewCell(itemColumns[3], layout.NewText(strconv.Itoa(item.Quantity), t.body(layout.AlignCenter))),
			layout.NewCell(itemColumns[4], layout.NewText(FormatManDays(item.ManDays), t.body(layout.AlignCenter))),
			layout.NewCell(itemColumns[5], layout.NewText(FormatCurrency(item.TotalPrice, l), t.body(layout.AlignRight))),
		}
		for j := range cells {
			if t.rowBorder != layout.BorderNone {
				cells[j] = cells[j].WithBorder(t.rowBorder, t.rule)
			}
			if t.zebra != nil && i%2 == 1 {
				cells[j] = cells[j].WithFill(*t.zebra)
			}
		}
		rows = append(rows, layout.Row{MinHeight: 8, Cells: cells})
	}
	rows = append(rows, layout.Spacer(4))
	return layout.Section{Name: SectionItems, Rows: rows}
}

func totalsSection(t theme, l Labels, q model.Quotation) layout.Section {
	line := func(label, value string, style layout.TextStyle) layout.Row {
		labelStyle, valueStyle := style, style
		labelStyle.Align = layout.AlignLeft
		valueStyle.Align = layout.AlignRight
		return layout.Row{MinHeight: 7, Cells: []layout.Cell{
			layout.NewCell(6),
			layout.NewCell(3, layout.NewText(label, labelStyle)),
			layout.NewCell(3, layout.NewText(value, valueStyle)),
		}}
	}
	grand := line(l.Total, FormatCurrency(q.Total, l), t.style(t.bodySize+4, true, t.accent, layout.AlignRight))
	grand.MinHeight = 10
	grand.Cells[1] = grand.Cells[1].WithBorder(layout.BorderTop, t.rule)
	grand.Cells[2] = grand.Cells[2].WithBorder(layout.BorderTop, t.rule)

	return layout.Section{Name: SectionTotals, Rows: []layout.Row{
		line(l.Subtotal, FormatCurrency(q.Subtotal, l), t.body(layout.AlignRight)),
		line(l.VAT, FormatCurrency(q.VAT, l), t.body(layout.AlignRight)),
		grand,
		layout.Spacer(4),
	}}
}

func notesSection(t theme, l Labels, q model.Quotation) (layout.Section, bool) {
	if strings.TrimSpace(q.Notes) == "" {
		return layout.Section{}, false
	}
	return layout.Section{Name: SectionNotes, Rows: []layout.Row{
		t.sectionTitle(l.NotesTitle),
		layout.FullRow(6, layout.NewText(q.Notes, t.body(layout.AlignLeft))),
		layout.Spacer(4),
	}}, true
}

func bankLine(l Labels, q model.Quotation) string {
	var b model.BankInfo
	if q.BankInfo != nil {
		b = *q.BankInfo
	}
	if l.Language == English {
		return fmt.Sprintf("%s: %s | %s: %s | %s: %s",
			l.BankName, safeValue(b.BankName), l.AccountNumber, safeValue(b.AccountNumber), l.AccountHolder, safeValue(b.AccountHolder))
	}
	return fmt.Sprintf("%s | %s | %s", safeValue(b.BankName), safeValue(b.AccountHolder), safeValue(b.AccountNumber))
}

func bankSection(t theme, l Labels, q model.Quotation) layout.Section {
	return layout.Section{Name: SectionBank, Rows: []layout.Row{
		t.sectionTitle(l.BankTitle),
		layout.FullRow(7, layout.NewText(bankLine(l, q), t.body(layout.AlignLeft))),
		layout.Spacer(4),
	}}
}

func identityLine(l Labels, c model.CompanyInfo) string {
	return fmt.Sprintf("%s: %s | %s: %s", l.Representative, safeValue(c.Representative), l.BusinessNumber, safeValue(c.BusinessNumber))
}

// footerSection prints the issuer's legal identity. With foldBank the
// bank details are printed above it.
func footerSection(t theme, l Labels, q model.Quotation, c model.CompanyInfo, foldBank bool) layout.Section {
	rows := []layout.Row{layout.Line(t.rule)}
	if foldBank {
		rows = append(rows,
			layout.FullRow(6, layout.NewText(l.BankTitle, t.style(t.bodySize, true, t.accent, layout.AlignLeft))),
			layout.FullRow(6, layout.NewText(bankLine(l, q), t.body(layout.AlignLeft))),
		)
	}
	rows = append(rows,
		layout.FullRow(5, layout.NewText(c.Name, t.style(t.bodySize-1, true, t.muted, layout.AlignLeft))),
		layout.FullRow(5, layout.NewText(identityLine(l, c), t.style(t.bodySize-1, false, t.muted, layout.AlignLeft))),
	)
	return layout.Section{Name: SectionFooter, Rows: rows}
}

func newDocument(l Labels, q model.Quotation, c model.CompanyInfo, sections ...layout.Section) *layout.Document {
	customer := ""
	if q.Customer != nil {
		customer = q.Customer.CompanyName
	}
	title := l.DocLabel
	if customer != "" {
		title = fmt.Sprintf("%s - %s", l.DocLabel, customer)
	}
	return &layout.Document{
		Title:    title,
		Author:   c.Name,
		Page:     layout.DefaultPage(),
		Sections: sections,
	}
}

// assemble orders the blocks every template shares.
func assemble(t theme, l Labels, header layout.Section, q model.Quotation, c model.CompanyInfo, foldBank bool) *layout.Document {
	sections := []layout.Section{
		header,
		customerSection(t, l, q),
		projectSection(t, l, q),
		itemsSection(t, l, q),
		totalsSection(t, l, q),
	}
	if notes, ok := notesSection(t, l, q); ok {
		sections = append(sections, notes)
	}
	if !foldBank {
		sections = append(sections, bankSection(t, l, q))
	}
	sections = append(sections, footerSection(t, l, q, c, foldBank))
	return newDocument(l, q, c, sections...)
}
