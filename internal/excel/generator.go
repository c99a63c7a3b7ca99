package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/quote-studio/internal/model"
	"github.com/nurpe/quote-studio/internal/styles"
)

const maxSheetName = 31

// Generator exports a quotation as a workbook: a summary sheet, the full
// item list and one sheet per item category.
type Generator struct {
	labels styles.Labels
}

func NewGenerator(labels styles.Labels) *Generator {
	return &Generator{labels: labels}
}

type sheetStyles struct {
	header int
	money  int
}

func (g *Generator) Generate(q model.Quotation) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	st, err := newSheetStyles(file)
	if err != nil {
		return nil, err
	}

	summarySheet := sanitizeSheetName(g.labels.DocLabel)
	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	g.writeSummary(file, summarySheet, q, st)

	usedNames := map[string]struct{}{strings.ToLower(summarySheet): {}}
	itemsSheet := buildSheetName(g.labels.ItemsTitle, "", usedNames)
	if _, err := file.NewSheet(itemsSheet); err != nil {
		return nil, err
	}
	g.writeItems(file, itemsSheet, q.Items, st)

	for _, group := range groupByCategory(q.Items) {
		sheetName := buildSheetName(g.labels.ColCategory, group.category, usedNames)
		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		g.writeItems(file, sheetName, group.items, st)
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newSheetStyles(file *excelize.File) (sheetStyles, error) {
	header, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F3F4F6"}},
	})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("header style: %w", err)
	}
	// 3 is the built-in "#,##0" format.
	money, err := file.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("money style: %w", err)
	}
	return sheetStyles{header: header, money: money}, nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, q model.Quotation, st sheetStyles) {
	l := g.labels
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	var customer model.CustomerInfo
	if q.Customer != nil {
		customer = *q.Customer
	}
	var project model.ProjectInfo
	if q.Project != nil {
		project = *q.Project
	}
	var bank model.BankInfo
	if q.BankInfo != nil {
		bank = *q.BankInfo
	}

	rows := [][2]interface{}{
		{l.QuoteNumber, q.QuoteNumber},
		{l.CompanyName, customer.CompanyName},
		{l.Contact, customer.ContactPerson},
		{l.Phone, customer.Phone},
		{l.Email, customer.Email},
		{l.Address, customer.Address},
		{l.ProjectName, project.ProjectName},
		{l.QuoteDate, formatDate(project.QuoteDate)},
		{l.ValidUntil, formatDate(project.ValidUntil)},
		{l.Duration, project.ProjectDuration},
		{l.DeliveryDate, formatDate(project.DeliveryDate)},
		{l.BankName, bank.BankName},
		{l.AccountHolder, bank.AccountHolder},
		{l.AccountNumber, bank.AccountNumber},
		{l.NotesTitle, q.Notes},
	}
	for i, r := range rows {
		set(fmt.Sprintf("A%d", i+1), r[0])
		set(fmt.Sprintf("B%d", i+1), r[1])
	}

	totalsRow := len(rows) + 2
	totals := []struct {
		label  string
		amount decimal.Decimal
	}{
		{l.Subtotal, q.Subtotal},
		{l.VAT, q.VAT},
		{l.Total, q.Total},
	}
	for i, t := range totals {
		row := totalsRow + i
		set(fmt.Sprintf("A%d", row), t.label)
		set(fmt.Sprintf("B%d", row), amount(t.amount))
		cell := fmt.Sprintf("B%d", row)
		_ = file.SetCellStyle(sheet, cell, cell, st.money)
	}
	last := fmt.Sprintf("A%d", totalsRow+len(totals)-1)
	_ = file.SetCellStyle(sheet, "A1", last, st.header)

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 45)
}

func (g *Generator) writeItems(file *excelize.File, sheet string, items []model.QuoteItem, st sheetStyles) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		g.labels.ColCategory,
		g.labels.ColItem,
		g.labels.ColDetails,
		g.labels.ColUnitPrice,
		g.labels.ColQuantity,
		g.labels.ColManDays,
		g.labels.ColAmount,
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}
	_ = file.SetCellStyle(sheet, "A1", "G1", st.header)

	total := decimal.Zero
	for i, item := range items {
		row := i + 2
		set(fmt.Sprintf("A%d", row), item.Category)
		set(fmt.Sprintf("B%d", row), item.Name)
		set(fmt.Sprintf("C%d", row), item.Description)
		set(fmt.Sprintf("D%d", row), amount(item.UnitPrice))
		set(fmt.Sprintf("E%d", row), item.Quantity)
		set(fmt.Sprintf("F%d", row), item.ManDays)
		set(fmt.Sprintf("G%d", row), amount(item.TotalPrice))
		total = total.Add(item.TotalPrice)
	}
	sumRow := len(items) + 2
	set(fmt.Sprintf("F%d", sumRow), g.labels.Subtotal)
	set(fmt.Sprintf("G%d", sumRow), amount(total))
	_ = file.SetCellStyle(sheet, "D2", fmt.Sprintf("D%d", sumRow), st.money)
	_ = file.SetCellStyle(sheet, "G2", fmt.Sprintf("G%d", sumRow), st.money)

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "B", 28)
	_ = file.SetColWidth(sheet, "C", "C", 40)
	_ = file.SetColWidth(sheet, "D", "G", 14)
}

type categoryGroup struct {
	category string
	items    []model.QuoteItem
}

// groupByCategory keeps categories in order of first appearance.
func groupByCategory(items []model.QuoteItem) []categoryGroup {
	var groups []categoryGroup
	index := map[string]int{}
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, categoryGroup{category: item.Category})
		}
		groups[i].items = append(groups[i].items, item)
	}
	return groups
}

// buildSheetName returns a unique sheet name and records it in used.
// Sheet names are compared case-insensitively, so used is keyed by the
// lowercased name.
func buildSheetName(label, name string, used map[string]struct{}) string {
	base := strings.TrimSpace(label)
	if n := strings.TrimSpace(name); n != "" {
		base = fmt.Sprintf("%s - %s", base, n)
	}
	base = truncateRunes(sanitizeSheetName(base), maxSheetName)

	nameCandidate := base
	counter := 2
	for {
		key := strings.ToLower(nameCandidate)
		if _, exists := used[key]; !exists {
			used[key] = struct{}{}
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		nameCandidate = truncateRunes(base, maxSheetName-len(suffix)) + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Sheet"
	}
	return value
}

// truncateRunes cuts on rune boundaries; sheet name limits count characters.
func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

func amount(value decimal.Decimal) float64 {
	return value.Round(0).InexactFloat64()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
