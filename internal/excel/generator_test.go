package excel

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/quote-studio/internal/model"
	"github.com/nurpe/quote-studio/internal/styles"
)

func TestGenerate(t *testing.T) {
	price := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	q := model.Quotation{
		QuoteNumber: "Q20240305-001",
		Customer:    &model.CustomerInfo{CompanyName: "Globex"},
		Items: []model.QuoteItem{
			{Category: "Dev", Name: "API", UnitPrice: price(300), Quantity: 2, TotalPrice: price(600)},
			{Category: "Design", Name: "UI", UnitPrice: price(200), Quantity: 1, TotalPrice: price(200)},
			{Category: "Dev", Name: "Web", UnitPrice: price(100), Quantity: 1, TotalPrice: price(100)},
		},
		Subtotal: price(900),
		VAT:      price(90),
		Total:    price(990),
	}

	out, err := NewGenerator(styles.LabelsFor(styles.English)).Generate(q)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer file.Close()

	want := []string{"Quote", "Quotation Details", "Category - Dev", "Category - Design"}
	got := file.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, got[i], want[i])
		}
	}

	if v, _ := file.GetCellValue("Quote", "B1"); v != "Q20240305-001" {
		t.Errorf("quote number cell = %q", v)
	}
	if v, _ := file.GetCellValue("Quotation Details", "B4"); v != "Web" {
		t.Errorf("third item name = %q", v)
	}
	rows, err := file.GetRows("Category - Dev")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	// header, two items, subtotal
	if len(rows) != 4 {
		t.Errorf("dev sheet rows = %d, want 4", len(rows))
	}
}

func TestBuildSheetName(t *testing.T) {
	used := map[string]struct{}{}
	first := buildSheetName("Category", "a/b", used)
	if first != "Category - a-b" {
		t.Errorf("first = %q", first)
	}
	if second := buildSheetName("Category", "a/b", used); second != "Category - a-b-2" {
		t.Errorf("second = %q", second)
	}
	if folded := buildSheetName("Category", "A/B", used); folded != "Category - A-B-3" {
		t.Errorf("case-folded = %q", folded)
	}

	long := buildSheetName("카테고리", "아주 아주 아주 아주 아주 아주 아주 긴 이름입니다", map[string]struct{}{})
	if n := len([]rune(long)); n > maxSheetName {
		t.Errorf("sheet name has %d runes", n)
	}
	if got := sanitizeSheetName("  "); got != "Sheet" {
		t.Errorf("empty sanitize = %q", got)
	}
}

func TestGenerateCategoriesDifferingInCase(t *testing.T) {
	price := decimal.NewFromInt(100)
	q := model.Quotation{
		QuoteNumber: "Q20240305-001",
		Customer:    &model.CustomerInfo{CompanyName: "Globex"},
		Items: []model.QuoteItem{
			{Category: "Design", Name: "A", UnitPrice: price, Quantity: 1, TotalPrice: price},
			{Category: "Design", Name: "B", UnitPrice: price, Quantity: 1, TotalPrice: price},
			{Category: "design", Name: "C", UnitPrice: price, Quantity: 1, TotalPrice: price},
		},
	}

	out, err := NewGenerator(styles.LabelsFor(styles.English)).Generate(q)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	file, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer file.Close()

	want := []string{"Quote", "Quotation Details", "Category - Design", "Category - design-2"}
	got := file.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, got[i], want[i])
		}
	}

	tests := []struct {
		sheet string
		rows  int
		names []string
	}{
		{"Category - Design", 4, []string{"A", "B"}},
		{"Category - design-2", 3, []string{"C"}},
	}
	for _, tt := range tests {
		rows, err := file.GetRows(tt.sheet)
		if err != nil {
			t.Fatalf("GetRows(%q) error = %v", tt.sheet, err)
		}
		if len(rows) != tt.rows {
			t.Fatalf("%s rows = %d, want %d", tt.sheet, len(rows), tt.rows)
		}
		for i, name := range tt.names {
			if v, _ := file.GetCellValue(tt.sheet, fmt.Sprintf("B%d", i+2)); v != name {
				t.Errorf("%s B%d = %q, want %q", tt.sheet, i+2, v, name)
			}
		}
	}
}
