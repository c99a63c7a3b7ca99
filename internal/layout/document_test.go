package layout

import (
	"errors"
	"reflect"
	"testing"
)

func TestDocument_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rows    []Row
		wantErr bool
	}{
		{"full row", []Row{FullRow(5, NewText("a", TextStyle{}))}, false},
		{"split row", []Row{{Cells: []Cell{NewCell(4), NewCell(8)}}}, false},
		{"spacer", []Row{Spacer(4)}, false},
		{"too wide", []Row{{Cells: []Cell{NewCell(8), NewCell(8)}}}, true},
		{"zero span", []Row{{Cells: []Cell{NewCell(0)}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{Page: DefaultPage(), Sections: []Section{{Name: "body", Rows: tt.rows}}}
			err := doc.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("Validate() error = %v, want ErrInvalidDocument", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestDocument_ValidateRequiresPageSize(t *testing.T) {
	doc := &Document{}
	if err := doc.Validate(); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("Validate() error = %v, want ErrInvalidDocument", err)
	}
}

func TestDocument_Texts(t *testing.T) {
	doc := &Document{
		Page: DefaultPage(),
		Sections: []Section{
			{Name: "header", Rows: []Row{FullRow(5, NewText("Title", TextStyle{}))}},
			{Name: "body", Rows: []Row{{Cells: []Cell{
				NewCell(6, NewText("left", TextStyle{}), NewText("below", TextStyle{})),
				NewCell(6, NewText("right", TextStyle{})),
			}}}},
		},
	}

	want := []string{"Title", "left", "below", "right"}
	if got := doc.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("Texts() = %v, want %v", got, want)
	}
	if _, ok := doc.Section("body"); !ok {
		t.Error("Section(body) not found")
	}
	if got := doc.SectionNames(); !reflect.DeepEqual(got, []string{"header", "body"}) {
		t.Errorf("SectionNames() = %v", got)
	}
}

func TestBorder_Has(t *testing.T) {
	if !BorderAll.Has(BorderLeft) || !BorderAll.Has(BorderBottom) {
		t.Error("BorderAll missing an edge")
	}
	if BorderBottom.Has(BorderTop) {
		t.Error("BorderBottom reports top edge")
	}
}
