package quote

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nurpe/quote-studio/internal/model"
)

func TestPresets_ListByCategory(t *testing.T) {
	p, err := NewPresets(DefaultPresets())
	if err != nil {
		t.Fatalf("NewPresets() error = %v", err)
	}

	all := p.List(AllCategories)
	if len(all) != len(DefaultPresets()) {
		t.Fatalf("List(all) = %d items, want %d", len(all), len(DefaultPresets()))
	}
	for _, item := range p.List("개발") {
		if item.Category != "개발" {
			t.Errorf("List(개발) returned category %q", item.Category)
		}
	}
	if got := p.Categories(); len(got) != 4 || got[0] != "기획" {
		t.Errorf("Categories() = %v", got)
	}
}

func TestPresets_InstantiateCopiesWithNewID(t *testing.T) {
	p, _ := NewPresets(nil)
	preset, err := p.Add(model.QuoteItem{Category: "디자인", Name: "Logo", UnitPrice: decimal.NewFromInt(300), Quantity: 2})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !preset.TotalPrice.Equal(decimal.NewFromInt(600)) {
		t.Errorf("TotalPrice = %s, want 600", preset.TotalPrice)
	}

	item, err := p.Instantiate(preset.ID)
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	if item.ID == preset.ID || item.Name != "Logo" {
		t.Errorf("Instantiate() = %+v", item)
	}

	if _, err := p.Instantiate("missing"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("Instantiate(missing) error = %v", err)
	}
}

func TestPresets_UpdateAndRemove(t *testing.T) {
	p, _ := NewPresets(nil)
	preset, _ := p.Add(model.QuoteItem{Name: "Hosting", UnitPrice: decimal.NewFromInt(100), Quantity: 1})

	qty := 12
	updated, err := p.Update(preset.ID, model.ItemPatch{Quantity: &qty})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !updated.TotalPrice.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("TotalPrice = %s, want 1200", updated.TotalPrice)
	}
	if !p.Remove(preset.ID) {
		t.Error("Remove() = false")
	}
	if p.Remove(preset.ID) {
		t.Error("second Remove() = true")
	}
	if _, err := p.Update(preset.ID, model.ItemPatch{}); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("Update(removed) error = %v", err)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"mid year", time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC), "Q20250314-001"},
		{"new year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "Q20260101-001"},
		{"ahead of utc", time.Date(2024, 3, 6, 8, 30, 0, 0, time.FixedZone("KST", 9*3600)), "Q20240305-001"},
		{"behind utc", time.Date(2024, 3, 5, 23, 30, 0, 0, time.FixedZone("EST", -5*3600)), "Q20240306-001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Number(tt.now); got != tt.want {
				t.Errorf("Number() = %q, want %q", got, tt.want)
			}
		})
	}
}
