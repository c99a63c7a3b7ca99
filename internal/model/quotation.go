package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuoteItem struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	ManDays     float64         `json:"man_days"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// ItemPatch carries a partial item update. Nil fields are left untouched.
type ItemPatch struct {
	Category    *string          `json:"category"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Quantity    *int             `json:"quantity"`
	ManDays     *float64         `json:"man_days"`
}

// AffectsTotal reports whether applying the patch changes the line total inputs.
func (p ItemPatch) AffectsTotal() bool {
	return p.UnitPrice != nil || p.Quantity != nil
}

// Apply merges the patch into item. TotalPrice is not touched.
func (p ItemPatch) Apply(item QuoteItem) QuoteItem {
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.UnitPrice != nil {
		item.UnitPrice = *p.UnitPrice
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.ManDays != nil {
		item.ManDays = *p.ManDays
	}
	return item
}

type Quotation struct {
	ID          string          `json:"id"`
	QuoteNumber string          `json:"quote_number,omitempty"`
	Customer    *CustomerInfo   `json:"customer"`
	Project     *ProjectInfo    `json:"project"`
	Items       []QuoteItem     `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	VAT         decimal.Decimal `json:"vat"`
	Total       decimal.Decimal `json:"total"`
	BankInfo    *BankInfo       `json:"bank_info"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsComplete reports whether the quotation carries everything a document needs.
func (q Quotation) IsComplete() bool {
	return q.Customer != nil && q.Project != nil && len(q.Items) > 0 && q.BankInfo != nil
}

// Missing lists the blocks that still prevent document generation.
func (q Quotation) Missing() []string {
	var missing []string
	if q.Customer == nil {
		missing = append(missing, "customer")
	}
	if q.Project == nil {
		missing = append(missing, "project")
	}
	if len(q.Items) == 0 {
		missing = append(missing, "items")
	}
	if q.BankInfo == nil {
		missing = append(missing, "bank_info")
	}
	return missing
}

// Clone returns a deep copy that shares no mutable state with q.
func (q Quotation) Clone() Quotation {
	out := q
	if q.Customer != nil {
		c := *q.Customer
		out.Customer = &c
	}
	if q.Project != nil {
		p := *q.Project
		out.Project = &p
	}
	if q.BankInfo != nil {
		b := *q.BankInfo
		out.BankInfo = &b
	}
	out.Items = make([]QuoteItem, len(q.Items))
	copy(out.Items, q.Items)
	return out
}
