// Package quote holds the in-memory quotation aggregate, the preset item
// catalog and quote number derivation.
package quote

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/quote-studio/internal/model"
	"github.com/nurpe/quote-studio/internal/pricing"
)

var ErrItemNotFound = errors.New("quote item not found")

// Store is the quotation aggregate. Every mutation that touches the item
// sequence recomputes the derived totals before the lock is released.
type Store struct {
	mu  sync.RWMutex
	q   model.Quotation
	now func() time.Time
}

func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{now: now}
	s.q = s.empty()
	return s
}

func (s *Store) empty() model.Quotation {
	ts := s.now()
	return model.Quotation{
		ID:        uuid.NewString(),
		Items:     []model.QuoteItem{},
		Subtotal:  decimal.Zero,
		VAT:       decimal.Zero,
		Total:     decimal.Zero,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func (s *Store) SetCustomer(info model.CustomerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.Customer = &info
	s.touch()
}

func (s *Store) SetProject(info model.ProjectInfo) {
	info.QuoteDate = DateOnly(info.QuoteDate)
	info.ValidUntil = DateOnly(info.ValidUntil)
	info.DeliveryDate = DateOnly(info.DeliveryDate)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.Project = &info
	s.touch()
}

func (s *Store) SetBankInfo(info model.BankInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.BankInfo = &info
	s.touch()
}

func (s *Store) SetNotes(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.Notes = notes
	s.touch()
}

// AddItem appends item to the end of the sequence. An empty ID is replaced
// by a fresh uuid; duplicate IDs are not detected.
func (s *Store) AddItem(item model.QuoteItem) (model.QuoteItem, error) {
	item, err := priced(item)
	if err != nil {
		return model.QuoteItem{}, err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.Items = append(s.q.Items, item)
	s.recompute()
	return item, nil
}

// UpdateItem merges patch into the item with the given id. The line total is
// recomputed in the same step when price or quantity change.
func (s *Store) UpdateItem(id string, patch model.ItemPatch) (model.QuoteItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.QuoteItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	updated := patch.Apply(s.q.Items[idx])
	if patch.ManDays != nil {
		if err := pricing.ValidateManDays(updated.ManDays); err != nil {
			return model.QuoteItem{}, err
		}
	}
	if patch.AffectsTotal() {
		var err error
		if updated, err = priced(updated); err != nil {
			return model.QuoteItem{}, err
		}
	}

	s.q.Items[idx] = updated
	s.recompute()
	return updated, nil
}

// RemoveItem deletes the first item with the given id and reports whether
// anything was removed.
func (s *Store) RemoveItem(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.q.Items = append(s.q.Items[:idx], s.q.Items[idx+1:]...)
	s.recompute()
	return true
}

func (s *Store) RecomputeTotals() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recompute()
}

func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q = s.empty()
}

// Load replaces the aggregate with q. Line totals are recomputed from price
// and quantity; stored totals in q are ignored.
func (s *Store) Load(q model.Quotation) error {
	items := make([]model.QuoteItem, 0, len(q.Items))
	for _, item := range q.Items {
		item, err := priced(item)
		if err != nil {
			return err
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		items = append(items, item)
	}

	next := q.Clone()
	next.Items = items
	if next.ID == "" {
		next.ID = uuid.NewString()
	}
	if next.Project != nil {
		next.Project.QuoteDate = DateOnly(next.Project.QuoteDate)
		next.Project.ValidUntil = DateOnly(next.Project.ValidUntil)
		next.Project.DeliveryDate = DateOnly(next.Project.DeliveryDate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if next.CreatedAt.IsZero() {
		next.CreatedAt = s.now()
	}
	s.q = next
	s.recompute()
	return nil
}

func (s *Store) IsComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.q.IsComplete()
}

// Snapshot returns a deep copy of the current quotation.
func (s *Store) Snapshot() model.Quotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.q.Clone()
}

func (s *Store) Item(id string) (model.QuoteItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.q.Items[idx], true
	}
	return model.QuoteItem{}, false
}

func (s *Store) indexOf(id string) int {
	for i, item := range s.q.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) recompute() {
	totals := pricing.Aggregate(s.q.Items)
	s.q.Subtotal = totals.Subtotal
	s.q.VAT = totals.VAT
	s.q.Total = totals.Total
	s.touch()
}

func (s *Store) touch() {
	s.q.UpdatedAt = s.now()
}

func priced(item model.QuoteItem) (model.QuoteItem, error) {
	if err := pricing.ValidateManDays(item.ManDays); err != nil {
		return item, err
	}
	total, err := pricing.LineTotal(item.UnitPrice, item.Quantity)
	if err != nil {
		return item, err
	}
	item.TotalPrice = total
	return item, nil
}

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
