package quote

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/quote-studio/internal/model"
)

var ErrPresetNotFound = errors.New("preset item not found")

// AllCategories selects every preset regardless of category.
const AllCategories = "전체"

// Presets is the catalog of reusable line items a quotation can be built from.
type Presets struct {
	mu    sync.RWMutex
	items []model.QuoteItem
}

func NewPresets(seed []model.QuoteItem) (*Presets, error) {
	p := &Presets{}
	for _, item := range seed {
		if _, err := p.Add(item); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Presets) Add(item model.QuoteItem) (model.QuoteItem, error) {
	item, err := priced(item)
	if err != nil {
		return model.QuoteItem{}, err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = append(p.items, item)
	return item, nil
}

func (p *Presets) Update(id string, patch model.ItemPatch) (model.QuoteItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, item := range p.items {
		if item.ID != id {
			continue
		}
		updated, err := priced(patch.Apply(item))
		if err != nil {
			return model.QuoteItem{}, err
		}
		p.items[i] = updated
		return updated, nil
	}
	return model.QuoteItem{}, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
}

func (p *Presets) Remove(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, item := range p.items {
		if item.ID == id {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return true
		}
	}
	return false
}

// List returns presets of the given category; empty or AllCategories
// returns everything.
func (p *Presets) List(category string) []model.QuoteItem {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]model.QuoteItem, 0, len(p.items))
	for _, item := range p.items {
		if category == "" || category == AllCategories || item.Category == category {
			result = append(result, item)
		}
	}
	return result
}

// Categories returns the distinct categories in first-seen order.
func (p *Presets) Categories() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	seen := make(map[string]struct{}, len(p.items))
	var result []string
	for _, item := range p.items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		result = append(result, item.Category)
	}
	return result
}

// Instantiate copies a preset into a new line item with its own ID.
func (p *Presets) Instantiate(id string) (model.QuoteItem, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, item := range p.items {
		if item.ID == id {
			item.ID = uuid.NewString()
			return item, nil
		}
	}
	return model.QuoteItem{}, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
}

// DefaultPresets is the catalog a fresh process starts with.
func DefaultPresets() []model.QuoteItem {
	item := func(category, name, description string, price int64, manDays float64) model.QuoteItem {
		return model.QuoteItem{
			Category:    category,
			Name:        name,
			Description: description,
			UnitPrice:   decimal.NewFromInt(price),
			Quantity:    1,
			ManDays:     manDays,
		}
	}
	return []model.QuoteItem{
		item("기획", "요구사항 분석", "비즈니스 요구사항 분석 및 문서화", 1500000, 5),
		item("기획", "정보 구조 설계", "사이트맵 및 화면 흐름 설계", 1000000, 3),
		item("디자인", "UI/UX 디자인", "웹사이트 전체 UI/UX 디자인", 2000000, 10),
		item("개발", "프론트엔드 개발", "React 기반 프론트엔드 개발", 3000000, 20),
		item("개발", "백엔드 개발", "API 서버 개발", 3500000, 25),
		item("유지보수", "월간 유지보수", "운영 모니터링 및 장애 대응", 500000, 2),
	}
}
