package quote

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nurpe/quote-studio/internal/model"
)

// Sample builds a complete demo quotation dated at now.
func Sample(now time.Time) model.Quotation {
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
	today := DateOnly(now)
	return model.Quotation{
		Customer: &model.CustomerInfo{
			CompanyName:   "테스트 주식회사",
			ContactPerson: "김철수",
			Phone:         "010-1234-5678",
			Email:         "test@example.com",
			Address:       "서울시 강남구 테헤란로 123",
		},
		Project: &model.ProjectInfo{
			ProjectName:     "쇼핑몰 웹사이트 개발",
			QuoteDate:       today,
			ValidUntil:      today.AddDate(0, 0, 30),
			ProjectDuration: "3개월",
			DeliveryDate:    today.AddDate(0, 3, 0),
		},
		Items: []model.QuoteItem{
			item("기획", "요구사항 분석", "비즈니스 요구사항 분석 및 문서화", 1500000, 5),
			item("디자인", "UI/UX 디자인", "웹사이트 전체 UI/UX 디자인", 2000000, 10),
			item("개발", "프론트엔드 개발", "React 기반 프론트엔드 개발", 3000000, 20),
			item("개발", "백엔드 개발", "Node.js 기반 API 서버 개발", 3500000, 25),
		},
		BankInfo: &model.BankInfo{
			BankName:      "국민은행",
			AccountHolder: "웹개발회사",
			AccountNumber: "123-456-789012",
		},
	}
}
