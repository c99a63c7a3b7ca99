package styles

import (
	"fmt"
	"strings"

	"github.com/nurpe/quote-studio/internal/pricing"
)

type Language string

const (
	Korean  Language = "ko"
	English Language = "en"
)

func ParseLanguage(raw string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(raw))) {
	case Korean, "":
		return Korean, nil
	case English:
		return English, nil
	default:
		return "", fmt.Errorf("unsupported document language %q", raw)
	}
}

// Labels holds every fixed string a template prints.
type Labels struct {
	Language Language

	DocLabel    string
	Title       string
	QuoteNumber string
	Tel         string
	Email       string

	CustomerTitle string
	CompanyName   string
	Contact       string
	Phone         string
	Address       string

	ProjectTitle string
	ProjectName  string
	QuoteDate    string
	ValidUntil   string
	Duration     string
	DeliveryDate string

	ItemsTitle   string
	ColCategory  string
	ColItem      string
	ColDetails   string
	ColUnitPrice string
	ColQuantity  string
	ColManDays   string
	ColAmount    string

	Subtotal string
	VAT      string
	Total    string

	BankTitle     string
	BankName      string
	AccountHolder string
	AccountNumber string

	NotesTitle     string
	Representative string
	BusinessNumber string

	CurrencyPrefix string
	DateLayout     string
}

func vatLabel(prefix string) string {
	return fmt.Sprintf("%s (%s%%)", prefix, pricing.VATRate.Shift(2).String())
}

var koreanLabels = Labels{
	Language:       Korean,
	DocLabel:       "견적서",
	Title:          "견 적 서",
	QuoteNumber:    "견적번호",
	Tel:            "TEL",
	Email:          "Email",
	CustomerTitle:  "고객 정보",
	CompanyName:    "회사명",
	Contact:        "담당자",
	Phone:          "연락처",
	Address:        "주소",
	ProjectTitle:   "프로젝트 정보",
	ProjectName:    "프로젝트명",
	QuoteDate:      "견적일",
	ValidUntil:     "유효기간",
	Duration:       "프로젝트 기간",
	DeliveryDate:   "납품일",
	ItemsTitle:     "견적 내역",
	ColCategory:    "카테고리",
	ColItem:        "항목",
	ColDetails:     "설명",
	ColUnitPrice:   "단가",
	ColQuantity:    "수량",
	ColManDays:     "일수",
	ColAmount:      "금액",
	Subtotal:       "소계",
	VAT:            vatLabel("부가세"),
	Total:          "총 합계",
	BankTitle:      "입금 계좌 정보",
	BankName:       "은행",
	AccountHolder:  "예금주",
	AccountNumber:  "계좌번호",
	NotesTitle:     "비고",
	Representative: "대표",
	BusinessNumber: "사업자등록번호",
	CurrencyPrefix: "₩",
	DateLayout:     "2006. 1. 2.",
}

var englishLabels = Labels{
	Language:       English,
	DocLabel:       "Quote",
	Title:          "QUOTATION",
	QuoteNumber:    "Quote No",
	Tel:            "TEL",
	Email:          "Email",
	CustomerTitle:  "Customer Details",
	CompanyName:    "COMPANY",
	Contact:        "CONTACT",
	Phone:          "PHONE",
	Address:        "ADDRESS",
	ProjectTitle:   "Project Details",
	ProjectName:    "PROJECT",
	QuoteDate:      "DATE",
	ValidUntil:     "VALID UNTIL",
	Duration:       "DURATION",
	DeliveryDate:   "DELIVERY",
	ItemsTitle:     "Quotation Details",
	ColCategory:    "Category",
	ColItem:        "Description",
	ColDetails:     "Details",
	ColUnitPrice:   "Unit Price",
	ColQuantity:    "Qty",
	ColManDays:     "Days",
	ColAmount:      "Amount",
	Subtotal:       "Subtotal",
	VAT:            vatLabel("VAT"),
	Total:          "Total Amount",
	BankTitle:      "Payment Details",
	BankName:       "Bank",
	AccountHolder:  "Holder",
	AccountNumber:  "Account",
	NotesTitle:     "Notes",
	Representative: "CEO",
	BusinessNumber: "Business No",
	CurrencyPrefix: "KRW ",
	DateLayout:     "2006-01-02",
}

func LabelsFor(lang Language) Labels {
	if lang == English {
		return englishLabels
	}
	return koreanLabels
}
