package model

import "time"

type CustomerInfo struct {
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

type ProjectInfo struct {
	ProjectName     string    `json:"project_name"`
	QuoteDate       time.Time `json:"quote_date"`
	ValidUntil      time.Time `json:"valid_until"`
	ProjectDuration string    `json:"project_duration"`
	DeliveryDate    time.Time `json:"delivery_date"`
}

type BankInfo struct {
	BankName      string `json:"bank_name"`
	AccountHolder string `json:"account_holder"`
	AccountNumber string `json:"account_number"`
}

// CompanyInfo is the issuer profile printed on every document.
type CompanyInfo struct {
	Name           string `json:"name"`
	Representative string `json:"representative"`
	BusinessNumber string `json:"business_number"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Logo           string `json:"logo,omitempty"`
}
