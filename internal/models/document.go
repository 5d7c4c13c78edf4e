package models

import "time"

type DocumentType string

const (
	DocumentIDDocument           DocumentType = "ID_DOCUMENT"
	DocumentUtilityBill          DocumentType = "UTILITY_BILL"
	DocumentBusinessRegistration DocumentType = "BUSINESS_REGISTRATION"
	DocumentBusinessFront        DocumentType = "PICTURE_OF_BUSINESS_FRONT"
	DocumentGoodsPictures        DocumentType = "PICTURES_OF_GOODS"
	DocumentBankStatement        DocumentType = "BANK_STATEMENT"
)

// DocumentTypes lists every backend document tag in a stable order.
var DocumentTypes = []DocumentType{
	DocumentIDDocument,
	DocumentUtilityBill,
	DocumentBusinessRegistration,
	DocumentBusinessFront,
	DocumentGoodsPictures,
	DocumentBankStatement,
}

func (t DocumentType) Valid() bool {
	for _, known := range DocumentTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Document struct {
	ID         string       `json:"id"`
	Type       DocumentType `json:"type"`
	URL        string       `json:"url"`
	UploadedAt time.Time    `json:"uploadedAt,omitempty"`
}

const (
	BankAccountTypePersonal = "PERSONAL"
	BankAccountTypeBusiness = "BUSINESS"
)

type BankAccount struct {
	ID            string `json:"id"`
	AccountType   string `json:"accountType"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	BankCode      string `json:"bankCode"`
	IsDefault     bool   `json:"isDefault"`
}

type BankAccountRequest struct {
	AccountType   string `json:"accountType"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	BankCode      string `json:"bankCode"`
}
