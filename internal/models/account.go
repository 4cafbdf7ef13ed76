package models

// BankAccount describes one of the organization's receiving accounts. These
// are configuration data served read-only through the API.
type BankAccount struct {
	ID            int64  `json:"id"`
	AccountType   string `json:"account_type"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	SortCode      string `json:"sort_code"`
}
