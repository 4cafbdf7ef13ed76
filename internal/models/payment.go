package models

// PaymentRecord is a single recorded payment. Amount is an integer in the
// currency's minor unit; the API never interprets it.
type PaymentRecord struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`
	PaymentType     string `json:"payment_type"`
	Amount          int64  `json:"amount"`
	Description     string `json:"description"`
	AccountDetails  string `json:"account_details"`
	ReceiptData     string `json:"receipt_data"`
	ReceiptFilename string `json:"receipt_filename"`
}
