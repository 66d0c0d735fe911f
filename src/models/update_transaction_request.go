package models

// UpdateTransactionRequest carries a partial transaction update. Nil fields
// were not supplied and must be left untouched; a nil Sources pointer means
// the existing split set is kept as-is, while a non-nil (even empty) list
// replaces it wholesale.
type UpdateTransactionRequest struct {
	Title         *string       `json:"title"`
	Amount        *float64      `json:"amount"`
	Date          *string       `json:"date"`
	Type          *string       `json:"type"`
	Category      *string       `json:"category"`
	Description   *string       `json:"description"`
	RelatedPerson *string       `json:"relatedPerson"`
	IsUrgent      *bool         `json:"isUrgent"`
	ReceiptPath   *string       `json:"receiptPath"`
	Sources       *[]SplitInput `json:"sources"`
}
