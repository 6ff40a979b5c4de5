package payment

type ConfirmBankTransferRequest struct {
	Reference       string `json:"reference" binding:"required" validate:"required,max=32"`
	TransactionID   string `json:"transaction_id" binding:"required" validate:"required,max=128"`
	TransactionDate string `json:"transaction_date" binding:"required" validate:"required,datetime=2006-01-02"`
	Notes           string `json:"notes" validate:"max=2000"`
}
