package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pfms/internal/transaction"
)

type transactionResponse struct {
	ID        uuid.UUID        `json:"id"`
	Kind      transaction.Kind `json:"kind"`
	Amount    string           `json:"amount"`
	Category  string           `json:"category"`
	Note      string           `json:"note"`
	CreatedAt time.Time        `json:"created_at"`
}

type totalsResponse struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:        tx.ID,
		Kind:      tx.Kind,
		Amount:    tx.Amount.StringFixed(2),
		Category:  tx.Category,
		Note:      tx.Note,
		CreatedAt: tx.CreatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
