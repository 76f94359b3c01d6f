package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TypeDebit  = "debit"
	TypeCredit = "credit"
)

// Transaction is one entry of an account's merged feed, sourced either from
// the financial API's sync feed or from a local transfer record.
type Transaction struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	Category       string          `json:"category"`
	PaymentChannel string          `json:"paymentChannel"`
	Pending        bool            `json:"pending"`
	Type           string          `json:"type"` // "debit" or "credit"
	AccountID      string          `json:"accountId,omitempty"`
	Image          string          `json:"image,omitempty"`
}

// Transfer is a locally recorded money movement between two linked banks,
// distinct from transactions reported by the financial API.
type Transfer struct {
	ID             string
	Name           string
	Amount         decimal.Decimal
	CreatedAt      time.Time
	Channel        string
	Category       string
	SenderBankID   string // bank document id of the sending side
	ReceiverBankID string // bank document id of the receiving side
}

// Direction reports whether the transfer is a debit or a credit from the
// point of view of the given bank: debit when the bank is the sender.
func (t *Transfer) Direction(bankID string) string {
	if t.SenderBankID == bankID {
		return TypeDebit
	}
	return TypeCredit
}

// FromTransfer maps a transfer record into the merged feed shape, with the
// direction resolved against the viewing bank.
func FromTransfer(t *Transfer, bankID string) Transaction {
	return Transaction{
		ID:             t.ID,
		Name:           t.Name,
		Amount:         t.Amount,
		Date:           t.CreatedAt,
		Category:       t.Category,
		PaymentChannel: t.Channel,
		Pending:        false,
		Type:           t.Direction(bankID),
	}
}
