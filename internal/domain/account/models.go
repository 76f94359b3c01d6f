package account

import (
	"errors"

	"github.com/shopspring/decimal"

	"horizon/internal/domain/transaction"
)

// Domain errors. Callers branch with errors.Is instead of testing for nil
// results: ErrNotFound means the requested thing does not exist, ErrUpstream
// means a dependency failed and the data could not be retrieved.
var (
	ErrNotFound = errors.New("account not found")
	ErrUpstream = errors.New("upstream request failed")
)

// Account is the summarized view of one linked bank account, combining the
// financial API snapshot with institution metadata and the local bank link.
type Account struct {
	ID               string          `json:"id"` // provider account id
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
	InstitutionID    string          `json:"institutionId"`
	Name             string          `json:"name"`
	OfficialName     string          `json:"officialName,omitempty"`
	Mask             string          `json:"mask"`
	Type             string          `json:"type"`
	Subtype          string          `json:"subtype"`
	BankDocID        string          `json:"bankDocId"` // document id of the bank link
	ShareableID      string          `json:"shareableId,omitempty"`
}

// Institution is the display metadata for a financial institution.
type Institution struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Summary aggregates all of a user's linked accounts.
type Summary struct {
	Data                []*Account      `json:"data"`
	TotalBanks          int             `json:"totalBanks"`
	TotalCurrentBalance decimal.Decimal `json:"totalCurrentBalance"`
}

// Detail is one account together with its merged, date-sorted feed of synced
// and transfer transactions.
type Detail struct {
	Data         *Account                  `json:"data"`
	Transactions []transaction.Transaction `json:"transactions"`
}
