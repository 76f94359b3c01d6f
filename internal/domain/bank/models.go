package bank

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrNotFound = errors.New("bank not found")
)

// Bank links a user to a financial API access credential and its item id.
// Stored as a document in the document store; ID is the document id.
type Bank struct {
	ID               string    `json:"id"`
	AccountID        string    `json:"accountId"` // provider account id
	BankID           string    `json:"bankId"`    // provider item id
	AccessToken      string    `json:"-"`
	FundingSourceURL string    `json:"fundingSourceUrl,omitempty"`
	ShareableID      string    `json:"shareableId,omitempty"`
	UserID           string    `json:"userId"`
	CreatedAt        time.Time `json:"createdAt"`
}
