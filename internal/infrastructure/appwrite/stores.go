package appwrite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"horizon/internal/domain/bank"
	"horizon/internal/domain/transaction"
	"horizon/internal/domain/user"
	"horizon/internal/shared/config"
)

// bankDocument is the wire shape of a bank link document.
type bankDocument struct {
	ID               string    `json:"$id"`
	CreatedAt        time.Time `json:"$createdAt"`
	AccountID        string    `json:"accountId"`
	BankID           string    `json:"bankId"`
	AccessToken      string    `json:"accessToken"`
	FundingSourceURL string    `json:"fundingSourceUrl"`
	ShareableID      string    `json:"shareableId"`
	UserID           string    `json:"userId"`
}

func (d *bankDocument) toDomain() *bank.Bank {
	return &bank.Bank{
		ID:               d.ID,
		AccountID:        d.AccountID,
		BankID:           d.BankID,
		AccessToken:      d.AccessToken,
		FundingSourceURL: d.FundingSourceURL,
		ShareableID:      d.ShareableID,
		UserID:           d.UserID,
		CreatedAt:        d.CreatedAt,
	}
}

// BankStore implements bank.Store against the bank collection.
type BankStore struct {
	client       *Client
	databaseID   string
	collectionID string
}

// Ensure BankStore implements bank.Store
var _ bank.Store = (*BankStore)(nil)

// NewBankStore creates a bank store over the configured collection.
func NewBankStore(client *Client, cfg config.AppwriteConfig) *BankStore {
	return &BankStore{
		client:       client,
		databaseID:   cfg.DatabaseID,
		collectionID: cfg.BankCollectionID,
	}
}

func (s *BankStore) ListByUserID(ctx context.Context, userID string) ([]*bank.Bank, error) {
	list, err := s.client.listDocuments(ctx, s.databaseID, s.collectionID, []string{
		equalQuery("userId", userID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}

	banks := make([]*bank.Bank, 0, len(list.Documents))
	for _, raw := range list.Documents {
		var doc bankDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode bank document: %w", err)
		}
		banks = append(banks, doc.toDomain())
	}
	return banks, nil
}

func (s *BankStore) GetByID(ctx context.Context, id string) (*bank.Bank, error) {
	var doc bankDocument
	err := s.client.getDocument(ctx, s.databaseID, s.collectionID, id, &doc)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, bank.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bank document: %w", err)
	}
	return doc.toDomain(), nil
}

// transferDocument is the wire shape of a transfer transaction document.
// Amounts are stored as decimal strings.
type transferDocument struct {
	ID             string    `json:"$id"`
	CreatedAt      time.Time `json:"$createdAt"`
	Name           string    `json:"name"`
	Amount         string    `json:"amount"`
	Channel        string    `json:"channel"`
	Category       string    `json:"category"`
	SenderBankID   string    `json:"senderBankId"`
	ReceiverBankID string    `json:"receiverBankId"`
}

func (d *transferDocument) toDomain() (*transaction.Transfer, error) {
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount '%s': %w", d.Amount, err)
	}
	return &transaction.Transfer{
		ID:             d.ID,
		Name:           d.Name,
		Amount:         amount,
		CreatedAt:      d.CreatedAt,
		Channel:        d.Channel,
		Category:       d.Category,
		SenderBankID:   d.SenderBankID,
		ReceiverBankID: d.ReceiverBankID,
	}, nil
}

// TransferStore implements transaction.TransferStore against the transfer
// collection.
type TransferStore struct {
	client       *Client
	databaseID   string
	collectionID string
}

// Ensure TransferStore implements transaction.TransferStore
var _ transaction.TransferStore = (*TransferStore)(nil)

// NewTransferStore creates a transfer store over the configured collection.
func NewTransferStore(client *Client, cfg config.AppwriteConfig) *TransferStore {
	return &TransferStore{
		client:       client,
		databaseID:   cfg.DatabaseID,
		collectionID: cfg.TransferCollectionID,
	}
}

// ListByBank returns transfers where the bank is the sender or the receiver.
// The store has no OR query over two attributes, so this is two lookups.
func (s *TransferStore) ListByBank(ctx context.Context, bankID string) ([]*transaction.Transfer, error) {
	sent, err := s.listByAttribute(ctx, "senderBankId", bankID)
	if err != nil {
		return nil, err
	}
	received, err := s.listByAttribute(ctx, "receiverBankId", bankID)
	if err != nil {
		return nil, err
	}
	return append(sent, received...), nil
}

func (s *TransferStore) listByAttribute(ctx context.Context, attribute, value string) ([]*transaction.Transfer, error) {
	list, err := s.client.listDocuments(ctx, s.databaseID, s.collectionID, []string{
		equalQuery(attribute, value),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	transfers := make([]*transaction.Transfer, 0, len(list.Documents))
	for _, raw := range list.Documents {
		var doc transferDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode transfer document: %w", err)
		}
		tr, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, tr)
	}
	return transfers, nil
}

// accountDocument is the wire shape of the session account endpoint.
type accountDocument struct {
	ID    string `json:"$id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionStore implements user.SessionStore against the account endpoint.
type SessionStore struct {
	client *Client
}

// Ensure SessionStore implements user.SessionStore
var _ user.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a session store.
func NewSessionStore(client *Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) UserBySession(ctx context.Context, secret string) (*user.User, error) {
	if secret == "" {
		return nil, user.ErrNoSession
	}

	var doc accountDocument
	err := s.client.getSessionAccount(ctx, secret, &doc)
	if err != nil {
		if isStatus(err, http.StatusUnauthorized) {
			return nil, user.ErrNoSession
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	first, last := splitName(doc.Name)
	return &user.User{
		ID:        doc.ID,
		Email:     doc.Email,
		FirstName: first,
		LastName:  last,
	}, nil
}

func splitName(name string) (first, last string) {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == ' ' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}
