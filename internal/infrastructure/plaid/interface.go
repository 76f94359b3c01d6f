package plaid

import (
	"context"
)

// ClientInterface defines the methods required from the Plaid API client
type ClientInterface interface {
	GetAccounts(ctx context.Context, accessToken string) (*AccountsResponse, error)
	GetInstitution(ctx context.Context, institutionID string) (*Institution, error)
	SyncTransactions(ctx context.Context, accessToken, cursor string) (*SyncResponse, error)
}
