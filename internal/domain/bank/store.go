package bank

import "context"

// Store defines the interface for bank link lookups.
// Defined in the domain layer, implemented by the document store adapter.
type Store interface {
	// ListByUserID retrieves all bank links for a user, in creation order.
	ListByUserID(ctx context.Context, userID string) ([]*Bank, error)

	// GetByID retrieves a bank link by its document id.
	// Returns ErrNotFound when no such document exists.
	GetByID(ctx context.Context, id string) (*Bank, error)
}
