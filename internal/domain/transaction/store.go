package transaction

import "context"

// TransferStore lists local transfer records.
// Defined in the domain layer, implemented by the document store adapter.
type TransferStore interface {
	// ListByBank retrieves transfers where the given bank document id is
	// either the sender or the receiver.
	ListByBank(ctx context.Context, bankID string) ([]*Transfer, error)
}
