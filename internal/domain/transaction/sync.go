package transaction

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"horizon/internal/infrastructure/plaid"
)

// ErrSyncPageLimit is returned when the incremental feed keeps reporting more
// data past the configured page cap. Treated as an upstream fault: a healthy
// feed converges well before the cap.
var ErrSyncPageLimit = errors.New("transaction sync exceeded page limit")

// DefaultSyncPageLimit bounds the cursor loop when no limit is configured.
const DefaultSyncPageLimit = 50

// SyncService pulls the full transaction feed for a bank connection by
// walking the cursor-based sync endpoint.
type SyncService struct {
	client    plaid.ClientInterface
	pageLimit int
}

// NewSyncService creates a sync service. pageLimit caps the number of
// sync calls per feed; values below 1 fall back to DefaultSyncPageLimit.
func NewSyncService(client plaid.ClientInterface, pageLimit int) *SyncService {
	if pageLimit < 1 {
		pageLimit = DefaultSyncPageLimit
	}
	return &SyncService{client: client, pageLimit: pageLimit}
}

// Sync walks the incremental feed from an empty cursor and returns every
// added transaction, concatenated across pages. The loop stops when a page
// adds nothing or reports has_more=false; exceeding the page cap is a hard
// error wrapping ErrSyncPageLimit.
func (s *SyncService) Sync(ctx context.Context, accessToken string) ([]Transaction, error) {
	var transactions []Transaction
	cursor := ""

	for page := 0; ; page++ {
		if page >= s.pageLimit {
			return nil, fmt.Errorf("sync still reporting more data after %d pages: %w", s.pageLimit, ErrSyncPageLimit)
		}

		resp, err := s.client.SyncTransactions(ctx, accessToken, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to sync transactions: %w", err)
		}

		for i := range resp.Added {
			tx, err := fromSynced(&resp.Added[i])
			if err != nil {
				// A malformed entry is logged and skipped rather than
				// aborting the whole feed.
				log.Printf("Skipping malformed synced transaction %s: %v", resp.Added[i].TransactionID, err)
				continue
			}
			transactions = append(transactions, tx)
		}

		cursor = resp.NextCursor
		if len(resp.Added) == 0 || !resp.HasMore {
			break
		}
	}

	return transactions, nil
}

// fromSynced maps a feed entry into the local transaction shape.
func fromSynced(st *plaid.SyncTransaction) (Transaction, error) {
	date, err := st.GetDate()
	if err != nil {
		return Transaction{}, err
	}

	category := ""
	if len(st.Category) > 0 {
		category = st.Category[0]
	}

	image := ""
	if st.LogoURL != nil {
		image = *st.LogoURL
	}

	// Positive amounts are money moving out of the account.
	txType := TypeCredit
	if st.Amount > 0 {
		txType = TypeDebit
	}

	return Transaction{
		ID:             st.TransactionID,
		Name:           st.Name,
		Amount:         decimal.NewFromFloat(st.Amount),
		Date:           date,
		Category:       category,
		PaymentChannel: st.PaymentChannel,
		Pending:        st.Pending,
		Type:           txType,
		AccountID:      st.AccountID,
		Image:          image,
	}, nil
}
