package account

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"horizon/internal/domain/bank"
	"horizon/internal/domain/transaction"
	"horizon/internal/infrastructure/plaid"
)

// Service aggregates account data across the financial API and the local
// document store.
type Service struct {
	client    plaid.ClientInterface
	banks     bank.Store
	transfers transaction.TransferStore
	syncer    *transaction.SyncService
}

// NewService creates an account aggregation service.
func NewService(client plaid.ClientInterface, banks bank.Store, transfers transaction.TransferStore, syncer *transaction.SyncService) *Service {
	return &Service{
		client:    client,
		banks:     banks,
		transfers: transfers,
		syncer:    syncer,
	}
}

// GetAccounts returns one summarized account per linked bank plus totals.
// Lookups fan out in parallel, one per bank, and results keep the original
// bank order. A bank whose lookup fails is logged and skipped; the aggregate
// still carries the banks that succeeded. Zero linked banks is ErrNotFound,
// and all lookups failing is ErrUpstream.
func (s *Service) GetAccounts(ctx context.Context, userID string) (*Summary, error) {
	banks, err := s.banks.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list banks for user %s: %w", userID, ErrUpstream)
	}
	if len(banks) == 0 {
		return nil, fmt.Errorf("user %s has no linked banks: %w", userID, ErrNotFound)
	}

	// Order-preserving fan-out: each goroutine owns one slot.
	results := make([]*Account, len(banks))
	var wg sync.WaitGroup
	for i, b := range banks {
		wg.Add(1)
		go func(i int, b *bank.Bank) {
			defer wg.Done()
			acct, err := s.fetchAccount(ctx, b)
			if err != nil {
				log.Printf("Skipping bank %s for user %s: %v", b.ID, userID, err)
				return
			}
			results[i] = acct
		}(i, b)
	}
	wg.Wait()

	summary := &Summary{
		Data:                make([]*Account, 0, len(results)),
		TotalCurrentBalance: decimal.Zero,
	}
	for _, acct := range results {
		if acct == nil {
			continue
		}
		summary.Data = append(summary.Data, acct)
		summary.TotalBanks++
		summary.TotalCurrentBalance = summary.TotalCurrentBalance.Add(acct.CurrentBalance)
	}

	if summary.TotalBanks == 0 {
		return nil, fmt.Errorf("all %d bank lookups failed for user %s: %w", len(banks), userID, ErrUpstream)
	}

	return summary, nil
}

// GetAccount returns one account with its merged transaction feed: synced
// transactions from the financial API plus local transfer records tagged to
// the bank, sorted by descending date.
func (s *Service) GetAccount(ctx context.Context, bankDocID string) (*Detail, error) {
	b, err := s.banks.GetByID(ctx, bankDocID)
	if err != nil {
		if errors.Is(err, bank.ErrNotFound) {
			return nil, fmt.Errorf("bank %s: %w", bankDocID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get bank %s: %w", bankDocID, ErrUpstream)
	}

	acct, err := s.fetchAccount(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account for bank %s: %w", bankDocID, ErrUpstream)
	}

	synced, err := s.syncer.Sync(ctx, b.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to sync transactions for bank %s: %w", bankDocID, ErrUpstream)
	}

	transfers, err := s.transfers.ListByBank(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers for bank %s: %w", bankDocID, ErrUpstream)
	}

	transferTxs := make([]transaction.Transaction, 0, len(transfers))
	for _, tr := range transfers {
		transferTxs = append(transferTxs, transaction.FromTransfer(tr, b.ID))
	}

	return &Detail{
		Data:         acct,
		Transactions: transaction.Merge(synced, transferTxs),
	}, nil
}

// GetInstitution is a pass-through lookup of institution display metadata.
func (s *Service) GetInstitution(ctx context.Context, institutionID string) (*Institution, error) {
	inst, err := s.client.GetInstitution(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get institution %s: %w", institutionID, ErrUpstream)
	}
	return &Institution{ID: inst.InstitutionID, Name: inst.Name}, nil
}

// fetchAccount combines the provider account snapshot and institution
// metadata for one bank link.
func (s *Service) fetchAccount(ctx context.Context, b *bank.Bank) (*Account, error) {
	resp, err := s.client.GetAccounts(ctx, b.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("accounts lookup failed: %w", err)
	}
	if len(resp.Accounts) == 0 {
		return nil, fmt.Errorf("no account data returned for item %s", b.BankID)
	}

	// The bank link records which provider account it belongs to; fall back
	// to the first account when the link predates that field.
	data := resp.Accounts[0]
	for i := range resp.Accounts {
		if resp.Accounts[i].AccountID == b.AccountID {
			data = resp.Accounts[i]
			break
		}
	}

	inst, err := s.client.GetInstitution(ctx, resp.Item.InstitutionID)
	if err != nil {
		return nil, fmt.Errorf("institution lookup failed: %w", err)
	}

	available := decimal.Zero
	if data.Balances.Available != nil {
		available = decimal.NewFromFloat(*data.Balances.Available)
	}

	return &Account{
		ID:               data.AccountID,
		AvailableBalance: available,
		CurrentBalance:   decimal.NewFromFloat(data.Balances.Current),
		InstitutionID:    inst.InstitutionID,
		Name:             data.Name,
		OfficialName:     data.OfficialName,
		Mask:             data.Mask,
		Type:             data.Type,
		Subtype:          data.Subtype,
		BankDocID:        b.ID,
		ShareableID:      b.ShareableID,
	}, nil
}
