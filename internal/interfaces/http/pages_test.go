package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"horizon/internal/domain/bank"
	"horizon/internal/infrastructure/plaid"
)

func TestHandleHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Errorf("body = %q, want ok status", rr.Body.String())
	}
}

func TestHandleTransactionHistory_RendersTable(t *testing.T) {
	client := &MockPlaidClient{
		SyncTransactionsFunc: func(ctx context.Context, accessToken, cursor string) (*plaid.SyncResponse, error) {
			return &plaid.SyncResponse{
				Added: []plaid.SyncTransaction{
					{TransactionID: "tx-1", Name: "Coffee Shop", Amount: 4.5, Date: "2026-08-02", PaymentChannel: "in store", Category: []string{"Food and Drink"}},
				},
				HasMore: false,
			}, nil
		},
	}
	handler := NewPageHandler(newService(client, &MockBankStore{}, &MockTransferStore{}))

	rr := httptest.NewRecorder()
	handler.HandleTransactionHistory(rr, authedRequest(http.MethodGet, "/transaction-history?id=bank-1"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Coffee Shop") {
		t.Error("rendered page missing transaction name")
	}
	if !strings.Contains(body, "Checking") {
		t.Error("rendered page missing account name")
	}
	if !strings.Contains(body, "Food and Drink") {
		t.Error("rendered page missing category")
	}
}

func TestHandleTransactionHistory_DefaultBank(t *testing.T) {
	handler := NewPageHandler(newService(&MockPlaidClient{}, &MockBankStore{}, &MockTransferStore{}))

	rr := httptest.NewRecorder()
	handler.HandleTransactionHistory(rr, authedRequest(http.MethodGet, "/transaction-history"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleTransactionHistory_NoSession(t *testing.T) {
	handler := NewPageHandler(newService(&MockPlaidClient{}, &MockBankStore{}, &MockTransferStore{}))

	rr := httptest.NewRecorder()
	handler.HandleTransactionHistory(rr, httptest.NewRequest(http.MethodGet, "/transaction-history", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Something went wrong") {
		t.Error("expected the plain error page")
	}
}

func TestHandleTransactionHistory_UnknownBankRendersError(t *testing.T) {
	banks := &MockBankStore{
		GetByIDFunc: func(ctx context.Context, id string) (*bank.Bank, error) {
			return nil, bank.ErrNotFound
		},
	}
	handler := NewPageHandler(newService(&MockPlaidClient{}, banks, &MockTransferStore{}))

	rr := httptest.NewRecorder()
	handler.HandleTransactionHistory(rr, authedRequest(http.MethodGet, "/transaction-history?id=ghost"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Something went wrong") {
		t.Error("expected the plain error page")
	}
}
