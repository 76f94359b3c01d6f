package plaid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"horizon/internal/shared/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.PlaidConfig{
		BaseURL:  serverURL,
		ClientID: "client-id",
		Secret:   "secret",
		Timeout:  5 * time.Second,
	})
}

func TestGetAccounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/accounts/get" {
			t.Errorf("path = %s, want /accounts/get", r.URL.Path)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if body["client_id"] != "client-id" || body["secret"] != "secret" {
			t.Errorf("request missing credential pair: %v", body)
		}
		if body["access_token"] != "access-token-1" {
			t.Errorf("access_token = %v, want access-token-1", body["access_token"])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AccountsResponse{
			Accounts: []Account{
				{AccountID: "acc-1", Name: "Plaid Checking", Mask: "0000", Type: "depository", Subtype: "checking", Balances: Balances{Current: 110.5}},
			},
			Item: Item{ItemID: "item-1", InstitutionID: "ins_1"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	resp, err := client.GetAccounts(context.Background(), "access-token-1")
	if err != nil {
		t.Fatalf("GetAccounts() failed: %v", err)
	}
	if len(resp.Accounts) != 1 {
		t.Fatalf("len(Accounts) = %d, want 1", len(resp.Accounts))
	}
	if resp.Accounts[0].AccountID != "acc-1" {
		t.Errorf("AccountID = %q, want acc-1", resp.Accounts[0].AccountID)
	}
	if resp.Item.InstitutionID != "ins_1" {
		t.Errorf("InstitutionID = %q, want ins_1", resp.Item.InstitutionID)
	}
}

func TestGetInstitution_CountryFixedToUS(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/institutions/get_by_id" {
			t.Errorf("path = %s, want /institutions/get_by_id", r.URL.Path)
		}

		var body institutionRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if len(body.CountryCodes) != 1 || body.CountryCodes[0] != "US" {
			t.Errorf("country_codes = %v, want [US]", body.CountryCodes)
		}

		json.NewEncoder(w).Encode(InstitutionResponse{
			Institution: Institution{InstitutionID: body.InstitutionID, Name: "First Platypus Bank"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	inst, err := client.GetInstitution(context.Background(), "ins_1")
	if err != nil {
		t.Fatalf("GetInstitution() failed: %v", err)
	}
	if inst.Name != "First Platypus Bank" {
		t.Errorf("Name = %q, want First Platypus Bank", inst.Name)
	}
}

func TestSyncTransactions_CursorPassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body syncRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if body.Cursor != "cursor-1" {
			t.Errorf("cursor = %q, want cursor-1", body.Cursor)
		}

		json.NewEncoder(w).Encode(SyncResponse{
			Added:      []SyncTransaction{{TransactionID: "tx-1", Name: "Coffee", Amount: 4.5, Date: "2026-08-01"}},
			NextCursor: "cursor-2",
			HasMore:    true,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	resp, err := client.SyncTransactions(context.Background(), "access-token-1", "cursor-1")
	if err != nil {
		t.Fatalf("SyncTransactions() failed: %v", err)
	}
	if resp.NextCursor != "cursor-2" || !resp.HasMore {
		t.Errorf("got cursor=%q has_more=%v, want cursor-2/true", resp.NextCursor, resp.HasMore)
	}
}

func TestPost_APIErrorDecoded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{
			ErrorType:    "INVALID_INPUT",
			ErrorCode:    "INVALID_ACCESS_TOKEN",
			ErrorMessage: "could not find matching access token",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetAccounts(context.Background(), "bogus")
	if err == nil {
		t.Fatal("GetAccounts() expected error for 400 response, got nil")
	}
}

func TestSyncTransaction_GetDate(t *testing.T) {
	tx := SyncTransaction{Date: "2026-08-15"}
	got, err := tx.GetDate()
	if err != nil {
		t.Fatalf("GetDate() failed: %v", err)
	}
	want := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("GetDate() = %v, want %v", got, want)
	}

	tx.Date = "not-a-date"
	if _, err := tx.GetDate(); err == nil {
		t.Error("GetDate() expected error for malformed date, got nil")
	}
}
