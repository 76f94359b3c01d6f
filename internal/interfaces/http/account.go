package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"horizon/internal/domain/account"
	"horizon/internal/shared/middleware"
)

// AccountHandler serves the aggregated account endpoints.
type AccountHandler struct {
	accounts *account.Service
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accounts *account.Service) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// HandleListAccounts returns every linked account for the authenticated user
// as { data, totalBanks, totalCurrentBalance }.
func (h *AccountHandler) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.accounts.GetAccounts(r.Context(), userID)
	if err != nil {
		writeAccountError(w, "list accounts for user "+userID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// HandleAccountByID returns one account plus its merged transaction feed as
// { data, transactions }. The id path segment is the bank document id.
func (h *AccountHandler) HandleAccountByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := middleware.UserIDFrom(r.Context()); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	bankDocID := r.PathValue("id")
	if bankDocID == "" {
		http.Error(w, "Account ID is required", http.StatusBadRequest)
		return
	}

	detail, err := h.accounts.GetAccount(r.Context(), bankDocID)
	if err != nil {
		writeAccountError(w, "get account "+bankDocID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(detail)
}

// writeAccountError maps domain errors onto HTTP statuses.
func writeAccountError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, account.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, account.ErrUpstream):
		log.Printf("Upstream failure: %s: %v", op, err)
		http.Error(w, "Upstream service unavailable", http.StatusBadGateway)
	default:
		log.Printf("Error: %s: %v", op, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
