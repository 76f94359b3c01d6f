package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"horizon/internal/domain/account"
	"horizon/internal/domain/transaction"
	"horizon/internal/shared/middleware"
)

// TransactionHandler serves paginated transaction history.
type TransactionHandler struct {
	accounts *account.Service
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(accounts *account.Service) *TransactionHandler {
	return &TransactionHandler{accounts: accounts}
}

// TransactionPageResponse is one page of an account's merged feed.
type TransactionPageResponse struct {
	Data       []transaction.Transaction `json:"data"`
	Page       int                       `json:"page"`
	TotalPages int                       `json:"totalPages"`
	Total      int                       `json:"total"`
}

// HandleListTransactions returns a page of the merged feed for a bank,
// defaulting to the user's first bank when no id is given.
// Query: ?id=<bank document id>&page=<n>.
func (h *TransactionHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	bankDocID := r.URL.Query().Get("id")
	if bankDocID == "" {
		summary, err := h.accounts.GetAccounts(r.Context(), userID)
		if err != nil {
			writeAccountError(w, "resolve default bank for user "+userID, err)
			return
		}
		bankDocID = summary.Data[0].BankDocID
	}

	page := parsePage(r.URL.Query().Get("page"))

	detail, err := h.accounts.GetAccount(r.Context(), bankDocID)
	if err != nil {
		writeAccountError(w, "get transactions for bank "+bankDocID, err)
		return
	}

	resp := TransactionPageResponse{
		Data:       transaction.Paginate(detail.Transactions, page),
		Page:       page,
		TotalPages: transaction.TotalPages(len(detail.Transactions)),
		Total:      len(detail.Transactions),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// parsePage interprets the page query parameter, defaulting to the first
// page for missing or malformed values.
func parsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
