package http

import (
	"errors"
	"log"
	"net/http"

	"horizon/internal/domain/account"
	"horizon/internal/domain/transaction"
	"horizon/internal/shared/middleware"
	"horizon/internal/web"
)

// HandleHealth returns a simple health check response.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// PageHandler serves the server-rendered pages.
type PageHandler struct {
	accounts *account.Service
}

// NewPageHandler creates a new page handler.
func NewPageHandler(accounts *account.Service) *PageHandler {
	return &PageHandler{accounts: accounts}
}

// transactionHistoryData is the template payload for the history page.
type transactionHistoryData struct {
	Account      *account.Account
	Transactions []transaction.Transaction
	Page         int
	TotalPages   int
	PrevPage     int
	NextPage     int
	HasPrev      bool
	HasNext      bool
}

// HandleTransactionHistory renders the paginated transaction table for one
// bank, defaulting to the user's first bank when no id is given. Any failure
// along the chain renders the plain error page; there is no partial render.
func (h *PageHandler) HandleTransactionHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		renderError(w, http.StatusUnauthorized)
		return
	}

	bankDocID := r.URL.Query().Get("id")
	if bankDocID == "" {
		summary, err := h.accounts.GetAccounts(r.Context(), userID)
		if err != nil {
			logPageError("resolve default bank for user "+userID, err)
			renderError(w, statusFor(err))
			return
		}
		bankDocID = summary.Data[0].BankDocID
	}

	page := parsePage(r.URL.Query().Get("page"))

	detail, err := h.accounts.GetAccount(r.Context(), bankDocID)
	if err != nil {
		logPageError("get account "+bankDocID, err)
		renderError(w, statusFor(err))
		return
	}

	totalPages := transaction.TotalPages(len(detail.Transactions))
	data := transactionHistoryData{
		Account:      detail.Data,
		Transactions: transaction.Paginate(detail.Transactions, page),
		Page:         page,
		TotalPages:   totalPages,
		PrevPage:     page - 1,
		NextPage:     page + 1,
		HasPrev:      page > 1,
		HasNext:      page < totalPages,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.Templates.ExecuteTemplate(w, "transactions.html", data); err != nil {
		log.Printf("Failed to render transaction history: %v", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, account.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, account.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func logPageError(op string, err error) {
	log.Printf("Transaction history page: %s: %v", op, err)
}

// renderError writes the plain error page with a generic message.
func renderError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := web.Templates.ExecuteTemplate(w, "error.html", nil); err != nil {
		log.Printf("Failed to render error page: %v", err)
	}
}
