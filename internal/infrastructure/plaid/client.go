package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"horizon/internal/shared/config"
)

const (
	accountsPath     = "/accounts/get"
	institutionsPath = "/institutions/get_by_id"
	syncPath         = "/transactions/sync"
)

var plaidTracer = otel.Tracer("horizon.plaid")

// Client handles communication with the Plaid API. Every request is a JSON
// POST carrying the client_id/secret pair from configuration.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	secret     string
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new Plaid API client from explicit configuration.
func NewClient(cfg config.PlaidConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:  cfg.BaseURL,
		clientID: cfg.ClientID,
		secret:   cfg.Secret,
	}
}

// Account represents an account as reported by /accounts/get
type Account struct {
	AccountID    string   `json:"account_id"`
	Balances     Balances `json:"balances"`
	Mask         string   `json:"mask"`
	Name         string   `json:"name"`
	OfficialName string   `json:"official_name"`
	Type         string   `json:"type"`
	Subtype      string   `json:"subtype"`
}

// Balances holds the balance snapshot for an account. Available may be null
// for credit products.
type Balances struct {
	Available *float64 `json:"available"`
	Current   float64  `json:"current"`
	Limit     *float64 `json:"limit"`
	Currency  *string  `json:"iso_currency_code"`
}

// Item identifies the bank connection the accounts belong to.
type Item struct {
	ItemID        string `json:"item_id"`
	InstitutionID string `json:"institution_id"`
}

// AccountsResponse represents the /accounts/get response body.
type AccountsResponse struct {
	Accounts  []Account `json:"accounts"`
	Item      Item      `json:"item"`
	RequestID string    `json:"request_id"`
}

// Institution represents institution display metadata.
type Institution struct {
	InstitutionID string `json:"institution_id"`
	Name          string `json:"name"`
}

// InstitutionResponse represents the /institutions/get_by_id response body.
type InstitutionResponse struct {
	Institution Institution `json:"institution"`
	RequestID   string      `json:"request_id"`
}

// SyncTransaction represents a transaction entry from /transactions/sync.
type SyncTransaction struct {
	TransactionID  string   `json:"transaction_id"`
	AccountID      string   `json:"account_id"`
	Name           string   `json:"name"`
	Amount         float64  `json:"amount"`
	Currency       *string  `json:"iso_currency_code"`
	Date           string   `json:"date"` // "2006-01-02" format
	Category       []string `json:"category"`
	PaymentChannel string   `json:"payment_channel"`
	Pending        bool     `json:"pending"`
	LogoURL        *string  `json:"logo_url"`
}

// GetDate parses and returns the transaction date.
func (t *SyncTransaction) GetDate() (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", t.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date '%s': %w", t.Date, err)
	}
	return parsed, nil
}

// SyncResponse represents one page of the /transactions/sync feed.
type SyncResponse struct {
	Added      []SyncTransaction `json:"added"`
	NextCursor string            `json:"next_cursor"`
	HasMore    bool              `json:"has_more"`
	RequestID  string            `json:"request_id"`
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	ErrorType    string `json:"error_type"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	RequestID    string `json:"request_id"`
}

type accountsRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
}

type institutionRequest struct {
	ClientID      string   `json:"client_id"`
	Secret        string   `json:"secret"`
	InstitutionID string   `json:"institution_id"`
	CountryCodes  []string `json:"country_codes"`
}

type syncRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
	Cursor      string `json:"cursor,omitempty"`
}

// GetAccounts fetches the account snapshot for a bank connection.
func (c *Client) GetAccounts(ctx context.Context, accessToken string) (*AccountsResponse, error) {
	body := accountsRequest{
		ClientID:    c.clientID,
		Secret:      c.secret,
		AccessToken: accessToken,
	}

	var accountsResp AccountsResponse
	if err := c.post(ctx, accountsPath, body, &accountsResp); err != nil {
		return nil, err
	}
	return &accountsResp, nil
}

// GetInstitution fetches institution metadata by id. Country is fixed to US.
func (c *Client) GetInstitution(ctx context.Context, institutionID string) (*Institution, error) {
	body := institutionRequest{
		ClientID:      c.clientID,
		Secret:        c.secret,
		InstitutionID: institutionID,
		CountryCodes:  []string{"US"},
	}

	var instResp InstitutionResponse
	if err := c.post(ctx, institutionsPath, body, &instResp); err != nil {
		return nil, err
	}
	return &instResp.Institution, nil
}

// SyncTransactions fetches one page of the incremental transaction feed.
// An empty cursor starts the feed from the beginning.
func (c *Client) SyncTransactions(ctx context.Context, accessToken, cursor string) (*SyncResponse, error) {
	body := syncRequest{
		ClientID:    c.clientID,
		Secret:      c.secret,
		AccessToken: accessToken,
		Cursor:      cursor,
	}

	var syncResp SyncResponse
	if err := c.post(ctx, syncPath, body, &syncResp); err != nil {
		return nil, err
	}
	return &syncResp, nil
}

// post executes a JSON POST against the given endpoint path and decodes the
// response into out, with a trace span per call.
func (c *Client) post(ctx context.Context, path string, reqBody, out any) error {
	ctx, span := plaidTracer.Start(ctx, "plaid"+path, trace.WithAttributes(
		attribute.String("http.method", http.MethodPost),
		attribute.String("plaid.endpoint", path),
	))
	defer span.End()

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to read response body: %w", err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil {
			return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("API error (status %d): %s/%s - %s", resp.StatusCode, errResp.ErrorType, errResp.ErrorCode, errResp.ErrorMessage)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
