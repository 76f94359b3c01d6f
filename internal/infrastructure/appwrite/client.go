package appwrite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client handles communication with the Appwrite REST API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	project    string
	apiKey     string
}

// NewClient creates a new Appwrite client. endpoint includes the API version
// prefix, e.g. "https://cloud.appwrite.io/v1".
func NewClient(endpoint, project, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		endpoint: endpoint,
		project:  project,
		apiKey:   apiKey,
	}
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

// documentList is the generic shape of a list-documents response. Documents
// stay raw so each store can decode its own attribute set.
type documentList struct {
	Total     int               `json:"total"`
	Documents []json.RawMessage `json:"documents"`
}

// equalQuery builds an equality query string in the REST query syntax.
func equalQuery(attribute, value string) string {
	q := struct {
		Method    string   `json:"method"`
		Attribute string   `json:"attribute"`
		Values    []string `json:"values"`
	}{Method: "equal", Attribute: attribute, Values: []string{value}}
	encoded, _ := json.Marshal(q)
	return string(encoded)
}

// listDocuments fetches documents from a collection, optionally filtered.
func (c *Client) listDocuments(ctx context.Context, databaseID, collectionID string, queries []string) (*documentList, error) {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents", databaseID, collectionID)

	params := url.Values{}
	for _, q := range queries {
		params.Add("queries[]", q)
	}
	endpoint := c.endpoint + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var list documentList
	if err := c.get(ctx, endpoint, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// getDocument fetches a single document by id. Returns errNotFound for 404.
func (c *Client) getDocument(ctx context.Context, databaseID, collectionID, documentID string, out any) error {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents/%s", databaseID, collectionID, documentID)
	return c.get(ctx, c.endpoint+path, nil, out)
}

// getSessionAccount fetches the account owning a session secret.
func (c *Client) getSessionAccount(ctx context.Context, sessionSecret string, out any) error {
	headers := map[string]string{"X-Appwrite-Session": sessionSecret}
	return c.get(ctx, c.endpoint+"/account", headers, out)
}

type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.status, e.message)
}

// get executes an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, endpoint string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Appwrite-Project", c.project)
	req.Header.Set("X-Appwrite-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return &statusError{status: resp.StatusCode, message: string(body)}
		}
		return &statusError{status: resp.StatusCode, message: fmt.Sprintf("%s - %s", errResp.Type, errResp.Message)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// isStatus reports whether err is an API error with the given status code.
func isStatus(err error, status int) bool {
	se, ok := err.(*statusError)
	return ok && se.status == status
}
