package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is an HTTP client for the admin API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from the API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func (e *APIError) String() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// StatusError is returned for any non-2xx response
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

// Do performs an HTTP request and decodes a JSON response into result
func (c *Client) Do(method, path string, result any) error {
	req, err := http.NewRequest(method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		msg := fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			msg = errResp.Error.String()
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Players lists connected players
func (c *Client) Players() ([]Profile, error) {
	var players []Profile
	err := c.Do(http.MethodGet, "/players", &players)
	return players, err
}

// Whitelist lists whitelisted names
func (c *Client) Whitelist() ([]string, error) {
	var names []string
	err := c.Do(http.MethodGet, "/whitelist", &names)
	return names, err
}

// IsWhitelisted checks a UUID or player name
func (c *Client) IsWhitelisted(idOrName string) (bool, error) {
	var ok bool
	err := c.Do(http.MethodGet, whitelistPath(idOrName), &ok)
	return ok, err
}

// AddToWhitelist whitelists a UUID or player name
func (c *Client) AddToWhitelist(idOrName string) (Profile, error) {
	var p Profile
	err := c.Do(http.MethodPost, whitelistPath(idOrName), &p)
	return p, err
}

// RemoveFromWhitelist removes a UUID or player name from the whitelist
func (c *Client) RemoveFromWhitelist(idOrName string) (Profile, error) {
	var p Profile
	err := c.Do(http.MethodDelete, whitelistPath(idOrName), &p)
	return p, err
}

func whitelistPath(idOrName string) string {
	return "/whitelist/" + url.PathEscape(idOrName)
}
