// Package client is a Go client for the dashboard API. It keeps the logged-in
// admin in an explicit Session and attaches its token to protected calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"admindash/internal/model"
)

// ErrNotLoggedIn is returned by protected calls made without a token.
var ErrNotLoggedIn = errors.New("client: not logged in")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Client talks to the dashboard API on behalf of one Session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API rooted at baseURL (for example
// "http://localhost:5000/api"). A nil session starts logged out.
func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = &Session{}
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		session:    session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session the client mutates.
func (c *Client) Session() *Session {
	return c.session
}

// Login exchanges credentials for a token and stores both token and admin in
// the session.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Admin, error) {
	var resp struct {
		Token string       `json:"token"`
		User  *model.Admin `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", false, body, &resp); err != nil {
		return nil, err
	}

	c.session.Token = resp.Token
	c.session.Admin = resp.User
	return resp.User, nil
}

// Restore re-validates a saved token and refreshes the cached admin. When the
// server no longer accepts the token the session is cleared.
func (c *Client) Restore(ctx context.Context) (*model.Admin, error) {
	if !c.session.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	var resp struct {
		User *model.Admin `json:"user"`
	}
	body := map[string]string{"token": c.session.Token}
	if err := c.do(ctx, http.MethodPost, "/auth/verify-token", false, body, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusNotFound) {
			c.session.Clear()
		}
		return nil, err
	}

	c.session.Admin = resp.User
	return resp.User, nil
}

// Logout forgets the session locally. Tokens are stateless, so the server is
// not contacted.
func (c *Client) Logout() {
	c.session.Clear()
}

// ListCustomers returns every customer, newest first.
func (c *Client) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := c.do(ctx, http.MethodGet, "/customers", true, nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// CreateCustomer creates a customer.
func (c *Client) CreateCustomer(ctx context.Context, input model.CustomerInput) (*model.Customer, error) {
	var customer model.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", true, input, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateCustomer changes the fields set in patch.
func (c *Client) UpdateCustomer(ctx context.Context, id uuid.UUID, patch model.CustomerPatch) (*model.Customer, error) {
	var customer model.Customer
	if err := c.do(ctx, http.MethodPut, "/customers/"+id.String(), true, patch, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// DeleteCustomer removes a customer.
func (c *Client) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/customers/"+id.String(), true, nil, nil)
}

// AdminStats fetches the admin analytics.
func (c *Client) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	var stats model.AdminStats
	if err := c.do(ctx, http.MethodGet, "/analytics/admins", true, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) do(ctx context.Context, method, path string, authed bool, in, out interface{}) error {
	if authed && !c.session.LoggedIn() {
		return ErrNotLoggedIn
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		apiErr.Message = body.Message
	}
	return apiErr
}
