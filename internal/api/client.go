// internal/api/client.go
//
// Typed HTTP client for the storefront backend. Loosely-typed JSON responses
// are parsed into entities at this boundary; everything above works with
// catalog.Product, api.User and api.OrderConfirmation. Failures carry one of
// the sentinel error kinds so callers can classify them with errors.Is.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VanceeBassem/ecommerce-frontend/internal/cart"
	"github.com/VanceeBassem/ecommerce-frontend/internal/catalog"
)

// Error taxonomy. Every remote-call failure wraps exactly one of these; the
// view layer surfaces them as a single user-facing notification and never
// retries automatically.
var (
	ErrAuthentication  = errors.New("authentication failed")
	ErrCatalogFetch    = errors.New("catalog fetch failed")
	ErrOrderSubmission = errors.New("order submission failed")
)

// maxResponseBytes caps how much of a response body we are willing to decode.
const maxResponseBytes = 4 << 20

// User is the authenticated account returned by the login endpoint.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderConfirmation is what a successful order submission returns. The
// backend may answer with an empty body; both fields are then zero.
type OrderConfirmation struct {
	ID    int             `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// Logger is the subset of the diagnostics logger the client needs.
type Logger interface {
	Info(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Client talks to the storefront backend. All methods are sequential calls
// with no retry policy; a failed request surfaces immediately and the user
// re-triggers the action manually.
type Client struct {
	baseURL string
	http    *http.Client
	logger  Logger
}

// Option customizes client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying transport, mainly for tests and
// for applying the configured timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger overrides the default no-op diagnostics logger.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient prepares a client for the given base URL (no trailing slash).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
		logger:  nopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Login exchanges credentials for the user and a bearer token. Any failure,
// wrong password or server error alike, is reported as ErrAuthentication.
func (c *Client) Login(ctx context.Context, email, password string) (User, string, error) {
	reqID := shortID()
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return User{}, "", fmt.Errorf("api: login [%s]: %w (%v)", reqID, ErrAuthentication, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return User{}, "", fmt.Errorf("api: login [%s]: %w (%v)", reqID, ErrAuthentication, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("api: POST /api/login [%s]: %v", reqID, err)
		return User{}, "", fmt.Errorf("api: login [%s]: %w (%v)", reqID, ErrAuthentication, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("api: POST /api/login [%s]: status %d", reqID, resp.StatusCode)
		return User{}, "", fmt.Errorf("api: login [%s]: status %d: %w", reqID, resp.StatusCode, ErrAuthentication)
	}

	var parsed loginResponse
	if err := decodeJSON(resp.Body, &parsed); err != nil {
		c.logger.Error("api: POST /api/login [%s]: decode: %v", reqID, err)
		return User{}, "", fmt.Errorf("api: login [%s]: %w (%v)", reqID, ErrAuthentication, err)
	}
	if parsed.Token == "" {
		c.logger.Error("api: POST /api/login [%s]: response carried no token", reqID)
		return User{}, "", fmt.Errorf("api: login [%s]: missing token: %w", reqID, ErrAuthentication)
	}

	c.logger.Info("api: POST /api/login [%s]: authenticated %s", reqID, parsed.User.Email)
	return parsed.User, parsed.Token, nil
}

// Logout invalidates the server-side session for the token.
func (c *Client) Logout(ctx context.Context, token string) error {
	reqID := shortID()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/logout", nil)
	if err != nil {
		return fmt.Errorf("api: logout [%s]: %w (%v)", reqID, ErrAuthentication, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("api: POST /api/logout [%s]: %v", reqID, err)
		return fmt.Errorf("api: logout [%s]: %w (%v)", reqID, ErrAuthentication, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("api: POST /api/logout [%s]: status %d", reqID, resp.StatusCode)
		return fmt.Errorf("api: logout [%s]: status %d: %w", reqID, resp.StatusCode, ErrAuthentication)
	}
	c.logger.Info("api: POST /api/logout [%s]: session ended", reqID)
	return nil
}

// productPayload mirrors one entry of the catalog response. Stock is a
// pointer so an omitted count can be told apart from zero; both fall back to
// the placeholder.
type productPayload struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	ImageURL string          `json:"image_url"`
	Stock    *int            `json:"stock"`
}

type productsResponse struct {
	Data []productPayload `json:"data"`
}

// FetchProducts retrieves the catalog filtered by the given state. The
// returned slice replaces the displayed catalog verbatim; stale entries are
// never merged with a previous list.
func (c *Client) FetchProducts(ctx context.Context, filter catalog.FilterState, token string) ([]catalog.Product, error) {
	reqID := shortID()
	url := c.baseURL + "/api/products?" + filter.Query().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("api: fetch products [%s]: %w (%v)", reqID, ErrCatalogFetch, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("api: GET /api/products [%s]: %v", reqID, err)
		return nil, fmt.Errorf("api: fetch products [%s]: %w (%v)", reqID, ErrCatalogFetch, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("api: GET /api/products [%s]: status %d", reqID, resp.StatusCode)
		return nil, fmt.Errorf("api: fetch products [%s]: status %d: %w", reqID, resp.StatusCode, ErrCatalogFetch)
	}

	var parsed productsResponse
	if err := decodeJSON(resp.Body, &parsed); err != nil {
		c.logger.Error("api: GET /api/products [%s]: decode: %v", reqID, err)
		return nil, fmt.Errorf("api: fetch products [%s]: %w (%v)", reqID, ErrCatalogFetch, err)
	}

	products := make([]catalog.Product, 0, len(parsed.Data))
	for _, p := range parsed.Data {
		stock := catalog.DefaultStock
		if p.Stock != nil && *p.Stock > 0 {
			stock = *p.Stock
		}
		products = append(products, catalog.Product{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
			ImageURL: p.ImageURL,
			Stock:    stock,
		})
	}
	c.logger.Info("api: GET /api/products [%s]: %d products", reqID, len(products))
	return products, nil
}

type orderItem struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

type orderRequest struct {
	Products []orderItem `json:"products"`
}

type confirmationEnvelope struct {
	Data OrderConfirmation `json:"data"`
}

// SubmitOrder posts the cart as {id, quantity} pairs. The order is
// all-or-nothing from the client's perspective: any rejection, invalid token
// and out-of-stock included, surfaces as ErrOrderSubmission.
func (c *Client) SubmitOrder(ctx context.Context, lines []cart.Line, token string) (OrderConfirmation, error) {
	reqID := shortID()
	payload := orderRequest{Products: make([]orderItem, 0, len(lines))}
	for _, line := range lines {
		payload.Products = append(payload.Products, orderItem{ID: line.Product.ID, Quantity: line.Quantity})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return OrderConfirmation{}, fmt.Errorf("api: submit order [%s]: %w (%v)", reqID, ErrOrderSubmission, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return OrderConfirmation{}, fmt.Errorf("api: submit order [%s]: %w (%v)", reqID, ErrOrderSubmission, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("api: POST /api/orders [%s]: %v", reqID, err)
		return OrderConfirmation{}, fmt.Errorf("api: submit order [%s]: %w (%v)", reqID, ErrOrderSubmission, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("api: POST /api/orders [%s]: status %d", reqID, resp.StatusCode)
		return OrderConfirmation{}, fmt.Errorf("api: submit order [%s]: status %d: %w", reqID, resp.StatusCode, ErrOrderSubmission)
	}

	// The backend is not required to return a body on success; tolerate an
	// empty response and only reject malformed JSON.
	var parsed confirmationEnvelope
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logger.Error("api: POST /api/orders [%s]: read: %v", reqID, err)
		return OrderConfirmation{}, fmt.Errorf("api: submit order [%s]: %w (%v)", reqID, ErrOrderSubmission, err)
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			c.logger.Error("api: POST /api/orders [%s]: decode: %v", reqID, err)
			return OrderConfirmation{}, fmt.Errorf("api: submit order [%s]: %w (%v)", reqID, ErrOrderSubmission, err)
		}
	}
	c.logger.Info("api: POST /api/orders [%s]: order placed (%d lines)", reqID, len(lines))
	return parsed.Data, nil
}

func decodeJSON(r io.Reader, out any) error {
	return json.NewDecoder(io.LimitReader(r, maxResponseBytes)).Decode(out)
}

// drain consumes and closes the body so the transport can reuse connections.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
}

// shortID tags each request's diagnostic lines so interleaved entries for the
// same endpoint can be told apart.
func shortID() string {
	return uuid.NewString()[:8]
}
