package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rogerio-castellano/inventory-manager/internal/models"
	"golang.org/x/time/rate"
)

const (
	// UpdateConfirmation is the message the store sends back after a full-record update.
	UpdateConfirmation = "Product quantity updated"
	// DeleteConfirmation is the message the store sends back after a delete.
	DeleteConfirmation = "Product deleted"

	productsPath    = "/api/products"
	maxResponseSize = 1 << 20
)

// ProductClient talks to the remote product store over HTTP+JSON.
type ProductClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
	limiter    *rate.Limiter

	updateConfirmation string
	deleteConfirmation string
}

type Option func(*ProductClient)

// WithTimeout sets the per-request timeout of the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *ProductClient) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *ProductClient) {
		c.httpClient = hc
	}
}

// WithToken sends the token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(c *ProductClient) {
		c.token = token
	}
}

// WithRateLimit throttles outgoing calls. A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *ProductClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithConfirmations overrides the messages that confirm update and delete.
// Empty values keep the defaults.
func WithConfirmations(update, del string) Option {
	return func(c *ProductClient) {
		if update != "" {
			c.updateConfirmation = update
		}
		if del != "" {
			c.deleteConfirmation = del
		}
	}
}

func New(baseURL string, opts ...Option) *ProductClient {
	c := &ProductClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		updateConfirmation: UpdateConfirmation,
		deleteConfirmation: DeleteConfirmation,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type storeResponse struct {
	ID      json.RawMessage `json:"id"`
	Message string          `json:"message"`
}

// Create sends a new product and returns the id the store assigned to it.
func (c *ProductClient) Create(ctx context.Context, f models.Fields) (models.ProductID, error) {
	const op = "create product"

	var resp storeResponse
	status, err := c.call(ctx, op, http.MethodPost, productsPath, f, &resp)
	if err != nil {
		return "", err
	}

	if !models.Truthy(resp.ID) {
		return "", &RejectionError{Op: op, Status: status, Reason: "response has no id"}
	}
	var id models.ProductID
	if err := json.Unmarshal(resp.ID, &id); err != nil {
		return "", &RejectionError{Op: op, Status: status, Reason: err.Error()}
	}
	return id, nil
}

// Update replaces the full record stored under id.
func (c *ProductClient) Update(ctx context.Context, id models.ProductID, f models.Fields) error {
	const op = "update product"

	var resp storeResponse
	status, err := c.call(ctx, op, http.MethodPut, productPath(id), f, &resp)
	if err != nil {
		return err
	}
	if resp.Message != c.updateConfirmation {
		return &RejectionError{Op: op, Status: status, Reason: fmt.Sprintf("unexpected message %q", resp.Message)}
	}
	return nil
}

// Delete removes the record stored under id.
func (c *ProductClient) Delete(ctx context.Context, id models.ProductID) error {
	const op = "delete product"

	var resp storeResponse
	status, err := c.call(ctx, op, http.MethodDelete, productPath(id), nil, &resp)
	if err != nil {
		return err
	}
	if resp.Message != c.deleteConfirmation {
		return &RejectionError{Op: op, Status: status, Reason: fmt.Sprintf("unexpected message %q", resp.Message)}
	}
	return nil
}

// List fetches every product the store holds.
func (c *ProductClient) List(ctx context.Context) ([]models.Product, error) {
	const op = "list products"

	var products []models.Product
	if _, err := c.call(ctx, op, http.MethodGet, productsPath, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func productPath(id models.ProductID) string {
	return productsPath + "/" + url.PathEscape(id.String())
}

// call performs one round trip and decodes a 2xx JSON body into out. It
// returns the status code of a completed call.
func (c *ProductClient) call(ctx context.Context, op, method, path string, body, out any) (int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, &TransportError{Op: op, Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, &TransportError{Op: op, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &TransportError{Op: op, Err: fmt.Errorf("failed to call product store: %w", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, &TransportError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &RejectionError{Op: op, Status: resp.StatusCode, Reason: strings.TrimSpace(string(data))}
	}

	if !json.Valid(data) {
		return resp.StatusCode, &TransportError{Op: op, Err: errors.New("response is not JSON")}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, &RejectionError{Op: op, Status: resp.StatusCode, Reason: fmt.Sprintf("unexpected response shape: %v", err)}
	}
	return resp.StatusCode, nil
}
