package board

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

	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/internal/marketplace"
	"github.com/sosmarketplace/sos-board/internal/orders"
	"github.com/sosmarketplace/sos-board/internal/vendors"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
	"github.com/sosmarketplace/sos-board/pkg/types"
)

const (
	defaultTimeout       = 10 * time.Second
	errorBodyReadLimit   = 4096
	idempotencyKeyHeader = "Idempotency-Key"
)

var errServerURLRequired = errors.New("board server url is required")

// API is the set of board endpoints the reconciliation loop drives.
type API interface {
	Snapshot(ctx context.Context) (*marketplace.Snapshot, error)
	RegisterVendor(ctx context.Context, in vendors.RegisterInput) (types.MessageResponse, error)
	DeleteVendor(ctx context.Context, in vendors.DeleteInput) (types.MessageResponse, error)
	SaveVendorChanges(ctx context.Context, in vendors.SaveChangesInput) (types.MessageResponse, error)
	SaveItem(ctx context.Context, in items.SaveInput) (types.MessageResponse, error)
	DeleteItem(ctx context.Context, in items.DeleteInput) (types.MessageResponse, error)
	MarkSoldOut(ctx context.Context, in items.SoldOutInput) (types.MessageResponse, error)
	PlaceOrder(ctx context.Context, in orders.PlaceInput) (types.MessageResponse, error)
	ClearOrders(ctx context.Context, in orders.ClearInput) (types.MessageResponse, error)
}

// Client talks to the board HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	newKey     func() string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds every round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds a client for the board served at serverURL.
func NewClient(serverURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if trimmed == "" {
		return nil, errServerURLRequired
	}
	client := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    trimmed,
		newKey:     uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Snapshot fetches the whole board.
func (c *Client) Snapshot(ctx context.Context) (*marketplace.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/marketplace", nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build snapshot request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "Failed to load marketplace data")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeFailure(resp)
	}
	var snap marketplace.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode marketplace data")
	}
	if snap.Vendors == nil {
		snap.Vendors = map[string]marketplace.Vendor{}
	}
	return &snap, nil
}

func (c *Client) RegisterVendor(ctx context.Context, in vendors.RegisterInput) (types.MessageResponse, error) {
	return c.post(ctx, "/api/v1/vendors/register", in)
}

func (c *Client) DeleteVendor(ctx context.Context, in vendors.DeleteInput) (types.MessageResponse, error) {
	return c.post(ctx, "/api/v1/vendors/delete", in)
}

func (c *Client) SaveVendorChanges(ctx context.Context, in vendors.SaveChangesInput) (types.MessageResponse, error) {
	return c.post(ctx, "/api/v1/vendors/save", in)
}

func (c *Client) SaveItem(ctx context.Context, in items.SaveInput) (types.MessageResponse, error) {
	return c.post(ctx, "/api/v1/items/save", in)
}

func (c *Client) DeleteItem(ctx context.Context, in items.DeleteInput) (types.MessageResponse, error) {
	return c.post(ctx, "/api/v1/items/delete", in)
}

func (c *Client) MarkSoldOut(ctx context.Context, in items.SoldOutInput) (types.MessageResponse, error) {
	return c.post(ctx, "/api/v1/items/sold-out", in)
}

func (c *Client) PlaceOrder(ctx context.Context, in orders.PlaceInput) (types.MessageResponse, error) {
	return c.post(ctx, "/api/v1/orders/place", in)
}

func (c *Client) ClearOrders(ctx context.Context, in orders.ClearInput) (types.MessageResponse, error) {
	return c.post(ctx, "/api/v1/orders/clear", in)
}

// post sends one mutation. Each call carries a fresh idempotency key so a
// transport-level retry of the same request is replayed, not re-applied.
func (c *Client) post(ctx context.Context, path string, body any) (types.MessageResponse, error) {
	var out types.MessageResponse

	payload, err := json.Marshal(body)
	if err != nil {
		return out, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return out, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(idempotencyKeyHeader, c.newKey())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("request to %s failed", path))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, decodeFailure(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return out, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response")
	}
	return out, nil
}

// decodeFailure turns an error body into a coded error whose message is the
// server's own error string.
func decodeFailure(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	var body types.ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil || strings.TrimSpace(body.Error) == "" {
		return pkgerrors.New(codeForStatus(resp.StatusCode), fmt.Sprintf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}
	code := pkgerrors.Code(body.Code)
	if code == "" {
		code = codeForStatus(resp.StatusCode)
	}
	return pkgerrors.New(code, body.Error).WithDetails(body.Details)
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusBadRequest:
		return pkgerrors.CodeValidation
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusMethodNotAllowed:
		return pkgerrors.CodeMethodNotAllowed
	case http.StatusConflict:
		return pkgerrors.CodeDuplicateKey
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	case http.StatusServiceUnavailable:
		return pkgerrors.CodeDependency
	}
	return pkgerrors.CodeInternal
}
