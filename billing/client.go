// Package billing is a typed client for the hospital billing API. It
// owns the session token lifecycle, attaches credentials to every call
// and maps the REST resource families onto per-resource services.
package billing

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

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	userAgent       = "medledger-go/" + Version
	defaultTimeout  = 30 * time.Second
	maxResponseBody = 4 << 20
)

// Version is the SDK release version reported in the User-Agent header.
const Version = "0.3.0"

// Client talks to the billing API. A Client issues one call at a time on
// behalf of its caller; it performs no retries, request de-duplication or
// cancellation of superseded requests. Construct one with New.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     zerolog.Logger
	validate   *validator.Validate
	session    *Session

	Auth       *AuthService
	Users      *UsersService
	Doctors    *DoctorsService
	Patients   *PatientsService
	Billables  *BillablesService
	Packages   *PackagesService
	Treatments *TreatmentsService
	Invoices   *InvoicesService
	Discounts  *DiscountsService
	Audit      *AuditService
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Timeouts, tracing
// and any retry policy belong to the injected client, not the gateway.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger attaches a zerolog logger for per-call debug logs.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTokenStore selects where the session token is persisted. The
// default is an in-memory store that does not survive the process.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.session = NewSession(store) }
}

// New constructs a Client against the given base endpoint, e.g.
// "https://billing.example.com/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("billing: base URL is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("billing: parse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("billing: base URL %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zerolog.Nop(),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		session:    NewSession(&MemStore{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{client: c}
	c.Users = &UsersService{client: c}
	c.Doctors = &DoctorsService{client: c}
	c.Patients = &PatientsService{client: c}
	c.Billables = &BillablesService{client: c}
	c.Packages = &PackagesService{client: c}
	c.Treatments = &TreatmentsService{client: c}
	c.Invoices = &InvoicesService{client: c}
	c.Discounts = &DiscountsService{client: c}
	c.Audit = &AuditService{client: c}
	return c, nil
}

// Session exposes the client's session for state inspection and logout.
func (c *Client) Session() *Session {
	return c.session
}

// Restore attempts to resume a previously persisted session. When a
// stored token exists the current identity is fetched; on success the
// session becomes Authenticated. Any failure discards the stale token
// and leaves the session Anonymous. A rejected token (401) is silent:
// it reports false with a nil error.
func (c *Client) Restore(ctx context.Context) (bool, error) {
	if !c.session.beginRestore() {
		return false, nil
	}
	var identity User
	err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &identity)
	if err != nil {
		clearErr := c.session.Clear()
		if IsUnauthorized(err) {
			c.logger.Debug().Msg("persisted session rejected, token discarded")
			return false, clearErr
		}
		return false, err
	}
	c.session.completeRestore(&identity)
	return true, nil
}

// validateRequest runs struct validation on an outbound request body.
func (c *Client) validateRequest(req any) error {
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("billing: invalid request: %w", err)
	}
	return nil
}

// do executes a single API call. dst may be nil for calls whose response
// body is irrelevant. A 401 from any call invalidates the session before
// the error is returned.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dst any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("billing: encode %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return fmt.Errorf("billing: build %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("billing: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("billing: read %s %s response: %w", method, path, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Str("request_id", requestID).
		Msg("api call")

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.session.Clear()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, raw, requestID)
	}

	if dst == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("billing: decode %s %s response: %w", method, path, err)
	}
	return nil
}
