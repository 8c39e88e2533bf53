package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Version is the SDK version reported in the default User-Agent.
const Version = "0.1.0"

const (
	defaultTimeout = 30 * time.Second
	healthTimeout  = 10 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 1 << 20
)

// Client is a low-level HTTP client for the Action Ledger API.
// Safe for concurrent use; every call is a single request/response
// exchange with no retries or shared mutable state.
type Client struct {
	baseURL   string
	apiKey    string
	hc        *http.Client
	timeout   time.Duration
	userAgent string
}

// New creates a Client for the ledger at ledgerURL, authenticating every
// request with apiKey.
func New(ledgerURL, apiKey string, opts ...Option) (*Client, error) {
	if ledgerURL == "" {
		return nil, errors.New("ledger: ledger URL is required")
	}
	if apiKey == "" {
		return nil, errors.New("ledger: API key is required")
	}

	cfg := clientConfig{
		timeout:   defaultTimeout,
		userAgent: "action-ledger-go/" + Version,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{}
	}

	return &Client{
		baseURL:   strings.TrimRight(ledgerURL, "/"),
		apiKey:    apiKey,
		hc:        cfg.httpClient,
		timeout:   cfg.timeout,
		userAgent: cfg.userAgent,
	}, nil
}

// HashContent returns the SHA-256 hex digest of content. Method form of the
// package-level HashContent, for callers holding only a Client.
func (c *Client) HashContent(content string) string {
	return HashContent(content)
}

// LogEvent submits one event record. The service appends it to the agent's
// hash chain and returns the stored Event including event_id, timestamp,
// event_hash, and previous_event_hash.
//
// A *TransportError means the call never completed; a *APIError means the
// service declined the submission.
func (c *Client) LogEvent(ctx context.Context, sub Submission) (*Event, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return nil, &TransportError{Op: "log_event", URL: c.baseURL + "/events", Err: err}
	}

	var event Event
	if err := c.do(ctx, "log_event", http.MethodPost, "/events", nil, body, c.timeout, true, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// VerifyChain asks the service to re-validate the hash chain for agentID.
// Read-only. An intact chain yields IsValid=true; a broken one yields
// IsValid=false with Details; both are successful calls.
func (c *Client) VerifyChain(ctx context.Context, agentID string) (*VerifyResult, error) {
	if agentID == "" {
		return nil, errors.New("ledger: agent ID is required")
	}

	q := url.Values{"agent_id": []string{agentID}}
	var result VerifyResult
	if err := c.do(ctx, "verify_chain", http.MethodGet, "/verify", q, nil, c.timeout, true, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListEvents returns one page of stored events, optionally filtered by
// agent and action type.
func (c *Client) ListEvents(ctx context.Context, opts ListOptions) (*EventPage, error) {
	page := opts.Page
	if page <= 0 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	q := url.Values{
		"page":      []string{strconv.Itoa(page)},
		"page_size": []string{strconv.Itoa(pageSize)},
	}
	if opts.AgentID != "" {
		q.Set("agent_id", opts.AgentID)
	}
	if opts.ActionType != "" {
		q.Set("action_type", opts.ActionType)
	}

	var result EventPage
	if err := c.do(ctx, "list_events", http.MethodGet, "/events", q, nil, c.timeout, true, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks service availability. No API key is sent.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, "health", http.MethodGet, "/health", nil, nil, healthTimeout, false, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// do issues one request and decodes a 2xx response into out. Non-2xx
// responses become *APIError; anything that prevents a decoded response
// becomes *TransportError.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body []byte, timeout time.Duration, auth bool, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return &TransportError{Op: op, URL: reqURL, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &TransportError{Op: op, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{Op: op, URL: reqURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Detail: errorDetail(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, URL: reqURL, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorDetail extracts the service's error message from a rejection body.
// The ledger reports errors as {"detail": "..."}; anything else falls back
// to the raw body, truncated.
func errorDetail(data []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	s := strings.TrimSpace(string(data))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
