// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the ForgeFit client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeTransport covers rejected requests and undecodable bodies.
	ErrTypeTransport
	// ErrTypeApplication is a well-formed response reporting failure.
	ErrTypeApplication
)

// IsTransport reports whether err is a transport-level failure. Errors that
// are not a *ClientError count as transport failures.
func IsTransport(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type != ErrTypeApplication
	}
	return err != nil
}

// ServerMessage returns the server-supplied text of an application error,
// or fallback when there is none.
func ServerMessage(err error, fallback string) string {
	var ce *ClientError
	if errors.As(err, &ce) && ce.Type == ErrTypeApplication && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// ErrNotSignedIn is the cause of a ClientError for a request the server
// redirected instead of answering, which is how it sends a missing or
// expired session to the login page.
var ErrNotSignedIn = errors.New("not signed in")

func transportErr(msg string, cause error) *ClientError {
	return &ClientError{Type: ErrTypeTransport, Message: msg, Cause: cause}
}

func applicationErr(msg string) *ClientError {
	return &ClientError{Type: ErrTypeApplication, Message: msg}
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the ForgeFit client.
type ClientConfig struct {
	// BaseURL is the backend root (default: http://127.0.0.1:5000)
	BaseURL string

	// SessionCookie is the Flask session cookie value; empty means anonymous.
	SessionCookie string

	// CookieName is the session cookie name (default: "session")
	CookieName string

	// Timeout per request (default: 15s)
	Timeout time.Duration

	// RatePerSec and RateBurst bound outgoing requests (default: 10/s, burst 5)
	RatePerSec float64
	RateBurst  int

	// Verbose logs each request and response line.
	Verbose bool
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:    "http://127.0.0.1:5000",
		CookieName: "session",
		Timeout:    15 * time.Second,
		RatePerSec: 10,
		RateBurst:  5,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the ForgeFit backend.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new client with default configuration.
func NewClient() *Client {
	c, _ := NewClientWithConfig(DefaultConfig())
	return c
}

// NewClientWithConfig creates a new client with custom configuration.
func NewClientWithConfig(config *ClientConfig) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.CookieName == "" {
		config.CookieName = defaults.CookieName
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.RatePerSec <= 0 {
		config.RatePerSec = defaults.RatePerSec
	}
	if config.RateBurst <= 0 {
		config.RateBurst = defaults.RateBurst
	}

	base, err := url.Parse(strings.TrimRight(config.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", config.BaseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if config.SessionCookie != "" {
		jar.SetCookies(base, []*http.Cookie{{
			Name:  config.CookieName,
			Value: config.SessionCookie,
			Path:  "/",
		}})
	}

	return &Client{
		config:  config,
		baseURL: base,
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Jar:     jar,
			// Redirects only ever lead to the login page.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		limiter: rate.NewLimiter(rate.Limit(config.RatePerSec), config.RateBurst),
	}, nil
}

// BaseURL returns the backend root URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// URL resolves a backend path against the base URL.
func (c *Client) URL(path string) string {
	return c.baseURL.String() + path
}

// =============================================================================
// WORKOUT
// =============================================================================

// LogSet records one logged set for an exercise.
func (c *Client) LogSet(ctx context.Context, req LogSetRequest) error {
	var resp StatusResponse
	if err := c.doJSON(ctx, http.MethodPost, "/workout/log", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return applicationErr(resp.Error)
	}
	return nil
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends one message to the assistant.
func (c *Client) Chat(ctx context.Context, message string) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat", ChatRequest{Message: message}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, applicationErr(resp.Error)
	}
	return &resp, nil
}

// =============================================================================
// FOOD
// =============================================================================

// SearchFood queries the food database. The query is NFC-normalised and
// URL-escaped.
func (c *Client) SearchFood(ctx context.Context, query string) ([]FoodResult, error) {
	q := norm.NFC.String(query)
	data, _, err := c.do(ctx, http.MethodGet, "/food/search?q="+url.QueryEscape(q), nil)
	if err != nil {
		return nil, err
	}
	results, err := decodeFoodResults(data)
	if err != nil {
		return nil, transportErr("failed to decode search results", err)
	}
	return results, nil
}

// AddFood logs a serving and returns the server-computed entry.
func (c *Client) AddFood(ctx context.Context, req AddFoodRequest) (*FoodEntry, error) {
	var resp AddFoodResponse
	if err := c.doJSON(ctx, http.MethodPost, "/food/add", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, applicationErr(resp.Error)
	}
	if resp.Entry == nil {
		return nil, transportErr("response missing entry", nil)
	}
	return resp.Entry, nil
}

// DeleteFood removes a food log entry.
func (c *Client) DeleteFood(ctx context.Context, id int) error {
	var resp StatusResponse
	if err := c.doJSON(ctx, http.MethodPost, "/food/delete/"+strconv.Itoa(id), nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return applicationErr(resp.Error)
	}
	return nil
}

// =============================================================================
// PAGES
// =============================================================================

// FetchPage returns the raw HTML of a server-rendered page such as
// /workout/plan or /food/.
func (c *Client) FetchPage(ctx context.Context, path string) ([]byte, error) {
	data, status, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, transportErr("unexpected status fetching "+path+": "+strconv.Itoa(status), nil)
	}
	return data, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// doJSON sends body (if non-nil) as JSON and decodes the reply into out.
// Non-2xx replies are still decoded: the backend reports application errors
// with 4xx/5xx statuses and a JSON body.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return transportErr("failed to marshal request", err)
		}
	}
	data, _, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return transportErr("failed to decode response", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, transportErr("rate limiter", err)
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), body)
	if err != nil {
		return nil, 0, transportErr("failed to create request", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.config.Verbose {
		log.Printf("API Request: %s %s", req.Method, req.URL.Path)
	}
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, transportErr("request timed out", err)
		}
		return nil, 0, transportErr("request failed", err)
	}
	defer resp.Body.Close()
	if c.config.Verbose {
		log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, time.Since(start))
	}

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		msg := "session rejected"
		if loc := resp.Header.Get("Location"); loc != "" {
			msg += " (redirected to " + loc + ")"
		}
		return nil, resp.StatusCode, transportErr(msg, ErrNotSignedIn)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, transportErr("failed to read response", err)
	}
	return data, resp.StatusCode, nil
}
