// Package client provides a Go SDK for talking to one primary node,
// the same wrap-the-HTTP-calls-in-a-clean-API shape the teacher's SDK
// used for the KV store, retargeted at C7/C8's append/read_all/health
// surface and reimplementing the behavior original_source's test.py
// and test_send.py exercised by hand with raw requests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to a single primary (or, for ReadAll/Health, a
// secondary). It implements no distributed logic itself — that lives
// server-side.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for baseURL, e.g. "http://localhost:8080". A
// zero timeout defaults to 30s; network calls are never made without
// one.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{baseURL: baseURL, httpClient: &http.Client{Timeout: timeout}}
}

// Entry mirrors logstore.Entry on the wire, kept independent of the
// server package so the SDK has no internal/ dependency.
type Entry struct {
	ID        uint64  `json:"id"`
	Message   string  `json:"message"`
	Timestamp float64 `json:"timestamp"`
}

// HealthResponse mirrors the primary's GET /health body.
type HealthResponse struct {
	Quorum      bool              `json:"quorum"`
	Secondaries map[string]string `json:"secondaries"`
}

// Append calls POST /messages with the given write concern.
func (c *Client) Append(ctx context.Context, message string, writeConcern int) (*Entry, error) {
	body, _ := json.Marshal(map[string]any{"message": message, "write_concern": writeConcern})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("append request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var entry Entry
	return &entry, json.NewDecoder(resp.Body).Decode(&entry)
}

// ReadAll calls GET /messages.
func (c *Client) ReadAll(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/messages", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("read request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var entries []Entry
	return entries, json.NewDecoder(resp.Body).Decode(&entries)
}

// Health calls GET /health. Unlike the other calls, the status code is
// not checked — the body is decoded and returned even for a non-2xx
// response.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode health response: %w", err)
	}
	return &result, nil
}

// APIError carries the HTTP status and the error message from the
// server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	var apiErr struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &apiErr)
	msg := apiErr.Error
	if msg == "" {
		msg = string(body)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
