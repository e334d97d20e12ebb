// Package redash provides a client that fetches pre-computed query results from a Redash-style endpoint.
package redash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"alertdash/internal/models"
)

// FetchError reports a transport failure or a non-2xx response.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a response body that is not the expected query result shape.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid query result: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid query result: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Client wraps the query results HTTP API
type Client struct {
	queryURL   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new query results client
func NewClient(queryURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		queryURL: queryURL,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// QueryResult represents the query results envelope
type QueryResult struct {
	QueryResult *struct {
		Data *struct {
			Rows []models.Row `json:"rows"`
		} `json:"data"`
	} `json:"query_result"`
}

// FetchRows performs a single GET and returns the result rows.
// No retries are attempted.
func (c *Client) FetchRows(ctx context.Context) ([]models.Row, error) {
	body, err := c.doRequest(ctx)
	if err != nil {
		c.logger.Error("Failed to fetch alerts", "url", c.redactedURL(), "error", err)
		return nil, err
	}

	rows, err := DecodeRows(body)
	if err != nil {
		c.logger.Error("Failed to parse alerts", "error", err)
		return nil, err
	}

	c.logger.Info("Fetched alert rows", "rows", len(rows))
	return rows, nil
}

// DecodeRows extracts query_result.data.rows from a response body.
// Numbers are kept as json.Number so integer IDs survive untouched.
func DecodeRows(body []byte) ([]models.Row, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var result QueryResult
	if err := dec.Decode(&result); err != nil {
		return nil, &ParseError{Reason: "malformed JSON", Err: err}
	}
	if result.QueryResult == nil || result.QueryResult.Data == nil {
		return nil, &ParseError{Reason: "missing query_result.data"}
	}
	if result.QueryResult.Data.Rows == nil {
		return nil, &ParseError{Reason: "missing query_result.data.rows"}
	}

	return result.QueryResult.Data.Rows, nil
}

// doRequest makes the HTTP request to the query endpoint
func (c *Client) doRequest(ctx context.Context) ([]byte, error) {
	u, err := c.requestURL()
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	return body, nil
}

func (c *Client) requestURL() (string, error) {
	u, err := url.Parse(c.queryURL)
	if err != nil {
		return "", fmt.Errorf("invalid query URL: %w", err)
	}
	if c.apiKey != "" {
		q := u.Query()
		q.Set("api_key", c.apiKey)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// redactedURL is the query URL without credentials, for logs.
func (c *Client) redactedURL() string {
	u, err := url.Parse(c.queryURL)
	if err != nil {
		return c.queryURL
	}
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
