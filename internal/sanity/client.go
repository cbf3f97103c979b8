package sanity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultAPIVersion = "2025-01-01"
	DefaultTimeout    = 15 * time.Second
)

// Config holds the connection parameters of a content API project.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	UseCDN     bool
	Token      string
	Timeout    time.Duration
	// BaseURL overrides the host derived from ProjectID (used in tests).
	BaseURL string
}

// Client is a GROQ query client for the content API.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient creates a new content API client.
func NewClient(cfg Config) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	base := cfg.BaseURL
	if base == "" {
		host := "api"
		if cfg.UseCDN && cfg.Token == "" {
			host = "apicdn"
		}
		base = fmt.Sprintf("https://%s.%s.sanity.io", cfg.ProjectID, host)
	}

	return &Client{
		endpoint: fmt.Sprintf("%s/v%s/data/query/%s", base, cfg.APIVersion, url.PathEscape(cfg.Dataset)),
		token:    cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// FetchError is returned for any failed query: transport, non-2xx status or
// an undecodable response.
type FetchError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	msg := e.Message
	switch {
	case msg == "" && e.Err != nil:
		msg = e.Err.Error()
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("sanity %s: status %d: %s", e.Op, e.StatusCode, msg)
	}
	return fmt.Sprintf("sanity %s: %s", e.Op, msg)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err carries a *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// queryResponse is the envelope of a query response.
type queryResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Fetch runs a GROQ query with named parameters and decodes the result into
// result. Parameters are JSON-encoded into $name query arguments.
func (c *Client) Fetch(ctx context.Context, op, query string, params map[string]any, result any) error {
	q := url.Values{}
	q.Set("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return &FetchError{Op: op, Message: "encode param " + name, Err: err}
		}
		q.Set("$"+name, string(encoded))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return &FetchError{Op: op, Message: "create request", Err: err}
	}

	httpReq.Header.Set("Accept", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Op: op, StatusCode: resp.StatusCode, Message: "read response", Err: err}
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &FetchError{Op: op, StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return &FetchError{Op: op, StatusCode: resp.StatusCode, Message: "decode response", Err: err}
	}

	if qr.Error != nil {
		return &FetchError{Op: op, StatusCode: resp.StatusCode, Message: qr.Error.Description}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		msg := qr.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &FetchError{Op: op, StatusCode: resp.StatusCode, Message: msg}
	}

	if result != nil && len(qr.Result) > 0 {
		if err := json.Unmarshal(qr.Result, result); err != nil {
			return &FetchError{Op: op, StatusCode: resp.StatusCode, Message: "decode result", Err: err}
		}
	}

	return nil
}
