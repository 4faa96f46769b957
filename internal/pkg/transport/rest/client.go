// Package rest provides a minimal JSON-over-HTTP GET client for REST APIs
// such as Esplora. Retries and timeouts are the concern of the *http.Client
// it is given.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnexpectedStatus indicates that the server answered with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected status")

// maxErrorBody caps how much of an error response body is kept in the error.
const maxErrorBody = 512

// Client defines the interface for a REST client.
// It can be used to abstract the underlying implementation and facilitate mocking or testing.
type Client interface {
	// Get fetches path, relative to the base URL, and decodes the JSON
	// response into out.
	Get(ctx context.Context, path string, out any) error

	// BaseURL returns the endpoint every path is resolved against.
	BaseURL() string
}

type client struct {
	baseURL    string       // API root, without trailing slash
	httpClient *http.Client // The HTTP client used to perform requests
}

// Compile-time assertion that client implements the Client interface.
var _ Client = (*client)(nil)

func (c *client) BaseURL() string {
	return c.baseURL
}

// Get sends a GET request to baseURL+path. Non-2xx answers fail with
// ErrUnexpectedStatus and carry the beginning of the response body.
func (c *client) Get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return fmt.Errorf("%w: GET %s: %d %s", ErrUnexpectedStatus, path, res.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(res.Body).Decode(out)
}

// NewClient constructs a Client sending requests to baseURL with httpClient.
func NewClient(httpClient *http.Client, baseURL string) *client {
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}
