// Package platform implements the repository interfaces against a remote
// commercetools-style HTTP API. All queries ride on the platform's own
// request/response contract: paged query endpoints returning a result
// envelope, predicate filtering via the where parameter, and a create
// command endpoint for inventory entries.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Doer executes HTTP requests. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy this.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client is the low-level platform API client shared by the repository
// implementations in this package.
type Client struct {
	baseURL  string
	token    string
	http     Doer
	pageSize int
}

// NewClient creates a platform client. pageSize bounds every paged query;
// values outside [1, 500] fall back to 100.
func NewClient(baseURL, token string, doer Doer, pageSize int) *Client {
	if pageSize < 1 || pageSize > 500 {
		pageSize = 100
	}
	return &Client{
		baseURL:  baseURL,
		token:    token,
		http:     doer,
		pageSize: pageSize,
	}
}

// pagedResult is the platform's query response envelope.
type pagedResult[T any] struct {
	Limit   int `json:"limit"`
	Offset  int `json:"offset"`
	Count   int `json:"count"`
	Total   int `json:"total"`
	Results []T `json:"results"`
}

// query holds the parameters of a paged GET.
type query struct {
	where []string
	sort  string
	limit int
}

func (q query) values() url.Values {
	v := url.Values{}
	for _, w := range q.where {
		v.Add("where", w)
	}
	if q.sort != "" {
		v.Set("sort", q.sort)
	}
	if q.limit > 0 {
		v.Set("limit", strconv.Itoa(q.limit))
	}
	return v
}

// get runs a GET against path with the given query and decodes the response
// envelope into out.
func get[T any](ctx context.Context, c *Client, path string, q query, out *pagedResult[T]) error {
	u := c.baseURL + path
	if enc := q.values().Encode(); enc != "" {
		u += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request for %s: %w", path, err)
	}
	c.authorize(req)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return translateTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return parseErrorResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// post submits a create command to path and discards the created resource.
func (c *Client) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return translateTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return parseErrorResponse(resp)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
