// Package vocapi is a client for the remote Voice of Customer REST API.
package vocapi

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

	"golang.org/x/oauth2"
)

const (
	// DefaultTimeout bounds every API call made by a Client.
	DefaultTimeout = 15 * time.Second

	// maxErrorBodySize caps how much of an error response is read for its message.
	maxErrorBodySize = 64 * 1024
)

// Client talks to the VOC API. The zero value is not usable; call New.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a client for baseURL, e.g. "https://voc.example.com/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticated returns a copy of c whose requests carry
// "Authorization: Bearer <token>" taken from ts. When ts fails, the request
// fails with that error before anything is sent.
func (c *Client) Authenticated(ts oauth2.TokenSource) *Client {
	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &Client{
		baseURL: c.baseURL,
		httpClient: &http.Client{
			Transport: &oauth2.Transport{Source: ts, Base: base},
			Timeout:   c.httpClient.Timeout,
		},
	}
}

// call describes one API request and how its failure is reported.
type call struct {
	method   string
	path     string
	body     interface{}
	out      interface{}
	fallback string
	// transportMessage lets the transport error text stand in for a missing
	// server message before fallback is used.
	transportMessage bool
}

func (c *Client) do(ctx context.Context, cl call) error {
	var body io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return &APIError{Message: cl.fallback, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return &APIError{Message: cl.fallback, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		msg := cl.fallback
		if cl.transportMessage {
			msg = err.Error()
		}
		return &APIError{Message: msg, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp, cl.fallback)
	}

	if cl.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil && !errors.Is(err, io.EOF) {
		return &APIError{StatusCode: resp.StatusCode, Message: cl.fallback, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func newStatusError(resp *http.Response, fallback string) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    fallback,
		Err:        fmt.Errorf("unexpected status %s", resp.Status),
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && strings.TrimSpace(body.Message) != "" {
		apiErr.Message = body.Message
	}
	return apiErr
}
