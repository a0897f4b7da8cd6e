// Package gateway is the typed client of the store REST API. Every call is fire-once: no
// retries, no client timeouts beyond the caller's context, no caching. Failures come back as
// *RequestError after being logged.
package gateway

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
	"os"
	"strings"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client. Give it a cookie jar to keep the session.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a client for baseURL, which already includes the /api prefix.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: need http(s)://host", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.New(os.Stderr, "", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("creating cookie jar: %w", err)
		}
		c.httpClient = &http.Client{Jar: jar}
	}

	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// operation names a gateway call for logs and carries its default failure message.
type operation struct {
	action   string
	fallback string
	// jsonOnly ignores plain text error bodies
	jsonOnly bool
}

type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
}

func jsonRequest(method, path string, v any) (request, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return request{}, err
	}
	return request{method: method, path: path, body: bytes.NewReader(data), contentType: "application/json"}, nil
}

// do performs the exchange and decodes a successful body into out when out is not nil.
func (c *Client) do(ctx context.Context, op operation, req request, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return c.fail(op, &RequestError{Op: op.action, Message: op.fallback, Err: err})
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.fail(op, &RequestError{
			Op:      op.action,
			Message: op.fallback + ": " + transportMessage(err),
			Network: true,
			Err:     err,
		})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(op, &RequestError{
			Op:         op.action,
			StatusCode: resp.StatusCode,
			Message:    op.fallback + ": " + err.Error(),
			Err:        err,
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(op, &RequestError{
			Op:         op.action,
			StatusCode: resp.StatusCode,
			Message:    messageFromBody(body, op.fallback, op.jsonOnly),
		})
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return c.fail(op, &RequestError{
			Op:         op.action,
			StatusCode: resp.StatusCode,
			Message:    op.fallback + ": unreadable response",
			Err:        err,
		})
	}
	return nil
}

func (c *Client) fail(op operation, err *RequestError) error {
	if err.Err != nil {
		c.logger.Printf("Error %s: %v", op.action, err.Err)
	} else {
		c.logger.Printf("Error %s: %d %s", op.action, err.StatusCode, err.Message)
	}
	return err
}

// transportMessage strips the "Get \"url\": " prefix net/http adds.
func transportMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return err.Error()
}

func escape(id string) string {
	return url.PathEscape(id)
}
