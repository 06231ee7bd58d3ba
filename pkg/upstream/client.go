package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
)

const (
	defaultTimeout             = 10 * time.Second
	errorBodyReadLimit   int64 = 1024
)

// Client wraps the remote retail API the gateway fronts.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds the retail API client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "upstream base url is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Ping verifies upstream reachability with a cheap catalog request.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Testimonials(ctx)
	return err
}

func (c *Client) buildURL(path string, query url.Values) string {
	full := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return full
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "upstream client not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path, query), nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute upstream request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "upstream request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode upstream response")
	}
	return nil
}

// postAck sends a JSON body and interprets the {status, message} envelope.
// A decodable non-2xx response still carries the business message, so the body
// is decoded before the status code is judged.
func (c *Client) postAck(ctx context.Context, path string, body any) (Ack, error) {
	if c == nil {
		return Ack{}, pkgerrors.New(pkgerrors.CodeDependency, "upstream client not configured")
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Ack{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal upstream payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path, nil), bytes.NewReader(payload))
	if err != nil {
		return Ack{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build upstream request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Ack{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute upstream request")
	}
	defer func() { _ = resp.Body.Close() }()

	return decodeAck(resp)
}

func (c *Client) postFormAck(ctx context.Context, path string, form url.Values) (Ack, error) {
	if c == nil {
		return Ack{}, pkgerrors.New(pkgerrors.CodeDependency, "upstream client not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path, nil), strings.NewReader(form.Encode()))
	if err != nil {
		return Ack{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build upstream request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Ack{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute upstream request")
	}
	defer func() { _ = resp.Body.Close() }()

	return decodeAck(resp)
}

func decodeAck(resp *http.Response) (Ack, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return Ack{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read upstream response")
	}

	var ack Ack
	if err := json.Unmarshal(raw, &ack); err != nil || ack.Status == "" {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return Ack{}, pkgerrors.New(pkgerrors.CodeDependency, "upstream response missing status")
		}
		return Ack{}, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("upstream request failed with status %d", resp.StatusCode))
	}
	return ack, nil
}
