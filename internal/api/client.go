// Package api is the HTTP client for the notes server. It speaks the Django
// session protocol: a sessionid cookie for identity and a CSRF token echoed
// in the X-CSRFToken header on unsafe methods.
package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	csrfHeader    = "X-CSRFToken"
	sessionCookie = "sessionid"
	csrfCookie    = "csrftoken"
)

type Client struct {
	baseURL   string
	csrfToken string
	sessionID string
	http      *http.Client
	log       zerolog.Logger
}

type Option func(*Client)

func WithCSRFToken(token string) Option {
	return func(c *Client) {
		c.csrfToken = strings.TrimSpace(token)
	}
}

func WithSession(id string) Option {
	return func(c *Client) {
		c.sessionID = strings.TrimSpace(id)
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d, Transport: c.http.Transport}
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetCSRFToken replaces the token, e.g. with the one handed out in the
// bootstrap payload.
func (c *Client) SetCSRFToken(token string) {
	if token = strings.TrimSpace(token); token != "" {
		c.csrfToken = token
	}
}

// ResolveURL makes a server-relative path absolute against the base URL.
// Absolute URLs are returned unchanged.
func (c *Client) ResolveURL(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.sessionID})
	}
	if c.csrfToken != "" {
		req.AddCookie(&http.Cookie{Name: csrfCookie, Value: c.csrfToken})
		if !safeMethod(method) {
			req.Header.Set(csrfHeader, c.csrfToken)
		}
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("request failed")
		return &NetworkError{Method: req.Method, Path: req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Path: req.URL.Path, Err: err}
	}
	return nil
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
