// Package remote talks to the public posts API.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/config"
)

// Client fetches posts and users over HTTP. It satisfies repository.PostSource.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
	logger  *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithDialer replaces the TCP dialer, used by tests to dial an in-memory listener.
func WithDialer(dial fasthttp.DialFunc) Option {
	return func(c *Client) { c.http.Dial = dial }
}

func NewClient(cfg config.PostsConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: cfg.BaseURL,
		timeout: timeout,
		logger:  logger,
		http: &fasthttp.Client{
			Name:                "taskboard",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Posts(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	if err := c.getJSON(ctx, "/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) Authors(ctx context.Context) ([]domain.Author, error) {
	var authors []domain.Author
	if err := c.getJSON(ctx, "/users", &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

// Ping issues a cheap request against the API, used by the health monitor.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "/users/1")
	return err
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.WrapError(domain.ErrCodeUpstream, fmt.Sprintf("decode %s", path), err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	start := time.Now()
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Warn("remote request failed", zap.String("path", path), zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeUpstream, fmt.Sprintf("GET %s", path), err)
	}

	status := resp.StatusCode()
	c.logger.Debug("remote request",
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("took", time.Since(start)),
	)
	if status < 200 || status > 299 {
		return nil, domain.NewError(domain.ErrCodeUpstream, fmt.Sprintf("GET %s: unexpected status %d", path, status))
	}

	// resp is released on return.
	body := append([]byte(nil), resp.Body()...)
	return body, nil
}
