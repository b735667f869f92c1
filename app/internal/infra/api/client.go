package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"example.com/storefront/app/internal/domain/backend"
)

const (
	headerRequestID = "X-Request-ID"
	maxBodyBytes    = 4 << 20
)

// Client talks JSON to the storefront backend.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	validator *validator.Validate
	logger    *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient returns a client for the API rooted at endpoint,
// e.g. "http://localhost:8082/api/v1".
func NewClient(endpoint string, timeout time.Duration, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("endpoint %q must be an absolute URL", endpoint)
	}

	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		validator: validator.New(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type request struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
}

// do sends req and decodes a 2xx body into out. Transport and decode
// failures wrap backend.ErrUnreachable; other statuses become a
// *backend.ServerError, additionally wrapping backend.ErrNotFound on 404.
func (c *Client) do(ctx context.Context, req request, out any) error {
	u := *c.baseURL
	u.Path = u.Path + req.path
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(headerRequestID, requestID)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Debug("api request failed",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", backend.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.logger.Debug("api request",
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
	)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", backend.ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &backend.ServerError{Status: resp.StatusCode}
		var er errorResponse
		if json.Unmarshal(data, &er) == nil {
			serr.Message = er.Message
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %w", backend.ErrNotFound, serr)
		}
		return serr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %w", backend.ErrUnreachable, req.method, req.path, err)
	}
	return nil
}

// validate checks a decoded payload; a failure means the backend sent
// something this client cannot render, which counts as invalid JSON.
func (c *Client) validate(v any) error {
	if err := c.validator.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", backend.ErrUnreachable, verrs.Error())
		}
		return fmt.Errorf("%w: %w", backend.ErrUnreachable, err)
	}
	return nil
}
