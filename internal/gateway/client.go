package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	"github.com/SawaDev/remix-of-eduadmin-pro/pkg/config"
	appErrors "github.com/SawaDev/remix-of-eduadmin-pro/pkg/errors"
)

const requestIDHeader = "X-Request-ID"

// TokenSource supplies the bearer credential attached to every call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client performs authenticated JSON calls against the admin API. Errors are
// always normalised through pkg/errors and never swallowed.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	logger     *zap.Logger
	metrics    *Metrics
}

// NewClient constructs a Client from API configuration.
func NewClient(cfg config.APIConfig, tokens TokenSource, logger *zap.Logger, metrics *Metrics) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/") + cfg.Prefix,
		tokens:     tokens,
		logger:     logger,
		metrics:    metrics,
	}
}

// Get performs a GET request and decodes the response data into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}, fallback string) error {
	return c.do(ctx, http.MethodGet, path, nil, out, fallback)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}, fallback string) error {
	return c.do(ctx, http.MethodPost, path, body, out, fallback)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}, fallback string) error {
	return c.do(ctx, http.MethodPut, path, body, out, fallback)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}, fallback string) error {
	return c.do(ctx, http.MethodPatch, path, body, out, fallback)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, fallback string) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build request")
	}

	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return appErrors.FromError(err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)

	if err != nil {
		c.observe(method, path, 0, latency, reqID)
		return appErrors.FromResponse(0, nil, err, fallback)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(method, path, resp.StatusCode, latency, reqID)
		return appErrors.FromResponse(resp.StatusCode, nil, err, fallback)
	}

	c.observe(method, path, resp.StatusCode, latency, reqID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return appErrors.FromResponse(resp.StatusCode, raw, nil, fallback)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return decodeBody(raw, out)
}

// decodeBody accepts both enveloped ({"data": ...}) and bare JSON payloads.
func decodeBody(raw []byte, out interface{}) error {
	var envelope dto.Envelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		if err := envelope.Decode(out); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode response")
		}
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode response")
	}
	return nil
}

func (c *Client) observe(method, path string, status int, latency time.Duration, reqID string) {
	c.metrics.Record(method, path, status, latency)
	c.logger.Info("api_request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("request_id", reqID),
	)
}
