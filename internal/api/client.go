package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const HeaderXRequestID = "X-Request-ID"

// TokenSource hands the client the current access token, or "" when the
// user is not logged in. The session store satisfies it.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-token source, used by tests.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Options tune the client. Zero values fall back to defaults sized for
// interactive use.
type Options struct {
	BaseURL        string
	Timeout        time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	CacheTTL       time.Duration
	Logger         zerolog.Logger
}

// Client is a thin wrapper over the booking API: it attaches the bearer
// token and a request ID, speaks JSON both ways and decodes failures into
// *Error. It never touches the session itself; reacting to a 401 is the
// caller's job.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	breaker *breaker
	cache   *cache.Cache
	log     zerolog.Logger
}

func NewClient(opts Options, tokens TokenSource) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://127.0.0.1:8000"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 10
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 20
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Timeout: opts.Timeout},
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimitRPS), opts.RateLimitBurst),
		breaker: newBreaker(5, 30*time.Second),
		cache:   cache.New(opts.CacheTTL, 5*time.Minute),
		log:     opts.Logger,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderXRequestID, uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	var resp *http.Response
	err = c.breaker.Execute(func() error {
		var doErr error
		resp, doErr = c.http.Do(req)
		return doErr
	})
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("api request failed")
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.StatusCode >= http.StatusBadRequest {
		return &Error{StatusCode: resp.StatusCode, Payload: data}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
