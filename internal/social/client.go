package social

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"artistpulse/internal/config"
	"artistpulse/internal/metrics"
)

// API is the raw transport the Service is built on.
type API interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// HTTPClient is a Basic-auth JSON client for the social-insights API.
// It holds only immutable settings and is safe for concurrent use.
type HTTPClient struct {
	baseURL     string
	token       string // base64 of the configured credential
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	baseBackoff time.Duration
}

func NewHTTPClient(cfg config.SocialConfig) *HTTPClient {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &HTTPClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		token:       base64.StdEncoding.EncodeToString([]byte(cfg.APIToken)),
		httpClient:  &http.Client{Timeout: cfg.Timeout()},
		limiter:     newLimiter(cfg.RPS, cfg.Burst),
		maxAttempts: attempts,
		baseBackoff: cfg.BaseBackoff(),
	}
}

func (c *HTTPClient) auth(req *http.Request) {
	req.Header.Set("Authorization", "Basic "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// Get issues GET baseURL+path and decodes the JSON body into out.
func (c *HTTPClient) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("social: marshal body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, payload, out)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload []byte, out any) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("social: build request: %w", err)
	}
	if payload != nil {
		req.GetBody = func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(payload)), nil }
	}
	c.auth(req)
	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		metrics.IncUpstream("social", 0)
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	metrics.IncUpstream("social", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &TransportError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("social: decode %s %s: %w", method, path, err)
	}
	return nil
}

// doWithRetry retries 429 and 5xx responses up to maxAttempts. Every attempt
// takes a limiter token. The final response is returned as-is so callers see
// the real status.
func (c *HTTPClient) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	backoff := c.baseBackoff
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		r, err := cloneRequest(ctx, req)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(r)
		last := attempt == c.maxAttempts
		if err == nil {
			retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
			if !retryable || last {
				return resp, nil
			}
			wait := retryAfter(resp.Header.Get("Retry-After"), backoff)
			_ = resp.Body.Close()
			metrics.IncAPIRetry(req.URL.Path)
			if err := sleep(ctx, jitter(wait)); err != nil {
				return nil, err
			}
			backoff *= 2
			continue
		}
		lastErr = err
		if last || ctx.Err() != nil {
			break
		}
		metrics.IncAPIRetry(req.URL.Path)
		if err := sleep(ctx, backoff); err != nil {
			return nil, err
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("social: request failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func cloneRequest(ctx context.Context, req *http.Request) (*http.Request, error) {
	r := req.Clone(ctx)
	if req.GetBody != nil {
		b, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		r.Body = b
	}
	return r, nil
}

func retryAfter(header string, def time.Duration) time.Duration {
	if header == "" {
		return def
	}
	if secs, err := strconv.Atoi(header); err == nil {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return def
}

// jitter +/-20%
func jitter(wait time.Duration) time.Duration {
	j := time.Duration(float64(wait) * 0.2)
	if j <= 0 {
		return wait
	}
	return wait - j + time.Duration(time.Now().UnixNano()%int64(2*j))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
