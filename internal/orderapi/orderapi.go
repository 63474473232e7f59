package orderapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GlebRadaev/orderbackfill/internal/config"
	"github.com/GlebRadaev/orderbackfill/internal/domain"
	"github.com/GlebRadaev/orderbackfill/internal/dto"
	"github.com/GlebRadaev/orderbackfill/pkg/clients"
)

const (
	// StatusAny asks for open, closed and cancelled orders.
	StatusAny = "any"

	callLimitHeader   = "X-Shopify-Shop-Api-Call-Limit"
	accessTokenHeader = "X-Shopify-Access-Token"

	unknownCredits = -1

	// creditsTTL bounds how long an observed call-limit header is trusted.
	// The bucket leaks while we wait, so older values are refreshed.
	creditsTTL = time.Second
)

var (
	ErrFetchFailed      = errors.New("fetch failed")
	ErrRateLimited      = errors.New("rate limited by upstream")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrInvalidResponse  = errors.New("invalid response")
)

type FindParams struct {
	UpdatedAtMin time.Time
	UpdatedAtMax time.Time
	SinceID      int64
	Limit        int
	Status       string
}

// Client talks to the orders endpoint of the admin REST API and keeps track
// of the call-limit bucket reported on every response.
type Client struct {
	baseURL       string
	headers       http.Header
	client        clients.HTTPClientI
	limiter       *rate.Limiter
	maxRetries    int
	retryInterval time.Duration
	credits       atomic.Int64
	creditsAt     atomic.Int64
	now           func() time.Time
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	headers := http.Header{}
	headers.Set("Accept", "application/json")
	if cfg.AccessToken != "" {
		headers.Set(accessTokenHeader, cfg.AccessToken)
	} else if cfg.APIKey != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(cfg.APIKey + ":" + cfg.APISecret))
		headers.Set("Authorization", "Basic "+auth)
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	maxRetries := cfg.FetchRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	c := &Client{
		baseURL:       cfg.APIBaseURL(),
		headers:       headers,
		client:        client,
		limiter:       rate.NewLimiter(limit, 1),
		maxRetries:    maxRetries,
		retryInterval: cfg.FetchRetryInterval,
		now:           time.Now,
	}
	c.credits.Store(unknownCredits)
	return c
}

// Find returns one page of orders updated inside [UpdatedAtMin, UpdatedAtMax]
// with ids greater than SinceID, in ascending id order.
func (c *Client) Find(ctx context.Context, p FindParams) ([]domain.Order, error) {
	status := p.Status
	if status == "" {
		status = StatusAny
	}
	q := url.Values{}
	q.Set("status", status)
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("since_id", strconv.FormatInt(p.SinceID, 10))
	q.Set("updated_at_min", p.UpdatedAtMin.UTC().Format(time.RFC3339))
	q.Set("updated_at_max", p.UpdatedAtMax.UTC().Format(time.RFC3339))

	body, err := c.get(ctx, c.baseURL+"/orders.json?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var resp dto.OrdersResponseDTO
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse orders: %w", ErrInvalidResponse, err)
	}

	orders := make([]domain.Order, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		order, err := toDomain(o)
		if err != nil {
			return nil, fmt.Errorf("%w: order %d: %w", ErrInvalidResponse, o.ID, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// CreditsLeft reports the remaining call credits from the last response. When
// no recent response has been seen it issues a cheap shop request to learn it.
func (c *Client) CreditsLeft(ctx context.Context) (int, error) {
	if credits := c.credits.Load(); credits != unknownCredits {
		if c.now().Sub(time.Unix(0, c.creditsAt.Load())) < creditsTTL {
			return int(credits), nil
		}
	}
	c.credits.Store(unknownCredits)
	if _, err := c.get(ctx, c.baseURL+"/shop.json"); err != nil {
		return 0, err
	}
	credits := c.credits.Load()
	if credits == unknownCredits {
		return 0, fmt.Errorf("%w: missing %s header", ErrInvalidResponse, callLimitHeader)
	}
	return int(credits), nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		statusCode, respBody, respHeaders, err := c.client.Get(ctx, url, c.headers)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			zap.L().Warn("Request failed, retrying", zap.String("url", url), zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			if err := c.backoff(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}
		c.observeCredits(respHeaders)

		switch {
		case statusCode == http.StatusOK:
			return respBody, nil
		case statusCode == http.StatusTooManyRequests:
			lastErr = ErrRateLimited
			if attempt < c.maxRetries {
				if err := c.handleRateLimit(ctx, respHeaders, attempt); err != nil {
					return nil, err
				}
			}
		case statusCode >= http.StatusInternalServerError:
			zap.L().Warn("Upstream error, retrying", zap.Int("status", statusCode), zap.Int("attempt", attempt))
			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatus, statusCode)
			if err := c.backoff(ctx, attempt); err != nil {
				return nil, err
			}
		default:
			zap.L().Error("Unexpected status code", zap.Int("status", statusCode), zap.String("url", url))
			return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, statusCode)
		}
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrFetchFailed, c.maxRetries, lastErr)
}

func (c *Client) backoff(ctx context.Context, attempt int) error {
	if attempt >= c.maxRetries {
		return nil
	}
	return sleep(ctx, c.retryInterval*time.Duration(attempt))
}

func (c *Client) handleRateLimit(ctx context.Context, respHeaders http.Header, attempt int) error {
	retryAfter := c.retryInterval * time.Duration(attempt)
	if header := respHeaders.Get("Retry-After"); header != "" {
		if seconds, err := strconv.ParseFloat(header, 64); err == nil {
			retryAfter = time.Duration(seconds * float64(time.Second))
		}
	}
	zap.L().Warn(
		"Rate limit detected, retrying",
		zap.Int("attempt", attempt),
		zap.Duration("retryAfter", retryAfter),
	)
	return sleep(ctx, retryAfter)
}

// observeCredits parses the "used/max" call-limit header.
func (c *Client) observeCredits(h http.Header) {
	used, limit, ok := parseCallLimit(h.Get(callLimitHeader))
	if !ok {
		return
	}
	c.credits.Store(int64(limit - used))
	c.creditsAt.Store(c.now().UnixNano())
}

func parseCallLimit(v string) (used, limit int, ok bool) {
	usedStr, limitStr, found := strings.Cut(strings.TrimSpace(v), "/")
	if !found {
		return 0, 0, false
	}
	used, err := strconv.Atoi(usedStr)
	if err != nil {
		return 0, 0, false
	}
	limit, err = strconv.Atoi(limitStr)
	if err != nil {
		return 0, 0, false
	}
	return used, limit, true
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
