package bgg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/ryanm101/tabletop/internal/logging"
	"github.com/ryanm101/tabletop/internal/metrics"
	"github.com/ryanm101/tabletop/internal/tracing"
)

const (
	// DefaultBaseURL is the public XML API v2 endpoint.
	DefaultBaseURL = "https://boardgamegeek.com/xmlapi2"
	// DefaultTimeout bounds a single HTTP exchange with BGG.
	DefaultTimeout = 15 * time.Second

	userAgent = "tabletop/1.0"
)

type searchParams struct {
	Query string `url:"query"`
	Type  string `url:"type"`
}

type thingParams struct {
	ID    string `url:"id"`
	Stats int    `url:"stats"`
}

type options struct {
	baseURL     string
	httpClient  *http.Client
	minInterval time.Duration
	cacheTTL    time.Duration
	now         func() time.Time
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL points the client at another API root (e.g. a test server).
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithMinInterval sets the minimum gap between requests. Zero disables limiting.
func WithMinInterval(d time.Duration) Option {
	return func(o *options) { o.minInterval = d }
}

// WithCacheTTL sets how long detail lookups stay cached.
func WithCacheTTL(d time.Duration) Option {
	return func(o *options) { o.cacheTTL = d }
}

// WithClock sets the time source used by the cache.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Client talks to the BGG XML API. It is safe for concurrent use; all callers
// share one rate limit and one detail cache.
type Client struct {
	baseURL    string
	httpClient *http.Client
	throttle   *throttle
	cache      *Cache
	group      singleflight.Group
}

// NewClient creates a client with BGG defaults: 1s between requests, 24h cache.
func NewClient(opts ...Option) *Client {
	o := options{
		baseURL:     DefaultBaseURL,
		minInterval: DefaultMinInterval,
		cacheTTL:    DefaultCacheTTL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Client{
		baseURL:    o.baseURL,
		httpClient: o.httpClient,
		throttle:   newThrottle(o.minInterval),
		cache:      NewCache(o.cacheTTL, o.now),
	}
}

// SearchGames finds board games whose name matches term.
func (c *Client) SearchGames(ctx context.Context, term string) ([]SearchResult, error) {
	ctx, span := tracing.StartSpan(ctx, "bgg.SearchGames",
		tracing.WithAttributes(attribute.String("bgg.query", term)))
	defer span.End()

	params, err := query.Values(searchParams{Query: term, Type: "boardgame"})
	if err != nil {
		return nil, c.fail(span, "search", term, ErrSearchFailed, err)
	}

	body, err := c.fetch(ctx, "search", params)
	if err != nil {
		return nil, c.fail(span, "search", term, ErrSearchFailed, err)
	}

	results, err := ParseSearch(bytes.NewReader(body))
	if err != nil {
		return nil, c.fail(span, "search", term, ErrSearchFailed, err)
	}

	span.SetAttributes(attribute.Int("bgg.results", len(results)))
	return results, nil
}

// GetGameDetails returns the details of one game, from cache when possible.
// Concurrent lookups of the same uncached id share a single request.
func (c *Client) GetGameDetails(ctx context.Context, id string) (*GameDetails, error) {
	ctx, span := tracing.StartSpan(ctx, "bgg.GetGameDetails",
		tracing.WithAttributes(attribute.String("bgg.id", id)))
	defer span.End()

	if d, ok := c.cache.Get(id); ok {
		metrics.BGGCacheHits.Inc()
		span.SetAttributes(attribute.Bool("bgg.cache_hit", true))
		return d, nil
	}
	metrics.BGGCacheMisses.Inc()

	// The shared request outlives any one caller; each caller stops waiting
	// when its own context ends.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(id, func() (interface{}, error) {
		// A flight that finished just before this one may have filled the cache.
		if d, ok := c.cache.Get(id); ok {
			return d, nil
		}

		params, err := query.Values(thingParams{ID: id, Stats: 1})
		if err != nil {
			return nil, err
		}
		body, err := c.fetch(flightCtx, "thing", params)
		if err != nil {
			return nil, err
		}
		d, err := ParseThing(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}

		c.cache.Set(id, d)
		metrics.BGGCacheEntries.Set(float64(c.cache.Len()))
		return d, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, c.fail(span, "thing", id, ErrDetailsFailed, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, c.fail(span, "thing", id, ErrDetailsFailed, res.Err)
	}

	return res.Val.(*GameDetails).Clone(), nil
}

// CleanExpiredCache drops every expired detail lookup.
func (c *Client) CleanExpiredCache() {
	removed := c.cache.Sweep()
	metrics.BGGCacheEntries.Set(float64(c.cache.Len()))
	if removed > 0 {
		logging.Debug("bgg cache swept", "removed", removed, "remaining", c.cache.Len())
	}
}

// fetch waits for the rate limit and performs one GET against endpoint.
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := c.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/xml, text/xml")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.BGGRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BGGRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.BGGRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(resp.Body)
}

// fail logs the cause and collapses it into the operation's coarse error.
func (c *Client) fail(span trace.Span, op, id string, kind, cause error) error {
	logging.Error("bgg request failed", "op", op, "id", id, "error", cause)
	span.RecordError(cause)
	span.SetStatus(codes.Error, kind.Error())
	return &Error{Op: op, ID: id, Kind: kind, Err: cause}
}
