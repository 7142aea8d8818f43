// Package api is the HTTP client for the airport backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/paulmach/orb/geojson"

	"airmap/airports"
	"airmap/logger"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Code, e.Body)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Code)
}

type httpClient interface {
	Do(req *retryablehttp.Request) (*http.Response, error)
}

// Client talks to the /api/airports endpoints.
type Client struct {
	base   string
	client httpClient
	log    *logger.Logger
}

// noRetry never retries: every failed request needs a new user action.
func noRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return false, nil
}

// New creates a client for the API rooted at base, e.g.
// "http://localhost:8000/api".
func New(base string, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Discard()
	}
	c := retryablehttp.NewClient()
	c.RetryMax = 0
	c.CheckRetry = noRetry
	c.Logger = leveled{log.WithField("component", "http")}
	c.HTTPClient.Timeout = timeout

	return &Client{
		base:   strings.TrimRight(base, "/"),
		client: c,
		log:    log,
	}
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := c.base + "/airports/" + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) get(ctx context.Context, op, u string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: building request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: reading body: %w", op, err)
	}

	c.log.Debug("api request", "op", op, "url", u, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Op: op, Code: resp.StatusCode, Body: errorText(body)}
	}
	return body, nil
}

// errorText extracts the {"error": "..."} message the backend sends on 4xx.
func errorText(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		return payload.Error
	}
	return ""
}

func (c *Client) getFeatures(ctx context.Context, op, u string) (*geojson.FeatureCollection, error) {
	body, err := c.get(ctx, op, u)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("%s: decoding features: %w", op, err)
	}
	return fc, nil
}

// Airports fetches every airport.
func (c *Client) Airports(ctx context.Context) ([]airports.Airport, error) {
	fc, err := c.getFeatures(ctx, "airports", c.endpoint("", nil))
	if err != nil {
		return nil, err
	}
	return airports.DecodeAirports(fc), nil
}

// Routes fetches up to limit routes leaving origin. known is used to place
// routes that come back without geometry.
func (c *Client) Routes(ctx context.Context, origin string, limit int, known map[string]airports.Airport) ([]airports.Route, error) {
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("limit", strconv.Itoa(limit))

	fc, err := c.getFeatures(ctx, "routes", c.endpoint("routes/", q))
	if err != nil {
		return nil, err
	}
	return airports.DecodeRoutes(fc, known), nil
}

// Nearby fetches airports within radiusKm of (lat, lon).
func (c *Client) Nearby(ctx context.Context, lat, lon, radiusKm float64) ([]airports.Airport, error) {
	q := url.Values{}
	q.Set("lat", formatFloat(lat))
	q.Set("lon", formatFloat(lon))
	q.Set("radius", formatFloat(radiusKm))

	fc, err := c.getFeatures(ctx, "nearby", c.endpoint("nearby/", q))
	if err != nil {
		return nil, err
	}
	return airports.DecodeAirports(fc), nil
}

// Nearest fetches the single closest airport to (lat, lon). The second
// return is false when the backend has no airports at all.
func (c *Client) Nearest(ctx context.Context, lat, lon float64) (airports.Airport, bool, error) {
	q := url.Values{}
	q.Set("lat", formatFloat(lat))
	q.Set("lon", formatFloat(lon))

	fc, err := c.getFeatures(ctx, "nearest", c.endpoint("nearest/", q))
	if err != nil {
		return airports.Airport{}, false, err
	}
	list := airports.DecodeAirports(fc)
	if len(list) == 0 {
		return airports.Airport{}, false, nil
	}
	return list[0], true, nil
}

// Hubs fetches the top countries by airport count.
func (c *Client) Hubs(ctx context.Context, top int) ([]airports.HubCount, error) {
	q := url.Values{}
	q.Set("top", strconv.Itoa(top))

	body, err := c.get(ctx, "hubs", c.endpoint("hubs/", q))
	if err != nil {
		return nil, err
	}
	var rows []airports.HubCount
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("hubs: decoding: %w", err)
	}
	return rows, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// leveled adapts our logger to retryablehttp.LeveledLogger.
type leveled struct {
	log *logger.Logger
}

func (l leveled) Error(msg string, kv ...interface{}) { l.log.Error(nil, msg, kv...) }
func (l leveled) Info(msg string, kv ...interface{})  { l.log.Debug(msg, kv...) }
func (l leveled) Debug(msg string, kv ...interface{}) { l.log.Debug(msg, kv...) }
func (l leveled) Warn(msg string, kv ...interface{})  { l.log.Warn(msg, kv...) }
