// Package yelp is the venue catalog collaborator: a search client for the
// Yelp Fusion business API that decodes venue records into the engine's
// model. Responses are cached per request URL so preference edits do not
// hammer the provider.
package yelp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/example/outing-planner/internal/domain/venue"
	"github.com/goccy/go-json"
	"github.com/maypok86/otter/v2"
)

const defaultBaseURL = "https://api.yelp.com/v3"

// FetchError is the distinct fetch-failure condition surfaced to callers:
// transport, status, and decode problems all land here so the caller can
// keep serving stale-but-valid results.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("venue catalog fetch failed (status=%d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("venue catalog fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

type Client struct {
	hc      *http.Client
	apiKey  string
	baseURL string
	cache   *otter.Cache[string, []byte]
	logger  *slog.Logger
}

type Option func(*Client)

func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }

func New(apiKey string, cacheTTL time.Duration, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		hc:      &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		logger:  logger,
	}
	c.cache = otter.Must(&otter.Options[string, []byte]{
		MaximumSize:      1024,
		ExpiryCalculator: otter.ExpiryWriting[string, []byte](cacheTTL),
	})
	for _, o := range opts {
		o(c)
	}
	return c
}

// Search returns open venues for the location and term. Absent price or
// business_hours fields never reject a venue; such venues simply cannot
// match any availability window.
func (c *Client) Search(ctx context.Context, location, term string) ([]venue.Venue, error) {
	q := url.Values{}
	q.Set("location", location)
	q.Set("term", term)
	reqURL := c.baseURL + "/businesses/search?" + q.Encode()

	body, ok := c.cache.GetIfPresent(reqURL)
	if !ok {
		var err error
		body, err = c.fetch(ctx, reqURL)
		if err != nil {
			return nil, err
		}
		c.cache.Set(reqURL, body)
	}

	var res searchResponse
	if err := json.Unmarshal(body, &res); err != nil {
		c.cache.Invalidate(reqURL)
		return nil, &FetchError{Err: fmt.Errorf("decode: %w", err)}
	}

	out := make([]venue.Venue, 0, len(res.Businesses))
	for _, b := range res.Businesses {
		out = append(out, c.toVenue(b))
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
			req.Header.Set("Accept", "application/json")

			res, err := c.hc.Do(req)
			if err != nil {
				return err
			}
			defer res.Body.Close()

			b, err := io.ReadAll(res.Body)
			if err != nil {
				return err
			}
			switch {
			case res.StatusCode == http.StatusOK:
				body = b
				return nil
			case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500:
				return fmt.Errorf("transient status %d", res.StatusCode)
			default:
				var msg struct {
					Error struct {
						Description string `json:"description"`
					} `json:"error"`
				}
				_ = json.Unmarshal(bytes.TrimSpace(b), &msg)
				return retry.Unrecoverable(&FetchError{
					Status: res.StatusCode,
					Err:    fmt.Errorf("%s", msg.Error.Description),
				})
			}
		},
		retry.Context(ctx),
		retry.Attempts(4),
		retry.Delay(200*time.Millisecond),
		retry.MaxDelay(3*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.MaxJitter(150*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("venue search retry", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		if IsFetchError(err) {
			return nil, err
		}
		return nil, &FetchError{Err: err}
	}
	return body, nil
}
