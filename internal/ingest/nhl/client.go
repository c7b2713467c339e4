package nhl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/fortuna/rinkside/pkg/metrics"
)

const (
	// GamecenterBase serves the play-by-play and boxscore documents.
	GamecenterBase = "https://api-web.nhle.com/v1"
	// StatsBase serves the shift-chart document.
	StatsBase = "https://api.nhle.com/stats/rest/en"
	// ReportsBase serves the published HTML time-on-ice reports used as a
	// fallback shift source.
	ReportsBase = "https://www.nhl.com/scores/htmlreports"

	defaultTimeout    = 15 * time.Second
	defaultRetries    = 3
	defaultRetryDelay = 2 * time.Second
)

// Client fetches raw per-game documents from the NHL APIs.
type Client struct {
	gamecenterBase string
	statsBase      string
	reportsBase    string
	httpClient     *http.Client
	retries        int
	retryDelay     time.Duration
}

// ClientOption adjusts client construction.
type ClientOption func(*Client)

// WithBaseURLs overrides the gamecenter and stats API bases (useful for
// tests). Empty strings keep the defaults.
func WithBaseURLs(gamecenter, stats string) ClientOption {
	return func(c *Client) {
		if gamecenter != "" {
			c.gamecenterBase = gamecenter
		}
		if stats != "" {
			c.statsBase = stats
		}
	}
}

// WithReportsBase overrides the HTML report base URL.
func WithReportsBase(base string) ClientOption {
	return func(c *Client) {
		if base != "" {
			c.reportsBase = base
		}
	}
}

// WithRetries sets the fetch attempt count and delay between attempts.
func WithRetries(retries int, delay time.Duration) ClientOption {
	return func(c *Client) {
		if retries > 0 {
			c.retries = retries
		}
		if delay > 0 {
			c.retryDelay = delay
		}
	}
}

// NewClient creates a client with default endpoints and timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		gamecenterBase: GamecenterBase,
		statsBase:      StatsBase,
		reportsBase:    ReportsBase,
		httpClient:     &http.Client{Timeout: defaultTimeout},
		retries:        defaultRetries,
		retryDelay:     defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPlayByPlay fetches the play-by-play document for a game.
func (c *Client) FetchPlayByPlay(ctx context.Context, gameID int64) (*PlayByPlayDocument, error) {
	url := fmt.Sprintf("%s/gamecenter/%d/play-by-play", c.gamecenterBase, gameID)
	var doc PlayByPlayDocument
	if err := c.fetchJSON(ctx, url, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FetchBoxscore fetches the boxscore document for a game.
func (c *Client) FetchBoxscore(ctx context.Context, gameID int64) (*BoxscoreDocument, error) {
	url := fmt.Sprintf("%s/gamecenter/%d/boxscore", c.gamecenterBase, gameID)
	var doc BoxscoreDocument
	if err := c.fetchJSON(ctx, url, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FetchShiftChart fetches the shift-chart document for a game.
func (c *Client) FetchShiftChart(ctx context.Context, gameID int64) (*ShiftChartDocument, error) {
	url := fmt.Sprintf("%s/shiftcharts?cayenneExp=gameId=%d", c.statsBase, gameID)
	var doc ShiftChartDocument
	if err := c.fetchJSON(ctx, url, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FetchShiftReport fetches one published HTML time-on-ice report, e.g.
// season "20232024", file "TV020001.HTM".
func (c *Client) FetchShiftReport(ctx context.Context, season, file string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s", c.reportsBase, season, file)
	return c.fetchBytes(ctx, url)
}

// fetchJSON gets a URL and decodes the JSON body, retrying transient
// failures with a fixed delay. A 4xx status means the game id has no
// published data and maps to ErrGameUnavailable without retrying.
func (c *Client) fetchJSON(ctx context.Context, url string, out interface{}) error {
	body, err := c.fetchBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func (c *Client) fetchBytes(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, retryable, err := c.doGet(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}

		if attempt < c.retries {
			metrics.RecordFetchRetry()
			log.Printf("[nhl-client] fetch %s attempt %d/%d failed: %v (retrying in %v)",
				url, attempt, c.retries, err, c.retryDelay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}
	return nil, fmt.Errorf("fetch %s: %w", url, lastErr)
}

func (c *Client) doGet(ctx context.Context, url string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, false, fmt.Errorf("%s returned %d: %w", url, resp.StatusCode, ErrGameUnavailable)
	default:
		return nil, true, fmt.Errorf("%s returned %d", url, resp.StatusCode)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	return body, false, nil
}
