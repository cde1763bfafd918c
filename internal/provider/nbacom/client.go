// Package nbacom fetches player game logs and shot chart detail from the
// NBA Stats API.
//
// The API returns tabular resultSets (parallel headers + rowSet arrays)
// rather than keyed JSON, and silently hangs on requests without
// browser-like headers. Rate limiting is handled via a token bucket
// limiter; the upstream is unforgiving about burst traffic.
package nbacom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://stats.nba.com/stats"

// Client is the shared HTTP client for all NBA Stats endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an NBA Stats client with rate limiting.
func NewClient(requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// resultSetResponse is the common NBA Stats response wrapper.
type resultSetResponse struct {
	Resource   string `json:"resource"`
	ResultSets []struct {
		Name    string            `json:"name"`
		Headers []string          `json:"headers"`
		RowSet  [][]json.RawMessage `json:"rowSet"`
	} `json:"resultSets"`
}

// resultSet is one decoded table with header-indexed row access.
type resultSet struct {
	index map[string]int
	rows  [][]json.RawMessage
}

// get performs a rate-limited GET and decodes the named result set.
func (c *Client) get(ctx context.Context, path, setName string, params url.Values) (*resultSet, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// stats.nba.com rejects requests that don't look like a browser.
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nba stats %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	var decoded resultSetResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	for _, set := range decoded.ResultSets {
		if set.Name != setName {
			continue
		}
		index := make(map[string]int, len(set.Headers))
		for i, h := range set.Headers {
			index[h] = i
		}
		return &resultSet{index: index, rows: set.RowSet}, nil
	}
	return nil, fmt.Errorf("nba stats %s: result set %q not in response", path, setName)
}

// stringAt returns the string column value for a row, "" for null.
func (s *resultSet) stringAt(row []json.RawMessage, column string) string {
	i, ok := s.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	var v string
	if err := json.Unmarshal(row[i], &v); err != nil {
		return ""
	}
	return v
}

// floatAt returns the numeric column value for a row, nil for null or a
// missing column. Null stays nil so "no stat recorded" is never conflated
// with zero downstream.
func (s *resultSet) floatAt(row []json.RawMessage, column string) *float64 {
	i, ok := s.index[column]
	if !ok || i >= len(row) {
		return nil
	}
	var v float64
	if err := json.Unmarshal(row[i], &v); err != nil {
		return nil
	}
	return &v
}

// intAt returns the integer column value for a row, 0 for null.
func (s *resultSet) intAt(row []json.RawMessage, column string) int {
	if v := s.floatAt(row, column); v != nil {
		return int(*v)
	}
	return 0
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
