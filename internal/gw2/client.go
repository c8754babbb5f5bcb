// Package gw2 is a read-only client for the Guild Wars 2 item and account API.
package gw2

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/model"
)

// Defaults for the public API.
const (
	DefaultBaseURL           = "https://api.guildwars2.com/v2"
	DefaultRequestsPerMinute = 300
	MaxIDsPerRequest         = 200
)

// ErrTooManyIDs is returned when a batch exceeds MaxIDsPerRequest.
var ErrTooManyIDs = errors.New("too many ids in one request")

// Config holds the client settings.
type Config struct {
	BaseURL           string
	RequestsPerMinute int
	Timeout           time.Duration // zero means no timeout
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: gw2 base URL is required", common.ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: invalid gw2 base URL %q", common.ErrInvalidConfig, c.BaseURL)
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("%w: requests per minute cannot be negative", common.ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}

// Client talks to the remote API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	limiter    *rateLimiter
	baseURL    string
}

// NewClient creates a client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    newRateLimiter(cfg.RequestsPerMinute),
	}, nil
}

// ItemIDs lists every item id in the catalog.
func (c *Client) ItemIDs(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.get(ctx, "/items", nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Items fetches the records for up to MaxIDsPerRequest ids.
func (c *Client) Items(ctx context.Context, ids []int) ([]model.RawItem, error) {
	if len(ids) == 0 {
		return []model.RawItem{}, nil
	}
	if len(ids) > MaxIDsPerRequest {
		return nil, fmt.Errorf("%w: %d ids (max %d)", ErrTooManyIDs, len(ids), MaxIDsPerRequest)
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	var items []model.RawItem
	if err := c.get(ctx, "/items", url.Values{"ids": {strings.Join(parts, ",")}}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AccountSkins lists the skin ids unlocked on the account owning token.
func (c *Client) AccountSkins(ctx context.Context, token string) ([]int, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, common.ErrMissingCredential
	}

	var ids []int
	if err := c.get(ctx, "/account/skins", url.Values{"access_token": {token}}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.wait(ctx); err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	slog.Debug("Requesting GW2 API", "path", path, "ids", query.Has("ids"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	// 206 means some requested ids do not exist; the rest are still returned.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return statusError(path, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// APIError is a non-success response from the remote API.
type APIError struct {
	Path       string
	Text       string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("GW2 API error on %s: %d - %s", e.Path, e.StatusCode, e.Text)
	}
	return fmt.Sprintf("GW2 API error on %s: %d", e.Path, e.StatusCode)
}

func statusError(path string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	apiErr := &APIError{Path: path, StatusCode: resp.StatusCode, Text: strings.TrimSpace(string(body))}
	var payload struct {
		Text string `json:"text"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Text != "" {
		apiErr.Text = payload.Text
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &common.RetryableError{Err: fmt.Errorf("%w: %w", common.ErrRateLimit, apiErr), Retryable: true}
	case resp.StatusCode >= http.StatusInternalServerError:
		return &common.RetryableError{Err: apiErr, Retryable: true}
	default:
		return &common.RetryableError{Err: apiErr, Retryable: false}
	}
}
