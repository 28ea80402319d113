package flomo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/models"
)

const (
	defaultBase     = "https://flomoapp.com"
	memoUpdatedPath = "/api/v1/memo/updated/"

	// FetchLimitCeiling is the maximum page size the server honours.
	FetchLimitCeiling = 200

	fetchTimeout = 10 * time.Second
)

// defaultHeaders is the fixed browser-shaped header set the API expects.
var defaultHeaders = map[string]string{
	"accept":             "application/json, text/plain, */*",
	"accept-language":    "zh-CN,zh;q=0.9,en;q=0.8",
	"origin":             "https://v.flomoapp.com",
	"referer":            "https://v.flomoapp.com/",
	"sec-ch-ua":          `"Google Chrome";v="125", "Chromium";v="125"`,
	"sec-ch-ua-mobile":   "?0",
	"sec-ch-ua-platform": `"macOS"`,
	"sec-fetch-dest":     "empty",
	"sec-fetch-mode":     "cors",
	"sec-fetch-site":     "same-site",
	"user-agent":         "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
}

// Client talks to the flomo web API with bearer authentication and
// signed request parameters.
type Client struct {
	token  string
	base   string
	http   *http.Client
	logger *slog.Logger
	now    func() time.Time
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.base = strings.TrimRight(base, "/")
	}
}

// WithNow overrides the timestamp source (used by tests).
func WithNow(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates an API client. The token must be non-empty.
func NewClient(token string, logger *slog.Logger, opts ...ClientOption) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("flomo: bearer token is required")
	}
	c := &Client{
		token:  token,
		base:   defaultBase,
		http:   &http.Client{Timeout: fetchTimeout},
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// envelope is the wire response: code 0 means success and data holds
// the raw note records.
type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    []json.RawMessage `json:"data"`
}

// rawNote mirrors the wire shape of a single record before normalization.
type rawNote struct {
	Slug        string              `json:"slug"`
	Content     string              `json:"content"`
	Tags        []string            `json:"tags"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
	DeletedAt   *string             `json:"deleted_at"`
	Source      string              `json:"source"`
	CreatorID   int64               `json:"creator_id"`
	Pin         int                 `json:"pin"`
	LinkedCount int                 `json:"linked_count"`
	Files       []models.Attachment `json:"files"`
}

// FetchUpdated returns notes updated after the latestUpdatedAt cursor
// (epoch seconds as a string, "0" for everything), at most limit records.
// The server caps limit at FetchLimitCeiling. Records that fail to
// normalize are logged and dropped without aborting the page.
func (c *Client) FetchUpdated(ctx context.Context, latestUpdatedAt string, limit int) ([]models.Note, error) {
	if limit <= 0 || limit > FetchLimitCeiling {
		limit = FetchLimitCeiling
	}

	params := map[string]any{
		"api_key":           "flomo_web",
		"app_version":       "4.0",
		"platform":          "web",
		"webp":              "1",
		"tz":                "8:0",
		"timestamp":         c.now().Unix(),
		"latest_updated_at": latestUpdatedAt,
		"limit":             fmt.Sprintf("%d", limit),
	}
	params["sign"] = Sign(params)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+memoUpdatedPath, nil)
	if err != nil {
		return nil, fmt.Errorf("flomo: build request: %w", err)
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	q := url.Values{}
	for k, v := range params {
		q.Set(k, fmt.Sprintf("%v", v))
	}
	req.URL.RawQuery = q.Encode()

	c.logger.Debug("fetching updated notes",
		slog.String("cursor", latestUpdatedAt),
		slog.Int("limit", limit))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", apperr.ErrTransport, err)
	}

	notes, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.Info("fetched notes", slog.Int("count", len(notes)))
	return notes, nil
}

// parseResponse decodes the envelope, maps business failures onto the
// error taxonomy, and normalizes each record individually.
func (c *Client) parseResponse(body []byte) ([]models.Note, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apperr.NewParseError(err.Error())
	}

	if env.Code != 0 {
		if env.Code == 401 || env.Code == 403 || strings.Contains(strings.ToLower(env.Message), "auth") {
			return nil, fmt.Errorf("%w: %s", apperr.ErrAuth, env.Message)
		}
		return nil, apperr.NewAPIError(env.Code, env.Message)
	}

	notes := make([]models.Note, 0, len(env.Data))
	for _, raw := range env.Data {
		var rn rawNote
		if err := json.Unmarshal(raw, &rn); err != nil {
			c.logger.Warn("dropping malformed note record", slog.String("error", err.Error()))
			continue
		}
		notes = append(notes, normalize(rn))
	}
	return notes, nil
}

// normalize converts a wire record to the domain shape: the leading tag
// marker is stripped from each tag, optional fields get zero defaults,
// and attachments are preserved verbatim.
func normalize(rn rawNote) models.Note {
	tags := make([]string, 0, len(rn.Tags))
	for _, tag := range rn.Tags {
		tags = append(tags, strings.TrimLeft(tag, "#"))
	}

	deletedAt := ""
	if rn.DeletedAt != nil {
		deletedAt = *rn.DeletedAt
	}

	return models.Note{
		Slug:        rn.Slug,
		Content:     rn.Content,
		Tags:        tags,
		CreatedAt:   rn.CreatedAt,
		UpdatedAt:   rn.UpdatedAt,
		DeletedAt:   deletedAt,
		Source:      rn.Source,
		CreatorID:   rn.CreatorID,
		Pin:         rn.Pin,
		LinkedCount: rn.LinkedCount,
		Files:       rn.Files,
	}
}
