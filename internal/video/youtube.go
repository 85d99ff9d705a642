package video

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Client searches the YouTube Data API v3.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a YouTube client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	d := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = d.BaseURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = d.MaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = d.Timeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger.Named("video"),
	}
}

// Search runs a video search and enriches the hits with duration and view
// counts from the videos endpoint. A failed enrichment still returns the
// hits.
func (c *Client) Search(ctx context.Context, query, lang string) ([]Video, error) {
	q := url.Values{
		"part":       {"snippet"},
		"type":       {"video"},
		"q":          {query},
		"maxResults": {strconv.Itoa(c.cfg.MaxResults)},
		"key":        {c.cfg.APIKey},
	}
	if lang != "" {
		q.Set("relevanceLanguage", lang)
	}

	body, err := c.get(ctx, "search", q)
	if err != nil {
		return nil, err
	}

	var videos []Video
	gjson.GetBytes(body, "items").ForEach(func(_, item gjson.Result) bool {
		id := item.Get("id.videoId").String()
		if id == "" {
			return true
		}
		thumb := item.Get("snippet.thumbnails.high.url").String()
		if thumb == "" {
			thumb = item.Get("snippet.thumbnails.default.url").String()
		}
		videos = append(videos, Video{
			ID:        id,
			Title:     item.Get("snippet.title").String(),
			Channel:   item.Get("snippet.channelTitle").String(),
			Thumbnail: thumb,
		})
		return true
	})
	if len(videos) == 0 {
		return nil, nil
	}

	if err := c.enrich(ctx, videos); err != nil {
		c.logger.Debug("video details unavailable", zap.String("query", query), zap.Error(err))
	}
	return videos, nil
}

func (c *Client) enrich(ctx context.Context, videos []Video) error {
	ids := make([]string, len(videos))
	index := make(map[string]int, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
		index[v.ID] = i
	}

	body, err := c.get(ctx, "videos", url.Values{
		"part": {"contentDetails,statistics"},
		"id":   {strings.Join(ids, ",")},
		"key":  {c.cfg.APIKey},
	})
	if err != nil {
		return err
	}

	for _, item := range gjson.GetBytes(body, "items").Array() {
		i, ok := index[item.Get("id").String()]
		if !ok {
			continue
		}
		videos[i].Duration = formatDuration(item.Get("contentDetails.duration").String())
		videos[i].Views = formatViews(item.Get("statistics.viewCount").String())
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values) ([]byte, error) {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + endpoint + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s: %d %s", ErrUnavailable, endpoint, resp.StatusCode, msg)
	}
	return body, nil
}
