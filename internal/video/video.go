// Package video finds tutorial videos for a module's search query.
package video

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUnavailable is returned when the video service cannot be reached or
// answers with an error.
var ErrUnavailable = errors.New("video search unavailable")

// Video is a single search result.
type Video struct {
	ID        string
	Title     string
	Channel   string
	Thumbnail string
	Views     string // display form, e.g. "2.1M views"
	Duration  string // display form, e.g. "12:45"
}

// URL returns the watch URL.
func (v Video) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// Searcher looks up videos for a query. lang is a content language code
// used as a relevance hint.
type Searcher interface {
	Search(ctx context.Context, query, lang string) ([]Video, error)
}

// Config configures the YouTube client.
type Config struct {
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	MaxResults int           `mapstructure:"max_results"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the YouTube Data API v3 defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://www.googleapis.com/youtube/v3",
		MaxResults: 6,
		Timeout:    10 * time.Second,
	}
}

// New returns a YouTube client when an API key is configured and the
// offline catalogue otherwise.
func New(cfg Config, logger *zap.Logger) Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.APIKey == "" {
		logger.Debug("no YouTube API key, using offline catalogue")
		return Offline{}
	}
	return NewClient(cfg, logger)
}

// Offline serves a deterministic catalogue derived from the query, so the
// module screen has something to show without network access.
type Offline struct{}

var offlineCatalogue = []struct {
	title    func(q string) string
	channel  string
	views    string
	duration string
}{
	{func(q string) string { return "Introduction to " + q }, "Code Academy", "2.1M views", "12:45"},
	{func(q string) string { return "Deep Dive into " + q }, "Tech Tutorials", "890K views", "25:10"},
	{func(q string) string { return "Mastering " + q + " in 30 minutes" }, "LearnFast", "1.5M views", "30:02"},
	{func(q string) string { return "Practical Examples of " + q }, "DevSimplified", "450K views", "18:22"},
	{func(q string) string { return q + " Complete Course" }, "FreeCodeCamp", "5.2M views", "1:45:30"},
	{func(q string) string { return "Common Mistakes in " + q }, "ProGrammer", "312K views", "9:15"},
	{func(q string) string { return "Advanced " + q + " Techniques" }, "Expert Coder", "650K views", "45:00"},
}

// Search returns between 2 and 7 results, the same number for the same query.
func (Offline) Search(_ context.Context, query, _ string) ([]Video, error) {
	query = strings.TrimSpace(query)
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(query)))
	n := 2 + int(h.Sum32()%6)

	out := make([]Video, n)
	for i := range n {
		c := offlineCatalogue[i]
		out[i] = Video{
			ID:        fmt.Sprintf("offline-%08x-%d", h.Sum32(), i+1),
			Title:     c.title(query),
			Channel:   c.channel,
			Thumbnail: "https://i.ytimg.com/vi/placeholder/hqdefault.jpg",
			Views:     c.views,
			Duration:  c.duration,
		}
	}
	return out, nil
}

// formatViews renders a view count the way the video site does.
func formatViews(count string) string {
	n, err := strconv.ParseInt(count, 10, 64)
	if err != nil || n < 0 {
		return ""
	}
	switch {
	case n >= 1_000_000_000:
		return trimDecimal(float64(n)/1e9) + "B views"
	case n >= 1_000_000:
		return trimDecimal(float64(n)/1e6) + "M views"
	case n >= 1_000:
		return strconv.FormatInt(n/1_000, 10) + "K views"
	case n == 1:
		return "1 view"
	default:
		return strconv.FormatInt(n, 10) + " views"
	}
}

func trimDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// formatDuration converts an ISO 8601 duration ("PT1H2M3S") to "1:02:03".
func formatDuration(iso string) string {
	if !strings.HasPrefix(iso, "PT") {
		return ""
	}
	var h, m, s int
	num := 0
	for _, r := range iso[2:] {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
		case r == 'H':
			h, num = num, 0
		case r == 'M':
			m, num = num, 0
		case r == 'S':
			s, num = num, 0
		default:
			return ""
		}
	}
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
