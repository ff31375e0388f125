package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MrSnakeDoc/startpage/internal/logger"
	"github.com/MrSnakeDoc/startpage/internal/utils"
)

const (
	// DefaultBaseURL is the met.no compact location forecast endpoint.
	DefaultBaseURL = "https://api.met.no/weatherapi/locationforecast/2.0/compact"
	// DefaultUserAgent identifies the client; met.no rejects requests without one.
	DefaultUserAgent = "startpage/dev github.com/MrSnakeDoc/startpage"

	maxBodyBytes = 4 << 20
)

// Options configures a Fetcher. Zero values fall back to defaults.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Client    *http.Client
}

// Fetcher retrieves and summarizes short-range forecasts.
// Concurrent requests for the same coordinates share one upstream call.
type Fetcher struct {
	client    *http.Client
	baseURL   string
	userAgent string
	logger    logger.Logger
	group     singleflight.Group
}

// New creates a Fetcher.
func New(opts Options, log logger.Logger) *Fetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Fetcher{
		client:    client,
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		logger:    log,
	}
}

// Display returns the text shown in the weather slot of the page.
//
// Missing coordinates yield NoCoordinates without touching the network.
// Any fetch or decode failure yields Blank; nothing is retried.
func (f *Fetcher) Display(ctx context.Context, lat, lon string) string {
	if lat == "" || lon == "" {
		return NoCoordinates
	}

	text, err := f.summary(ctx, lat, lon)
	if err != nil {
		f.logger.Debug("weather unavailable",
			logger.String("lat", lat),
			logger.String("lon", lon),
			logger.Error(err))
		return Blank
	}
	return text
}

func (f *Fetcher) summary(ctx context.Context, lat, lon string) (string, error) {
	key := lat + "," + lon
	ch := f.group.DoChan(key, func() (interface{}, error) {
		// The shared call must not die with whichever caller started it.
		forecast, err := f.Fetch(context.WithoutCancel(ctx), lat, lon)
		if err != nil {
			return "", err
		}
		if forecast.Properties == nil {
			return "", errEmptySeries
		}
		return Summarize(forecast.Properties.Timeseries)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Fetch performs one GET against the forecast endpoint and decodes the body.
func (f *Fetcher) Fetch(ctx context.Context, lat, lon string) (*Forecast, error) {
	q := url.Values{}
	q.Set("lat", lat)
	q.Set("lon", lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	defer utils.Close(resp.Body)

	f.logger.Debug("forecast fetched",
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected forecast status: %s", resp.Status)
	}

	var forecast Forecast
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("failed to decode forecast: %w", err)
	}
	return &forecast, nil
}
