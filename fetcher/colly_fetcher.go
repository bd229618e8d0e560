package fetcher

import (
	"fmt"
	"log/slog"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher implements the Fetcher interface using colly
type CollyFetcher struct {
	collector *colly.Collector
	logger    *slog.Logger
}

// NewCollyFetcher creates a new CollyFetcher instance
func NewCollyFetcher(opts Options) *CollyFetcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Error pages are handed back as bodies and page URLs may be requested
	// again on the same fetcher. MaxBodySize(0) lifts the 10 MB cap.
	collectorOpts := []colly.CollectorOption{
		colly.AllowURLRevisit(),
		colly.ParseHTTPErrorResponse(),
		colly.MaxBodySize(0),
	}
	if opts.UserAgent != "" {
		collectorOpts = append(collectorOpts, colly.UserAgent(opts.UserAgent))
	}

	c := colly.NewCollector(collectorOpts...)
	if opts.Timeout > 0 {
		c.SetRequestTimeout(opts.Timeout)
	}

	return &CollyFetcher{
		collector: c,
		logger:    logger,
	}
}

// Fetch implements the Fetcher interface
func (cf *CollyFetcher) Fetch(url string) ([]byte, error) {
	// Clone keeps the configuration but not the callbacks, so each call
	// collects into its own body.
	c := cf.collector.Clone()

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		if r.StatusCode >= 300 {
			cf.logger.Warn("non-success response, using body anyway",
				slog.String("url", url),
				slog.Int("status", r.StatusCode),
			)
		}
		body = append([]byte(nil), r.Body...)
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	c.Wait()

	cf.logger.Debug("fetched page",
		slog.String("url", url),
		slog.Int("bytes", len(body)),
	)

	if body == nil {
		body = []byte{}
	}
	return body, nil
}
