// Package collector walks the paginated quote listing and gathers every quote
// into memory.
package collector

import (
	"fmt"
	"log/slog"
	"net/url"

	"quotes-scraper/fetcher"
	"quotes-scraper/models"
	"quotes-scraper/parser"
)

// State is a step of the crawl state machine
type State int

const (
	StateFetching State = iota
	StateDone
)

// String representation for logging
func (s State) String() string {
	switch s {
	case StateFetching:
		return "Fetching"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Result is the outcome of a finished crawl
type Result struct {
	Quotes []models.Quote
	Pages  int // number of pages fetched, including the final empty one
}

// Options tunes a Collector
type Options struct {
	// MaxPages stops the crawl after this many fetches. Zero means no limit.
	MaxPages int
	Logger   *slog.Logger
}

// Collector drives the Fetching/Done loop over listing pages
type Collector struct {
	baseURL *url.URL
	fetcher fetcher.Fetcher
	parser  *parser.Parser
	opts    Options
}

// New creates a Collector starting at baseURL
func New(baseURL string, f fetcher.Fetcher, p *parser.Parser, opts Options) (*Collector, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if p == nil {
		p = parser.NewParser()
	}

	return &Collector{
		baseURL: base,
		fetcher: f,
		parser:  p,
		opts:    opts,
	}, nil
}

// PageURL returns the URL of the n-th listing page. Page 1 is the base URL.
func (c *Collector) PageURL(n int) string {
	if n <= 1 {
		return c.baseURL.String()
	}
	ref := &url.URL{Path: fmt.Sprintf("page/%d/", n)}
	return c.baseURL.ResolveReference(ref).String()
}

// Collect fetches pages until one has no quotes and returns every quote seen.
// The first failure ends the crawl.
func (c *Collector) Collect() (*Result, error) {
	result := &Result{Quotes: []models.Quote{}}

	first, err := c.fetchPage(1)
	result.Pages++
	if err != nil {
		return nil, err
	}
	result.Quotes = append(result.Quotes, first.Quotes...)

	// A site without a next link is complete after page 1.
	if !first.HasNext {
		c.opts.Logger.Info("single page site, crawl finished",
			slog.Int("quotes", len(result.Quotes)),
		)
		return result, nil
	}

	state := StateFetching
	pageNum := 2
	for state == StateFetching {
		if c.opts.MaxPages > 0 && result.Pages >= c.opts.MaxPages {
			c.opts.Logger.Warn("page limit reached, stopping crawl",
				slog.Int("max_pages", c.opts.MaxPages),
			)
			state = StateDone
			continue
		}

		page, err := c.fetchPage(pageNum)
		result.Pages++
		if err != nil {
			return nil, err
		}

		if len(page.Quotes) == 0 {
			state = StateDone
			continue
		}

		result.Quotes = append(result.Quotes, page.Quotes...)
		pageNum++
	}

	c.opts.Logger.Info("crawl finished",
		slog.Int("pages", result.Pages),
		slog.Int("quotes", len(result.Quotes)),
		slog.String("state", state.String()),
	)
	return result, nil
}

// fetchPage fetches and parses the n-th page
func (c *Collector) fetchPage(n int) (*parser.Page, error) {
	pageURL := c.PageURL(n)

	content, err := c.fetcher.Fetch(pageURL)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", n, err)
	}

	page, err := c.parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("page %d (%s): %w", n, pageURL, err)
	}

	c.opts.Logger.Info("fetched page",
		slog.Int("page", n),
		slog.String("url", pageURL),
		slog.Int("quotes", len(page.Quotes)),
	)
	return page, nil
}
