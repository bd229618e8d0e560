package filter

import (
	"strings"

	"quotes-scraper/config"
	"quotes-scraper/models"
)

// Filter applies filter criteria to quotes
type Filter struct {
	authors map[string]bool
	tags    map[string]bool
}

// NewFilter creates a new Filter instance
func NewFilter(cfg config.FilterConfig) *Filter {
	f := &Filter{
		authors: make(map[string]bool),
		tags:    make(map[string]bool),
	}
	for _, a := range cfg.Authors {
		f.authors[strings.ToLower(strings.TrimSpace(a))] = true
	}
	for _, t := range cfg.Tags {
		f.tags[strings.TrimSpace(t)] = true
	}
	return f
}

// Active reports whether any criterion is configured
func (f *Filter) Active() bool {
	return len(f.authors) > 0 || len(f.tags) > 0
}

// Apply returns the quotes matching the configuration, in crawl order
func (f *Filter) Apply(quotes []models.Quote) []models.Quote {
	if !f.Active() {
		return quotes
	}

	filtered := []models.Quote{}
	for _, quote := range quotes {
		if f.matches(quote) {
			filtered = append(filtered, quote)
		}
	}
	return filtered
}

// matches checks if a quote matches all filter criteria
func (f *Filter) matches(quote models.Quote) bool {
	if len(f.authors) > 0 && !f.authors[strings.ToLower(quote.Author)] {
		return false
	}

	if len(f.tags) > 0 {
		for _, tag := range quote.Tags {
			if f.tags[tag] {
				return true
			}
		}
		return false
	}

	return true
}
