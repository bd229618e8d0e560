package fetcher

import (
	"fmt"
	"log/slog"
	"time"
)

// Backend names accepted by New
const (
	BackendHTTP  = "http"
	BackendColly = "colly"
)

// Fetcher interface defines the contract for fetching implementations
type Fetcher interface {
	// Fetch retrieves the raw content of the page at url. A non-2xx response
	// still yields its body; only transport failures are returned as errors.
	Fetch(url string) ([]byte, error)
}

// Options configures a Fetcher
type Options struct {
	Timeout   time.Duration // zero means no timeout
	UserAgent string        // empty keeps the backend default
	Logger    *slog.Logger
}

// New creates the Fetcher for the named backend
func New(backend string, opts Options) (Fetcher, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	switch backend {
	case BackendHTTP, "":
		return NewHTTPFetcher(opts), nil
	case BackendColly:
		return NewCollyFetcher(opts), nil
	default:
		return nil, fmt.Errorf("unknown fetcher backend %q", backend)
	}
}
