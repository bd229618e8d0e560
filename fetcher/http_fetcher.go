package fetcher

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// HTTPFetcher implements the Fetcher interface using net/http
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewHTTPFetcher creates a new HTTPFetcher instance
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPFetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
		logger:    logger,
	}
}

// Fetch implements the Fetcher interface
func (hf *HTTPFetcher) Fetch(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	if hf.userAgent != "" {
		req.Header.Set("User-Agent", hf.userAgent)
	}

	resp, err := hf.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		hf.logger.Warn("non-success response, using body anyway",
			slog.String("url", url),
			slog.Int("status", resp.StatusCode),
		)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", url, err)
	}

	content, err := toUTF8(raw, resp.Header.Get("Content-Type"))
	if err != nil {
		hf.logger.Warn("charset conversion failed, using raw body",
			slog.String("url", url),
			slog.Any("error", err),
		)
		content = raw
	}

	hf.logger.Debug("fetched page",
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(content)),
	)

	return content, nil
}

// toUTF8 decodes raw using the charset declared in contentType or in the
// document itself. Bodies that are already valid UTF-8 are returned as-is
// unless a different charset is declared.
func toUTF8(raw []byte, contentType string) ([]byte, error) {
	enc, name, certain := charset.DetermineEncoding(raw, contentType)
	if name == "utf-8" || (!certain && utf8.Valid(raw)) {
		return raw, nil
	}
	return enc.NewDecoder().Bytes(raw)
}
