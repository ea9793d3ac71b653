package decklist

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	fetchTimeout = 30 * time.Second

	// Deck lists are plain text; anything past this is not a deck list.
	maxListBytes = 4 << 20
)

// Source fetches deck lists from list-hosting sites that expose a plain
// text endpoint (e.g. CubeCobra's /cube/api/cubelist/{id}).
type Source struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) SourceOption {
	return func(s *Source) { s.httpClient = hc }
}

// WithLogger attaches a logger for fetch diagnostics.
func WithLogger(l *slog.Logger) SourceOption {
	return func(s *Source) { s.logger = l }
}

// NewSource creates a deck list source.
func NewSource(opts ...SourceOption) *Source {
	s := &Source{
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve fetches the deck list at url and parses it into entries.
func (s *Source) Resolve(ctx context.Context, url string) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DeckListError{Reason: "invalid deck list URL", Err: err}
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &DeckListError{Reason: "failed to fetch deck list", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &DeckListError{Reason: fmt.Sprintf("deck list fetch returned status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListBytes))
	if err != nil {
		return nil, &DeckListError{Reason: "failed to read deck list", Err: err}
	}

	entries, err := Parse(string(body))
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("resolved deck list", "url", url, "entries", len(entries))
	}

	return entries, nil
}
