// Package cardlookup resolves card names and IDs to metadata, checking the
// local cache before hitting the external catalog.
package cardlookup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hamdrew/solomon-draft/internal/cards"
	"github.com/hamdrew/solomon-draft/internal/cards/scryfall"
)

// CatalogLookupError reports a failed catalog resolution. The engine never
// catches it; it propagates to the caller unchanged.
type CatalogLookupError struct {
	Err error
}

func (e *CatalogLookupError) Error() string {
	return fmt.Sprintf("catalog lookup failed: %v", e.Err)
}

func (e *CatalogLookupError) Unwrap() error { return e.Err }

// Store is the card cache the service reads through.
type Store interface {
	GetCardsByNames(ctx context.Context, names []string) (map[string]cards.Card, error)
	SaveCard(ctx context.Context, card *cards.Card) error
}

// Fetcher is the external catalog client.
type Fetcher interface {
	GetCardsByNames(ctx context.Context, names []string) ([]scryfall.Card, []string, error)
	GetCardsByIDs(ctx context.Context, ids []string) ([]scryfall.Card, []string, error)
}

// Service provides unified card lookup with caching.
type Service struct {
	store          Store
	fetcher        Fetcher
	staleThreshold time.Duration
	logger         *slog.Logger
}

// Options configures the card lookup service.
type Options struct {
	// StaleThreshold is how old cached metadata may be before it is
	// refreshed from the catalog. Default: 7 days.
	StaleThreshold time.Duration

	// Logger receives lookup diagnostics. Nil disables logging.
	Logger *slog.Logger
}

// NewService creates a new card lookup service. The store may be nil, in
// which case every lookup goes straight to the catalog.
func NewService(store Store, fetcher Fetcher, options Options) *Service {
	if options.StaleThreshold == 0 {
		options.StaleThreshold = 7 * 24 * time.Hour
	}

	return &Service{
		store:          store,
		fetcher:        fetcher,
		staleThreshold: options.StaleThreshold,
		logger:         options.Logger,
	}
}

// ResolveByName resolves card names to metadata. Cached entries that are
// fresh enough are served locally; the rest are batch-fetched from the
// catalog and written back to the cache best-effort. Names unknown to both
// the cache and the catalog are absent from the result map.
func (s *Service) ResolveByName(ctx context.Context, names []string) (map[string]cards.Card, error) {
	result := make(map[string]cards.Card, len(names))
	if len(names) == 0 {
		return result, nil
	}

	unique := dedupe(names)

	// Serve fresh entries from the cache
	var misses []string
	if s.store != nil {
		cached, err := s.store.GetCardsByNames(ctx, unique)
		if err != nil {
			return nil, &CatalogLookupError{Err: err}
		}
		for _, name := range unique {
			card, ok := cached[name]
			if ok && time.Since(card.LastUpdated) < s.staleThreshold {
				result[name] = card
			} else {
				misses = append(misses, name)
			}
		}
	} else {
		misses = unique
	}

	if len(misses) == 0 {
		return result, nil
	}

	fetched, notFound, err := s.fetcher.GetCardsByNames(ctx, misses)
	if err != nil {
		return nil, &CatalogLookupError{Err: err}
	}
	if s.logger != nil && len(notFound) > 0 {
		s.logger.Warn("cards not found in catalog", "count", len(notFound), "names", notFound)
	}

	for i := range fetched {
		card := fetched[i].ToCard()
		result[card.Name] = card
		if s.store != nil {
			// Write-back failures are not fatal; we already have the data.
			if err := s.store.SaveCard(ctx, &card); err != nil && s.logger != nil {
				s.logger.Warn("failed to cache card", "name", card.Name, "error", err)
			}
		}
	}

	return result, nil
}

// ResolveByID resolves catalog IDs to metadata. IDs are not cached locally
// (the cache is keyed by name), so this always queries the catalog.
func (s *Service) ResolveByID(ctx context.Context, ids []string) (map[string]cards.Card, error) {
	result := make(map[string]cards.Card, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	fetched, notFound, err := s.fetcher.GetCardsByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, &CatalogLookupError{Err: err}
	}
	if s.logger != nil && len(notFound) > 0 {
		s.logger.Warn("card IDs not found in catalog", "count", len(notFound))
	}

	for i := range fetched {
		card := fetched[i].ToCard()
		result[card.ID] = card
		if s.store != nil {
			if err := s.store.SaveCard(ctx, &card); err != nil && s.logger != nil {
				s.logger.Warn("failed to cache card", "name", card.Name, "error", err)
			}
		}
	}

	return result, nil
}

// dedupe preserves first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
