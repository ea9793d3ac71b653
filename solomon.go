// Package solomon composes the split-and-choose draft core with its
// collaborators: the rate-limited card catalog client, the local metadata
// cache, and deck list sources. UI layers import this package; the
// subpackages stay internal and are reached through the aliases and
// wrappers exported here.
package solomon

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/time/rate"

	"github.com/hamdrew/solomon-draft/internal/cardlookup"
	"github.com/hamdrew/solomon-draft/internal/cards/scryfall"
	"github.com/hamdrew/solomon-draft/internal/config"
	"github.com/hamdrew/solomon-draft/internal/decklist"
	"github.com/hamdrew/solomon-draft/internal/draft"
	"github.com/hamdrew/solomon-draft/internal/export"
	"github.com/hamdrew/solomon-draft/internal/storage"
)

// Config is the application configuration.
type Config = config.Config

// LoadConfig loads the configuration from the user config dir, falling
// back to defaults when no file exists.
func LoadConfig() (*Config, error) { return config.Load() }

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config { return config.DefaultConfig() }

// App wires the catalog client, metadata cache, and deck list source
// together according to a Config. It is the composition root a UI layer
// holds for the lifetime of the process.
type App struct {
	cfg     *config.Config
	db      *storage.DB
	catalog *cardlookup.Service
	lists   *decklist.Source
	logger  *slog.Logger
}

// AppOption configures an App.
type AppOption func(*App)

// WithLogger attaches a logger to every composed component.
func WithLogger(l *slog.Logger) AppOption {
	return func(a *App) { a.logger = l }
}

// New builds an App from the configuration. A nil config uses defaults.
// When the cache is enabled the sqlite file is created and migrated as
// needed; Close releases it.
func New(cfg *Config, opts ...AppOption) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}

	timeout, err := cfg.GetHTTPTimeout()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	clientOpts := []scryfall.Option{
		scryfall.WithHTTPClient(&http.Client{Timeout: timeout}),
		scryfall.WithLimiter(rate.NewLimiter(rate.Limit(cfg.Catalog.RateLimit), 1)),
	}
	if cfg.Catalog.BaseURL != "" {
		clientOpts = append(clientOpts, scryfall.WithBaseURL(cfg.Catalog.BaseURL))
	}
	if cfg.Catalog.UserAgent != "" {
		clientOpts = append(clientOpts, scryfall.WithUserAgent(cfg.Catalog.UserAgent))
	}
	if a.logger != nil {
		clientOpts = append(clientOpts, scryfall.WithLogger(a.logger))
	}
	fetcher := scryfall.NewClient(clientOpts...)

	var store cardlookup.Store
	if cfg.Cache.Enabled {
		path := cfg.Cache.Path
		if path == "" {
			path, err = defaultCachePath()
			if err != nil {
				return nil, err
			}
		}
		if err := storage.Migrate(path); err != nil {
			return nil, fmt.Errorf("failed to migrate card cache: %w", err)
		}
		db, err := storage.Open(storage.DefaultConfig(path))
		if err != nil {
			return nil, fmt.Errorf("failed to open card cache: %w", err)
		}
		a.db = db
		store = db
	}

	stale, err := cfg.GetStaleThreshold()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	a.catalog = cardlookup.NewService(store, fetcher, cardlookup.Options{
		StaleThreshold: stale,
		Logger:         a.logger,
	})

	listOpts := []decklist.SourceOption{}
	if a.logger != nil {
		listOpts = append(listOpts, decklist.WithLogger(a.logger))
	}
	a.lists = decklist.NewSource(listOpts...)

	return a, nil
}

// defaultCachePath returns the cache location in the user config dir.
func defaultCachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".solomon-draft", "cards.db"), nil
}

// Close releases the card cache. Safe to call when the cache is disabled.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Catalog returns the card resolver, which implements the engine's
// Catalog seam.
func (a *App) Catalog() *cardlookup.Service {
	return a.catalog
}

// NewDraftFromURL fetches the deck list at url, resolves card metadata,
// shuffles a pool, and returns the initial draft state. The state's
// settings carry the seed that reproduces the deal.
func (a *App) NewDraftFromURL(ctx context.Context, url string, packSize, rounds int) (State, error) {
	entries, err := a.lists.Resolve(ctx, url)
	if err != nil {
		return State{}, err
	}
	return a.newDraftFromEntries(ctx, entries, packSize, rounds)
}

// NewDraftFromList parses deck list text and returns the initial draft
// state, as NewDraftFromURL does for a fetched list.
func (a *App) NewDraftFromList(ctx context.Context, text string, packSize, rounds int) (State, error) {
	entries, err := decklist.Parse(text)
	if err != nil {
		return State{}, err
	}
	return a.newDraftFromEntries(ctx, entries, packSize, rounds)
}

func (a *App) newDraftFromEntries(ctx context.Context, entries []decklist.Entry, packSize, rounds int) (State, error) {
	source := make([]CardRef, len(entries))
	names := make([]string, len(entries))
	for i, e := range entries {
		source[i] = CardRef{Name: e.Name, Quantity: e.Quantity}
		names[i] = e.Name
	}

	resolved, err := a.catalog.ResolveByName(ctx, names)
	if err != nil {
		return State{}, err
	}
	for i := range source {
		if card, ok := resolved[source[i].Name]; ok {
			source[i].ID = card.ID
			source[i].ColorIdentity = card.ColorIdentity
		}
	}

	pool, seed, err := draft.BuildPool(source, packSize, rounds)
	if err != nil {
		return State{}, err
	}

	state, err := draft.New(Settings{PackSize: packSize, Rounds: rounds, Seed: seed}, pool)
	if err != nil {
		return State{}, err
	}
	return state, nil
}

// NewDraftFromSeed rebuilds a draft from a shared seed, replaying the
// recorded deal order exactly.
func (a *App) NewDraftFromSeed(ctx context.Context, seed string, packSize, rounds int) (State, error) {
	pool, err := draft.BuildPoolFromSeed(ctx, seed, a.catalog, packSize, rounds)
	if err != nil {
		return State{}, err
	}
	return draft.New(Settings{PackSize: packSize, Rounds: rounds, Seed: seed}, pool)
}

// ExportCollection renders a seat's drafted collection as deck list text
// with a suggested filename.
func (a *App) ExportCollection(state State, seat Seat, deckName string) (content, filename string) {
	return export.File(state.Collections[seat], deckName)
}
