package cardlookup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hamdrew/solomon-draft/internal/cards"
	"github.com/hamdrew/solomon-draft/internal/cards/scryfall"
)

type fakeStore struct {
	cards map[string]cards.Card
	saved []string
}

func (f *fakeStore) GetCardsByNames(_ context.Context, names []string) (map[string]cards.Card, error) {
	result := make(map[string]cards.Card)
	for _, name := range names {
		if c, ok := f.cards[name]; ok {
			result[name] = c
		}
	}
	return result, nil
}

func (f *fakeStore) SaveCard(_ context.Context, card *cards.Card) error {
	if f.cards == nil {
		f.cards = make(map[string]cards.Card)
	}
	f.cards[card.Name] = *card
	f.saved = append(f.saved, card.Name)
	return nil
}

type fakeFetcher struct {
	cards    map[string]scryfall.Card
	requests [][]string
	err      error
}

func (f *fakeFetcher) GetCardsByNames(_ context.Context, names []string) ([]scryfall.Card, []string, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	f.requests = append(f.requests, names)

	var found []scryfall.Card
	var missing []string
	for _, name := range names {
		if c, ok := f.cards[name]; ok {
			found = append(found, c)
		} else {
			missing = append(missing, name)
		}
	}
	return found, missing, nil
}

func (f *fakeFetcher) GetCardsByIDs(_ context.Context, ids []string) ([]scryfall.Card, []string, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	var found []scryfall.Card
	var missing []string
	for _, id := range ids {
		matched := false
		for _, c := range f.cards {
			if c.ID == id {
				found = append(found, c)
				matched = true
				break
			}
		}
		if !matched {
			missing = append(missing, id)
		}
	}
	return found, missing, nil
}

func TestResolveByName_CacheHit(t *testing.T) {
	store := &fakeStore{cards: map[string]cards.Card{
		"Lightning Bolt": {ID: "bolt", Name: "Lightning Bolt", LastUpdated: time.Now()},
	}}
	fetcher := &fakeFetcher{}
	svc := NewService(store, fetcher, Options{})

	result, err := svc.ResolveByName(context.Background(), []string{"Lightning Bolt"})
	if err != nil {
		t.Fatalf("ResolveByName failed: %v", err)
	}

	if result["Lightning Bolt"].ID != "bolt" {
		t.Errorf("Unexpected result: %+v", result)
	}
	if len(fetcher.requests) != 0 {
		t.Errorf("Expected no catalog requests on cache hit, got %d", len(fetcher.requests))
	}
}

func TestResolveByName_FetchesMissesAndWritesBack(t *testing.T) {
	store := &fakeStore{cards: map[string]cards.Card{
		"Counterspell": {ID: "csp", Name: "Counterspell", LastUpdated: time.Now()},
	}}
	fetcher := &fakeFetcher{cards: map[string]scryfall.Card{
		"Shock": {ID: "shock", Name: "Shock", ColorIdentity: []string{"R"}},
	}}
	svc := NewService(store, fetcher, Options{})

	result, err := svc.ResolveByName(context.Background(), []string{"Counterspell", "Shock"})
	if err != nil {
		t.Fatalf("ResolveByName failed: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(result))
	}
	if len(fetcher.requests) != 1 || len(fetcher.requests[0]) != 1 || fetcher.requests[0][0] != "Shock" {
		t.Errorf("Expected a single fetch for the miss, got %v", fetcher.requests)
	}
	if len(store.saved) != 1 || store.saved[0] != "Shock" {
		t.Errorf("Expected write-back of 'Shock', got %v", store.saved)
	}
}

func TestResolveByName_StaleEntryRefreshed(t *testing.T) {
	store := &fakeStore{cards: map[string]cards.Card{
		"Shock": {ID: "stale", Name: "Shock", LastUpdated: time.Now().Add(-30 * 24 * time.Hour)},
	}}
	fetcher := &fakeFetcher{cards: map[string]scryfall.Card{
		"Shock": {ID: "fresh", Name: "Shock"},
	}}
	svc := NewService(store, fetcher, Options{StaleThreshold: 7 * 24 * time.Hour})

	result, err := svc.ResolveByName(context.Background(), []string{"Shock"})
	if err != nil {
		t.Fatalf("ResolveByName failed: %v", err)
	}
	if result["Shock"].ID != "fresh" {
		t.Errorf("Expected refreshed card, got %+v", result["Shock"])
	}
}

func TestResolveByName_UnknownNameOmitted(t *testing.T) {
	svc := NewService(nil, &fakeFetcher{}, Options{})

	result, err := svc.ResolveByName(context.Background(), []string{"No Such Card"})
	if err != nil {
		t.Fatalf("ResolveByName failed: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("Expected empty result, got %+v", result)
	}
}

func TestResolveByName_CatalogError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("boom")}
	svc := NewService(nil, fetcher, Options{})

	_, err := svc.ResolveByName(context.Background(), []string{"Shock"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var lookupErr *CatalogLookupError
	if !errors.As(err, &lookupErr) {
		t.Errorf("Expected CatalogLookupError, got %T: %v", err, err)
	}
}

func TestResolveByName_Dedupes(t *testing.T) {
	fetcher := &fakeFetcher{cards: map[string]scryfall.Card{
		"Shock": {ID: "shock", Name: "Shock"},
	}}
	svc := NewService(nil, fetcher, Options{})

	_, err := svc.ResolveByName(context.Background(), []string{"Shock", "Shock", "Shock"})
	if err != nil {
		t.Fatalf("ResolveByName failed: %v", err)
	}
	if len(fetcher.requests) != 1 || len(fetcher.requests[0]) != 1 {
		t.Errorf("Expected one request with one name, got %v", fetcher.requests)
	}
}

func TestResolveByID(t *testing.T) {
	store := &fakeStore{}
	fetcher := &fakeFetcher{cards: map[string]scryfall.Card{
		"Shock": {ID: "shock-id", Name: "Shock", ColorIdentity: []string{"R"}},
	}}
	svc := NewService(store, fetcher, Options{})

	result, err := svc.ResolveByID(context.Background(), []string{"shock-id", "unknown-id"})
	if err != nil {
		t.Fatalf("ResolveByID failed: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(result))
	}
	if result["shock-id"].Name != "Shock" {
		t.Errorf("Unexpected result: %+v", result)
	}
	if _, ok := result["unknown-id"]; ok {
		t.Error("Did not expect a result for an unknown ID")
	}
	// Resolved cards still land in the name-keyed cache
	if len(store.saved) != 1 || store.saved[0] != "Shock" {
		t.Errorf("Expected write-back of 'Shock', got %v", store.saved)
	}
}

func TestResolveByID_SkipsCacheRead(t *testing.T) {
	// The cache is keyed by name, so an ID lookup always queries the
	// catalog even when the card is cached.
	store := &fakeStore{cards: map[string]cards.Card{
		"Shock": {ID: "shock-id", Name: "Shock", LastUpdated: time.Now()},
	}}
	fetcher := &fakeFetcher{cards: map[string]scryfall.Card{
		"Shock": {ID: "shock-id", Name: "Shock"},
	}}
	svc := NewService(store, fetcher, Options{})

	result, err := svc.ResolveByID(context.Background(), []string{"shock-id", "shock-id"})
	if err != nil {
		t.Fatalf("ResolveByID failed: %v", err)
	}
	if len(result) != 1 {
		t.Errorf("Expected deduped single result, got %d", len(result))
	}
}

func TestResolveByID_CatalogError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("catalog offline")}
	svc := NewService(nil, fetcher, Options{})

	_, err := svc.ResolveByID(context.Background(), []string{"some-id"})
	var lookupErr *CatalogLookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("Expected CatalogLookupError, got %v", err)
	}
}

func TestResolveByID_Empty(t *testing.T) {
	svc := NewService(nil, &fakeFetcher{}, Options{})

	result, err := svc.ResolveByID(context.Background(), nil)
	if err != nil {
		t.Fatalf("ResolveByID failed: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("Expected no results, got %d", len(result))
	}
}
