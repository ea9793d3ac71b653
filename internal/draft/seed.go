package draft

import (
	"bytes"
	"compress/flate"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hamdrew/solomon-draft/internal/cards"
)

// The seed is a recorded permutation, not a PRNG seed: it stores the exact
// dealt order of (name, quantity) pairs, and reconstruction replays that
// order verbatim. The encoding is newline-joined "quantity name" records,
// DEFLATE-compressed, then base64url. The compression step is obfuscation
// and size reduction only; it is NOT a security mechanism and anyone can
// decode a seed.

// SeedEntry is one record of the seed: a card name and its quantity.
type SeedEntry struct {
	Name     string
	Quantity int
}

// EncodeSeed encodes ordered entries into a URL-safe seed token. The
// encoding is lossless and order-preserving: DecodeSeed returns exactly
// the input sequence.
func EncodeSeed(entries []SeedEntry) (string, error) {
	var records strings.Builder
	for i, entry := range entries {
		if strings.ContainsRune(entry.Name, '\n') {
			return "", fmt.Errorf("card name %q contains a newline", entry.Name)
		}
		if entry.Quantity < 1 {
			return "", fmt.Errorf("card %q has non-positive quantity %d", entry.Name, entry.Quantity)
		}
		if i > 0 {
			records.WriteByte('\n')
		}
		records.WriteString(strconv.Itoa(entry.Quantity))
		records.WriteByte(' ')
		records.WriteString(entry.Name)
	}

	var compressed bytes.Buffer
	writer, err := flate.NewWriter(&compressed, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("failed to create compressor: %w", err)
	}
	if _, err := writer.Write([]byte(records.String())); err != nil {
		return "", fmt.Errorf("failed to compress seed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish compressing seed: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(compressed.Bytes()), nil
}

// DecodeSeed is the exact inverse of EncodeSeed. It fails with
// SeedFormatError on malformed input: bad base64, a corrupted compressed
// payload, or records that do not parse.
func DecodeSeed(seed string) ([]SeedEntry, error) {
	if seed == "" {
		return nil, &SeedFormatError{Reason: "seed is empty"}
	}

	compressed, err := base64.RawURLEncoding.DecodeString(seed)
	if err != nil {
		return nil, &SeedFormatError{Reason: "invalid base64", Err: err}
	}

	records, err := io.ReadAll(flate.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		return nil, &SeedFormatError{Reason: "corrupted payload", Err: err}
	}

	lines := strings.Split(string(records), "\n")
	entries := make([]SeedEntry, 0, len(lines))
	for i, line := range lines {
		quantityField, name, ok := strings.Cut(line, " ")
		if !ok || name == "" {
			return nil, &SeedFormatError{Reason: fmt.Sprintf("record %d is not \"quantity name\"", i+1)}
		}
		quantity, err := strconv.Atoi(quantityField)
		if err != nil || quantity < 1 {
			return nil, &SeedFormatError{Reason: fmt.Sprintf("record %d has invalid quantity %q", i+1, quantityField)}
		}
		entries = append(entries, SeedEntry{Name: name, Quantity: quantity})
	}

	return entries, nil
}

// Catalog resolves card names to metadata. Implemented by the cardlookup
// service; any resolution failure propagates to the caller unchanged.
type Catalog interface {
	ResolveByName(ctx context.Context, names []string) (map[string]cards.Card, error)
}

// BuildPoolFromSeed reconstructs a pool from a seed in the exact decoded
// order; the pool is never reshuffled. Card names are resolved through
// the catalog so picks can be bucketed by color identity; names the
// catalog does not know degrade to name-only refs (colorless bucket)
// rather than failing the draft. A nil catalog skips resolution entirely.
func BuildPoolFromSeed(ctx context.Context, seed string, catalog Catalog, packSize, rounds int) ([]CardRef, error) {
	settings := Settings{PackSize: packSize, Rounds: rounds}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	entries, err := DecodeSeed(seed)
	if err != nil {
		return nil, err
	}

	refs := expandEntries(entries)
	if len(refs) < settings.PoolSize() {
		return nil, &InsufficientCardsError{Required: settings.PoolSize(), Available: len(refs)}
	}
	refs = refs[:settings.PoolSize()]

	if catalog == nil {
		return refs, nil
	}

	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.Name
	}
	resolved, err := catalog.ResolveByName(ctx, names)
	if err != nil {
		return nil, err
	}

	for i := range refs {
		if card, ok := resolved[refs[i].Name]; ok {
			refs[i].ID = card.ID
			refs[i].ColorIdentity = card.ColorIdentity
		}
	}

	return refs, nil
}

// expandEntries turns (name, quantity) records into one CardRef per copy,
// preserving order.
func expandEntries(entries []SeedEntry) []CardRef {
	var refs []CardRef
	for _, entry := range entries {
		for i := 0; i < entry.Quantity; i++ {
			refs = append(refs, CardRef{Name: entry.Name, Quantity: 1})
		}
	}
	return refs
}
