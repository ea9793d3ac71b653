// Package decklist resolves deck list text or URLs into a flat list of
// (name, quantity) entries for pool construction.
package decklist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Entry is a single deck list line: a card name and how many copies.
type Entry struct {
	Name     string
	Quantity int
}

// DeckListError reports a deck list that could not be fetched or parsed.
type DeckListError struct {
	Reason string
	Err    error
}

func (e *DeckListError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deck list error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("deck list error: %s", e.Reason)
}

func (e *DeckListError) Unwrap() error { return e.Err }

// Line patterns, tried in order:
//   "4 Lightning Bolt" or "4x Lightning Bolt"
var quantityFirst = regexp.MustCompile(`^(\d+)x?\s+(.+)$`)

//   "Lightning Bolt x4"
var quantityLast = regexp.MustCompile(`^(.+?)\s+x(\d+)$`)

// Parse parses deck list text into entries. Lines carrying no quantity
// count as one copy. Blank lines and comment lines (// or #) are skipped.
// Section headers like "Deck" or "Sideboard" are ignored; a split draft
// pool has no board distinction.
func Parse(text string) ([]Entry, error) {
	var entries []Entry

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}
		switch strings.ToLower(line) {
		case "deck", "sideboard", "mainboard", "commander":
			continue
		}

		if matches := quantityFirst.FindStringSubmatch(line); matches != nil {
			quantity, err := strconv.Atoi(matches[1])
			if err == nil && quantity > 0 {
				entries = append(entries, Entry{Name: strings.TrimSpace(matches[2]), Quantity: quantity})
				continue
			}
		}

		if matches := quantityLast.FindStringSubmatch(line); matches != nil {
			quantity, err := strconv.Atoi(matches[2])
			if err == nil && quantity > 0 {
				entries = append(entries, Entry{Name: strings.TrimSpace(matches[1]), Quantity: quantity})
				continue
			}
		}

		// Bare card name
		entries = append(entries, Entry{Name: line, Quantity: 1})
	}

	if len(entries) == 0 {
		return nil, &DeckListError{Reason: "no cards found in list"}
	}

	return entries, nil
}

// Flatten expands entries into one name per copy, preserving order.
func Flatten(entries []Entry) []string {
	var names []string
	for _, e := range entries {
		for i := 0; i < e.Quantity; i++ {
			names = append(names, e.Name)
		}
	}
	return names
}
