// Package export renders a seat's drafted collection as a plain deck
// list, one "{quantity} {name}" line per distinct card.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hamdrew/solomon-draft/internal/draft"
)

// Lines renders the collection as deck-list lines. Copies of the same
// card are summed across all color buckets into a single line, and lines
// are sorted alphabetically by card name. The output carries a trailing
// newline; an empty collection renders as an empty string.
func Lines(collection draft.Collection) string {
	counts := make(map[string]int)
	for _, bucket := range draft.Buckets {
		for _, card := range collection[bucket] {
			quantity := card.Quantity
			if quantity < 1 {
				quantity = 1
			}
			counts[card.Name] += quantity
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var content strings.Builder
	for _, name := range names {
		fmt.Fprintf(&content, "%d %s\n", counts[name], name)
	}
	return content.String()
}

// File renders the collection and suggests a filename derived from the
// deck name, with characters unsafe in filenames replaced.
func File(collection draft.Collection, deckName string) (content, filename string) {
	if deckName == "" {
		deckName = "drafted-deck"
	}
	return Lines(collection), sanitizeFileName(deckName) + ".txt"
}

// sanitizeFileName removes invalid characters from a filename.
func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|' || r == ' ' {
			return '_'
		}
		return r
	}, name)
}
