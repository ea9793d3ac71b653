package draft

import (
	"math/rand/v2"
)

// BuildPool shuffles the entire source list with an unbiased permutation,
// truncates to the pool size the settings require, and encodes the result
// as a seed. Cards beyond the truncated prefix are discarded and are not
// recoverable from the seed. Source entries with Quantity > 1 are expanded
// into individual copies before shuffling.
func BuildPool(source []CardRef, packSize, rounds int) ([]CardRef, string, error) {
	settings := Settings{PackSize: packSize, Rounds: rounds}
	if err := settings.Validate(); err != nil {
		return nil, "", err
	}

	expanded := expandCopies(source)
	if len(expanded) < settings.PoolSize() {
		return nil, "", &InsufficientCardsError{Required: settings.PoolSize(), Available: len(expanded)}
	}

	rand.Shuffle(len(expanded), func(i, j int) {
		expanded[i], expanded[j] = expanded[j], expanded[i]
	})
	pool := expanded[:settings.PoolSize()]

	entries := make([]SeedEntry, len(pool))
	for i, ref := range pool {
		entries[i] = SeedEntry{Name: ref.Name, Quantity: 1}
	}
	seed, err := EncodeSeed(entries)
	if err != nil {
		return nil, "", err
	}

	return pool, seed, nil
}

// expandCopies returns one CardRef per physical copy, leaving the input
// untouched.
func expandCopies(source []CardRef) []CardRef {
	var out []CardRef
	for _, ref := range source {
		copies := ref.Quantity
		if copies < 1 {
			copies = 1
		}
		for i := 0; i < copies; i++ {
			single := ref
			single.Quantity = 1
			out = append(out, single)
		}
	}
	return out
}
