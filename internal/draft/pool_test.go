package draft

import (
	"context"
	"errors"
	"sort"
	"testing"
)

func TestBuildPool(t *testing.T) {
	source := testPool("A", "B", "C", "D", "E", "F")

	pool, seed, err := BuildPool(source, 2, 1)
	if err != nil {
		t.Fatalf("BuildPool failed: %v", err)
	}
	if len(pool) != 4 {
		t.Fatalf("Expected pool of 4, got %d", len(pool))
	}
	if seed == "" {
		t.Fatal("Expected a non-empty seed")
	}

	// Every pool card came from the source, no duplicates introduced
	sourceNames := make(map[string]int)
	for _, ref := range source {
		sourceNames[ref.Name]++
	}
	for _, ref := range pool {
		if sourceNames[ref.Name] == 0 {
			t.Errorf("Pool card %s is not in the source or drawn twice", ref.Name)
		}
		sourceNames[ref.Name]--
	}
}

func TestBuildPool_ExpandsQuantities(t *testing.T) {
	source := []CardRef{
		{Name: "Island", Quantity: 3},
		{Name: "Opt", Quantity: 1},
	}

	pool, _, err := BuildPool(source, 2, 1)
	if err != nil {
		t.Fatalf("BuildPool failed: %v", err)
	}
	if len(pool) != 4 {
		t.Fatalf("Expected pool of 4, got %d", len(pool))
	}

	counts := make(map[string]int)
	for _, ref := range pool {
		if ref.Quantity != 1 {
			t.Errorf("Expected per-copy refs with quantity 1, got %d for %s", ref.Quantity, ref.Name)
		}
		counts[ref.Name]++
	}
	if counts["Island"] != 3 || counts["Opt"] != 1 {
		t.Errorf("Expected 3 Islands and 1 Opt, got %v", counts)
	}

	// The source list itself is untouched
	if source[0].Quantity != 3 || len(source) != 2 {
		t.Error("BuildPool mutated its source list")
	}
}

func TestBuildPool_InsufficientCards(t *testing.T) {
	_, _, err := BuildPool(testPool("A", "B", "C"), 2, 1)
	var insufficient *InsufficientCardsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected InsufficientCardsError, got %v", err)
	}
	if insufficient.Required != 4 || insufficient.Available != 3 {
		t.Errorf("Unexpected error fields: %+v", insufficient)
	}

	// Exactly enough is fine
	if _, _, err := BuildPool(testPool("A", "B", "C", "D"), 2, 1); err != nil {
		t.Fatalf("Expected exact-size source to succeed, got %v", err)
	}
}

func TestBuildPool_InvalidSettings(t *testing.T) {
	_, _, err := BuildPool(testPool("A", "B"), 0, 1)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}

func TestBuildPool_SeedReplaysPoolOrder(t *testing.T) {
	source := testPool("A", "B", "C", "D", "E", "F", "G", "H")

	pool, seed, err := BuildPool(source, 2, 2)
	if err != nil {
		t.Fatalf("BuildPool failed: %v", err)
	}

	rebuilt, err := BuildPoolFromSeed(context.Background(), seed, nil, 2, 2)
	if err != nil {
		t.Fatalf("BuildPoolFromSeed failed: %v", err)
	}
	if len(rebuilt) != len(pool) {
		t.Fatalf("Expected %d cards, got %d", len(pool), len(rebuilt))
	}
	for i := range pool {
		if rebuilt[i].Name != pool[i].Name {
			t.Errorf("Position %d: expected %s, got %s", i, pool[i].Name, rebuilt[i].Name)
		}
	}
}

func TestBuildPool_TruncationDiscardsExcess(t *testing.T) {
	source := testPool("A", "B", "C", "D", "E", "F", "G", "H", "I", "J")

	_, seed, err := BuildPool(source, 2, 1)
	if err != nil {
		t.Fatalf("BuildPool failed: %v", err)
	}

	entries, err := DecodeSeed(seed)
	if err != nil {
		t.Fatalf("DecodeSeed failed: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("Expected the seed to record only the 4 dealt cards, got %d", len(entries))
	}
}

func TestBuildPool_ShufflePermutes(t *testing.T) {
	names := make([]string, 40)
	for i := range names {
		names[i] = string(rune('A' + i%26))
	}
	source := testPool(names...)

	pool, _, err := BuildPool(source, 20, 1)
	if err != nil {
		t.Fatalf("BuildPool failed: %v", err)
	}

	// A full-pool deal is a permutation of the source multiset.
	got := make([]string, len(pool))
	for i, ref := range pool {
		got[i] = ref.Name
	}
	want := append([]string(nil), names...)
	sort.Strings(got)
	sort.Strings(want)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Shuffled pool is not a permutation of the source")
		}
	}
}
