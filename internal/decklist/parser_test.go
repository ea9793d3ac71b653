package decklist

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Entry
	}{
		{
			name:  "bare names",
			input: "Lightning Bolt\nCounterspell\n",
			want: []Entry{
				{Name: "Lightning Bolt", Quantity: 1},
				{Name: "Counterspell", Quantity: 1},
			},
		},
		{
			name:  "quantity first",
			input: "4 Lightning Bolt\n2x Shock",
			want: []Entry{
				{Name: "Lightning Bolt", Quantity: 4},
				{Name: "Shock", Quantity: 2},
			},
		},
		{
			name:  "quantity last",
			input: "Lightning Bolt x4",
			want:  []Entry{{Name: "Lightning Bolt", Quantity: 4}},
		},
		{
			name:  "skips comments blanks and headers",
			input: "// my cube\nDeck\n\n# section\n1 Opt\nSideboard\nDuress",
			want: []Entry{
				{Name: "Opt", Quantity: 1},
				{Name: "Duress", Quantity: 1},
			},
		},
		{
			name:  "punctuated and non-ASCII names",
			input: "1 Borrowing 100,000 Arrows\n2 Lim-Dûl's Vault",
			want: []Entry{
				{Name: "Borrowing 100,000 Arrows", Quantity: 1},
				{Name: "Lim-Dûl's Vault", Quantity: 2},
			},
		},
		{
			name:  "name starting with digits is a bare name",
			input: "Opt x0",
			// x0 fails the positive-quantity check, the line falls through
			// to a bare name.
			want: []Entry{{Name: "Opt x0", Quantity: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d entries, got %d: %+v", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Entry %d: expected %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("// nothing but comments\n\n")
	if err == nil {
		t.Fatal("Expected error for empty list, got nil")
	}

	var dlErr *DeckListError
	if !errors.As(err, &dlErr) {
		t.Errorf("Expected DeckListError, got %T: %v", err, err)
	}
}

func TestFlatten(t *testing.T) {
	entries := []Entry{
		{Name: "Shock", Quantity: 2},
		{Name: "Opt", Quantity: 1},
	}

	names := Flatten(entries)
	want := []string{"Shock", "Shock", "Opt"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d names, got %d", len(want), len(names))
	}
	for i := range names {
		if names[i] != want[i] {
			t.Errorf("Name %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}
