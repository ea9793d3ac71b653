package draft

import (
	"encoding/json"
	"time"
)

// Action is the kind of accepted engine action a history entry records.
type Action string

const (
	ActionPackDealt  Action = "pack-dealt"
	ActionPackSplit  Action = "pack-split"
	ActionPileChosen Action = "pile-chosen"
)

// Entry is one accepted action. Entries are immutable once appended.
type Entry struct {
	ID        string    `json:"id"`
	Round     int       `json:"round"`
	Phase     Phase     `json:"phase"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// PackDealtPayload records a dealt pack.
type PackDealtPayload struct {
	PackID string    `json:"pack_id"`
	Cards  []CardRef `json:"cards"`
}

// PackSplitPayload records which seat split the active pack and how.
type PackSplitPayload struct {
	Seat   Seat    `json:"seat"`
	PackID string  `json:"pack_id"`
	Piles  [2]Pile `json:"piles"`
}

// PileChosenPayload records a choice and both resulting card sets.
type PileChosenPayload struct {
	Chooser     Seat      `json:"chooser"`
	PileID      string    `json:"pile_id"`
	ChosenCards []CardRef `json:"chosen_cards"`
	OtherCards  []CardRef `json:"other_cards"`
}

// Ledger is the append-only record of accepted actions, in emission
// order. The engine appends exactly one entry per accepted action and
// never reads the ledger to decide future transitions; it exists for
// audit, replay, and review.
type Ledger struct {
	entries []Entry
}

// Len returns the number of entries.
func (l Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of all entries in emission order.
func (l Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// At returns the i-th entry.
func (l Ledger) At(i int) Entry {
	return l.entries[i]
}

// Last returns the most recent entry, or false when the ledger is empty.
func (l Ledger) Last() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// MarshalJSON serializes the ledger as a plain entry array, keeping the
// wire format friendly to an authoritative server broadcasting history
// deltas.
func (l Ledger) MarshalJSON() ([]byte, error) {
	if l.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.entries)
}

// UnmarshalJSON restores a ledger from its entry array form.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &l.entries)
}

func (l Ledger) clone() Ledger {
	if l.entries == nil {
		return Ledger{}
	}
	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)
	return Ledger{entries: entries}
}

// timeNow stamps history entries; tests may substitute a fixed clock.
var timeNow = func() time.Time { return time.Now().UTC() }
