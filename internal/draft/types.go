// Package draft implements the split-and-choose draft core: pool
// construction, the seed codec, the phase state machine, per-seat
// collections, and the append-only action history.
//
// Every engine operation is a pure transform: it returns a new State and
// never mutates its input, so a failed call leaves the caller's state
// untouched. The engine owns no goroutines and performs no I/O; catalog
// and deck list resolution happen in collaborators before a state is
// constructed. Callers embedding the engine in a concurrent setting must
// serialize operations on a given State themselves.
package draft

// Seat identifies one of the two drafting participants.
type Seat string

const (
	SeatP1 Seat = "p1"
	SeatP2 Seat = "p2"
)

// Other returns the opposite seat.
func (s Seat) Other() Seat {
	if s == SeatP1 {
		return SeatP2
	}
	return SeatP1
}

// Phase is one step of the per-round cycle:
// P1 splits, P2 chooses, P2 splits, P1 chooses.
type Phase string

const (
	PhaseP1Split  Phase = "p1-split"
	PhaseP2Choose Phase = "p2-choose"
	PhaseP2Split  Phase = "p2-split"
	PhaseP1Choose Phase = "p1-choose"
)

// CardRef is one physical card in the pool, a pack, a pile, or a
// collection. Identity for membership checks is the catalog ID, falling
// back to the name for seed-reconstructed pools that never touched the
// catalog.
type CardRef struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name"`
	ColorIdentity []string `json:"color_identity,omitempty"`
	Quantity      int      `json:"quantity"`
}

// Key returns the identity used for pile and pool membership.
func (c CardRef) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Name
}

// Pile is one of the two partitions of a split pack.
type Pile struct {
	ID    string    `json:"id"`
	Cards []CardRef `json:"cards"`
}

// Pack is a contiguous slice of the pool dealt to the active splitting
// seat. Piles is nil until the pack is split; once set, the pack is
// immutable.
type Pack struct {
	ID    string    `json:"id"`
	Cards []CardRef `json:"cards"`
	Piles *[2]Pile  `json:"piles,omitempty"`
}

// Collection accumulates a seat's picks, bucketed by color identity.
// Insertion order within a bucket is pick order; no other ordering is
// maintained.
type Collection map[ColorBucket][]CardRef

// NewCollection returns an empty collection with every bucket present.
func NewCollection() Collection {
	c := make(Collection, len(Buckets))
	for _, bucket := range Buckets {
		c[bucket] = []CardRef{}
	}
	return c
}

// Add files a card under its color identity bucket.
func (c Collection) Add(card CardRef) {
	bucket := BucketFor(card.ColorIdentity)
	c[bucket] = append(c[bucket], card)
}

// Size returns the total number of cards across all buckets.
func (c Collection) Size() int {
	total := 0
	for _, cards := range c {
		total += len(cards)
	}
	return total
}

func (c Collection) clone() Collection {
	next := make(Collection, len(c))
	for bucket, cards := range c {
		next[bucket] = cloneCards(cards)
	}
	return next
}

// Settings are the fixed parameters of a draft.
type Settings struct {
	PackSize int    `json:"pack_size"`
	Rounds   int    `json:"rounds"`
	Seed     string `json:"seed,omitempty"`
}

// PoolSize returns the number of cards the draft consumes: two packs per
// round for each of Rounds rounds.
func (s Settings) PoolSize() int {
	return 2 * s.PackSize * s.Rounds
}

// Validate checks the settings bounds.
func (s Settings) Validate() error {
	if s.PackSize < 1 {
		return &ValidationError{Reason: "pack size must be at least 1"}
	}
	if s.Rounds < 1 {
		return &ValidationError{Reason: "rounds must be at least 1"}
	}
	return nil
}

// State is the complete draft state. It is a value: engine operations
// return a new State and leave their input untouched.
type State struct {
	Settings    Settings            `json:"settings"`
	Pool        []CardRef           `json:"pool"`
	Round       int                 `json:"round"`
	PackInRound int                 `json:"pack_in_round"`
	Phase       Phase               `json:"phase"`
	ActivePack  *Pack               `json:"active_pack,omitempty"`
	Collections map[Seat]Collection `json:"collections"`
	Complete    bool                `json:"complete"`
	History     Ledger              `json:"history"`
}

// Clone returns a deep copy sharing no mutable structure with s.
func (s State) Clone() State {
	next := s
	next.Pool = cloneCards(s.Pool)

	if s.ActivePack != nil {
		pack := Pack{ID: s.ActivePack.ID, Cards: cloneCards(s.ActivePack.Cards)}
		if s.ActivePack.Piles != nil {
			piles := [2]Pile{
				{ID: s.ActivePack.Piles[0].ID, Cards: cloneCards(s.ActivePack.Piles[0].Cards)},
				{ID: s.ActivePack.Piles[1].ID, Cards: cloneCards(s.ActivePack.Piles[1].Cards)},
			}
			pack.Piles = &piles
		}
		next.ActivePack = &pack
	}

	next.Collections = make(map[Seat]Collection, len(s.Collections))
	for seat, collection := range s.Collections {
		next.Collections[seat] = collection.clone()
	}

	next.History = s.History.clone()
	return next
}

func cloneCards(cards []CardRef) []CardRef {
	if cards == nil {
		return nil
	}
	out := make([]CardRef, len(cards))
	copy(out, cards)
	return out
}
