package solomon

import (
	"github.com/hamdrew/solomon-draft/internal/draft"
)

// The draft core lives in an internal package; these aliases and wrappers
// are the public surface a UI layer programs against.

// Core types.
type (
	State      = draft.State
	Settings   = draft.Settings
	CardRef    = draft.CardRef
	Pack       = draft.Pack
	Pile       = draft.Pile
	Seat       = draft.Seat
	Phase      = draft.Phase
	Collection = draft.Collection
	Ledger     = draft.Ledger
	Entry      = draft.Entry
	SeedEntry  = draft.SeedEntry
)

// Seats and phases.
const (
	SeatP1 = draft.SeatP1
	SeatP2 = draft.SeatP2

	PhaseP1Split  = draft.PhaseP1Split
	PhaseP2Choose = draft.PhaseP2Choose
	PhaseP2Split  = draft.PhaseP2Split
	PhaseP1Choose = draft.PhaseP1Choose
)

// Color buckets.
type ColorBucket = draft.ColorBucket

const (
	BucketWhite      = draft.BucketWhite
	BucketBlue       = draft.BucketBlue
	BucketBlack      = draft.BucketBlack
	BucketRed        = draft.BucketRed
	BucketGreen      = draft.BucketGreen
	BucketColorless  = draft.BucketColorless
	BucketMulticolor = draft.BucketMulticolor
)

// Buckets lists every color bucket in display order.
var Buckets = draft.Buckets

// Error types callers match with errors.As.
type (
	InsufficientCardsError = draft.InsufficientCardsError
	ValidationError        = draft.ValidationError
	InvalidStateError      = draft.InvalidStateError
	NotFoundError          = draft.NotFoundError
	SeedFormatError        = draft.SeedFormatError
)

// DealPack deals the next pack from the pool, or marks the draft complete
// when too few cards remain.
func DealPack(s State) (State, error) { return draft.DealPack(s) }

// SplitPack partitions the active pack into two piles for the splitting
// seat.
func SplitPack(s State, piles [][]CardRef) (State, error) { return draft.SplitPack(s, piles) }

// ChoosePile credits the chosen pile to the chooser and the other pile to
// the opposite seat, then advances the phase. Dealing the next pack is a
// separate step.
func ChoosePile(s State, pileID string) (State, error) { return draft.ChoosePile(s, pileID) }

// Advance composes ChoosePile with the deal of the next pack.
func Advance(s State, pileID string) (State, error) { return draft.Advance(s, pileID) }

// DecodeSeed decodes a seed token back into its ordered (name, quantity)
// records.
func DecodeSeed(seed string) ([]SeedEntry, error) { return draft.DecodeSeed(seed) }
