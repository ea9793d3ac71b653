package draft

import (
	"fmt"

	"github.com/google/uuid"
)

// New creates the initial draft state: round 1, pack 1, P1 splitting, no
// pack dealt yet. The pool must contain exactly the number of cards the
// settings require.
func New(settings Settings, pool []CardRef) (State, error) {
	if err := settings.Validate(); err != nil {
		return State{}, err
	}
	if len(pool) < settings.PoolSize() {
		return State{}, &InsufficientCardsError{Required: settings.PoolSize(), Available: len(pool)}
	}
	if len(pool) > settings.PoolSize() {
		return State{}, &ValidationError{Reason: fmt.Sprintf("pool has %d cards, settings require %d", len(pool), settings.PoolSize())}
	}

	return State{
		Settings:    settings,
		Pool:        cloneCards(pool),
		Round:       1,
		PackInRound: 1,
		Phase:       PhaseP1Split,
		Collections: map[Seat]Collection{
			SeatP1: NewCollection(),
			SeatP2: NewCollection(),
		},
	}, nil
}

// DealPack removes the next PackSize cards from the front of the pool and
// makes them the active pack. When fewer than PackSize cards remain, the
// draft is complete instead and no pack is dealt.
func DealPack(s State) (State, error) {
	if s.Complete {
		return s, &InvalidStateError{Op: "deal pack", Phase: s.Phase, Reason: "draft is complete"}
	}
	if s.ActivePack != nil {
		return s, &InvalidStateError{Op: "deal pack", Phase: s.Phase, Reason: "a pack is already active"}
	}

	next := s.Clone()

	if len(next.Pool) < next.Settings.PackSize {
		next.Complete = true
		return next, nil
	}

	dealt := cloneCards(next.Pool[:next.Settings.PackSize])
	next.Pool = next.Pool[next.Settings.PackSize:]
	next.ActivePack = &Pack{ID: uuid.NewString(), Cards: dealt}

	next.record(ActionPackDealt, PackDealtPayload{
		PackID: next.ActivePack.ID,
		Cards:  cloneCards(dealt),
	})

	return next, nil
}

// SplitPack partitions the active pack into two piles on behalf of the
// splitting seat. The piles must together contain exactly the pack's
// cards, with no omission or duplication, and neither may be empty. Once
// attached, the piles are immutable.
func SplitPack(s State, piles [][]CardRef) (State, error) {
	if s.Complete {
		return s, &InvalidStateError{Op: "split pack", Phase: s.Phase, Reason: "draft is complete"}
	}
	if s.ActivePack == nil {
		return s, &InvalidStateError{Op: "split pack", Phase: s.Phase, Reason: "no active pack"}
	}
	if s.ActivePack.Piles != nil {
		return s, &InvalidStateError{Op: "split pack", Phase: s.Phase, Reason: "pack is already split"}
	}

	var splitter Seat
	switch s.Phase {
	case PhaseP1Split:
		splitter = SeatP1
	case PhaseP2Split:
		splitter = SeatP2
	default:
		return s, &InvalidStateError{Op: "split pack", Phase: s.Phase, Reason: "not a splitting phase"}
	}

	if err := validateSplit(s.ActivePack.Cards, piles); err != nil {
		return s, err
	}

	next := s.Clone()
	split := [2]Pile{
		{ID: uuid.NewString(), Cards: cloneCards(piles[0])},
		{ID: uuid.NewString(), Cards: cloneCards(piles[1])},
	}
	next.ActivePack.Piles = &split

	next.record(ActionPackSplit, PackSplitPayload{
		Seat:   splitter,
		PackID: next.ActivePack.ID,
		Piles:  split,
	})

	if splitter == SeatP1 {
		next.Phase = PhaseP2Choose
	} else {
		next.Phase = PhaseP1Choose
	}

	return next, nil
}

// ChoosePile credits the chosen pile to the choosing seat and the other
// pile to the opposite seat, then advances the phase: after pack 1 of a
// round the other seat splits pack 2; after pack 2 the round increments
// and P1 splits again. The active pack is retired. Dealing the next pack
// is a separate step; see Advance for the composed form.
func ChoosePile(s State, pileID string) (State, error) {
	if s.Complete {
		return s, &InvalidStateError{Op: "choose pile", Phase: s.Phase, Reason: "draft is complete"}
	}
	if s.ActivePack == nil || s.ActivePack.Piles == nil {
		return s, &InvalidStateError{Op: "choose pile", Phase: s.Phase, Reason: "no split to choose from"}
	}

	var chooser Seat
	switch s.Phase {
	case PhaseP1Choose:
		chooser = SeatP1
	case PhaseP2Choose:
		chooser = SeatP2
	default:
		return s, &InvalidStateError{Op: "choose pile", Phase: s.Phase, Reason: "not a choosing phase"}
	}

	var chosen, other Pile
	switch pileID {
	case s.ActivePack.Piles[0].ID:
		chosen, other = s.ActivePack.Piles[0], s.ActivePack.Piles[1]
	case s.ActivePack.Piles[1].ID:
		chosen, other = s.ActivePack.Piles[1], s.ActivePack.Piles[0]
	default:
		return s, &NotFoundError{PileID: pileID}
	}

	next := s.Clone()
	for _, card := range chosen.Cards {
		next.Collections[chooser].Add(card)
	}
	for _, card := range other.Cards {
		next.Collections[chooser.Other()].Add(card)
	}

	next.record(ActionPileChosen, PileChosenPayload{
		Chooser:     chooser,
		PileID:      chosen.ID,
		ChosenCards: cloneCards(chosen.Cards),
		OtherCards:  cloneCards(other.Cards),
	})

	if next.PackInRound == 1 {
		next.PackInRound = 2
		next.Phase = PhaseP2Split
	} else {
		next.PackInRound = 1
		next.Round++
		next.Phase = PhaseP1Split
	}
	next.ActivePack = nil

	return next, nil
}

// Advance composes ChoosePile with the deal of the next pack, which marks
// the draft complete when the pool runs short. Both steps remain
// independently callable.
func Advance(s State, pileID string) (State, error) {
	next, err := ChoosePile(s, pileID)
	if err != nil {
		return s, err
	}
	return DealPack(next)
}

// validateSplit checks that the pile pair partitions the pack exactly.
func validateSplit(packCards []CardRef, piles [][]CardRef) error {
	if len(piles) != 2 {
		return &ValidationError{Reason: fmt.Sprintf("expected exactly 2 piles, got %d", len(piles))}
	}
	if len(piles[0]) == 0 || len(piles[1]) == 0 {
		return &ValidationError{Reason: "piles cannot be empty"}
	}
	if len(piles[0])+len(piles[1]) != len(packCards) {
		return &ValidationError{Reason: fmt.Sprintf("piles hold %d cards, pack has %d", len(piles[0])+len(piles[1]), len(packCards))}
	}

	remaining := make(map[string]int, len(packCards))
	for _, card := range packCards {
		remaining[card.Key()]++
	}
	for _, pile := range piles {
		for _, card := range pile {
			key := card.Key()
			if remaining[key] == 0 {
				return &ValidationError{Reason: fmt.Sprintf("card %q is not in the pack or assigned twice", card.Name)}
			}
			remaining[key]--
		}
	}
	// Counts matched and totals matched, so nothing was omitted either.

	return nil
}

// record appends a history entry for an accepted action. Called on the
// successor state only, after all validation has passed.
func (s *State) record(action Action, payload any) {
	s.History.entries = append(s.History.entries, Entry{
		ID:        uuid.NewString(),
		Round:     s.Round,
		Phase:     s.Phase,
		Action:    action,
		Timestamp: timeNow(),
		Payload:   payload,
	})
}
