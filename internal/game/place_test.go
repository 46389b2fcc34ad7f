package game

import (
	"errors"
	"testing"

	"github.com/jyamaiken/triple-triad-app/internal/log"
)

func assertCaptures(t *testing.T, got []Capture, want ...Capture) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("captures = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("capture %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestBasicCapture: a [5,5,5,5] attacker at tile 4 beats the 3 on the
// facing side of the card above it.
func TestBasicCapture(t *testing.T) {
	r := Rules{Same: true, Plus: true}
	handA := fillHand(statCard("Raider", 5, 5, 5, 5))
	handB := fillHand(statCard("Gate", 2, 2, 2, 3))
	m := scriptedMatch(t, r, PlayerB, handA, handB)

	mustPlace(t, m, PlayerB, 0, 1)
	res := mustPlace(t, m, PlayerA, 0, 4)

	assertCaptures(t, res.Captures, Capture{Tile: 1, Rule: CaptureBasic})
	if res.Same || res.Plus {
		t.Errorf("Same=%v Plus=%v, want neither", res.Same, res.Plus)
	}
	if owner := m.Board.Tiles[1].Card.Owner; owner != PlayerA {
		t.Errorf("tile 1 owner = %v, want PlayerA", owner)
	}
	if m.Turn != PlayerB {
		t.Errorf("turn = %v, want PlayerB", m.Turn)
	}

	flips := matchEvents(t, m).EventsOfType(log.EventCardFlipped)
	if len(flips) != 1 || flips[0].Tile != 1 {
		t.Errorf("flip events = %v, want one at tile 1", flips)
	}
}

// TestNoCaptureOnEqualFacing: an equal facing value never captures under
// the basic rule, and a single match cannot trigger SAME.
func TestNoCaptureOnEqualFacing(t *testing.T) {
	r := Rules{Same: true, Plus: true}
	handA := fillHand(statCard("Pusher", 3, 1, 1, 1))
	handB := fillHand(statCard("Gate", 2, 2, 2, 3))
	m := scriptedMatch(t, r, PlayerB, handA, handB)

	mustPlace(t, m, PlayerB, 0, 1)
	res := mustPlace(t, m, PlayerA, 0, 4)

	assertCaptures(t, res.Captures)
	if owner := m.Board.Tiles[1].Card.Owner; owner != PlayerB {
		t.Errorf("tile 1 owner = %v, want PlayerB", owner)
	}
}

// TestSameCapturesBothMatches: two exact facing matches flip both
// opposing cards even though 3 is not greater than 3.
func TestSameCapturesBothMatches(t *testing.T) {
	r := Rules{Same: true}
	handA := fillHand(statCard("Trapmaster", 3, 3, 9, 9))
	handB := fillHand(
		statCard("North Gate", 2, 2, 2, 3), // tile 1, Down 3
		statCard("West Gate", 2, 2, 3, 2),  // tile 3, Right 3
	)
	m := scriptedMatch(t, r, PlayerB, handA, handB)

	mustPlace(t, m, PlayerB, 0, 1)
	mustPlace(t, m, PlayerA, 1, 8) // filler, out of the way
	mustPlace(t, m, PlayerB, 0, 3)
	res := mustPlace(t, m, PlayerA, 0, 4)

	if !res.Same {
		t.Fatal("expected SAME to trigger")
	}
	assertCaptures(t, res.Captures,
		Capture{Tile: 1, Rule: CaptureSame},
		Capture{Tile: 3, Rule: CaptureSame},
	)
	if len(matchEvents(t, m).EventsOfType(log.EventSameTrigger)) != 1 {
		t.Error("expected one SameTrigger event")
	}
}

// TestSameSeedsOwnCardCombo: SAME can match the placer's own card; the
// own card is not flipped but it joins the cascade and captures its
// weak neighbor.
func TestSameSeedsOwnCardCombo(t *testing.T) {
	r := Rules{Same: true}
	handA := fillHand(
		statCard("Anchor", 2, 8, 2, 3),  // tile 1, Left 8 beats Prey later
		statCard("Trigger", 3, 1, 3, 1), // tile 4
	)
	handB := fillHand(
		statCard("Prey", 9, 9, 2, 9),    // tile 0, Right 2
		statCard("Matcher", 9, 3, 9, 1), // tile 5, Left 3
	)
	m := scriptedMatch(t, r, PlayerA, handA, handB)

	mustPlace(t, m, PlayerA, 0, 1)
	mustPlace(t, m, PlayerB, 0, 0)
	mustPlace(t, m, PlayerA, 1, 8) // filler
	mustPlace(t, m, PlayerB, 0, 5)
	res := mustPlace(t, m, PlayerA, 0, 4) // Up 3 = Anchor Down, Right 3 = Matcher Left

	if !res.Same {
		t.Fatal("expected SAME to trigger")
	}
	// Matcher flips by SAME; Anchor stays owned but cascades into Prey.
	assertCaptures(t, res.Captures,
		Capture{Tile: 5, Rule: CaptureSame},
		Capture{Tile: 0, Rule: CaptureCombo},
	)
	if owner := m.Board.Tiles[1].Card.Owner; owner != PlayerA {
		t.Errorf("own anchor owner = %v, want PlayerA", owner)
	}
	if owner := m.Board.Tiles[0].Card.Owner; owner != PlayerA {
		t.Errorf("prey owner = %v, want PlayerA", owner)
	}
}

// TestPlusCapturesEqualSums: different facing values with equal
// my+their sums flip both neighbors, with no basic capture involved.
func TestPlusCapturesEqualSums(t *testing.T) {
	r := Rules{Plus: true}
	handA := fillHand(statCard("Summoner", 2, 3, 9, 9))
	handB := fillHand(
		statCard("High Wall", 2, 2, 2, 6), // tile 1: 2+6 = 8
		statCard("Low Wall", 2, 2, 5, 2),  // tile 3: 3+5 = 8
	)
	m := scriptedMatch(t, r, PlayerB, handA, handB)

	mustPlace(t, m, PlayerB, 0, 1)
	mustPlace(t, m, PlayerA, 1, 8)
	mustPlace(t, m, PlayerB, 0, 3)
	res := mustPlace(t, m, PlayerA, 0, 4)

	if !res.Plus {
		t.Fatal("expected PLUS to trigger")
	}
	if res.Same {
		t.Error("SAME should not trigger here")
	}
	assertCaptures(t, res.Captures,
		Capture{Tile: 1, Rule: CapturePlus},
		Capture{Tile: 3, Rule: CapturePlus},
	)
	if len(matchEvents(t, m).EventsOfType(log.EventPlusTrigger)) != 1 {
		t.Error("expected one PlusTrigger event")
	}
}

// TestSameAndPlusTogether: one placement fires SAME on two neighbors and
// PLUS on a third; the overlap keeps its SAME attribution.
func TestSameAndPlusTogether(t *testing.T) {
	r := Rules{Same: true, Plus: true}
	handA := fillHand(statCard("Dual", 3, 5, 9, 9))
	handB := fillHand(
		statCard("North", 2, 2, 2, 3), // tile 1: 3 = 3 (SAME)
		statCard("West", 1, 2, 5, 2),  // tile 3: 5 = 5 (SAME), 5+5 = 10
		statCard("South", 1, 1, 1, 1), // tile 7: 9+1 = 10 (PLUS with tile 3)
	)
	m := scriptedMatch(t, r, PlayerB, handA, handB)

	mustPlace(t, m, PlayerB, 0, 1)
	mustPlace(t, m, PlayerA, 1, 0)
	mustPlace(t, m, PlayerB, 0, 3)
	mustPlace(t, m, PlayerA, 1, 2)
	mustPlace(t, m, PlayerB, 0, 7)
	res := mustPlace(t, m, PlayerA, 0, 4)

	if !res.Same || !res.Plus {
		t.Fatalf("Same=%v Plus=%v, want both", res.Same, res.Plus)
	}
	assertCaptures(t, res.Captures,
		Capture{Tile: 1, Rule: CaptureSame},
		Capture{Tile: 3, Rule: CaptureSame},
		Capture{Tile: 7, Rule: CapturePlus},
	)
}

// TestComboCascade: a SAME-captured card's stored stats beat a further
// neighbor, which is captured in the same placement event.
func TestComboCascade(t *testing.T) {
	r := Rules{Same: true}
	handA := fillHand(statCard("Trigger", 3, 1, 3, 1))
	handB := fillHand(
		statCard("Relay", 2, 7, 2, 3),  // tile 1; once flipped, Left 7 beats Prey
		statCard("Matcher", 2, 3, 2, 1), // tile 5, Left 3
		statCard("Prey", 2, 2, 2, 2),   // tile 0, Right 2
	)
	m := scriptedMatch(t, r, PlayerB, handA, handB)

	mustPlace(t, m, PlayerB, 0, 1)
	mustPlace(t, m, PlayerA, 1, 8)
	mustPlace(t, m, PlayerB, 0, 5)
	mustPlace(t, m, PlayerA, 1, 6)
	mustPlace(t, m, PlayerB, 0, 0)
	res := mustPlace(t, m, PlayerA, 0, 4)

	if !res.Same {
		t.Fatal("expected SAME to trigger")
	}
	assertCaptures(t, res.Captures,
		Capture{Tile: 1, Rule: CaptureSame},
		Capture{Tile: 5, Rule: CaptureSame},
		Capture{Tile: 0, Rule: CaptureCombo},
	)
	if len(matchEvents(t, m).EventsOfType(log.EventComboFlip)) != 1 {
		t.Error("expected one ComboFlip event")
	}
	for _, tile := range []int{0, 1, 4, 5} {
		if owner := m.Board.Tiles[tile].Card.Owner; owner != PlayerA {
			t.Errorf("tile %d owner = %v, want PlayerA", tile, owner)
		}
	}
}

// TestBasicCaptureDoesNotCascade: a plain greater-than flip never seeds
// the combo queue, even when the flipped card could beat its neighbor.
func TestBasicCaptureDoesNotCascade(t *testing.T) {
	r := Rules{Same: true, Plus: true}
	handA := fillHand(statCard("Striker", 5, 1, 1, 1))
	handB := fillHand(
		statCard("Victim", 2, 9, 2, 3), // tile 1; Left 9 would beat Bystander
		statCard("Bystander", 2, 2, 2, 2), // tile 0
	)
	m := scriptedMatch(t, r, PlayerB, handA, handB)

	mustPlace(t, m, PlayerB, 0, 1)
	mustPlace(t, m, PlayerA, 1, 8)
	mustPlace(t, m, PlayerB, 0, 0)
	res := mustPlace(t, m, PlayerA, 0, 4)

	assertCaptures(t, res.Captures, Capture{Tile: 1, Rule: CaptureBasic})
	if owner := m.Board.Tiles[0].Card.Owner; owner != PlayerB {
		t.Errorf("bystander owner = %v, want PlayerB (basic flips must not cascade)", owner)
	}
	if events := matchEvents(t, m).EventsOfType(log.EventComboFlip); len(events) != 0 {
		t.Errorf("combo events = %v, want none", events)
	}
}

// TestElementalShift: a matching tag adds one to every stat, any other
// card on a tagged tile loses one, both clamped to [1,10]. Base stats
// never change and the shifted snapshot is what defends later.
func TestElementalShift(t *testing.T) {
	r := Rules{Elemental: true}
	handA := fillHand(
		elemCard("Emberfox", ElementFire, 5, 5, 5, 5),
		elemCard("Cinder", ElementFire, 10, 1, 10, 1),
	)
	handB := fillHand(
		statCard("Attacker", 2, 2, 2, 6), // elementless; tile 1, Down 6
		elemCard("Coalworm", ElementFire, 10, 1, 10, 1),
	)
	m := scriptedMatch(t, r, PlayerA, handA, handB)
	m.Board.Tiles[4].Element = ElementFire
	m.Board.Tiles[5].Element = ElementFire
	m.Board.Tiles[3].Element = ElementIce
	m.Board.Tiles[1].Element = ElementIce

	res := mustPlace(t, m, PlayerA, 0, 4)
	fox := res.Card
	if got := fox.Effective(); got != (Stats{6, 6, 6, 6}) {
		t.Errorf("boosted stats = %v, want [6,6,6,6]", got)
	}
	if got := fox.Card.Stats; got != (Stats{5, 5, 5, 5}) {
		t.Errorf("base stats changed to %v", got)
	}

	// Matching tag clamps at 10.
	mustPlace(t, m, PlayerB, 1, 5)
	if got := m.Board.Tiles[5].Card.Effective(); got != (Stats{10, 2, 10, 2}) {
		t.Errorf("clamped boost = %v, want [10,2,10,2]", got)
	}

	// Mismatched tag floors at 1.
	mustPlace(t, m, PlayerA, 0, 3)
	if got := m.Board.Tiles[3].Card.Effective(); got != (Stats{9, 1, 9, 1}) {
		t.Errorf("penalized stats = %v, want [9,1,9,1]", got)
	}

	// An elementless card on a tagged tile takes the penalty too. Base
	// stats would beat the fox (6 > 5) but the snapshots say 5 vs 6.
	res = mustPlace(t, m, PlayerB, 0, 1)
	if got := res.Card.Effective(); got != (Stats{1, 1, 1, 5}) {
		t.Errorf("elementless penalty = %v, want [1,1,1,5]", got)
	}
	assertCaptures(t, res.Captures)
	if got := fox.Effective(); got != (Stats{6, 6, 6, 6}) {
		t.Errorf("stored stats moved to %v after later plies", got)
	}

	// An untagged tile shifts nothing.
	mustPlace(t, m, PlayerA, 0, 0)
	shifts := matchEvents(t, m).EventsOfType(log.EventElementalShift)
	if len(shifts) != 4 {
		t.Errorf("elemental shift events = %d, want 4", len(shifts))
	}
}

// TestElementalDisabledIgnoresTags: with the rule off a tagged tile
// changes nothing.
func TestElementalDisabledIgnoresTags(t *testing.T) {
	r := Rules{}
	handA := fillHand(elemCard("Emberfox", ElementFire, 5, 5, 5, 5))
	m := scriptedMatch(t, r, PlayerA, handA, fillHand())
	m.Board.Tiles[4].Element = ElementFire

	res := mustPlace(t, m, PlayerA, 0, 4)
	if got := res.Card.Effective(); got != (Stats{5, 5, 5, 5}) {
		t.Errorf("effective = %v, want unchanged [5,5,5,5]", got)
	}
	if events := matchEvents(t, m).EventsOfType(log.EventElementalShift); len(events) != 0 {
		t.Errorf("shift events = %v, want none", events)
	}
}

// TestRejectedMoves: every violation is reported as an illegal move and
// leaves the match exactly as it was.
func TestRejectedMoves(t *testing.T) {
	r := Rules{Same: true, Plus: true}
	m := scriptedMatch(t, r, PlayerA, fillHand(), fillHand())
	mustPlace(t, m, PlayerA, 0, 4)

	cases := []struct {
		name   string
		player Player
		hand   int
		tile   int
		reason IllegalMoveReason
	}{
		{"wrong turn", PlayerA, 0, 0, ReasonWrongTurn},
		{"tile too big", PlayerB, 0, 9, ReasonTileOutOfRange},
		{"tile negative", PlayerB, 0, -1, ReasonTileOutOfRange},
		{"tile occupied", PlayerB, 0, 4, ReasonTileOccupied},
		{"hand too big", PlayerB, 5, 0, ReasonNotInHand},
		{"hand negative", PlayerB, -1, 0, ReasonNotInHand},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := snap(m)
			_, err := m.PlaceCard(tc.player, tc.hand, tc.tile)
			if err == nil {
				t.Fatal("expected rejection")
			}
			if !errors.Is(err, ErrIllegalMove) {
				t.Fatalf("error %v does not match ErrIllegalMove", err)
			}
			var ill *IllegalMoveError
			if !errors.As(err, &ill) {
				t.Fatalf("error %T is not *IllegalMoveError", err)
			}
			if ill.Reason != tc.reason {
				t.Errorf("reason = %v, want %v", ill.Reason, tc.reason)
			}
			if after := snap(m); after != before {
				t.Errorf("rejected move mutated the match: %+v -> %+v", before, after)
			}
		})
	}

	// Out-of-phase placement.
	fresh, err := NewMatch(MatchConfig{Rules: r, Seed: 3})
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	_, err = fresh.PlaceCard(PlayerA, 0, 0)
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("placement during deck select = %v, want illegal move", err)
	}
	var ill *IllegalMoveError
	if errors.As(err, &ill) && ill.Reason != ReasonWrongPhase {
		t.Errorf("reason = %v, want ReasonWrongPhase", ill.Reason)
	}
}

// TestRoundScoringDraw: nine placements with identical stats capture
// nothing under the basic rule, conserve ten cards throughout, and score
// the round 5-5.
func TestRoundScoringDraw(t *testing.T) {
	r := Rules{}
	mk := func() []*Card {
		var cards []*Card
		for i := 0; i < HandSize; i++ {
			cards = append(cards, statCard("Clone", 5, 5, 5, 5))
		}
		return cards
	}
	m := scriptedMatch(t, r, PlayerA, mk(), mk())

	var last *PlaceResult
	for tile := 0; tile < BoardSize; tile++ {
		mover := m.Turn
		last = mustPlace(t, m, mover, 0, tile)
		scores := m.Scores()
		if scores[PlayerA]+scores[PlayerB] != 10 {
			t.Fatalf("after tile %d: scores %v do not sum to 10", tile, scores)
		}
		if m.Phase == PhasePlaying && m.Turn == mover {
			t.Fatalf("turn did not pass after tile %d", tile)
		}
	}

	if !last.RoundOver {
		t.Error("ninth placement should end the round")
	}
	if m.Phase != PhaseRoundEnd {
		t.Fatalf("phase = %v, want RoundEnd", m.Phase)
	}
	if got := m.Results[0]; got.Winner != PlayerNone || got.Scores != ([2]int{5, 5}) {
		t.Errorf("round result = %+v, want drawn 5-5", got)
	}

	_, err := m.PlaceCard(m.Turn, 0, 0)
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("placement after round end = %v, want illegal move", err)
	}
}
