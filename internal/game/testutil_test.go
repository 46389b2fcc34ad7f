package game

import (
	"fmt"
	"testing"

	"github.com/jyamaiken/triple-triad-app/internal/log"
)

// --- Test card helpers ---

var testCardSeq int

// statCard builds a plain card with the given facing values, ordered
// up, left, right, down.
func statCard(name string, up, left, right, down int) *Card {
	testCardSeq++
	return &Card{
		ID:    1000 + testCardSeq,
		Name:  name,
		Level: 5,
		Stats: Stats{up, left, right, down},
	}
}

// elemCard is statCard with an element attached.
func elemCard(name string, e Element, up, left, right, down int) *Card {
	c := statCard(name, up, left, right, down)
	c.Element = e
	return c
}

// fillHand pads the given leads with weak filler up to a full hand.
func fillHand(leads ...*Card) []*Card {
	hand := append([]*Card{}, leads...)
	for len(hand) < HandSize {
		hand = append(hand, statCard("Filler", 1, 1, 1, 1))
	}
	return hand
}

// putCard drops a card straight onto a board tile with its base stats as
// the stored snapshot. Evaluator tests build positions this way.
func putCard(b *Board, tile int, owner Player, c *Card) *CardInstance {
	ci := newCardInstance(c, owner)
	ci.place(tile, c.Stats)
	b.Tiles[tile].Card = ci
	return ci
}

// --- Match helpers ---

// scriptedMatch returns a match mid-round with the given hands on a
// plain board, with first to move. Tests drive placements directly.
func scriptedMatch(t *testing.T, r Rules, first Player, handA, handB []*Card) *Match {
	t.Helper()
	m, err := NewMatch(MatchConfig{Rules: r, Seed: 7})
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	m.Round = 1
	m.Board = NewBoard()
	m.Hands[PlayerA] = toInstances(handA, PlayerA)
	m.Hands[PlayerB] = toInstances(handB, PlayerB)
	m.Phase = PhasePlaying
	m.Turn = first
	return m
}

// matchEvents fetches the in-memory event log backing the match.
func matchEvents(t *testing.T, m *Match) *log.MemoryLogger {
	t.Helper()
	ml, ok := m.Logger().(*log.MemoryLogger)
	if !ok {
		t.Fatalf("match logger is %T, want *log.MemoryLogger", m.Logger())
	}
	return ml
}

// mustPlace fails the test if the move is rejected.
func mustPlace(t *testing.T, m *Match, p Player, hand, tile int) *PlaceResult {
	t.Helper()
	res, err := m.PlaceCard(p, hand, tile)
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(matchEvents(t, m).Events()))
		t.Fatalf("PlaceCard(%v, hand=%d, tile=%d): %v", p, hand, tile, err)
	}
	return res
}

// snapshot captures the externally visible match state so tests can
// assert a rejected move changed nothing.
type snapshot struct {
	phase  Phase
	turn   Player
	hands  [2]int
	cards  [BoardSize]*CardInstance
	owners [BoardSize]Player
}

func snap(m *Match) snapshot {
	s := snapshot{
		phase: m.Phase,
		turn:  m.Turn,
		hands: [2]int{len(m.Hands[PlayerA]), len(m.Hands[PlayerB])},
	}
	for i, tile := range m.Board.Tiles {
		s.cards[i] = tile.Card
		if tile.Card != nil {
			s.owners[i] = tile.Card.Owner
		}
	}
	return s
}

// stepSeries advances a CPU-vs-CPU match by one phase transition or ply.
func stepSeries(m *Match) error {
	switch m.Phase {
	case PhaseDeckSelect:
		return m.DealHands()
	case PhaseCoinToss:
		_, err := m.TossCoin()
		return err
	case PhasePlaying:
		mv, err := m.CPUMove()
		if err != nil {
			return err
		}
		_, err = m.PlaceCard(m.Turn, mv.Hand, mv.Tile)
		return err
	case PhaseRoundEnd:
		return m.NextRound()
	}
	return fmt.Errorf("unexpected phase %v", m.Phase)
}

// runSeries plays a full series with the built-in evaluator on both
// sides and returns the finished match for inspection.
func runSeries(t *testing.T, r Rules, seed int64) *Match {
	t.Helper()
	m, err := NewMatch(MatchConfig{Rules: r, Seed: seed})
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	for m.Phase != PhaseSeriesOver {
		if err := stepSeries(m); err != nil {
			t.Logf("Event log:\n%s", log.FormatAll(matchEvents(t, m).Events()))
			t.Fatalf("series step: %v", err)
		}
	}
	return m
}
