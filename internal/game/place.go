package game

import (
	"github.com/jyamaiken/triple-triad-app/internal/log"
)

// Move pairs a board tile with a hand index.
type Move struct {
	Tile int
	Hand int
}

// CaptureRule identifies which rule flipped a card.
type CaptureRule int

const (
	CaptureBasic CaptureRule = iota
	CaptureSame
	CapturePlus
	CaptureCombo
)

func (r CaptureRule) String() string {
	switch r {
	case CaptureBasic:
		return "basic"
	case CaptureSame:
		return "same"
	case CapturePlus:
		return "plus"
	case CaptureCombo:
		return "combo"
	default:
		return "unknown"
	}
}

// Capture records one ownership flip.
type Capture struct {
	Tile int
	Rule CaptureRule
}

// PlaceResult summarizes one resolved placement.
type PlaceResult struct {
	Player   Player
	Move     Move
	Card     *CardInstance
	Same     bool
	Plus     bool
	Captures []Capture

	RoundOver  bool
	SeriesOver bool
}

// clampStat keeps an adjusted value inside the printable 1-10 range.
func clampStat(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

// computeEffective applies the one-time elemental shift for placing c on
// a tile with the given tag: +1 to every side on a matching tag, -1 on a
// mismatch, clamped to [1,10]. Untagged tiles leave the base stats alone.
func computeEffective(c *Card, tag Element, elemental bool) Stats {
	eff := c.Stats
	if !elemental || tag == ElementNone {
		return eff
	}
	delta := -1
	if c.Element == tag {
		delta = 1
	}
	for i := range eff {
		eff[i] = clampStat(eff[i] + delta)
	}
	return eff
}

// neighborFacing is one occupied-neighbor comparison seen from the placed
// card: my outward value against their opposing value.
type neighborFacing struct {
	tile   int
	mine   int
	theirs int
	owner  Player
}

// placementOutcome holds the consequences of a candidate placement up
// through the basic rule. The combo cascade is applied separately, only
// when the placement is real.
type placementOutcome struct {
	effective   Stats
	same        bool
	plus        bool
	sameMatched int
	plusSums    []int
	captures    []Capture // same, plus, then basic; each tile at most once
	seeds       []int     // combo queue: every SAME match plus PLUS captures
}

// analyzePlacement resolves the non-cascade rules for placing card on
// tile as player, reading the board without mutating it. Ownership tests
// use the pre-placement state throughout: SAME, PLUS, and the basic rule
// all resolve simultaneously from the same comparison set.
func analyzePlacement(b *Board, r Rules, player Player, card *Card, tile int) placementOutcome {
	out := placementOutcome{
		effective: computeEffective(card, b.Tiles[tile].Element, r.Elemental),
	}

	var facings []neighborFacing
	for _, side := range sides {
		n := Neighbor(tile, side)
		if n < 0 {
			continue
		}
		defender := b.Tiles[n].Card
		if defender == nil {
			continue
		}
		facings = append(facings, neighborFacing{
			tile:   n,
			mine:   out.effective[side],
			theirs: defender.Effective()[side.Opposite()],
			owner:  defender.Owner,
		})
	}
	if len(facings) == 0 {
		return out
	}

	captured := make(map[int]bool, len(facings))
	seeded := make(map[int]bool, len(facings))
	seed := func(t int) {
		if !seeded[t] {
			seeded[t] = true
			out.seeds = append(out.seeds, t)
		}
	}

	// SAME: two or more exact facing matches flip every matched opposing
	// card. Every matched card seeds the cascade, own cards included.
	if r.Same {
		var matched []neighborFacing
		for _, f := range facings {
			if f.mine == f.theirs {
				matched = append(matched, f)
			}
		}
		if len(matched) >= 2 {
			out.same = true
			out.sameMatched = len(matched)
			for _, f := range matched {
				if f.owner != player && !captured[f.tile] {
					captured[f.tile] = true
					out.captures = append(out.captures, Capture{Tile: f.tile, Rule: CaptureSame})
				}
				seed(f.tile)
			}
		}
	}

	// PLUS: any facing sum shared by two or more neighbors flips the
	// opposing members of that group and seeds them. SAME having fired
	// does not suppress it.
	if r.Plus {
		bySum := make(map[int][]neighborFacing, len(facings))
		for _, f := range facings {
			bySum[f.mine+f.theirs] = append(bySum[f.mine+f.theirs], f)
		}
		done := make(map[int]bool, len(bySum))
		for _, f := range facings {
			sum := f.mine + f.theirs
			if done[sum] {
				continue
			}
			done[sum] = true
			group := bySum[sum]
			if len(group) < 2 {
				continue
			}
			out.plus = true
			out.plusSums = append(out.plusSums, sum)
			for _, g := range group {
				if g.owner == player {
					continue
				}
				if !captured[g.tile] {
					captured[g.tile] = true
					out.captures = append(out.captures, Capture{Tile: g.tile, Rule: CapturePlus})
				}
				seed(g.tile)
			}
		}
	}

	// Basic rule: whatever SAME/PLUS left alone falls to the plain
	// greater-than comparison. These flips never seed the cascade.
	for _, f := range facings {
		if captured[f.tile] || f.owner == player {
			continue
		}
		if f.mine > f.theirs {
			captured[f.tile] = true
			out.captures = append(out.captures, Capture{Tile: f.tile, Rule: CaptureBasic})
		}
	}

	return out
}

// PlaceCard resolves one placement: player's hand card at handIdx goes to
// tile, captures resolve, and the turn passes to the other side. Filling
// the ninth tile scores the round inside this same call.
//
// A violated precondition returns *IllegalMoveError and changes nothing.
func (m *Match) PlaceCard(player Player, handIdx, tile int) (*PlaceResult, error) {
	if m.Phase != PhasePlaying {
		return nil, illegalMove(player, ReasonWrongPhase)
	}
	if player != m.Turn {
		return nil, illegalMove(player, ReasonWrongTurn)
	}
	if tile < 0 || tile >= BoardSize {
		e := illegalMove(player, ReasonTileOutOfRange)
		e.Tile = tile
		return nil, e
	}
	if m.Board.Tiles[tile].Card != nil {
		e := illegalMove(player, ReasonTileOccupied)
		e.Tile = tile
		return nil, e
	}
	hand := m.Hands[player]
	if handIdx < 0 || handIdx >= len(hand) {
		e := illegalMove(player, ReasonNotInHand)
		e.Hand = handIdx
		return nil, e
	}

	ci := hand[handIdx]
	out := analyzePlacement(m.Board, m.Rules, player, ci.Card, tile)

	// Preconditions all hold; nothing below can fail.
	ci.place(tile, out.effective)
	m.Board.Tiles[tile].Card = ci
	m.Hands[player] = append(hand[:handIdx:handIdx], hand[handIdx+1:]...)
	m.ply++

	m.log(log.NewCardPlacedEvent(m.Round, m.ply, int(player), ci.Card.Name, tile))
	if tag := m.Board.Tiles[tile].Element; m.Rules.Elemental && tag != ElementNone {
		m.log(log.NewElementalShiftEvent(m.Round, m.ply, int(player), ci.Card.Name, tile, shiftSign(ci.Card.Element, tag), tag.String()))
	}

	res := &PlaceResult{
		Player: player,
		Move:   Move{Tile: tile, Hand: handIdx},
		Card:   ci,
		Same:   out.same,
		Plus:   out.plus,
	}

	if out.same {
		m.log(log.NewSameTriggerEvent(m.Round, m.ply, int(player), ci.Card.Name, tile, out.sameMatched))
	}
	if out.plus {
		m.log(log.NewPlusTriggerEvent(m.Round, m.ply, int(player), ci.Card.Name, tile, out.plusSums))
	}

	for _, c := range out.captures {
		victim := m.Board.Tiles[c.Tile].Card
		victim.Owner = player
		res.Captures = append(res.Captures, c)
		m.log(log.NewCardFlippedEvent(m.Round, m.ply, int(player), victim.Card.Name, c.Tile, c.Rule.String()))
	}

	res.Captures = append(res.Captures, m.runCascade(player, out.seeds)...)

	m.Turn = player.Opponent()

	if m.Board.Full() {
		m.finishRound()
		res.RoundOver = true
		res.SeriesOver = m.Phase == PhaseSeriesOver
		return res, nil
	}
	m.log(log.NewTurnStartEvent(m.Round, m.ply+1, int(m.Turn)))
	return res, nil
}

// shiftSign is +1 when the card's element matches the tile tag, else -1.
func shiftSign(card, tag Element) int {
	if card == tag {
		return 1
	}
	return -1
}

// runCascade drains the combo queue breadth-first. Seeded cards attack
// their neighbors with the stored snapshots; every flip belongs to
// player, so the flip set only grows and the visited set bounds the walk
// to one visit per tile.
func (m *Match) runCascade(player Player, seeds []int) []Capture {
	if len(seeds) == 0 {
		return nil
	}
	var flips []Capture
	queue := make([]int, 0, BoardSize)
	visited := make(map[int]bool, BoardSize)
	for _, s := range seeds {
		if !visited[s] {
			visited[s] = true
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		attacker := m.Board.Tiles[t].Card
		if attacker == nil || attacker.Owner != player {
			continue
		}
		for _, side := range sides {
			n := Neighbor(t, side)
			if n < 0 {
				continue
			}
			defender := m.Board.Tiles[n].Card
			if defender == nil || defender.Owner == player {
				continue
			}
			if attacker.Effective()[side] > defender.Effective()[side.Opposite()] {
				defender.Owner = player
				flips = append(flips, Capture{Tile: n, Rule: CaptureCombo})
				m.log(log.NewComboFlipEvent(m.Round, m.ply, int(player), defender.Card.Name, n))
				if !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
	}
	return flips
}
