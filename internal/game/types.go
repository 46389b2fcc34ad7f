package game

import "fmt"

// --- Enums ---

// Player identifies one side of a match.
type Player int

const (
	PlayerA Player = 0
	PlayerB Player = 1

	// PlayerNone marks the absence of a player: an unowned card slot or a
	// drawn round/series result.
	PlayerNone Player = -1
)

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return "none"
	}
}

// Opponent returns the other side. Only meaningful for PlayerA and PlayerB.
func (p Player) Opponent() Player {
	if p == PlayerA {
		return PlayerB
	}
	return PlayerA
}

// Side indexes a card's four directional values, in catalog order.
type Side int

const (
	SideUp Side = iota
	SideLeft
	SideRight
	SideDown
)

// sides is the fixed iteration order for neighbor scans, matching the
// catalog stat order.
var sides = [4]Side{SideUp, SideLeft, SideRight, SideDown}

func (s Side) String() string {
	switch s {
	case SideUp:
		return "up"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideDown:
		return "down"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// Opposite returns the side that faces s on an adjacent card: a card's Up
// value contests the upper neighbor's Down value, and so on.
func (s Side) Opposite() Side {
	switch s {
	case SideUp:
		return SideDown
	case SideDown:
		return SideUp
	case SideLeft:
		return SideRight
	default:
		return SideLeft
	}
}

// Stats holds four directional values indexed by Side.
type Stats [4]int

func (s Stats) String() string {
	return fmt.Sprintf("%d/%d/%d/%d", s[SideUp], s[SideLeft], s[SideRight], s[SideDown])
}

// Sum returns the total of all four values.
func (s Stats) Sum() int {
	return s[SideUp] + s[SideLeft] + s[SideRight] + s[SideDown]
}

// Element is one of the eight board/card attributes, or ElementNone.
type Element int

const (
	ElementNone Element = iota
	ElementFire
	ElementIce
	ElementThunder
	ElementEarth
	ElementPoison
	ElementWind
	ElementWater
	ElementHoly
)

// elements lists the real attributes, excluding ElementNone.
var elements = [8]Element{
	ElementFire, ElementIce, ElementThunder, ElementEarth,
	ElementPoison, ElementWind, ElementWater, ElementHoly,
}

func (e Element) String() string {
	switch e {
	case ElementNone:
		return "none"
	case ElementFire:
		return "fire"
	case ElementIce:
		return "ice"
	case ElementThunder:
		return "thunder"
	case ElementEarth:
		return "earth"
	case ElementPoison:
		return "poison"
	case ElementWind:
		return "wind"
	case ElementWater:
		return "water"
	case ElementHoly:
		return "holy"
	default:
		return fmt.Sprintf("element(%d)", int(e))
	}
}

// ParseElement maps a catalog token to an Element. The empty string and
// "none" both mean no attribute.
func ParseElement(s string) (Element, error) {
	switch s {
	case "", "none":
		return ElementNone, nil
	case "fire":
		return ElementFire, nil
	case "ice":
		return ElementIce, nil
	case "thunder":
		return ElementThunder, nil
	case "earth":
		return ElementEarth, nil
	case "poison":
		return ElementPoison, nil
	case "wind":
		return ElementWind, nil
	case "water":
		return ElementWater, nil
	case "holy":
		return ElementHoly, nil
	default:
		return ElementNone, fmt.Errorf("unknown element %q", s)
	}
}

// Phase is a state of the round/series machine.
type Phase int

const (
	// PhaseDeckSelect awaits the round's hand deal.
	PhaseDeckSelect Phase = iota
	// PhaseCoinToss awaits the first-player toss.
	PhaseCoinToss
	// PhasePlaying accepts placements until the board fills.
	PhasePlaying
	// PhaseRoundEnd holds a finished round with series play remaining.
	PhaseRoundEnd
	// PhaseSeriesOver is terminal.
	PhaseSeriesOver
)

func (p Phase) String() string {
	switch p {
	case PhaseDeckSelect:
		return "DeckSelect"
	case PhaseCoinToss:
		return "CoinToss"
	case PhasePlaying:
		return "Playing"
	case PhaseRoundEnd:
		return "RoundEnd"
	case PhaseSeriesOver:
		return "SeriesOver"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Difficulty selects the CPU move-evaluation strategy.
type Difficulty int

const (
	DifficultyLow Difficulty = iota
	DifficultyMid
	DifficultyHigh
	DifficultyExpert
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyLow:
		return "low"
	case DifficultyMid:
		return "mid"
	case DifficultyHigh:
		return "high"
	case DifficultyExpert:
		return "expert"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty maps a config token to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "low":
		return DifficultyLow, nil
	case "mid":
		return DifficultyMid, nil
	case "high":
		return DifficultyHigh, nil
	case "expert":
		return DifficultyExpert, nil
	default:
		return DifficultyLow, fmt.Errorf("unknown difficulty %q", s)
	}
}

// --- Cards ---

// Card is an immutable catalog definition. Mutable per-round state
// (ownership, the effective-stat snapshot) lives on CardInstance.
type Card struct {
	ID      int
	Name    string
	Level   int // 1-10, the deck-budget cost unit
	Stats   Stats
	Element Element
	Image   string // opaque art path, carried for callers that render
}

// CardInstance is a card dealt into a round. Instances are created fresh
// each round and discarded when it ends.
type CardInstance struct {
	Card  *Card
	Owner Player
	Tile  int // board index once placed, -1 while in hand

	// effective is the stat snapshot taken at placement. It is written
	// exactly once and never recomputed, even across ownership flips.
	effective Stats
	placed    bool
}

func newCardInstance(c *Card, owner Player) *CardInstance {
	return &CardInstance{Card: c, Owner: owner, Tile: -1}
}

// Placed reports whether the instance is on the board.
func (ci *CardInstance) Placed() bool {
	return ci.placed
}

// Effective returns the placement stat snapshot. Before placement it
// returns the base stats, since no elemental adjustment has applied yet.
func (ci *CardInstance) Effective() Stats {
	if !ci.placed {
		return ci.Card.Stats
	}
	return ci.effective
}

// place pins the card to a tile and freezes its effective stats.
func (ci *CardInstance) place(tile int, eff Stats) {
	ci.Tile = tile
	ci.effective = eff
	ci.placed = true
}
