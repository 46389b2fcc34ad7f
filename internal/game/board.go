package game

import "math/rand"

// BoardSize is the tile count of the square grid.
const BoardSize = 9

// Tile is one cell of the 3x3 grid.
type Tile struct {
	// Element is the tile's tag, assigned at board construction and
	// immutable afterward. ElementNone means untagged.
	Element Element
	// Card occupies the tile, nil while empty.
	Card *CardInstance
}

// Board is the 3x3 grid in row-major order: 0 1 2 / 3 4 5 / 6 7 8.
type Board struct {
	Tiles [BoardSize]Tile
}

// NewBoard returns an empty, untagged board.
func NewBoard() *Board {
	return &Board{}
}

// NewBoardWithElements returns an empty board with the given tag layout.
func NewBoardWithElements(tags [BoardSize]Element) *Board {
	b := &Board{}
	for i, e := range tags {
		b.Tiles[i].Element = e
	}
	return b
}

// maxElementTiles caps how many tiles a random layout tags.
const maxElementTiles = 4

// newRandomElementBoard rolls a layout for an elemental round: each tile
// has a one-in-three chance of a uniformly chosen tag, up to the cap.
func newRandomElementBoard(rng *rand.Rand) *Board {
	b := &Board{}
	tagged := 0
	for i := range b.Tiles {
		if tagged == maxElementTiles {
			break
		}
		if rng.Intn(3) != 0 {
			continue
		}
		b.Tiles[i].Element = elements[rng.Intn(len(elements))]
		tagged++
	}
	return b
}

// Neighbor returns the index of the tile adjacent to idx on the given
// side, or -1 when idx sits on that edge of the grid.
func Neighbor(idx int, side Side) int {
	switch side {
	case SideUp:
		if idx >= 3 {
			return idx - 3
		}
	case SideLeft:
		if idx%3 != 0 {
			return idx - 1
		}
	case SideRight:
		if idx%3 != 2 {
			return idx + 1
		}
	case SideDown:
		if idx < 6 {
			return idx + 3
		}
	}
	return -1
}

// corners are the premium tiles for the move evaluator.
var corners = map[int]bool{0: true, 2: true, 6: true, 8: true}

// OccupiedCount returns how many tiles hold a card.
func (b *Board) OccupiedCount() int {
	n := 0
	for i := range b.Tiles {
		if b.Tiles[i].Card != nil {
			n++
		}
	}
	return n
}

// Full reports whether all nine tiles are occupied.
func (b *Board) Full() bool {
	return b.OccupiedCount() == BoardSize
}

// EmptyTiles returns the indices of unoccupied tiles in ascending order.
func (b *Board) EmptyTiles() []int {
	var empty []int
	for i := range b.Tiles {
		if b.Tiles[i].Card == nil {
			empty = append(empty, i)
		}
	}
	return empty
}

// OwnedCount returns how many occupied tiles belong to p.
func (b *Board) OwnedCount(p Player) int {
	n := 0
	for i := range b.Tiles {
		if c := b.Tiles[i].Card; c != nil && c.Owner == p {
			n++
		}
	}
	return n
}
