package game

import (
	"fmt"
	"math/rand"
	"sort"
)

// Heuristic weights for simulated placements.
const (
	captureScore = 20.0
	sameBonus    = 50.0
	plusBonus    = 60.0
	cornerBonus  = 15.0
	expertScale  = 1.2
)

// defenseWeight scales the average effective stat of a candidate; higher
// difficulties lean harder on holding strong values.
func defenseWeight(d Difficulty) float64 {
	switch d {
	case DifficultyHigh:
		return 2.0
	case DifficultyExpert:
		return 3.0
	default:
		return 1.0
	}
}

// Evaluator picks CPU moves. A match-owned evaluator shares the match
// RNG; standalone callers pass any seeded source.
type Evaluator struct {
	rng *rand.Rand
}

// NewEvaluator returns an evaluator drawing tie-breaks from rng.
func NewEvaluator(rng *rand.Rand) *Evaluator {
	return &Evaluator{rng: rng}
}

// SelectMove returns the strongest (tile, hand index) pair for the owner
// of hand under the configured difficulty. The board is never mutated.
//
// Low difficulty plays uniformly at random. The other difficulties score
// every empty-tile/hand-card candidate by simulating the capture rules
// (cascade excluded), then pick uniformly among the top scorers.
func (e *Evaluator) SelectMove(b *Board, hand []*CardInstance, r Rules) (Move, error) {
	if len(hand) == 0 {
		return Move{}, ErrEmptyHand
	}
	empty := b.EmptyTiles()
	if len(empty) == 0 {
		return Move{}, fmt.Errorf("select move: board is full")
	}

	if r.Difficulty == DifficultyLow {
		return Move{
			Tile: empty[e.rng.Intn(len(empty))],
			Hand: e.rng.Intn(len(hand)),
		}, nil
	}

	player := hand[0].Owner
	type candidate struct {
		move  Move
		score float64
	}
	cands := make([]candidate, 0, len(empty)*len(hand))
	for _, tile := range empty {
		for hi, ci := range hand {
			out := analyzePlacement(b, r, player, ci.Card, tile)
			score := captureScore * float64(len(out.captures))
			if out.same {
				score += sameBonus
			}
			if out.plus {
				score += plusBonus
			}
			if corners[tile] {
				score += cornerBonus
			}
			score += defenseWeight(r.Difficulty) * float64(out.effective.Sum()) / 4.0
			if r.Difficulty == DifficultyExpert {
				score *= expertScale
			}
			cands = append(cands, candidate{move: Move{Tile: tile, Hand: hi}, score: score})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})
	top := 1
	for top < len(cands) && cands[top].score == cands[0].score {
		top++
	}
	return cands[e.rng.Intn(top)].move, nil
}
