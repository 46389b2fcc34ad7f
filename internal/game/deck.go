package game

import (
	"fmt"
	"math/rand"
)

// HandSize is the number of cards dealt to each player per round.
const HandSize = 5

// defaultDeckAttempts bounds the budgeted-draw retry loop.
const defaultDeckAttempts = 20

// DeckGenerator draws fresh hands from a catalog.
type DeckGenerator struct {
	Catalog *Catalog
	Rng     *rand.Rand

	// LevelBudget caps the summed level of a generated hand. 0 means
	// unconstrained.
	LevelBudget int

	// MaxAttempts bounds the budgeted retry loop; 0 uses the default.
	MaxAttempts int
}

// Generate draws HandSize unique cards, never picking an excluded ID.
//
// With a level budget it retries fresh draws until one fits, up to the
// attempt cap, then falls back to a final unconstrained draw. The
// fallback hand is returned together with a *DeckExhaustedError so the
// caller can report the budget miss; the hand itself is valid to play.
func (g *DeckGenerator) Generate(exclude map[int]bool) ([]*Card, error) {
	pool := g.pool(exclude)
	if len(pool) < HandSize {
		return nil, fmt.Errorf("generate deck: pool has %d cards, need %d", len(pool), HandSize)
	}

	if g.LevelBudget <= 0 {
		return g.draw(pool), nil
	}

	attempts := g.MaxAttempts
	if attempts <= 0 {
		attempts = defaultDeckAttempts
	}
	for i := 0; i < attempts; i++ {
		hand := g.draw(pool)
		if levelSum(hand) <= g.LevelBudget {
			return hand, nil
		}
	}
	return g.draw(pool), &DeckExhaustedError{Budget: g.LevelBudget, Attempts: attempts}
}

// pool returns the drawable definitions in catalog order.
func (g *DeckGenerator) pool(exclude map[int]bool) []*Card {
	var pool []*Card
	for _, c := range g.Catalog.Cards() {
		if exclude[c.ID] {
			continue
		}
		pool = append(pool, c)
	}
	return pool
}

// draw picks HandSize distinct cards by partial Fisher-Yates over a copy
// of the pool.
func (g *DeckGenerator) draw(pool []*Card) []*Card {
	deck := make([]*Card, len(pool))
	copy(deck, pool)
	hand := make([]*Card, HandSize)
	for i := 0; i < HandSize; i++ {
		j := i + g.Rng.Intn(len(deck)-i)
		deck[i], deck[j] = deck[j], deck[i]
		hand[i] = deck[i]
	}
	return hand
}

func levelSum(cards []*Card) int {
	sum := 0
	for _, c := range cards {
		sum += c.Level
	}
	return sum
}
