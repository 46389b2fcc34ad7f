package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/jyamaiken/triple-triad-app/internal/log"
	"github.com/jyamaiken/triple-triad-app/internal/random"
)

// MaxRounds caps a series; reaching winsNeeded first ends it early.
const (
	MaxRounds  = 3
	winsNeeded = 2
)

// RoundResult records one finished round.
type RoundResult struct {
	Winner Player // PlayerNone for a draw
	Scores [2]int
}

// MatchConfig configures a new match.
type MatchConfig struct {
	Rules Rules

	// Seed drives every random decision: deals, board tags, coin tosses,
	// CPU tie-breaks. 0 derives a fresh seed from the OS entropy source.
	Seed int64

	// Catalog supplies card definitions; nil uses the embedded default.
	Catalog *Catalog

	// Logger receives the event stream; nil uses an in-memory logger.
	Logger log.EventLogger

	// DeckAttempts overrides the budgeted-draw retry cap; 0 uses the
	// generator default.
	DeckAttempts int
}

// Match owns one best-of-three series: the board, both hands, turn
// order, and the running results. Methods are synchronous and never
// block; there is exactly one writer.
type Match struct {
	ID    uuid.UUID
	Rules Rules

	Board *Board
	Hands [2][]*CardInstance
	Phase Phase
	Turn  Player
	Round int // 1-based once the first hands are dealt

	Results []RoundResult

	ply     int
	seed    int64
	rng     *rand.Rand
	logger  log.EventLogger
	catalog *Catalog
	gen     *DeckGenerator
	eval    *Evaluator
}

// NewMatch validates cfg and opens a series in the deck-select phase.
func NewMatch(cfg MatchConfig) (*Match, error) {
	if err := cfg.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("new match: %w", err)
		}
		seed = s
	}
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	rng := rand.New(rand.NewSource(seed))
	m := &Match{
		ID:      uuid.New(),
		Rules:   cfg.Rules,
		Board:   NewBoard(),
		Phase:   PhaseDeckSelect,
		Turn:    PlayerNone,
		seed:    seed,
		rng:     rng,
		logger:  logger,
		catalog: catalog,
		gen: &DeckGenerator{
			Catalog:     catalog,
			Rng:         rng,
			LevelBudget: cfg.Rules.LevelBudget,
			MaxAttempts: cfg.DeckAttempts,
		},
	}
	m.eval = NewEvaluator(rng)
	m.log(log.NewMatchStartEvent(m.ID.String(), seed, cfg.Rules.String()))
	return m, nil
}

// Seed returns the effective seed, for reproducing the match.
func (m *Match) Seed() int64 {
	return m.seed
}

// Logger exposes the event stream the match writes to.
func (m *Match) Logger() log.EventLogger {
	return m.logger
}

func (m *Match) log(ev log.GameEvent) {
	m.logger.Log(ev)
}

// DealHands deals five fresh cards to each player and moves to the coin
// toss. In PvP mode the second hand's pool excludes the first hand's
// card IDs. A budget miss falls back to an unconstrained draw and is
// reported on the event stream only; the deal still succeeds.
func (m *Match) DealHands() error {
	if m.Phase != PhaseDeckSelect {
		return illegalMove(PlayerNone, ReasonWrongPhase)
	}

	cardsA, exhaustedA, err := m.deal(nil)
	if err != nil {
		return err
	}
	var exclude map[int]bool
	if m.Rules.PvP {
		exclude = make(map[int]bool, HandSize)
		for _, c := range cardsA {
			exclude[c.ID] = true
		}
	}
	cardsB, exhaustedB, err := m.deal(exclude)
	if err != nil {
		return err
	}

	m.Round++
	m.ply = 0
	m.Hands[PlayerA] = toInstances(cardsA, PlayerA)
	m.Hands[PlayerB] = toInstances(cardsB, PlayerB)
	if m.Rules.Elemental {
		m.Board = newRandomElementBoard(m.rng)
	} else {
		m.Board = NewBoard()
	}
	m.Phase = PhaseCoinToss

	if exhaustedA != nil {
		m.log(log.NewDeckFallbackEvent(m.Round, int(PlayerA), exhaustedA.Budget, exhaustedA.Attempts))
	}
	if exhaustedB != nil {
		m.log(log.NewDeckFallbackEvent(m.Round, int(PlayerB), exhaustedB.Budget, exhaustedB.Attempts))
	}
	m.log(log.NewHandsDealtEvent(m.Round, int(PlayerA), handNames(m.Hands[PlayerA])))
	m.log(log.NewHandsDealtEvent(m.Round, int(PlayerB), handNames(m.Hands[PlayerB])))
	return nil
}

// deal draws one hand, separating the recoverable budget miss from hard
// failures.
func (m *Match) deal(exclude map[int]bool) ([]*Card, *DeckExhaustedError, error) {
	cards, err := m.gen.Generate(exclude)
	if err != nil {
		var exhausted *DeckExhaustedError
		if errors.As(err, &exhausted) {
			return cards, exhausted, nil
		}
		return nil, nil, fmt.Errorf("deal hands: %w", err)
	}
	return cards, nil, nil
}

func toInstances(cards []*Card, owner Player) []*CardInstance {
	hand := make([]*CardInstance, len(cards))
	for i, c := range cards {
		hand[i] = newCardInstance(c, owner)
	}
	return hand
}

func handNames(hand []*CardInstance) string {
	names := make([]string, len(hand))
	for i, ci := range hand {
		names[i] = ci.Card.Name
	}
	return strings.Join(names, ", ")
}

// TossCoin picks the round's first mover uniformly and starts play.
func (m *Match) TossCoin() (Player, error) {
	if m.Phase != PhaseCoinToss {
		return PlayerNone, illegalMove(PlayerNone, ReasonWrongPhase)
	}
	first := Player(m.rng.Intn(2))
	m.Turn = first
	m.Phase = PhasePlaying
	m.log(log.NewCoinTossEvent(m.Round, int(first)))
	m.log(log.NewTurnStartEvent(m.Round, m.ply+1, int(first)))
	return first, nil
}

// NextRound returns to deck selection after a finished round. The board
// and hands stay readable until the next deal replaces them.
func (m *Match) NextRound() error {
	if m.Phase != PhaseRoundEnd {
		return illegalMove(PlayerNone, ReasonWrongPhase)
	}
	m.Phase = PhaseDeckSelect
	return nil
}

// CPUMove picks a move for the side on turn at the configured
// difficulty. The caller feeds the result back through PlaceCard.
func (m *Match) CPUMove() (Move, error) {
	if m.Phase != PhasePlaying {
		return Move{}, illegalMove(m.Turn, ReasonWrongPhase)
	}
	return m.eval.SelectMove(m.Board, m.Hands[m.Turn], m.Rules)
}

// Scores returns hand size plus owned tiles per player. The ten dealt
// cards are conserved, so the two scores always sum to ten.
func (m *Match) Scores() [2]int {
	var s [2]int
	for p := PlayerA; p <= PlayerB; p++ {
		s[p] = len(m.Hands[p]) + m.Board.OwnedCount(p)
	}
	return s
}

// Wins counts round wins per player; drawn rounds count for neither.
func (m *Match) Wins() [2]int {
	var w [2]int
	for _, r := range m.Results {
		if r.Winner != PlayerNone {
			w[r.Winner]++
		}
	}
	return w
}

// SeriesWinner returns the champion once the series is over, and
// PlayerNone for a drawn or unfinished series.
func (m *Match) SeriesWinner() Player {
	if m.Phase != PhaseSeriesOver {
		return PlayerNone
	}
	w := m.Wins()
	switch {
	case w[PlayerA] > w[PlayerB]:
		return PlayerA
	case w[PlayerB] > w[PlayerA]:
		return PlayerB
	default:
		return PlayerNone
	}
}

// finishRound scores a full board, appends the result, and either parks
// the match at RoundEnd or closes the series.
func (m *Match) finishRound() {
	scores := m.Scores()
	winner := PlayerNone
	tiebreak := false
	switch {
	case scores[PlayerA] > scores[PlayerB]:
		winner = PlayerA
	case scores[PlayerB] > scores[PlayerA]:
		winner = PlayerB
	case m.Rules.StatTiebreak:
		winner = m.breakTie()
		tiebreak = true
	}
	m.Results = append(m.Results, RoundResult{Winner: winner, Scores: scores})
	m.log(log.NewRoundEndEvent(m.Round, int(winner), scores[PlayerA], scores[PlayerB], tiebreak))

	w := m.Wins()
	if w[PlayerA] == winsNeeded || w[PlayerB] == winsNeeded || len(m.Results) == MaxRounds {
		m.Phase = PhaseSeriesOver
		m.log(log.NewSeriesEndEvent(int(m.SeriesWinner()), w[PlayerA], w[PlayerB], len(m.Results)))
		return
	}
	m.Phase = PhaseRoundEnd
}

// breakTie resolves a drawn round by summed base stats of each side's
// owned cards, with a coin flip if still even.
func (m *Match) breakTie() Player {
	var sums [2]int
	for p := PlayerA; p <= PlayerB; p++ {
		for _, ci := range m.Hands[p] {
			sums[p] += ci.Card.Stats.Sum()
		}
	}
	for i := range m.Board.Tiles {
		if ci := m.Board.Tiles[i].Card; ci != nil {
			sums[ci.Owner] += ci.Card.Stats.Sum()
		}
	}
	switch {
	case sums[PlayerA] > sums[PlayerB]:
		return PlayerA
	case sums[PlayerB] > sums[PlayerA]:
		return PlayerB
	default:
		return Player(m.rng.Intn(2))
	}
}
