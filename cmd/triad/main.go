package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jyamaiken/triple-triad-app/internal/game"
	"github.com/jyamaiken/triple-triad-app/internal/log"
	"github.com/jyamaiken/triple-triad-app/internal/random"
	"github.com/jyamaiken/triple-triad-app/internal/view"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch cmd := os.Args[1]; cmd {
	case "play":
		runPlay(os.Args[2:])
	case "sim":
		runSim(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  triad play [--pvp] [--difficulty D] [--seed N] [flags]")
	fmt.Println("  triad sim  [--series N] [--difficulty-a D] [--difficulty-b D] [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play a best-of-three series against the CPU (or hotseat with --pvp)")
	fmt.Println("  sim     Run CPU-vs-CPU series and report the outcomes")
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// ruleFlags registers the capture-rule toggles shared by both commands.
func ruleFlags(fs *flag.FlagSet) (same, plus, elemental *bool, cards *string, budget *int) {
	same = fs.Bool("same", true, "enable the Same capture rule")
	plus = fs.Bool("plus", true, "enable the Plus capture rule")
	elemental = fs.Bool("elemental", true, "enable elemental board tiles")
	cards = fs.String("cards", "", "path to a card catalog YAML (default: built-in set)")
	budget = fs.Int("budget", 0, "deck level budget per hand (0 = unconstrained)")
	return
}

func loadCatalog(path string) *game.Catalog {
	if path == "" {
		return game.DefaultCatalog()
	}
	c, err := game.LoadCatalog(path)
	if err != nil {
		die(err)
	}
	return c
}

func runPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	same, plus, elemental, cards, budget := ruleFlags(fs)
	difficulty := fs.String("difficulty", "mid", "CPU difficulty: low, mid, high, expert")
	seed := fs.Int64("seed", 0, "seed for a reproducible series (0 picks one)")
	pvp := fs.Bool("pvp", false, "two players at one terminal instead of vs CPU")
	tiebreak := fs.Bool("tiebreak", false, "break drawn rounds on total card stats")
	delay := fs.Duration("delay", 600*time.Millisecond, "pause before each CPU move")
	fs.Parse(args)

	diff, err := game.ParseDifficulty(*difficulty)
	if err != nil {
		die(err)
	}

	rules := game.Rules{
		Elemental:    *elemental,
		Same:         *same,
		Plus:         *plus,
		Difficulty:   diff,
		PvP:          *pvp,
		StatTiebreak: *tiebreak,
		LevelBudget:  *budget,
	}

	m, err := game.NewMatch(game.MatchConfig{
		Rules:   rules,
		Seed:    *seed,
		Catalog: loadCatalog(*cards),
	})
	if err != nil {
		die(err)
	}

	humans := map[game.Player]bool{game.PlayerA: true, game.PlayerB: *pvp}
	fmt.Printf("Match %s  (seed %d, rules %s)\n", m.ID, m.Seed(), rules)
	if err := playSeries(m, humans, *delay); err != nil {
		die(err)
	}
}

// playSeries runs the phase loop until the series is decided, printing
// the event stream and board between plies.
func playSeries(m *game.Match, humans map[game.Player]bool, delay time.Duration) error {
	in := bufio.NewScanner(os.Stdin)
	drained := 0
	flush := func() {
		events := m.Logger().Events()
		for _, e := range events[drained:] {
			fmt.Println(log.FormatEvent(e))
		}
		drained = len(events)
	}

	for m.Phase != game.PhaseSeriesOver {
		switch m.Phase {
		case game.PhaseDeckSelect:
			if err := m.DealHands(); err != nil {
				return err
			}
		case game.PhaseCoinToss:
			if _, err := m.TossCoin(); err != nil {
				return err
			}
		case game.PhasePlaying:
			flush()
			fmt.Println()
			fmt.Print(view.RenderBoard(m.Board))
			fmt.Println(view.RenderScore(m))
			if humans[m.Turn] {
				if err := humanMove(m, in); err != nil {
					return err
				}
			} else {
				time.Sleep(delay)
				mv, err := m.CPUMove()
				if err != nil {
					return err
				}
				if _, err := m.PlaceCard(m.Turn, mv.Hand, mv.Tile); err != nil {
					return err
				}
			}
		case game.PhaseRoundEnd:
			flush()
			fmt.Println()
			fmt.Print(view.RenderBoard(m.Board))
			fmt.Print("\n[enter] for the next round ")
			in.Scan()
			if err := m.NextRound(); err != nil {
				return err
			}
		}
	}

	flush()
	fmt.Println()
	fmt.Print(view.RenderBoard(m.Board))
	fmt.Println(view.RenderScore(m))
	return nil
}

// humanMove prompts until the player enters a legal placement.
func humanMove(m *game.Match, in *bufio.Scanner) error {
	player := m.Turn
	fmt.Printf("\nPlayer %s to move. Hand:\n", player)
	fmt.Print(view.RenderHand(m.Hands[player]))
	for {
		fmt.Print("hand tile> ")
		if !in.Scan() {
			return fmt.Errorf("input closed")
		}
		fields := strings.Fields(in.Text())
		if len(fields) != 2 {
			fmt.Println("enter two numbers: hand index then tile index (e.g. \"0 4\")")
			continue
		}
		hand, errH := strconv.Atoi(fields[0])
		tile, errT := strconv.Atoi(fields[1])
		if errH != nil || errT != nil {
			fmt.Println("enter two numbers: hand index then tile index (e.g. \"0 4\")")
			continue
		}
		if _, err := m.PlaceCard(player, hand, tile); err != nil {
			fmt.Printf("rejected: %v\n", err)
			continue
		}
		return nil
	}
}

func runSim(args []string) {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	same, plus, elemental, cards, budget := ruleFlags(fs)
	series := fs.Int("series", 1, "number of series to play")
	diffA := fs.String("difficulty-a", "high", "player A difficulty")
	diffB := fs.String("difficulty-b", "high", "player B difficulty")
	seed := fs.Int64("seed", 0, "base seed (0 picks one); series i plays with seed+i")
	verbose := fs.Bool("v", false, "stream every game event")
	fs.Parse(args)

	zlog, err := zap.NewDevelopment()
	if err != nil {
		die(err)
	}
	defer zlog.Sync()

	rules := game.Rules{
		Elemental:   *elemental,
		Same:        *same,
		Plus:        *plus,
		Difficulty:  game.DifficultyMid,
		LevelBudget: *budget,
	}
	perSide, err := sideRules(rules, *diffA, *diffB)
	if err != nil {
		die(err)
	}

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed, err = random.NewSeed()
		if err != nil {
			die(err)
		}
	}
	catalog := loadCatalog(*cards)

	// The driver picks moves itself so each side can run its own
	// difficulty; the match evaluator is bypassed.
	evalRng := rand.New(rand.NewSource(baseSeed))
	eval := game.NewEvaluator(evalRng)

	var seriesWins [2]int
	drawn := 0
	for i := 0; i < *series; i++ {
		var logger log.EventLogger = log.NewMemoryLogger()
		if *verbose {
			logger = log.NewTextLogger(os.Stdout)
		}
		m, err := game.NewMatch(game.MatchConfig{
			Rules:   rules,
			Seed:    baseSeed + int64(i),
			Catalog: catalog,
			Logger:  logger,
		})
		if err != nil {
			die(err)
		}
		if err := simSeries(m, eval, perSide); err != nil {
			die(err)
		}

		winner := m.SeriesWinner()
		if winner == game.PlayerNone {
			drawn++
		} else {
			seriesWins[winner]++
		}
		zlog.Info("series finished",
			zap.Int("series", i+1),
			zap.Int64("seed", m.Seed()),
			zap.String("winner", winnerName(winner)),
			zap.Int("rounds", len(m.Results)))
	}

	zlog.Info("simulation done",
		zap.Int("series", *series),
		zap.String("difficulty_a", *diffA),
		zap.String("difficulty_b", *diffB),
		zap.Int("wins_a", seriesWins[game.PlayerA]),
		zap.Int("wins_b", seriesWins[game.PlayerB]),
		zap.Int("drawn", drawn))
}

func sideRules(base game.Rules, diffA, diffB string) ([2]game.Rules, error) {
	var out [2]game.Rules
	dA, err := game.ParseDifficulty(diffA)
	if err != nil {
		return out, err
	}
	dB, err := game.ParseDifficulty(diffB)
	if err != nil {
		return out, err
	}
	out[game.PlayerA], out[game.PlayerB] = base, base
	out[game.PlayerA].Difficulty = dA
	out[game.PlayerB].Difficulty = dB
	return out, nil
}

func simSeries(m *game.Match, eval *game.Evaluator, perSide [2]game.Rules) error {
	for m.Phase != game.PhaseSeriesOver {
		switch m.Phase {
		case game.PhaseDeckSelect:
			if err := m.DealHands(); err != nil {
				return err
			}
		case game.PhaseCoinToss:
			if _, err := m.TossCoin(); err != nil {
				return err
			}
		case game.PhasePlaying:
			p := m.Turn
			mv, err := eval.SelectMove(m.Board, m.Hands[p], perSide[p])
			if err != nil {
				return err
			}
			if _, err := m.PlaceCard(p, mv.Hand, mv.Tile); err != nil {
				return err
			}
		case game.PhaseRoundEnd:
			if err := m.NextRound(); err != nil {
				return err
			}
		}
	}
	return nil
}

func winnerName(p game.Player) string {
	if p == game.PlayerNone {
		return "drawn"
	}
	return p.String()
}
