package game

import "fmt"

// Rules is the per-match rule configuration. The engine treats it as
// read-only once the match is created.
type Rules struct {
	// Elemental tags random board tiles and shifts placed stats by one.
	Elemental bool
	// Same enables the equal-values capture rule.
	Same bool
	// Plus enables the equal-sums capture rule.
	Plus bool

	// Difficulty selects the CPU evaluation strategy.
	Difficulty Difficulty

	// PvP disqualifies the first player's card IDs from the second
	// player's draw pool, so no card appears in both hands.
	PvP bool

	// StatTiebreak resolves drawn rounds by summed base stats of each
	// player's owned cards, then a coin flip. Off by default: a drawn
	// round stays a draw.
	StatTiebreak bool

	// LevelBudget caps the summed level of each generated hand.
	// 0 disables the budget.
	LevelBudget int
}

// DefaultRules enables the three special rules at mid CPU strength, the
// standard full variant.
func DefaultRules() Rules {
	return Rules{
		Elemental:  true,
		Same:       true,
		Plus:       true,
		Difficulty: DifficultyMid,
	}
}

// Validate rejects configurations no match can run with.
func (r Rules) Validate() error {
	if r.Difficulty < DifficultyLow || r.Difficulty > DifficultyExpert {
		return fmt.Errorf("rules: invalid difficulty %d", int(r.Difficulty))
	}
	if r.LevelBudget < 0 {
		return fmt.Errorf("rules: negative level budget %d", r.LevelBudget)
	}
	return nil
}

// String renders the toggles the way match logs report them.
func (r Rules) String() string {
	set := ""
	appendRule := func(on bool, name string) {
		if !on {
			return
		}
		if set != "" {
			set += "+"
		}
		set += name
	}
	appendRule(r.Elemental, "elemental")
	appendRule(r.Same, "same")
	appendRule(r.Plus, "plus")
	if set == "" {
		set = "basic"
	}
	if r.PvP {
		set += " pvp"
	} else {
		set += fmt.Sprintf(" cpu=%s", r.Difficulty)
	}
	return set
}
