// Package view projects match state into JSON-ready snapshots and
// terminal renderings for the presentation layers. The engine itself
// never depends on it.
package view

import (
	"github.com/jyamaiken/triple-triad-app/internal/game"
	"github.com/jyamaiken/triple-triad-app/internal/log"
)

// CardView is one visible card. Stats are the effective snapshot for
// placed cards and the base stats for cards still in hand.
type CardView struct {
	Name    string `json:"name"`
	Level   int    `json:"level"`
	Element string `json:"element,omitempty"`
	Stats   [4]int `json:"stats"` // up, left, right, down
	Owner   string `json:"owner"`
}

// TileView is one board cell.
type TileView struct {
	Index   int       `json:"index"`
	Element string    `json:"element,omitempty"`
	Card    *CardView `json:"card,omitempty"`
}

// HandView shows a hand. A hidden hand carries only the count.
type HandView struct {
	Count int        `json:"count"`
	Cards []CardView `json:"cards,omitempty"`
}

// ResultView is one finished round.
type ResultView struct {
	Winner string `json:"winner"` // "A", "B", or "draw"
	Scores [2]int `json:"scores"`
}

// StateView is a full snapshot from one player's perspective.
type StateView struct {
	MatchID      string       `json:"match_id"`
	Phase        string       `json:"phase"`
	Round        int          `json:"round"`
	Turn         string       `json:"turn,omitempty"`
	YourSide     string       `json:"your_side"`
	IsYourTurn   bool         `json:"is_your_turn"`
	Board        [9]TileView  `json:"board"`
	You          HandView     `json:"you"`
	Opponent     HandView     `json:"opponent"`
	Scores       [2]int       `json:"scores"`
	Wins         [2]int       `json:"wins"`
	Results      []ResultView `json:"results,omitempty"`
	SeriesWinner string       `json:"series_winner,omitempty"`
}

// EventView mirrors a log event for JSON transport.
type EventView struct {
	Seq     int    `json:"seq"`
	Round   int    `json:"round"`
	Ply     int    `json:"ply"`
	Player  string `json:"player,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Tile    int    `json:"tile"`
	Details string `json:"details"`
}

// winnerLabel renders a result winner, with "draw" for PlayerNone.
func winnerLabel(p game.Player) string {
	if p == game.PlayerNone {
		return "draw"
	}
	return p.String()
}

// BuildStateView creates a snapshot from the given player's perspective.
// The opponent's hand contents are revealed only once the series is
// over; until then only the count shows. perspective must be PlayerA or
// PlayerB.
func BuildStateView(m *game.Match, perspective game.Player) *StateView {
	sv := &StateView{
		MatchID:  m.ID.String(),
		Phase:    m.Phase.String(),
		Round:    m.Round,
		YourSide: perspective.String(),
		Scores:   m.Scores(),
		Wins:     m.Wins(),
	}
	if m.Phase == game.PhasePlaying {
		sv.Turn = m.Turn.String()
		sv.IsYourTurn = m.Turn == perspective
	}

	for i := range m.Board.Tiles {
		tv := TileView{Index: i}
		if tag := m.Board.Tiles[i].Element; tag != game.ElementNone {
			tv.Element = tag.String()
		}
		if ci := m.Board.Tiles[i].Card; ci != nil {
			cv := buildCardView(ci)
			tv.Card = &cv
		}
		sv.Board[i] = tv
	}

	reveal := m.Phase == game.PhaseSeriesOver
	sv.You = buildHandView(m.Hands[perspective], true)
	sv.Opponent = buildHandView(m.Hands[perspective.Opponent()], reveal)

	for _, r := range m.Results {
		sv.Results = append(sv.Results, ResultView{Winner: winnerLabel(r.Winner), Scores: r.Scores})
	}
	if m.Phase == game.PhaseSeriesOver {
		sv.SeriesWinner = winnerLabel(m.SeriesWinner())
	}
	return sv
}

func buildCardView(ci *game.CardInstance) CardView {
	cv := CardView{
		Name:  ci.Card.Name,
		Level: ci.Card.Level,
		Stats: [4]int(ci.Effective()),
		Owner: ci.Owner.String(),
	}
	if ci.Card.Element != game.ElementNone {
		cv.Element = ci.Card.Element.String()
	}
	return cv
}

func buildHandView(hand []*game.CardInstance, visible bool) HandView {
	hv := HandView{Count: len(hand)}
	if !visible {
		return hv
	}
	for _, ci := range hand {
		hv.Cards = append(hv.Cards, buildCardView(ci))
	}
	return hv
}

// BuildEventView converts one logged event for transport.
func BuildEventView(e log.GameEvent) EventView {
	ev := EventView{
		Seq:     e.Seq,
		Round:   e.Round,
		Ply:     e.Ply,
		Type:    e.Type.String(),
		Card:    e.Card,
		Tile:    e.Tile,
		Details: e.Details,
	}
	if e.Player >= 0 {
		ev.Player = game.Player(e.Player).String()
	}
	return ev
}

// BuildEventViews converts a batch of logged events.
func BuildEventViews(events []log.GameEvent) []EventView {
	views := make([]EventView, len(events))
	for i, e := range events {
		views[i] = BuildEventView(e)
	}
	return views
}
