package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(l.MemoryLogger.LastEvent()))
}

// --- Formatting ---

// playerName returns "Player A" or "Player B" for display.
func playerName(p int) string {
	switch p {
	case 0:
		return "Player A"
	case 1:
		return "Player B"
	default:
		return "nobody"
	}
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	name := e.Type.String()
	// Pad the type name to 15 chars for alignment
	for len(name) < 15 {
		name += " "
	}
	if e.Round == 0 {
		return fmt.Sprintf("      %s| %s", name, e.Details)
	}
	return fmt.Sprintf("R%d.%-2d %s| %s", e.Round, e.Ply, name, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewMatchStartEvent(id string, seed int64, rules string) GameEvent {
	return GameEvent{
		Player:  -1,
		Tile:    -1,
		Type:    EventMatchStart,
		Details: fmt.Sprintf("match %s (seed %d, rules: %s)", id, seed, rules),
	}
}

func NewHandsDealtEvent(round, player int, cards string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Tile:    -1,
		Type:    EventHandsDealt,
		Details: fmt.Sprintf("%s draws: %s", playerName(player), cards),
	}
}

func NewDeckFallbackEvent(round, player, budget, attempts int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Tile:    -1,
		Type:    EventDeckFallback,
		Details: fmt.Sprintf("%s hand missed level budget %d after %d attempts, drawn unconstrained", playerName(player), budget, attempts),
	}
}

func NewCoinTossEvent(round, first int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  first,
		Tile:    -1,
		Type:    EventCoinToss,
		Details: fmt.Sprintf("coin toss: %s moves first", playerName(first)),
	}
}

func NewTurnStartEvent(round, ply, player int) GameEvent {
	return GameEvent{
		Round:   round,
		Ply:     ply,
		Player:  player,
		Tile:    -1,
		Type:    EventTurnStart,
		Details: fmt.Sprintf("%s to move", playerName(player)),
	}
}

func NewCardPlacedEvent(round, ply, player int, cardName string, tile int) GameEvent {
	return GameEvent{
		Round:   round,
		Ply:     ply,
		Player:  player,
		Type:    EventCardPlaced,
		Card:    cardName,
		Tile:    tile,
		Details: fmt.Sprintf("%s places %s on tile %d", playerName(player), cardName, tile),
	}
}

func NewElementalShiftEvent(round, ply, player int, cardName string, tile, delta int, element string) GameEvent {
	return GameEvent{
		Round:   round,
		Ply:     ply,
		Player:  player,
		Type:    EventElementalShift,
		Card:    cardName,
		Tile:    tile,
		Details: fmt.Sprintf("%s shifts %+d on %s tile %d", cardName, delta, element, tile),
	}
}

func NewSameTriggerEvent(round, ply, player int, cardName string, tile, matched int) GameEvent {
	return GameEvent{
		Round:   round,
		Ply:     ply,
		Player:  player,
		Type:    EventSameTrigger,
		Card:    cardName,
		Tile:    tile,
		Details: fmt.Sprintf("SAME! %s matches %d neighbors", cardName, matched),
	}
}

func NewPlusTriggerEvent(round, ply, player int, cardName string, tile int, sums []int) GameEvent {
	parts := make([]string, len(sums))
	for i, s := range sums {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return GameEvent{
		Round:   round,
		Ply:     ply,
		Player:  player,
		Type:    EventPlusTrigger,
		Card:    cardName,
		Tile:    tile,
		Details: fmt.Sprintf("PLUS! %s pairs sums %s", cardName, strings.Join(parts, ", ")),
	}
}

func NewCardFlippedEvent(round, ply, player int, cardName string, tile int, rule string) GameEvent {
	return GameEvent{
		Round:   round,
		Ply:     ply,
		Player:  player,
		Type:    EventCardFlipped,
		Card:    cardName,
		Tile:    tile,
		Details: fmt.Sprintf("%s on tile %d flips to %s (%s)", cardName, tile, playerName(player), rule),
	}
}

func NewComboFlipEvent(round, ply, player int, cardName string, tile int) GameEvent {
	return GameEvent{
		Round:   round,
		Ply:     ply,
		Player:  player,
		Type:    EventComboFlip,
		Card:    cardName,
		Tile:    tile,
		Details: fmt.Sprintf("COMBO! %s on tile %d flips to %s", cardName, tile, playerName(player)),
	}
}

func NewRoundEndEvent(round, winner, scoreA, scoreB int, tiebreak bool) GameEvent {
	detail := fmt.Sprintf("round %d drawn %d-%d", round, scoreA, scoreB)
	if winner >= 0 {
		detail = fmt.Sprintf("round %d to %s, %d-%d", round, playerName(winner), scoreA, scoreB)
		if tiebreak {
			detail += " (stat tie-break)"
		}
	}
	return GameEvent{
		Round:   round,
		Ply:     9,
		Player:  winner,
		Tile:    -1,
		Type:    EventRoundEnd,
		Details: detail,
	}
}

func NewSeriesEndEvent(winner, winsA, winsB, rounds int) GameEvent {
	detail := fmt.Sprintf("series drawn %d-%d after %d rounds", winsA, winsB, rounds)
	if winner >= 0 {
		detail = fmt.Sprintf("%s takes the series %d-%d after %d rounds", playerName(winner), winsA, winsB, rounds)
	}
	return GameEvent{
		Player:  winner,
		Tile:    -1,
		Type:    EventSeriesEnd,
		Details: detail,
	}
}
