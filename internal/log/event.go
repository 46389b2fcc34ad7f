package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventMatchStart EventType = iota
	EventHandsDealt
	EventDeckFallback
	EventCoinToss
	EventTurnStart
	EventCardPlaced
	EventElementalShift
	EventSameTrigger
	EventPlusTrigger
	EventCardFlipped
	EventComboFlip
	EventRoundEnd
	EventSeriesEnd
)

func (e EventType) String() string {
	switch e {
	case EventMatchStart:
		return "MatchStart"
	case EventHandsDealt:
		return "HandsDealt"
	case EventDeckFallback:
		return "DeckFallback"
	case EventCoinToss:
		return "CoinToss"
	case EventTurnStart:
		return "TurnStart"
	case EventCardPlaced:
		return "CardPlaced"
	case EventElementalShift:
		return "ElementalShift"
	case EventSameTrigger:
		return "SameTrigger"
	case EventPlusTrigger:
		return "PlusTrigger"
	case EventCardFlipped:
		return "CardFlipped"
	case EventComboFlip:
		return "ComboFlip"
	case EventRoundEnd:
		return "RoundEnd"
	case EventSeriesEnd:
		return "SeriesEnd"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // which round (1-based; 0 for match-level events)
	Ply     int       // placement count within the round (1-9)
	Player  int       // acting player (0 or 1, -1 when not player-bound)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Tile    int       // board tile index (-1 if not tile-bound)
	Details string    // human-readable detail string
}
