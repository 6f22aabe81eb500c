package game

import (
	"time"

	"github.com/lox/blackjack/internal/cards"
	"github.com/lox/blackjack/internal/strategy"
)

// EventType represents a table event type with type safety
type EventType string

// EventType constants for table events
const (
	EventTypeShoeReplaced EventType = "shoe_replaced"
	EventTypeRoundStart   EventType = "round_start"
	EventTypeInitialDeal  EventType = "initial_deal"
	EventTypeNatural      EventType = "natural"
	EventTypeBookMode     EventType = "book_mode"
	EventTypeAction       EventType = "action"
	EventTypeSplit        EventType = "split"
	EventTypeDealerPlay   EventType = "dealer_play"
	EventTypeHandSettled  EventType = "hand_settled"
	EventTypeRoundEnd     EventType = "round_end"
	EventTypeRoundAborted EventType = "round_aborted"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is the closed set of values published by a Table. Subscribers
// switch on the concrete type.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
	isEvent()
}

type eventBase struct {
	Round int
	at    time.Time
}

func (e eventBase) Timestamp() time.Time { return e.at }
func (eventBase) isEvent()               {}

// ShoeReplacedEvent is published when a depleted shoe is swapped for a
// freshly shuffled one before a round
type ShoeReplacedEvent struct {
	eventBase
	Remaining int // cards left in the discarded shoe
	Size      int // size of the new shoe
}

func (ShoeReplacedEvent) EventType() EventType { return EventTypeShoeReplaced }

// RoundStartEvent is published once the human bet is accepted
type RoundStartEvent struct {
	eventBase
	Bet           float64
	Balance       float64
	ShoeRemaining int
}

func (RoundStartEvent) EventType() EventType { return EventTypeRoundStart }

// SeatCards is one seat's opening hand
type SeatCards struct {
	Seat  int
	Name  string
	Human bool
	Cards []cards.Card
}

// InitialDealEvent is published after two cards to every seat and the dealer
type InitialDealEvent struct {
	eventBase
	Seats        []SeatCards
	DealerUpcard cards.Card
}

func (InitialDealEvent) EventType() EventType { return EventTypeInitialDeal }

// NaturalEvent is published for every seat dealt a blackjack. For the human
// seat the dealer's hand is revealed to decide between a push and a payout.
type NaturalEvent struct {
	eventBase
	Seat          int
	Name          string
	Human         bool
	DealerNatural bool
	DealerCards   []cards.Card
}

func (NaturalEvent) EventType() EventType { return EventTypeNatural }

// BookModeEvent is published when the human hands the rest of the round to
// basic strategy
type BookModeEvent struct {
	eventBase
	Seat      int
	HandIndex int
}

func (BookModeEvent) EventType() EventType { return EventTypeBookMode }

// ActionEvent is published after a hit, stand or double is applied
type ActionEvent struct {
	eventBase
	Seat      int
	Name      string
	Human     bool
	HandIndex int
	Action    strategy.Action
	Book      bool
	Drawn     *cards.Card // nil for a stand
	Value     int
	Status    HandStatus
	Bet       float64
	// FirstInRound marks the first double by this seat this round
	FirstInRound bool
}

func (ActionEvent) EventType() EventType { return EventTypeAction }

// SplitEvent is published after a pair is split into two hands
type SplitEvent struct {
	eventBase
	Seat         int
	Name         string
	Human        bool
	FromHand     int
	NewHand      int
	Aces         bool
	Book         bool
	Cards        [2][]cards.Card // resulting hands, original first
	Bet          float64
	FirstInRound bool // first split by this seat this round
}

func (SplitEvent) EventType() EventType { return EventTypeSplit }

// DealerPlayEvent is published when the dealer's hand is final
type DealerPlayEvent struct {
	eventBase
	Played bool // false when no hand needed a comparison
	Cards  []cards.Card
	Value  int
	Status HandStatus
}

func (DealerPlayEvent) EventType() EventType { return EventTypeDealerPlay }

// Outcome is the settlement result of a human hand
type Outcome int

const (
	Win Outcome = iota
	Loss
	Push
	BlackjackWin
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	case Push:
		return "push"
	case BlackjackWin:
		return "blackjack"
	default:
		return "unknown"
	}
}

// HandOutcome describes one settled human hand
type HandOutcome struct {
	HandIndex   int
	Bet         float64
	Status      HandStatus
	Outcome     Outcome
	NetDelta    float64
	Split       bool
	Doubled     bool
	Value       int
	DealerValue int
}

// HandSettledEvent carries the outcome of one human hand
type HandSettledEvent struct {
	eventBase
	HandOutcome
}

func (HandSettledEvent) EventType() EventType { return EventTypeHandSettled }

// RoundEndEvent closes a settled round with the balance sample
type RoundEndEvent struct {
	eventBase
	Balance  float64
	Net      float64
	Hands    int
	Depleted bool
}

func (RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }

// RoundAbortedEvent is published when a round is abandoned without settling
type RoundAbortedEvent struct {
	eventBase
	Reason string
}

func (RoundAbortedEvent) EventType() EventType { return EventTypeRoundAborted }

// EventSubscriber can subscribe to table events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(Event)

// OnEvent calls f
func (f EventSubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus delivers events synchronously, in subscription order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
