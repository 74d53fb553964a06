package table

import (
	"sync"
	"time"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/hand"
)

// EventType represents a table event type with type safety
type EventType string

const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypeBetsPlaced   EventType = "bets_placed"
	EventTypeAction       EventType = "player_action"
	EventTypeDealerPlayed EventType = "dealer_played"
	EventTypeRoundSettled EventType = "round_settled"
	EventTypeReshuffle    EventType = "reshuffle"
	EventTypeSnapshot     EventType = "snapshot"
)

func (et EventType) String() string {
	return string(et)
}

// Event is anything published on a table's bus
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published when betting opens
type RoundStartEvent struct {
	TableID   string
	Round     int
	Seats     []game.SeatView
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// BetsPlacedEvent is published for each accepted batch of bets
type BetsPlacedEvent struct {
	Round     int
	Bets      map[string]game.Coin
	Dealt     bool // the batch completed betting and the cards are out
	timestamp time.Time
}

func (e BetsPlacedEvent) EventType() EventType { return EventTypeBetsPlaced }
func (e BetsPlacedEvent) Timestamp() time.Time { return e.timestamp }

// ActionEvent is published after a participant's action is applied
type ActionEvent struct {
	Round         int
	ParticipantID string
	Name          string
	Action        game.Action
	Hand          hand.Hand
	Status        game.Status
	Auto          bool // decided by a bot rather than external input
	timestamp     time.Time
}

func (e ActionEvent) EventType() EventType { return EventTypeAction }
func (e ActionEvent) Timestamp() time.Time { return e.timestamp }

// DealerPlayedEvent is published once the dealer has revealed and drawn
type DealerPlayedEvent struct {
	Round     int
	Hand      hand.Hand
	timestamp time.Time
}

func (e DealerPlayedEvent) EventType() EventType { return EventTypeDealerPlayed }
func (e DealerPlayedEvent) Timestamp() time.Time { return e.timestamp }

// RoundSettledEvent carries the payouts of a finished round
type RoundSettledEvent struct {
	Result    game.RoundResult
	timestamp time.Time
}

func (e RoundSettledEvent) EventType() EventType { return EventTypeRoundSettled }
func (e RoundSettledEvent) Timestamp() time.Time { return e.timestamp }

// ReshuffleEvent is published when the shoe ran dry and was rebuilt
type ReshuffleEvent struct {
	Round     int
	Phase     game.Phase
	Remaining int
	timestamp time.Time
}

func (e ReshuffleEvent) EventType() EventType { return EventTypeReshuffle }
func (e ReshuffleEvent) Timestamp() time.Time { return e.timestamp }

// SnapshotEvent follows every successful operation with the new masked view
type SnapshotEvent struct {
	View      game.View
	timestamp time.Time
}

func (e SnapshotEvent) EventType() EventType { return EventTypeSnapshot }
func (e SnapshotEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to table events
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(Event)

func (f SubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber) (unsubscribe func())
	Publish(event Event)
}

// SimpleEventBus delivers events synchronously in subscription order
type SimpleEventBus struct {
	mu          sync.RWMutex
	nextID      int
	subscribers []subscription
}

type subscription struct {
	id  int
	sub EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber and returns a function that removes it
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) func() {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.nextID++
	id := bus.nextID
	bus.subscribers = append(bus.subscribers, subscription{id: id, sub: subscriber})

	return func() {
		bus.mu.Lock()
		defer bus.mu.Unlock()
		for i, s := range bus.subscribers {
			if s.id == id {
				bus.subscribers = append(bus.subscribers[:i:i], bus.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to all subscribers. Subscribers run on the
// publishing goroutine and may call back into the table.
func (bus *SimpleEventBus) Publish(event Event) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, len(bus.subscribers))
	for i, s := range bus.subscribers {
		subs[i] = s.sub
	}
	bus.mu.RUnlock()

	for _, sub := range subs {
		sub.OnEvent(event)
	}
}
