package domain

import "context"

type EventType int

const (
	EventTypeUndefined EventType = iota

	// Batch
	EventTypeBatchStarted
	EventTypeBidAccepted
	EventTypeBatchClosed
)

const (
	// Orderbook
	EventTypeIntentEnqueued EventType = iota + 100
)

const (
	// Bond
	EventTypeBondPosted EventType = iota + 200
	EventTypeBondWithdrawn
	EventTypeBondSlashed
)

const (
	// Settlement
	EventTypeSettlementConfirmed EventType = iota + 300
	EventTypeSettlementSlashed
	EventTypeAccountRegistered
)

type Event interface {
	GetTopic() string
	GetType() EventType
}

type EventRepository interface {
	Save(ctx context.Context, topic, id string, events []Event) error
	RegisterEventsHandler(topic string, handler func(events []Event))
	ClearRegisteredHandlers(topic ...string)
	Close()
}
