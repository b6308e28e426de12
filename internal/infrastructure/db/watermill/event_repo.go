package watermilldb

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/orbital-network/auction/internal/core/domain"
)

type subscriber struct {
	topic   string
	handler func(events []domain.Event)
}

type eventRepository struct {
	publisher message.Publisher

	subscribers    map[string][]subscriber // topic -> subscribers
	subscriberLock *sync.Mutex
	caches         map[string]*eventCache // topic -> cache
	cacheLock      *sync.Mutex
}

// NewEventRepository accepts an optional message.Publisher. Without one,
// events go through an in-process gochannel pubsub.
func NewEventRepository(config ...interface{}) (domain.EventRepository, error) {
	var publisher message.Publisher
	if len(config) > 0 && config[0] != nil {
		p, ok := config[0].(message.Publisher)
		if !ok {
			return nil, fmt.Errorf("invalid publisher")
		}
		publisher = p
	}
	if publisher == nil {
		publisher = gochannel.NewGoChannel(
			gochannel.Config{}, watermill.NopLogger{},
		)
	}
	return NewWatermillEventRepository(publisher), nil
}

func NewWatermillEventRepository(publisher message.Publisher) domain.EventRepository {
	return &eventRepository{
		publisher:      publisher,
		subscribers:    make(map[string][]subscriber),
		subscriberLock: &sync.Mutex{},
		caches:         make(map[string]*eventCache),
		cacheLock:      &sync.Mutex{},
	}
}

func (e *eventRepository) ClearRegisteredHandlers(topics ...string) {
	e.subscriberLock.Lock()
	defer e.subscriberLock.Unlock()

	if len(topics) == 0 {
		e.subscribers = make(map[string][]subscriber)
		return
	}

	for _, topic := range topics {
		delete(e.subscribers, topic)
	}
}

func (e *eventRepository) Close() {
	//nolint:errcheck
	e.publisher.Close()
}

func (e *eventRepository) RegisterEventsHandler(topic string, handler func(events []domain.Event)) {
	e.subscriberLock.Lock()
	defer e.subscriberLock.Unlock()

	e.subscribers[topic] = append(e.subscribers[topic], subscriber{
		topic:   topic,
		handler: handler,
	})
}

func (e *eventRepository) Save(ctx context.Context, topic string, id string, events []domain.Event) error {
	if len(events) <= 0 {
		return nil
	}
	if err := e.publish(topic, events); err != nil {
		return err
	}

	e.cacheLock.Lock()
	defer e.cacheLock.Unlock()

	if _, ok := e.caches[topic]; !ok {
		e.caches[topic] = newEventCache()
	}

	e.caches[topic].add(id, events)

	e.dispatch(topic, id)

	return nil
}

func (e *eventRepository) dispatch(topic string, id string) {
	events := e.caches[topic].get(id)
	if len(events) == 0 {
		return
	}

	e.subscriberLock.Lock()
	for _, subscriber := range e.subscribers[topic] {
		go subscriber.handler(events)
	}
	e.subscriberLock.Unlock()

	// drop the aggregate history once its final event has been dispatched
	lastEvent := events[len(events)-1]
	if noMoreEventsAfter(lastEvent.GetType()) {
		e.caches[topic].remove(id)
	}
}

func (e *eventRepository) publish(topic string, events []domain.Event) error {
	watermillMessages, err := toWatermillMessages(events)
	if err != nil {
		return err
	}
	return e.publisher.Publish(topic, watermillMessages...)
}

func toWatermillMessages(events []domain.Event) ([]*message.Message, error) {
	watermillMessages := make([]*message.Message, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to encode event %d: %w", event.GetType(), err)
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.Metadata.Set("type", fmt.Sprintf("%d", event.GetType()))
		watermillMessages = append(watermillMessages, msg)
	}

	return watermillMessages, nil
}

// Only batches are long lived aggregates, every other topic carries
// standalone facts.
func noMoreEventsAfter(eventType domain.EventType) bool {
	switch eventType {
	case domain.EventTypeBatchStarted, domain.EventTypeBidAccepted:
		return false
	default:
		return true
	}
}
