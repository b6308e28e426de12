package watermillnotifier

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/core/ports"
	"github.com/orbital-network/auction/internal/infrastructure/notifier"
	log "github.com/sirupsen/logrus"
)

type watermillNotifier struct {
	publisher message.Publisher
}

// New publishes every message on the topic of its kind. The message id is
// used as watermill uuid so consumers can dedupe redeliveries.
func New(publisher message.Publisher) (ports.Notifier, error) {
	if publisher == nil {
		return nil, fmt.Errorf("missing publisher")
	}
	return &watermillNotifier{publisher}, nil
}

func (n *watermillNotifier) Notify(ctx context.Context, msg domain.Message) error {
	payload, err := notifier.Encode(msg)
	if err != nil {
		return err
	}

	m := message.NewMessage(msg.GetId(), payload)
	m.SetContext(ctx)
	m.Metadata.Set("kind", string(msg.GetKind()))

	topic := notifier.Topic(msg.GetKind())
	if err := n.publisher.Publish(topic, m); err != nil {
		return fmt.Errorf("failed to publish %s message %s: %w", msg.GetKind(), msg.GetId(), err)
	}

	log.Debugf("published %s message %s", msg.GetKind(), msg.GetId())
	return nil
}

func (n *watermillNotifier) Close() {
	//nolint:errcheck
	n.publisher.Close()
}
