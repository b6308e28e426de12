package notifier

import (
	"encoding/json"
	"fmt"

	"github.com/orbital-network/auction/internal/core/domain"
)

// Envelope is the wire format of every message sent to the controller.
type Envelope struct {
	Id      string             `json:"id"`
	Kind    domain.MessageKind `json:"kind"`
	Payload json.RawMessage    `json:"payload"`
}

func Encode(message domain.Message) ([]byte, error) {
	if message == nil {
		return nil, fmt.Errorf("missing message")
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s message: %w", message.GetKind(), err)
	}
	return json.Marshal(Envelope{
		Id:      message.GetId(),
		Kind:    message.GetKind(),
		Payload: payload,
	})
}

// Topic is where messages of the given kind are published.
func Topic(kind domain.MessageKind) string {
	return fmt.Sprintf("auction.%s", kind)
}
