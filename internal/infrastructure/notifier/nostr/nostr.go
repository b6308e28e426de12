package nostr_notifier

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip04"
	"github.com/nbd-wtf/go-nostr/nip19"
	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/core/ports"
	"github.com/orbital-network/auction/internal/infrastructure/notifier"
	"github.com/sirupsen/logrus"
)

type nostrNotifier struct {
	recipient nostr.ProfilePointer
}

// New expects the controller nprofile as recipient, messages are encrypted
// for it using NIP-04.
func New(recipientProfile string) (ports.Notifier, error) {
	recipient, err := decodeProfile(recipientProfile)
	if err != nil {
		return nil, err
	}
	return &nostrNotifier{recipient}, nil
}

func (n *nostrNotifier) Notify(ctx context.Context, message domain.Message) error {
	payload, err := notifier.Encode(message)
	if err != nil {
		return err
	}

	ephemeralSec := nostr.GeneratePrivateKey()
	ephemeralPub, err := nostr.GetPublicKey(ephemeralSec)
	if err != nil {
		return fmt.Errorf("failed to generate ephemeral keypair: %w", err)
	}

	sharedSecret, err := nip04.ComputeSharedSecret(n.recipient.PublicKey, ephemeralSec)
	if err != nil {
		return fmt.Errorf("failed to compute shared secret: %w", err)
	}

	encryptedMsg, err := nip04.Encrypt(string(payload), sharedSecret)
	if err != nil {
		return fmt.Errorf("failed to encrypt message for recipient %s: %w", n.recipient.PublicKey, err)
	}

	ev := &nostr.Event{
		PubKey:    ephemeralPub,
		CreatedAt: nostr.Timestamp(time.Now().Unix()),
		Kind:      nostr.KindEncryptedDirectMessage,
		Tags: nostr.Tags{
			{"p", n.recipient.PublicKey},
			{"t", string(message.GetKind())},
		},
		Content: encryptedMsg,
	}

	if err := ev.Sign(ephemeralSec); err != nil {
		return fmt.Errorf("failed to sign event: %w", err)
	}

	var wg sync.WaitGroup
	atLeastOneSuccess := atomic.Bool{}

	for _, url := range n.recipient.Relays {
		wg.Add(1)
		go func(relayURL string) {
			defer wg.Done()

			relay, err := nostr.RelayConnect(ctx, relayURL)
			if err != nil {
				logrus.WithError(err).Warnf("failed to connect to relay %s", relayURL)
				return
			}
			defer relay.Close()

			if err := relay.Publish(ctx, *ev); err != nil {
				logrus.WithError(err).Warnf("failed to publish to relay %s", relayURL)
				return
			}

			atLeastOneSuccess.Store(true)
		}(url)
	}

	wg.Wait()

	if !atLeastOneSuccess.Load() {
		return fmt.Errorf("failed to publish %s message %s to any relay", message.GetKind(), message.GetId())
	}

	return nil
}

func (n *nostrNotifier) Close() {}

func decodeProfile(recipientProfile string) (nostr.ProfilePointer, error) {
	prefix, result, err := nip19.Decode(recipientProfile)
	if err != nil {
		return nostr.ProfilePointer{}, fmt.Errorf("failed to decode NIP-19 string: %w", err)
	}

	if prefix != "nprofile" {
		return nostr.ProfilePointer{}, fmt.Errorf("invalid NIP-19 prefix: %s", prefix)
	}

	recipient, ok := result.(nostr.ProfilePointer)
	if !ok {
		return nostr.ProfilePointer{}, fmt.Errorf("invalid NIP-19 result: %v", result)
	}

	if !nostr.IsValidPublicKey(recipient.PublicKey) {
		return nostr.ProfilePointer{}, fmt.Errorf("invalid nostr public key: %s", recipient.PublicKey)
	}

	if len(recipient.Relays) == 0 {
		return nostr.ProfilePointer{}, fmt.Errorf("invalid nostr profile: at least one relay is required")
	}

	for _, relay := range recipient.Relays {
		if !nostr.IsValidRelayURL(relay) {
			return nostr.ProfilePointer{}, fmt.Errorf("invalid relay URL: %s", relay)
		}
	}

	return recipient, nil
}
