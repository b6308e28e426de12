package ports

import (
	"context"

	"github.com/orbital-network/auction/internal/core/domain"
)

// Notifier delivers outbound messages to the external controller.
type Notifier interface {
	Notify(ctx context.Context, message domain.Message) error
	Close()
}
