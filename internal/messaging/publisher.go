package messaging

import (
	"context"

	"github.com/veritrace/veritrace/internal/domain"
)

// Publisher defines the interface for publishing hand-off events to the
// message broker. Publishing is advisory: transitions commit whether or not
// the broker accepts the event.
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a hand-off event to the message broker
	PublishEvent(ctx context.Context, event *domain.HandoffEvent) error
	// Close closes the connection
	Close()
}
