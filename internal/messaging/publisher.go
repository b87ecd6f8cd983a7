package messaging

import (
	"context"

	"github.com/feral-file/ff-model-indexer/internal/domain"
)

// Publisher defines the interface for publishing reconciled events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a reconciled ledger event
	PublishEvent(ctx context.Context, event *domain.ReconciledEvent) error
	// Close closes the connection
	Close()
}

// NoopPublisher drops every event, used when no broker is configured
type NoopPublisher struct{}

func (NoopPublisher) PublishEvent(context.Context, *domain.ReconciledEvent) error { return nil }

func (NoopPublisher) Close() {}
