// Package pubsub provides a generic publish/subscribe event broker. It fans
// out editor state changes and log entries to UI listeners without coupling
// the core packages to the presentation layer.
package pubsub

import (
	"context"
	"time"
)

// EventType labels what a published event describes.
type EventType string

const (
	// PushedEvent signals that a new editor state was pushed.
	PushedEvent EventType = "pushed"
	// AppliedEvent signals that a selection was applied to the host.
	AppliedEvent EventType = "applied"
	// LoggedEvent carries a formatted log entry.
	LoggedEvent EventType = "logged"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
