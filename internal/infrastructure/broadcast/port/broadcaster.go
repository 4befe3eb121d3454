package port

import "context"

// Event is one published payload on a channel.
type Event struct {
	Channel string
	Payload []byte
}

// Broadcaster is the pub/sub transport behind message fan-out. Publish is
// at-most-once and carries no delivery acknowledgment; durability lives in
// the message store, not here.
type Broadcaster interface {
	// Publish pushes payload to every current subscriber of channel.
	Publish(ctx context.Context, channel string, payload []byte) error

	// Subscribe returns a stream of events for the given channel patterns.
	// The stream closes when ctx is canceled.
	Subscribe(ctx context.Context, patterns ...string) (<-chan Event, error)

	Close() error
}
