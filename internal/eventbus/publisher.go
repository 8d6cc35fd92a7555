// Package eventbus publishes match-sweep audit events onto a NATS
// topic via watermill, independent of the Postgres audit trail.
package eventbus

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdoElHodaky/orderbook-engine/internal/orderbook"
)

// MatchEvent is the payload published for every completed sweep.
type MatchEvent struct {
	Transfers  []orderbook.Transfer  `json:"transfers"`
	Attributes []orderbook.Attribute `json:"attributes"`
}

// Publisher wraps a watermill NATS publisher bound to a single topic.
type Publisher struct {
	pub   message.Publisher
	topic string
}

// New dials natsURL and returns a Publisher that publishes to topic.
func New(natsURL, topic string, logger *zap.Logger) (*Publisher, error) {
	wlogger := watermill.NewStdLoggerWithOut(zap.NewStdLog(logger).Writer(), false, false)

	pub, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         natsURL,
			Marshaler:   &nats.GobMarshaler{},
			JetStream:   nats.JetStreamConfig{Disabled: true},
		},
		wlogger,
	)
	if err != nil {
		return nil, fmt.Errorf("eventbus: connect: %w", err)
	}

	return &Publisher{pub: pub, topic: topic}, nil
}

// PublishMatch publishes one MatchEvent, skipping empty sweeps: a
// sweep that settles nothing has no audit value on the bus.
func (p *Publisher) PublishMatch(result orderbook.MatchResult) error {
	if len(result.Transfers) == 0 && len(result.Attributes) == 0 {
		return nil
	}

	payload, err := json.Marshal(MatchEvent{Transfers: result.Transfers, Attributes: result.Attributes})
	if err != nil {
		return fmt.Errorf("eventbus: marshal: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	return p.pub.Publish(p.topic, msg)
}

// Close shuts down the underlying publisher.
func (p *Publisher) Close() error { return p.pub.Close() }
