// Package events carries the in-process notifications that tie the panel
// layout engine to the connector renderers: an explicit "layout changed"
// signal on every width or panel-count change, and a "message appended"
// signal whenever a panel's message list grows.
package events

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"
)

// Topics.
const (
	TopicLayoutChanged   = "layout.changed"
	TopicMessageAppended = "messages.appended"
)

// LayoutChanged is published by the layout engine on every width or
// panel-count change.
type LayoutChanged struct {
	PanelCount int       `json:"panelCount"`
	Widths     []float64 `json:"widths"`
}

// MessageAppended is published when a message is appended to a panel's list.
type MessageAppended struct {
	PanelID   string `json:"panelId"`
	MessageID string `json:"messageId"`
	Role      string `json:"role"`
}

// Bus is an in-process pub/sub channel for layout notifications.
type Bus struct {
	logger watermill.LoggerAdapter
	pubSub *gochannel.GoChannel
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the watermill logger adapter.
func WithLogger(logger watermill.LoggerAdapter) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

// NewBus instantiates and returns a new bus.
func NewBus(options ...Option) *Bus {
	bus := &Bus{
		logger: watermill.NopLogger{},
	}
	for _, option := range options {
		option(bus)
	}
	bus.pubSub = gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, bus.logger)
	return bus
}

// Publish marshals the payload and publishes it on the given topic.
func (b *Bus) Publish(topic string, payload interface{}) error {
	bytes, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshaling payload")
	}
	msg := message.NewMessage(watermill.NewUUID(), bytes)
	if err := b.pubSub.Publish(topic, msg); err != nil {
		return errors.Wrapf(err, "publishing on topic '%s'", topic)
	}
	return nil
}

// Subscribe returns a channel of messages published on the given topic. The
// subscription lives until the context is canceled.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	messages, err := b.pubSub.Subscribe(ctx, topic)
	if err != nil {
		return nil, errors.Wrapf(err, "subscribing to topic '%s'", topic)
	}
	return messages, nil
}

// Close shuts down the underlying pub/sub channel.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}
