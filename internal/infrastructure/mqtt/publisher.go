package mqtt

import (
	"context"
	"encoding/json"

	"github.com/calverly/hearth-core/internal/events"
)

// eventSender is the slice of Client the publisher needs; narrowed for
// testing.
type eventSender interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	PublishRetained(topic string, payload []byte) error
}

// Publisher forwards registry events to the MQTT broker. It implements
// events.Sink; publish failures are logged and swallowed so a broker
// outage never affects registry operations.
type Publisher struct {
	client eventSender
	qos    byte
	logger Logger
}

// NewPublisher creates a publisher forwarding events over the given client.
func NewPublisher(client *Client, qos byte) *Publisher {
	return &Publisher{client: client, qos: qos}
}

// SetLogger sets a logger for publish failures.
func (p *Publisher) SetLogger(logger Logger) {
	p.logger = logger
}

// Publish sends the event to hearth/event/{entity}/{id} as JSON. State
// changes are additionally published retained on the device state topic so
// new subscribers see the last known state without waiting for a change.
func (p *Publisher) Publish(_ context.Context, ev events.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("event marshal failed", "event", ev.Type, "error", err)
		}
		return
	}

	topic := Topics{}.Event(string(ev.Entity), ev.EntityID)
	if err := p.client.Publish(topic, payload, p.qos, false); err != nil {
		if p.logger != nil {
			p.logger.Warn("event publish failed", "topic", topic, "error", err)
		}
	}

	if ev.Type == events.DeviceModified {
		p.publishState(ev)
	}
}

// publishState mirrors the event's state payload to the retained device
// state topic.
func (p *Publisher) publishState(ev events.Event) {
	state, ok := ev.Details["state"]
	if !ok {
		return
	}

	payload, err := json.Marshal(state)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("state marshal failed", "device_id", ev.EntityID, "error", err)
		}
		return
	}

	topic := Topics{}.DeviceState(ev.EntityID)
	if err := p.client.PublishRetained(topic, payload); err != nil {
		if p.logger != nil {
			p.logger.Warn("state publish failed", "topic", topic, "error", err)
		}
	}
}
