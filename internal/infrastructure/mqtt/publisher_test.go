package mqtt

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/calverly/hearth-core/internal/device"
	"github.com/calverly/hearth-core/internal/events"
)

type fakeSender struct {
	published map[string][]byte
	retained  map[string][]byte
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		published: make(map[string][]byte),
		retained:  make(map[string][]byte),
	}
}

func (f *fakeSender) Publish(topic string, payload []byte, _ byte, _ bool) error {
	f.published[topic] = payload
	return nil
}

func (f *fakeSender) PublishRetained(topic string, payload []byte) error {
	f.retained[topic] = payload
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("event topic receives the event", func(t *testing.T) {
		sender := newFakeSender()
		pub := &Publisher{client: sender, qos: 1}

		pub.Publish(ctx, events.New(events.DeviceCreated, events.EntityDevice, "dev-1",
			map[string]any{"name": "Hall Switch"}))

		payload, ok := sender.published["hearth/event/device/dev-1"]
		if !ok {
			t.Fatalf("event not published; topics = %v", sender.published)
		}
		var got events.Event
		if err := json.Unmarshal(payload, &got); err != nil {
			t.Fatalf("unmarshalling event: %v", err)
		}
		if got.Type != events.DeviceCreated || got.EntityID != "dev-1" {
			t.Errorf("published %+v, want device.created/dev-1", got)
		}
		if len(sender.retained) != 0 {
			t.Errorf("unexpected retained writes: %v", sender.retained)
		}
	})

	t.Run("state change is retained on the device state topic", func(t *testing.T) {
		sender := newFakeSender()
		pub := &Publisher{client: sender, qos: 1}

		d := device.NewDimmer("dev-dim", "Lounge Dimmer")
		b := 60
		if !d.Apply(device.DimmerUpdate{Brightness: &b}) {
			t.Fatal("brightness update not applied")
		}

		pub.Publish(ctx, events.New(events.DeviceModified, events.EntityDevice, "dev-dim",
			map[string]any{"state": d.State()}))

		payload, ok := sender.retained["hearth/device/dev-dim/state"]
		if !ok {
			t.Fatalf("state not retained; topics = %v", sender.retained)
		}
		var state map[string]any
		if err := json.Unmarshal(payload, &state); err != nil {
			t.Fatalf("unmarshalling state: %v", err)
		}
		if state["brightness"] != float64(60) {
			t.Errorf("retained brightness = %v, want 60", state["brightness"])
		}
	})

	t.Run("modified event without state payload retains nothing", func(t *testing.T) {
		sender := newFakeSender()
		pub := &Publisher{client: sender, qos: 1}

		pub.Publish(ctx, events.New(events.DeviceModified, events.EntityDevice, "dev-2", nil))

		if len(sender.retained) != 0 {
			t.Errorf("unexpected retained writes: %v", sender.retained)
		}
	})
}
