package mqtt

import (
	"fmt"
)

// Subscribe registers handler for messages matching topic. MQTT wildcards
// work as usual: "+" for one level ("hearth/sensor/temperature/+"), "#" for
// the rest of the tree ("hearth/#").
//
// The subscription is remembered and replayed after a reconnect, so callers
// subscribe once and forget about connection churn. QoS must be 0, 1 or 2.
func (c *Client) Subscribe(topic string, qos byte, handler MessageHandler) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if handler == nil {
		return fmt.Errorf("%w: nil handler", ErrSubscribeFailed)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	c.routeMu.Lock()
	c.routes[topic] = route{topic: topic, qos: qos, handler: handler}
	c.routeMu.Unlock()

	token := c.client.Subscribe(topic, qos, c.recoverable(handler))
	if ok := token.WaitTimeout(ackTimeout); !ok || token.Error() != nil {
		// Forget the route so a failed subscribe is not replayed later.
		c.routeMu.Lock()
		delete(c.routes, topic)
		c.routeMu.Unlock()

		if !ok {
			return fmt.Errorf("%w: no acknowledgement within %v", ErrSubscribeFailed, ackTimeout)
		}
		return fmt.Errorf("%w: %w", ErrSubscribeFailed, token.Error())
	}

	return nil
}

// Unsubscribe stops delivery for topic. The filter must match the one passed
// to Subscribe exactly. Messages already in flight may still reach the old
// handler.
func (c *Client) Unsubscribe(topic string) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	c.routeMu.Lock()
	delete(c.routes, topic)
	c.routeMu.Unlock()

	token := c.client.Unsubscribe(topic)
	if !token.WaitTimeout(ackTimeout) {
		return fmt.Errorf("%w: no acknowledgement within %v", ErrUnsubscribeFailed, ackTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsubscribeFailed, err)
	}

	return nil
}

// SubscriptionCount reports how many topic filters are currently registered.
func (c *Client) SubscriptionCount() int {
	c.routeMu.RLock()
	defer c.routeMu.RUnlock()
	return len(c.routes)
}

// HasSubscription reports whether an exact topic filter is registered.
// No wildcard matching is attempted.
func (c *Client) HasSubscription(topic string) bool {
	c.routeMu.RLock()
	defer c.routeMu.RUnlock()
	_, ok := c.routes[topic]
	return ok
}
