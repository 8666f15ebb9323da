package mqtt

import (
	"context"
	"fmt"
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/calverly/hearth-core/internal/infrastructure/config"
)

// Client is a thin wrapper around paho.mqtt.golang that adds the pieces the
// daemon needs on top of the raw library: a last-will "offline" announcement,
// subscription tracking so handlers survive a reconnect, panic recovery around
// message handlers, and sentinel errors callers can test with errors.Is.
//
// All methods are safe for concurrent use.
type Client struct {
	client pahomqtt.Client
	cfg    config.MQTTConfig

	// routes holds the active subscriptions, keyed by topic filter, so they
	// can be replayed against the broker after a reconnect.
	routeMu sync.RWMutex
	routes  map[string]route

	connMu    sync.RWMutex
	connected bool

	cbMu         sync.RWMutex
	onConnect    func()
	onDisconnect func(err error)

	logMu  sync.RWMutex
	logger Logger
}

// Logger is the minimal logging surface the client needs. Both
// logging.Logger and *slog.Logger satisfy it.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
}

type route struct {
	topic   string
	qos     byte
	handler MessageHandler
}

// MessageHandler receives inbound messages. Paho invokes handlers on its own
// goroutines, so a handler must not block for long. A returned error is
// logged and otherwise ignored; it does not affect broker acknowledgement.
type MessageHandler func(topic string, payload []byte) error

// Connect dials the broker described by cfg and returns a ready client.
//
// The connection carries a retained last-will message on the system status
// topic, so peers learn about an unclean exit without polling. Auto-reconnect
// is enabled; on every (re)connect the client replays its subscriptions and
// publishes a fresh "online" status.
func Connect(cfg config.MQTTConfig) (*Client, error) {
	c := &Client{
		cfg:    cfg,
		routes: make(map[string]route),
	}

	opts := buildClientOptions(cfg)
	opts.SetOnConnectHandler(func(_ pahomqtt.Client) { c.brokerUp() })
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) { c.brokerDown(err) })

	c.client = pahomqtt.NewClient(opts)

	token := c.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("%w: no broker response within %v", ErrConnectionFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// The OnConnect handler fires asynchronously; mark connected here so
	// IsConnected is accurate the moment Connect returns.
	c.connMu.Lock()
	c.connected = true
	c.connMu.Unlock()

	return c, nil
}

func (c *Client) brokerUp() {
	c.connMu.Lock()
	c.connected = true
	c.connMu.Unlock()

	c.routeMu.RLock()
	for _, r := range c.routes {
		// Failures here are transient; the next reconnect retries.
		c.client.Subscribe(r.topic, r.qos, c.recoverable(r.handler))
	}
	c.routeMu.RUnlock()

	c.client.Publish(Topics{}.SystemStatus(), byte(c.cfg.QoS), true,
		statusPayload(c.cfg.Broker.ClientID, "online", ""))

	c.cbMu.RLock()
	cb := c.onConnect
	c.cbMu.RUnlock()
	if cb != nil {
		cb()
	}
}

func (c *Client) brokerDown(err error) {
	c.connMu.Lock()
	c.connected = false
	c.connMu.Unlock()

	c.cbMu.RLock()
	cb := c.onDisconnect
	c.cbMu.RUnlock()
	if cb != nil {
		cb(err)
	}
}

// Close announces a graceful shutdown on the status topic and disconnects.
// Unlike the last-will message, this status carries reason "graceful_shutdown"
// so monitors can tell a clean stop from a crash. Close on a never-connected
// client is a no-op.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	if c.IsConnected() {
		token := c.client.Publish(Topics{}.SystemStatus(), byte(c.cfg.QoS), true,
			statusPayload(c.cfg.Broker.ClientID, "offline", "graceful_shutdown"))
		token.WaitTimeout(ackTimeout)
	}

	c.client.Disconnect(disconnectQuiesceMS)

	c.connMu.Lock()
	c.connected = false
	c.connMu.Unlock()

	return nil
}

// HealthCheck reports whether the broker connection is currently up.
func (c *Client) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("mqtt health check: %w", ctx.Err())
	default:
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// IsConnected returns the last known connection state. It consults both our
// own flag and paho's, since paho flips its state before our handler runs.
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected && c.client.IsConnected()
}

// SetOnConnect registers a callback invoked on the initial connection and
// after every reconnect.
func (c *Client) SetOnConnect(cb func()) {
	c.cbMu.Lock()
	c.onConnect = cb
	c.cbMu.Unlock()
}

// SetOnDisconnect registers a callback invoked whenever the connection drops.
func (c *Client) SetOnDisconnect(cb func(err error)) {
	c.cbMu.Lock()
	c.onDisconnect = cb
	c.cbMu.Unlock()
}

// SetLogger attaches a logger for handler errors and recovered panics.
// Without one those are dropped silently.
func (c *Client) SetLogger(logger Logger) {
	c.logMu.Lock()
	c.logger = logger
	c.logMu.Unlock()
}

func (c *Client) getLogger() Logger {
	c.logMu.RLock()
	defer c.logMu.RUnlock()
	return c.logger
}

// recoverable adapts a MessageHandler to paho's callback shape, catching
// panics so one bad payload cannot take down the paho router goroutine.
func (c *Client) recoverable(handler MessageHandler) pahomqtt.MessageHandler {
	return func(_ pahomqtt.Client, msg pahomqtt.Message) {
		defer func() {
			if r := recover(); r != nil {
				if l := c.getLogger(); l != nil {
					l.Error("mqtt handler panicked", "topic", msg.Topic(), "panic", r)
				}
			}
		}()

		if err := handler(msg.Topic(), msg.Payload()); err != nil {
			if l := c.getLogger(); l != nil {
				l.Warn("mqtt handler error", "topic", msg.Topic(), "error", err)
			}
		}
	}
}
