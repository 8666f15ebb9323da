package mqtt

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/calverly/hearth-core/internal/infrastructure/config"
)

const (
	connectTimeout = 10 * time.Second

	// ackTimeout bounds waits for publish/subscribe acknowledgements.
	ackTimeout = 5 * time.Second

	// disconnectQuiesceMS is handed to paho's Disconnect, which takes
	// milliseconds rather than a Duration.
	disconnectQuiesceMS = 1000

	keepAliveInterval = 60 * time.Second

	maxQoS = 2
)

// buildClientOptions translates our YAML config into paho client options:
// broker URL (tcp or ssl scheme), client identity, optional credentials,
// auto-reconnect with backoff bounded by the reconnect config, and a
// retained last-will status message for unclean disconnects.
func buildClientOptions(cfg config.MQTTConfig) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()

	scheme := "tcp"
	if cfg.Broker.TLS {
		scheme = "ssl"
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	opts.AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.Broker.Host, cfg.Broker.Port))

	opts.SetClientID(cfg.Broker.ClientID)
	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}

	// No persistent broker session; subscriptions are replayed by the
	// client itself on reconnect.
	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(time.Duration(cfg.Reconnect.InitialDelay) * time.Second)
	opts.SetMaxReconnectInterval(time.Duration(cfg.Reconnect.MaxDelay) * time.Second)

	opts.SetConnectTimeout(connectTimeout)
	opts.SetKeepAlive(keepAliveInterval)

	// Last will, published by the broker on our behalf if the connection
	// dies without a clean Close.
	opts.SetWill(Topics{}.SystemStatus(),
		string(statusPayload(cfg.Broker.ClientID, "offline", "unexpected_disconnect")), 1, true)

	return opts
}

// statusPayload renders the JSON body for hearth/system/status messages.
// reason is omitted for "online" announcements.
func statusPayload(clientID, status, reason string) []byte {
	body := map[string]string{
		"status":    status,
		"client_id": clientID,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if reason != "" {
		body["reason"] = reason
	}
	payload, _ := json.Marshal(body)
	return payload
}
