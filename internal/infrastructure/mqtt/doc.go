// Package mqtt connects Hearth Core to an MQTT broker.
//
// It covers three concerns: a reconnecting client wrapper around paho with
// last-will offline announcements, a Publisher that forwards registry events
// onto hearth/event topics, and a SensorListener that feeds inbound
// temperature readings back into the registry.
//
// # Architecture
//
// The broker is optional. The registry emits events regardless; when MQTT is
// enabled the Publisher is just one more sink, and sensor traffic flows the
// other way:
//
//	Registry → events → Publisher → MQTT Broker
//	MQTT Broker → SensorListener → Registry.SetCurrentTemperature
//
// TLS and broker credentials come from the mqtt section of config.yaml;
// anonymous plaintext connections are for local development only.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	pub := mqtt.NewPublisher(client, byte(cfg.MQTT.QoS))
//	reg.AddSink(pub)
package mqtt
