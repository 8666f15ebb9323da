package mqtt

import "fmt"

// Topic prefixes for the Hearth MQTT surface.
//
// Scheme: hearth/{category}/...
const (
	// TopicPrefix is the base for all Hearth topics.
	TopicPrefix = "hearth"

	// TopicPrefixEvent is the base for registry event topics.
	TopicPrefixEvent = "hearth/event"

	// TopicPrefixDevice is the base for device state topics.
	TopicPrefixDevice = "hearth/device"

	// TopicPrefixSensor is the base for inbound sensor readings.
	TopicPrefixSensor = "hearth/sensor"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "hearth/system"
)

// Topics provides builders for Hearth MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	topic := topics.Event("device", "dev-123")
//	// Returns: "hearth/event/device/dev-123"
type Topics struct{}

// Event returns the topic for a registry event concerning an entity.
//
// Example: hearth/event/device/dev-123
func (Topics) Event(entity, entityID string) string {
	return fmt.Sprintf("%s/%s/%s", TopicPrefixEvent, entity, entityID)
}

// DeviceState returns the canonical device state topic. Retained, so new
// subscribers immediately see the last published state.
//
// Example: hearth/device/dev-123/state
func (Topics) DeviceState(deviceID string) string {
	return fmt.Sprintf("%s/%s/state", TopicPrefixDevice, deviceID)
}

// SensorTemperature returns the topic for inbound temperature readings
// targeting a thermostat.
//
// Example: hearth/sensor/temperature/dev-123
func (Topics) SensorTemperature(deviceID string) string {
	return fmt.Sprintf("%s/temperature/%s", TopicPrefixSensor, deviceID)
}

// SystemStatus returns the system status topic, used for the online
// announcement and the Last Will and Testament.
//
// Example: hearth/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllEvents returns a pattern matching every registry event.
//
// Pattern: hearth/event/#
func (Topics) AllEvents() string {
	return TopicPrefixEvent + "/#"
}

// AllSensorTemperatures returns a pattern matching every inbound
// temperature reading.
//
// Pattern: hearth/sensor/temperature/+
func (Topics) AllSensorTemperatures() string {
	return fmt.Sprintf("%s/temperature/+", TopicPrefixSensor)
}

// AllTopics returns a pattern matching all Hearth topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: hearth/#
func (Topics) AllTopics() string {
	return TopicPrefix + "/#"
}
