package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteTemperature records one thermostat reading in the "temperature"
// measurement, tagged by device. Non-blocking; the point joins the current
// batch. Dropped silently when disconnected.
func (c *Client) WriteTemperature(deviceID string, temperature float64) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint("temperature",
		map[string]string{"device_id": deviceID},
		map[string]interface{}{"value": temperature},
		time.Now()))
}

// WriteDeviceMetric records a named numeric reading for a device, such as
// "brightness" or "target_temperature", under the "device_metrics"
// measurement.
func (c *Client) WriteDeviceMetric(deviceID string, measurement string, value float64) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint("device_metrics",
		map[string]string{"device_id": deviceID, "measurement": measurement},
		map[string]interface{}{"value": value},
		time.Now()))
}

// WritePoint records an arbitrary point for measurements the helpers above
// do not cover.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(write.NewPoint(measurement, tags, fields, time.Now()))
}
