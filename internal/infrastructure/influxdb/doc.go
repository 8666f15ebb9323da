// Package influxdb streams numeric device telemetry to InfluxDB.
//
// It is a thin wrapper over influxdb-client-go v2: Connect validates the
// configuration and pings the server, writes go through a non-blocking
// batched write API, and batch failures surface through an error callback
// rather than the write calls themselves.
//
// Telemetry is optional. When the influxdb section of the configuration is
// disabled, Connect returns ErrDisabled and the rest of the system runs
// without it.
//
// Typical wiring:
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    // ErrDisabled means telemetry is off, not broken
//	}
//	defer client.Close()
//
//	reg.AddSink(influxdb.NewSink(client))
//
// The sink extracts numeric fields from committed registry events (reported
// temperatures, brightness levels, setpoints) and writes them as points
// tagged by device ID.
//
// All methods are safe for concurrent use.
package influxdb
