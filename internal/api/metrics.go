package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/calverly/hearth-core/internal/registry"
)

// SystemMetrics is the GET /metrics response body. Sections for optional
// integrations report zero values when the integration is off.
type SystemMetrics struct {
	Timestamp     string          `json:"timestamp"`
	Version       string          `json:"version"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	Runtime       RuntimeMetrics  `json:"runtime"`
	WebSocket     WSMetrics       `json:"websocket"`
	MQTT          MQTTMetrics     `json:"mqtt"`
	Registry      RegistryMetrics `json:"registry"`
	Database      DatabaseMetrics `json:"database"`
}

type RuntimeMetrics struct {
	Goroutines    int     `json:"goroutines"`
	MemoryAllocMB float64 `json:"memory_alloc_mb"`
	MemoryTotalMB float64 `json:"memory_total_mb"`
	NumGC         uint32  `json:"num_gc"`
}

type WSMetrics struct {
	ConnectedClients int `json:"connected_clients"`
}

type MQTTMetrics struct {
	Connected bool `json:"connected"`
}

// RegistryMetrics mirrors registry.Stats with string type keys for JSON.
type RegistryMetrics struct {
	TotalDevices   int            `json:"total_devices"`
	PairedDevices  int            `json:"paired_devices"`
	ByType         map[string]int `json:"by_type"`
	HubExists      bool           `json:"hub_exists"`
	TotalDwellings int            `json:"total_dwellings"`
}

type DatabaseMetrics struct {
	OpenConnections int   `json:"open_connections"`
	InUse           int   `json:"in_use"`
	Idle            int   `json:"idle"`
	WaitCount       int64 `json:"wait_count"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	const mb = 1024 * 1024

	metrics := SystemMetrics{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Runtime: RuntimeMetrics{
			Goroutines:    runtime.NumGoroutine(),
			MemoryAllocMB: float64(mem.Alloc) / mb,
			MemoryTotalMB: float64(mem.TotalAlloc) / mb,
			NumGC:         mem.NumGC,
		},
		WebSocket: WSMetrics{ConnectedClients: s.hub.ClientCount()},
		Registry:  registryMetrics(s.registry.GetStats()),
	}

	if s.mqtt != nil {
		metrics.MQTT.Connected = s.mqtt.IsConnected()
	}
	if s.db != nil {
		pool := s.db.Stats()
		metrics.Database = DatabaseMetrics{
			OpenConnections: pool.OpenConnections,
			InUse:           pool.InUse,
			Idle:            pool.Idle,
			WaitCount:       pool.WaitCount,
		}
	}

	writeJSON(w, http.StatusOK, metrics)
}

func registryMetrics(stats registry.Stats) RegistryMetrics {
	m := RegistryMetrics{
		TotalDevices:   stats.TotalDevices,
		PairedDevices:  stats.PairedDevices,
		ByType:         make(map[string]int, len(stats.ByType)),
		HubExists:      stats.HubExists,
		TotalDwellings: stats.TotalDwellings,
	}
	for typ, count := range stats.ByType {
		m.ByType[string(typ)] = count
	}
	return m
}
