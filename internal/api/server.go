package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/calverly/hearth-core/internal/audit"
	"github.com/calverly/hearth-core/internal/infrastructure/config"
	"github.com/calverly/hearth-core/internal/infrastructure/database"
	"github.com/calverly/hearth-core/internal/infrastructure/logging"
	"github.com/calverly/hearth-core/internal/infrastructure/mqtt"
	"github.com/calverly/hearth-core/internal/registry"
)

// shutdownGrace bounds how long Close waits for in-flight requests before
// the listener is torn down.
const shutdownGrace = 10 * time.Second

// Deps holds everything the API server needs. Logger, Registry, and Audit
// are mandatory; MQTT and DB only feed the metrics endpoint and may be nil.
type Deps struct {
	Config   config.APIConfig
	WS       config.WebSocketConfig
	Logger   *logging.Logger
	Registry *registry.Registry
	Audit    audit.Repository
	MQTT     *mqtt.Client
	DB       *database.DB
	Version  string
}

// Server serves the Hearth Core REST API and WebSocket event stream.
//
// Construct with New, bring up the listener with Start, and stop it with
// Close. All methods are safe for concurrent use.
type Server struct {
	cfg       config.APIConfig
	wsCfg     config.WebSocketConfig
	logger    *logging.Logger
	registry  *registry.Registry
	audit     audit.Repository
	mqtt      *mqtt.Client
	db        *database.DB
	version   string
	startTime time.Time
	server    *http.Server
	hub       *Hub
	cancel    context.CancelFunc
}

// New validates deps and returns a server that is ready to Start.
//
// The WebSocket hub is built here, before the listener exists, so that the
// caller can hand it to registry.AddSink ahead of the first mutation.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if deps.Audit == nil {
		return nil, fmt.Errorf("audit repository is required")
	}

	return &Server{
		cfg:       deps.Config,
		wsCfg:     deps.WS,
		logger:    deps.Logger,
		registry:  deps.Registry,
		audit:     deps.Audit,
		mqtt:      deps.MQTT,
		db:        deps.DB,
		version:   deps.Version,
		startTime: time.Now(),
		hub:       NewHub(deps.WS, deps.Logger),
	}, nil
}

// Events exposes the WebSocket hub as an event sink so committed registry
// mutations can be streamed to connected clients.
func (s *Server) Events() *Hub {
	return s.hub
}

// Start launches the WebSocket hub and the HTTP listener.
//
// The listener runs in a background goroutine; Start returns immediately.
// The supplied context is wrapped so Close can stop background work without
// the caller cancelling it.
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	go s.hub.Run(srvCtx)

	s.server = &http.Server{
		Addr:              net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port)),
		Handler:           s.buildRouter(),
		ReadTimeout:       s.cfg.GetReadTimeout(),
		ReadHeaderTimeout: s.cfg.GetReadTimeout(),
		WriteTimeout:      s.cfg.GetWriteTimeout(),
		IdleTimeout:       s.cfg.GetIdleTimeout(),
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close stops background goroutines and drains the listener, waiting up to
// shutdownGrace for in-flight requests before forcing connections closed.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck reports whether the listener has been started.
func (s *Server) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("api health check: %w", err)
	}
	if s.server == nil {
		return errors.New("api server not started")
	}
	return nil
}
