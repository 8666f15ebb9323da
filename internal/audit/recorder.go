package audit

import (
	"context"
	"time"

	"github.com/calverly/hearth-core/internal/events"
)

// writeTimeout bounds each audit insert so a slow database cannot stall
// the operation that produced the event.
const writeTimeout = 2 * time.Second

// Logger defines the logging interface used by the Recorder.
type Logger interface {
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}

// Recorder turns registry events into audit entries. It implements
// events.Sink; write failures are logged and swallowed, never surfaced
// to the operation that produced the event.
type Recorder struct {
	repo   Repository
	logger Logger
}

// NewRecorder creates a recorder writing to the given repository.
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo, logger: noopLogger{}}
}

// SetLogger sets the logger for the recorder.
func (r *Recorder) SetLogger(logger Logger) {
	r.logger = logger
}

// Publish records an event in the audit trail.
func (r *Recorder) Publish(ctx context.Context, ev events.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	entry := &Entry{
		EventType:  string(ev.Type),
		EntityType: string(ev.Entity),
		EntityID:   ev.EntityID,
		Details:    ev.Details,
		CreatedAt:  ev.At,
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Warn("audit write failed", "event", ev.Type, "entity", ev.EntityID, "error", err)
	}
}
