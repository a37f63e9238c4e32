package sim

import (
	"reflect"

	log "github.com/sirupsen/logrus"
)

// EventLogger is an hook that writes every handled event to a logger at the
// trace level.
type EventLogger struct {
	Logger *log.Logger
}

// NewEventLogger returns a new EventLogger which will write in to the logger
func NewEventLogger(logger *log.Logger) *EventLogger {
	return &EventLogger{Logger: logger}
}

// Func writes the event information into the logger
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	if !h.Logger.IsLevelEnabled(log.TraceLevel) {
		return
	}

	h.Logger.WithFields(log.Fields{
		"vtime":   float64(evt.Time()),
		"event":   reflect.TypeOf(evt).String(),
		"handler": reflect.TypeOf(evt.Handler()).String(),
	}).Trace("event")
}
