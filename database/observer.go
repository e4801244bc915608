package database

import (
	"context"
	"log/slog"
)

// EventKind classifies a notable store event.
type EventKind int

const (
	EventOpened EventKind = iota
	EventOpenFailed
	EventCompiled
	EventCompileFailed
	EventBusyRetry
	EventRowFailed
	EventMalformedRow
	EventTypeMismatch
	EventLengthMismatch
	EventWidthOverflow
	EventClosed
)

var eventNames = map[EventKind]string{
	EventOpened:         "opened",
	EventOpenFailed:     "open_failed",
	EventCompiled:       "compiled",
	EventCompileFailed:  "compile_failed",
	EventBusyRetry:      "busy_retry",
	EventRowFailed:      "row_failed",
	EventMalformedRow:   "malformed_row",
	EventTypeMismatch:   "type_mismatch",
	EventLengthMismatch: "length_mismatch",
	EventWidthOverflow:  "width_overflow",
	EventClosed:         "closed",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is what the store reports to its Observer. Only the fields relevant
// to Kind are set.
type Event struct {
	Kind    EventKind
	Op      Op
	Path    string
	Title   string
	Column  string
	Attempt int
	Want    string
	Got     string
	Err     error
}

// Observer receives store diagnostics. Implementations must not call back
// into the store.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) {
	f(e)
}

// LogObserver writes events to a structured logger.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Observe(e Event) {
	attrs := []slog.Attr{slog.String("event", e.Kind.String())}

	switch e.Kind {
	case EventOpened, EventOpenFailed, EventClosed:
		attrs = append(attrs, slog.String("path", e.Path))
	default:
		attrs = append(attrs, slog.String("op", e.Op.String()))
	}
	if e.Title != "" {
		attrs = append(attrs, slog.String("title", e.Title))
	}
	if e.Column != "" {
		attrs = append(attrs, slog.String("column", e.Column))
	}
	if e.Attempt > 0 {
		attrs = append(attrs, slog.Int("attempt", e.Attempt))
	}
	if e.Want != "" || e.Got != "" {
		attrs = append(attrs, slog.String("want", e.Want), slog.String("got", e.Got))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}

	o.logger.LogAttrs(context.Background(), levelFor(e.Kind), "movie store", attrs...)
}

func levelFor(kind EventKind) slog.Level {
	switch kind {
	case EventCompiled:
		return slog.LevelDebug
	case EventOpened, EventClosed:
		return slog.LevelInfo
	case EventBusyRetry, EventMalformedRow, EventLengthMismatch:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
