package ztrhuff

import (
	"fmt"
	"log/slog"
)

// EventType identifies the kind of an Event.
type EventType uint8

const (
	// TableSetBuiltEvent is sent when a TableSet has been built.
	TableSetBuiltEvent EventType = iota + 1

	// TableSetReleasedEvent is sent when a TableSet is released.
	TableSetReleasedEvent

	// DecompressEvent is sent when Decompress returns successfully.
	DecompressEvent
)

var eventTypeNames = [...]string{"", "TableSetBuilt", "TableSetReleased", "Decompress"}

// String returns the name of this EventType.
func (t EventType) String() string {
	if t != 0 && int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// Source says where the code lengths of a TableSet came from.
type Source uint8

const (
	// SourceLengths means the caller supplied the length arrays.
	SourceLengths Source = iota

	// SourceDynamic means a dynamic header was decoded.
	SourceDynamic

	// SourcePreset means one of the preset length arrays was used.
	SourcePreset
)

var sourceNames = [...]string{"lengths", "dynamic", "preset"}

// String returns the name of this Source.
func (src Source) String() string {
	if int(src) < len(sourceNames) {
		return sourceNames[src]
	}
	return fmt.Sprintf("Source(%d)", uint8(src))
}

// StopReason says why Decompress stopped.
type StopReason uint8

const (
	// StopEndOfBlock means the EndOfBlock symbol was decoded.
	StopEndOfBlock StopReason = iota + 1

	// StopEndOfInput means the input ran out.
	StopEndOfInput
)

var stopReasonNames = [...]string{"", "endOfBlock", "endOfInput"}

// String returns the name of this StopReason.
func (reason StopReason) String() string {
	if reason != 0 && int(reason) < len(stopReasonNames) {
		return stopReasonNames[reason]
	}
	return fmt.Sprintf("StopReason(%d)", uint8(reason))
}

// Event describes something that happened inside the engine.  Only the
// fields relevant to Type are set.
type Event struct {
	Type EventType

	// TableSetBuiltEvent and TableSetReleasedEvent
	Source   Source
	Preset   int
	Tables   int
	Nodes    int
	BitsLeft byte

	// DecompressEvent
	InputBytes  int
	OutputBytes int
	Stop        StopReason
}

// Tracer receives Events.
type Tracer interface {
	OnEvent(event Event)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(event Event)

// OnEvent calls fn(event).
func (fn TracerFunc) OnEvent(event Event) {
	fn(event)
}

var _ Tracer = TracerFunc(nil)

// SlogTracer returns a Tracer that logs every Event at debug level.  A nil
// logger means slog.Default().
func SlogTracer(logger *slog.Logger) Tracer {
	if logger == nil {
		logger = slog.Default()
	}
	return TracerFunc(func(event Event) {
		switch event.Type {
		case TableSetBuiltEvent:
			logger.Debug("tableSetBuilt", "source", event.Source.String(), "preset", event.Preset,
				"tables", event.Tables, "nodes", event.Nodes, "bitsLeft", event.BitsLeft)
		case TableSetReleasedEvent:
			logger.Debug("tableSetReleased", "source", event.Source.String(), "tables", event.Tables, "nodes", event.Nodes)
		case DecompressEvent:
			logger.Debug("decompress", "in", event.InputBytes, "out", event.OutputBytes, "stop", event.Stop.String())
		}
	})
}

func sendEvent(tracers []Tracer, event Event) {
	for _, tr := range tracers {
		tr.OnEvent(event)
	}
}
