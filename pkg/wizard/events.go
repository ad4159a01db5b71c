package wizard

// EventKind identifies what changed in the engine.
type EventKind int

const (
	EventFieldChanged EventKind = iota + 1
	EventStepChanged
	EventValidationFailed
	EventSubmitted
	EventRestored
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventFieldChanged:
		return "field_changed"
	case EventStepChanged:
		return "step_changed"
	case EventValidationFailed:
		return "validation_failed"
	case EventSubmitted:
		return "submitted"
	case EventRestored:
		return "restored"
	case EventReset:
		return "reset"
	}
	return "unknown"
}

// Event is delivered synchronously after the mutation it describes.
type Event struct {
	Kind  EventKind
	Field string
	State FormState
}

// Listener observes engine events. Listeners must not call back into the
// engine that emitted the event.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// OnEvent calls f(ev).
func (f ListenerFunc) OnEvent(ev Event) {
	f(ev)
}
