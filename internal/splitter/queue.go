package splitter

// EventKind classifies messages flowing from the batch worker to the
// presentation layer.
type EventKind int

const (
	// EventInfo carries a user-facing notification
	EventInfo EventKind = iota
	// EventError carries a user-facing error message
	EventError
	// EventProgress carries the batch progress percentage
	EventProgress
	// EventDone marks the end of a run
	EventDone
)

// Event is one message from the batch worker.
type Event struct {
	Kind    EventKind
	Title   string
	Message string
	// Percent is set for EventProgress.
	Percent int
	// OutputDir is set for EventDone.
	OutputDir string
	// Aborted is set for EventDone when the run stopped before processing files.
	Aborted bool
}

// Queue is the bounded message queue between the single batch worker and the
// presentation layer. Put never blocks the worker; Drain never blocks the
// frontend timer that empties it.
type Queue struct {
	ch chan Event
}

// NewQueue creates a queue holding up to size events.
func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan Event, size)}
}

// Put enqueues an event, dropping it when the queue is full.
func (q *Queue) Put(ev Event) {
	select {
	case q.ch <- ev:
	default:
	}
}

// Drain returns every queued event without blocking.
func (q *Queue) Drain() []Event {
	var events []Event
	for {
		select {
		case ev := <-q.ch:
			events = append(events, ev)
		default:
			return events
		}
	}
}
