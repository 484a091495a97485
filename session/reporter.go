package session

import "errors"

type EventKind string

const (
	FileSelected     EventKind = "file_selected"
	FileRejected     EventKind = "file_rejected"
	LanguageChanged  EventKind = "language_changed"
	SummarizeStarted EventKind = "summarize_started"
	SummaryReady     EventKind = "summary_ready"
	SummaryFailed    EventKind = "summary_failed"
	SummaryDiscarded EventKind = "summary_discarded"
	PipelineReset    EventKind = "pipeline_reset"
	DraftChanged     EventKind = "draft_changed"
	QuestionAsked    EventKind = "question_asked"
	AnswerReceived   EventKind = "answer_received"
	AnswerFailed     EventKind = "answer_failed"
)

// Event describes one applied transition and the state right after it.
type Event struct {
	Kind     EventKind
	Snapshot Snapshot
}

// Reporter observes session transitions. Send is called on the event loop:
// it must not block and must not call back into the Controller.
type Reporter interface {
	Send(event Event) error
}

// NoOpReporter implements Reporter with no-op operations
type NoOpReporter struct{}

func (r *NoOpReporter) Send(event Event) error {
	return nil
}

var ErrReporterFull = errors.New("reporter buffer full")

// ChannelReporter forwards events to a buffered channel, dropping them when
// the buffer is full.
type ChannelReporter struct {
	events chan Event
}

func NewChannelReporter(size int) *ChannelReporter {
	return &ChannelReporter{events: make(chan Event, size)}
}

func (r *ChannelReporter) Send(event Event) error {
	select {
	case r.events <- event:
		return nil
	default:
		return ErrReporterFull
	}
}

func (r *ChannelReporter) Events() <-chan Event {
	return r.events
}
