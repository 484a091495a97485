package session

import (
	"context"
	"sync"

	"github.com/SaiNageswarS/docqa-boot/backend"
	"github.com/SaiNageswarS/docqa-boot/document"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// Controller owns the document pipeline and the chat session of one user.
//
// All transitions run on a single event loop goroutine, one at a time. Public
// methods submit a transition to the loop and return once it has been applied.
// Backend calls run outside the loop and their results come back to it as
// further events.
type Controller struct {
	backend  backend.Backend
	reporter Reporter

	ctx     context.Context
	cancel  context.CancelFunc
	events  chan func()
	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once

	// owned by the event loop
	pipeline   pipeline
	transcript Transcript
	draft      string
	answering  bool
}

type Option func(*Controller)

func WithReporter(reporter Reporter) Option {
	return func(c *Controller) { c.reporter = reporter }
}

// WithLanguage sets the initial language. Unsupported codes fall back to English.
func WithLanguage(lang document.Language) Option {
	return func(c *Controller) { c.pipeline.language = lang.OrDefault() }
}

func New(b backend.Backend, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Controller{
		backend:  b,
		reporter: &NoOpReporter{},
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan func()),
		quit:     make(chan struct{}),
		stopped:  make(chan struct{}),
		pipeline: pipeline{language: document.DefaultLanguage},
	}

	for _, opt := range opts {
		opt(c)
	}

	go c.loop()
	return c
}

// Close stops the event loop. Outstanding backend calls are cancelled and
// their results dropped.
func (c *Controller) Close() {
	c.once.Do(func() {
		c.cancel()
		close(c.quit)
	})
	<-c.stopped
}

func (c *Controller) Snapshot() (Snapshot, error) {
	var snap Snapshot
	err := c.do(func() error {
		snap = c.snapshot()
		return nil
	})
	return snap, err
}

func (c *Controller) loop() {
	defer close(c.stopped)
	for {
		select {
		case fn := <-c.events:
			fn()
		case <-c.quit:
			return
		}
	}
}

// do runs fn on the event loop and waits for it.
func (c *Controller) do(fn func() error) error {
	result := make(chan error, 1)
	select {
	case c.events <- func() { result <- fn() }:
	case <-c.stopped:
		return ErrClosed
	}

	select {
	case err := <-result:
		return err
	case <-c.stopped:
		// the loop finishes a received event before it stops
		select {
		case err := <-result:
			return err
		default:
			return ErrClosed
		}
	}
}

// post queues fn on the event loop without waiting for it.
func (c *Controller) post(fn func()) {
	select {
	case c.events <- fn:
	case <-c.stopped:
	}
}

func (c *Controller) report(kind EventKind) {
	if err := c.reporter.Send(Event{Kind: kind, Snapshot: c.snapshot()}); err != nil {
		logger.Error("Failed to report session event", zap.String("event", string(kind)), zap.Error(err))
	}
}

func (c *Controller) snapshot() Snapshot {
	p := c.pipeline
	snap := Snapshot{
		Phase:      p.phase,
		HasFile:    p.file != nil,
		Language:   p.language,
		Summary:    p.summary.Clone(),
		DocumentID: p.documentID(),
		LastError:  p.lastError,
		Draft:      c.draft,
		Answering:  c.answering,
		Transcript: c.transcript.Turns(),
	}
	if p.file != nil {
		snap.FileName = p.file.Name
	}
	return snap
}
