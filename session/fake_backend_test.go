package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SaiNageswarS/docqa-boot/backend"
	"github.com/stretchr/testify/require"
)

type summarizeReply struct {
	summary *backend.Summary
	err     error
}

type answerReply struct {
	answer string
	err    error
}

type summarizeCall struct {
	req   backend.SummarizeRequest
	reply chan summarizeReply
}

type answerCall struct {
	req   backend.AnswerRequest
	reply chan answerReply
}

// fakeBackend blocks every call until the test resolves it by index.
type fakeBackend struct {
	mu             sync.Mutex
	summarizeCalls []*summarizeCall
	answerCalls    []*answerCall

	summarizeStarted chan struct{}
	answerStarted    chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		summarizeStarted: make(chan struct{}, 16),
		answerStarted:    make(chan struct{}, 16),
	}
}

func (f *fakeBackend) Summarize(ctx context.Context, req backend.SummarizeRequest) (*backend.Summary, error) {
	call := &summarizeCall{req: req, reply: make(chan summarizeReply, 1)}
	f.mu.Lock()
	f.summarizeCalls = append(f.summarizeCalls, call)
	f.mu.Unlock()
	f.summarizeStarted <- struct{}{}

	select {
	case r := <-call.reply:
		return r.summary, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeBackend) Answer(ctx context.Context, req backend.AnswerRequest) (string, error) {
	call := &answerCall{req: req, reply: make(chan answerReply, 1)}
	f.mu.Lock()
	f.answerCalls = append(f.answerCalls, call)
	f.mu.Unlock()
	f.answerStarted <- struct{}{}

	select {
	case r := <-call.reply:
		return r.answer, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (f *fakeBackend) resolveSummarize(i int, reply summarizeReply) {
	f.mu.Lock()
	call := f.summarizeCalls[i]
	f.mu.Unlock()
	call.reply <- reply
}

func (f *fakeBackend) resolveAnswer(i int, reply answerReply) {
	f.mu.Lock()
	call := f.answerCalls[i]
	f.mu.Unlock()
	call.reply <- reply
}

func (f *fakeBackend) summarizeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.summarizeCalls)
}

func (f *fakeBackend) answerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.answerCalls)
}

func (f *fakeBackend) lastSummarizeCall() backend.SummarizeRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.summarizeCalls[len(f.summarizeCalls)-1].req
}

func (f *fakeBackend) lastAnswerCall() backend.AnswerRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.answerCalls[len(f.answerCalls)-1].req
}

func waitStarted(t *testing.T, started <-chan struct{}) {
	t.Helper()
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("backend call was not dispatched")
	}
}

// waitEvent drains events until one of the given kind arrives.
func waitEvent(t *testing.T, r *ChannelReporter, kind EventKind) Event {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-r.Events():
			if ev.Kind == kind {
				return ev
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", kind)
			return Event{}
		}
	}
}

func newTestController(t *testing.T) (*Controller, *fakeBackend, *ChannelReporter) {
	t.Helper()
	fb := newFakeBackend()
	reporter := NewChannelReporter(256)
	c := New(fb, WithReporter(reporter))
	t.Cleanup(c.Close)
	return c, fb, reporter
}

func mustSnapshot(t *testing.T, c *Controller) Snapshot {
	t.Helper()
	snap, err := c.Snapshot()
	require.NoError(t, err)
	return snap
}
