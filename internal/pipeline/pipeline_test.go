package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/transcription"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/types"
)

type stubTranscriber struct {
	result transcription.Result
	err    error
}

func (s stubTranscriber) Transcribe(ctx context.Context, path string) (transcription.Result, error) {
	return s.result, s.err
}

type stubExtractor struct {
	summary types.MeetingSummary
	err     error
	panics  bool
	gotText string
}

func (s *stubExtractor) Extract(ctx context.Context, transcript string) (types.MeetingSummary, error) {
	s.gotText = transcript
	if s.panics {
		panic("extractor exploded")
	}
	return s.summary, s.err
}

func stubRenderer(s types.MeetingSummary) string { return "rendered document" }

func collect(t *testing.T, ch <-chan Event) []Event {
	t.Helper()
	var events []Event
	for ev := range ch {
		events = append(events, ev)
	}
	return events
}

func TestRunSuccessEmitsOrderedStates(t *testing.T) {
	ext := &stubExtractor{}
	p := New(
		stubTranscriber{result: transcription.Result{Text: "hello", Language: "en"}},
		ext,
		stubRenderer,
	)

	events := collect(t, p.Run(context.Background(), "meeting.mp3"))
	want := []State{StateTranscribing, StateSummarizing, StateRendering, StateDone}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, st := range want {
		if events[i].State != st {
			t.Fatalf("event %d state = %s, want %s", i, events[i].State, st)
		}
	}

	last := events[len(events)-1]
	if last.Document != "rendered document" {
		t.Fatalf("terminal document = %q", last.Document)
	}
	if last.Summary == nil {
		t.Fatal("terminal event missing summary record")
	}
	for _, ev := range events[:len(events)-1] {
		if ev.Document != "" {
			t.Fatalf("non-terminal event carries a document: %+v", ev)
		}
	}
}

func TestRunMissingFileYieldsSingleFailure(t *testing.T) {
	p := New(
		stubTranscriber{err: fmt.Errorf("%w: gone.mp3", transcription.ErrFileNotFound)},
		&stubExtractor{},
		stubRenderer,
	)

	events := collect(t, p.Run(context.Background(), "gone.mp3"))
	// One status before the stage runs, then exactly one failure.
	if len(events) != 2 {
		t.Fatalf("got %d events: %+v", len(events), events)
	}
	failed := events[1]
	if failed.State != StateFailed {
		t.Fatalf("state = %s, want failed", failed.State)
	}
	if failed.Message != "transcription failed: file not found" {
		t.Fatalf("message = %q", failed.Message)
	}
	if failed.Document != "" || failed.Summary != nil {
		t.Fatalf("failure event must carry no result: %+v", failed)
	}
}

func TestRunExtractorFailurePreservesTranscriptProgress(t *testing.T) {
	p := New(
		stubTranscriber{result: transcription.Result{Text: "hello"}},
		&stubExtractor{err: errors.New("invalid model output")},
		stubRenderer,
	)

	events := collect(t, p.Run(context.Background(), "meeting.mp3"))
	if len(events) != 3 {
		t.Fatalf("got %d events: %+v", len(events), events)
	}
	if events[1].State != StateSummarizing {
		t.Fatalf("transcript success status missing: %+v", events)
	}
	last := events[2]
	if last.State != StateFailed {
		t.Fatalf("state = %s, want failed", last.State)
	}
	if last.Message != "summary generation failed" {
		t.Fatalf("message = %q", last.Message)
	}
	if last.Document != "" {
		t.Fatal("failure event must carry no result")
	}
}

func TestRunGenericTranscriptionFailureIsSanitized(t *testing.T) {
	p := New(
		stubTranscriber{err: transcription.ErrTranscriptionFailed},
		&stubExtractor{},
		stubRenderer,
	)

	events := collect(t, p.Run(context.Background(), "meeting.mp3"))
	last := events[len(events)-1]
	if last.State != StateFailed || last.Message != "transcription failed" {
		t.Fatalf("got %+v", last)
	}
}

func TestRunRecoversFromPanic(t *testing.T) {
	p := New(
		stubTranscriber{result: transcription.Result{Text: "hello"}},
		&stubExtractor{panics: true},
		stubRenderer,
	)

	events := collect(t, p.Run(context.Background(), "meeting.mp3"))
	last := events[len(events)-1]
	if last.State != StateFailed {
		t.Fatalf("panic must map to failed, got %+v", last)
	}
	if last.Message != "internal pipeline error" {
		t.Fatalf("message = %q", last.Message)
	}
}

func TestRunAppliesRefinerWhenConfigured(t *testing.T) {
	ext := &stubExtractor{}
	p := New(
		stubTranscriber{result: transcription.Result{Text: "Um, the BUDGET"}},
		ext,
		stubRenderer,
		WithRefiner(func(s string) string { return "refined" }),
	)

	collect(t, p.Run(context.Background(), "meeting.mp3"))
	if ext.gotText != "refined" {
		t.Fatalf("extractor saw %q, want refined text", ext.gotText)
	}
}

func TestRunFallsBackWhenRefinerReturnsEmpty(t *testing.T) {
	ext := &stubExtractor{}
	p := New(
		stubTranscriber{result: transcription.Result{Text: "raw transcript"}},
		ext,
		stubRenderer,
		WithRefiner(func(s string) string { return "" }),
	)

	collect(t, p.Run(context.Background(), "meeting.mp3"))
	if ext.gotText != "raw transcript" {
		t.Fatalf("extractor saw %q, want raw fallback", ext.gotText)
	}
}

func TestRunStopsWhenCallerCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := New(
		stubTranscriber{result: transcription.Result{Text: "hello"}},
		&stubExtractor{},
		stubRenderer,
	)

	ch := p.Run(ctx, "meeting.mp3")
	<-ch // consume the first event, then walk away
	cancel()

	done := make(chan struct{})
	go func() {
		for range ch {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not terminate after cancellation")
	}
}
