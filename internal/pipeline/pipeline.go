// Package pipeline sequences transcription, extraction, and rendering
// for one audio file, emitting an ordered stream of status events.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/logger"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/transcription"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/types"
)

// State names one pipeline stage. failed is terminal and reachable
// from every stage.
type State string

const (
	StateTranscribing State = "transcribing"
	StateSummarizing  State = "summarizing"
	StateRendering    State = "rendering"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

// Event is one entry of the run's status stream. Document and Summary
// are set only on the terminal done event.
type Event struct {
	State    State                 `json:"state"`
	Message  string                `json:"message"`
	Document string                `json:"document,omitempty"`
	Summary  *types.MeetingSummary `json:"summary,omitempty"`
}

// Extractor produces a validated MeetingSummary from transcript text.
type Extractor interface {
	Extract(ctx context.Context, transcript string) (types.MeetingSummary, error)
}

// Renderer formats a validated record; assumed infallible.
type Renderer func(types.MeetingSummary) string

// Refiner optionally normalizes transcript text before extraction.
type Refiner func(string) string

// Pipeline runs the staged flow. Runs are independent of each other;
// the only state shared between them lives in the transcription
// adapter's model cache.
type Pipeline struct {
	transcriber transcription.Transcriber
	extractor   Extractor
	render      Renderer
	refine      Refiner

	transcribeTimeout time.Duration
	extractTimeout    time.Duration

	log *logger.Logger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithRefiner enables the optional transcript refinement stage.
func WithRefiner(r Refiner) Option {
	return func(p *Pipeline) { p.refine = r }
}

// WithTimeouts bounds the transcription and model calls. Zero leaves a
// call unbounded beyond its client's own timeout.
func WithTimeouts(transcribe, extract time.Duration) Option {
	return func(p *Pipeline) {
		p.transcribeTimeout = transcribe
		p.extractTimeout = extract
	}
}

func New(t transcription.Transcriber, e Extractor, r Renderer, opts ...Option) *Pipeline {
	p := &Pipeline{
		transcriber: t,
		extractor:   e,
		render:      r,
		log:         logger.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes one audio file and returns the run's event stream. The
// channel is closed after the terminal done or failed event; the
// caller must consume it fully to observe the final result. Failures
// at any stage end the run; nothing is retried here.
//
// A caller that may stop consuming before the channel closes must pass
// a cancelable context and cancel it: sends block until received or
// ctx is done, so abandoning the channel under a context that never
// ends leaves the run goroutine blocked.
func (p *Pipeline) Run(ctx context.Context, audioPath string) <-chan Event {
	events := make(chan Event)
	go p.run(ctx, audioPath, events)
	return events
}

func (p *Pipeline) run(ctx context.Context, audioPath string, events chan<- Event) {
	runID := uuid.New().String()
	log := p.log.WithRun(runID).WithField("audio_path", audioPath)

	defer close(events)
	// Last line of defense: nothing below should panic, but if it
	// does the caller still gets a terminal failed event.
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("pipeline panicked")
			p.emit(ctx, events, Event{State: StateFailed, Message: "internal pipeline error"})
		}
	}()

	// Transcription
	log.Info("starting transcription")
	if !p.emit(ctx, events, Event{State: StateTranscribing, Message: "transcription started"}) {
		return
	}

	tctx, cancel := p.stageContext(ctx, p.transcribeTimeout)
	result, err := p.transcriber.Transcribe(tctx, audioPath)
	cancel()
	if err != nil {
		log.WithError(err).Warn("transcription stage failed")
		p.emit(ctx, events, Event{State: StateFailed, Message: transcriptionFailureMessage(err)})
		return
	}
	log.WithField("language", result.Language).Info("transcription succeeded")

	text := result.Text
	if p.refine != nil {
		refined := p.refine(text)
		if refined == "" && text != "" {
			// Refinement unavailable; keep the raw transcript.
			log.Warn("refinement produced empty text, using raw transcript")
		} else {
			text = refined
		}
	}

	// Extraction
	if !p.emit(ctx, events, Event{State: StateSummarizing, Message: "transcription completed, generating summary"}) {
		return
	}

	ectx, cancel := p.stageContext(ctx, p.extractTimeout)
	summary, err := p.extractor.Extract(ectx, text)
	cancel()
	if err != nil {
		log.WithError(err).Warn("extraction stage failed")
		p.emit(ctx, events, Event{State: StateFailed, Message: extractionFailureMessage(err)})
		return
	}
	log.Info("summary extracted")

	// Rendering: infallible for a validated record.
	if !p.emit(ctx, events, Event{State: StateRendering, Message: "summary generated, rendering document"}) {
		return
	}
	document := p.render(summary)

	log.Info("pipeline completed")
	p.emit(ctx, events, Event{State: StateDone, Message: "summary complete", Document: document, Summary: &summary})
}

// emit delivers an event unless the caller stopped consuming.
func (p *Pipeline) emit(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (p *Pipeline) stageContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// The orchestrator is the only place failures become user-facing text.
// Only safely expressible reasons are surfaced; detail stays in logs.

func transcriptionFailureMessage(err error) string {
	switch {
	case errors.Is(err, transcription.ErrFileNotFound):
		return "transcription failed: file not found"
	case errors.Is(err, context.DeadlineExceeded):
		return "transcription failed: timeout"
	default:
		return "transcription failed"
	}
}

func extractionFailureMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "summary generation failed: timeout"
	}
	return "summary generation failed"
}
