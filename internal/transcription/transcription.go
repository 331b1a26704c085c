package transcription

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/logger"
)

// Error kinds surfaced to the orchestrator. Backend internals are
// logged here and never leak past these sentinels.
var (
	ErrFileNotFound        = errors.New("file not found")
	ErrTranscriptionFailed = errors.New("transcription failed")
)

// Result is the transient output of one transcription call. Language
// and Duration are best effort; Text is the recognized transcript.
type Result struct {
	Text     string
	Language string
	Duration float64 // seconds
}

// Transcriber converts a local audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (Result, error)
}

// Adapter is the pipeline-facing transcriber. It resolves a backend
// from the process-wide model cache (one load per model key), re-checks
// that the file still exists, and sanitizes backend failures.
type Adapter struct {
	cache *Cache
	model string
	log   *logger.Logger
}

func NewAdapter(cache *Cache, model string) *Adapter {
	return &Adapter{cache: cache, model: model, log: logger.New()}
}

func (a *Adapter) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	log := a.log.WithField("component", "transcription").WithField("model", a.model)

	// The caller validated the file already, but it may have vanished
	// since. Fail gracefully rather than letting a backend blow up on a
	// missing path.
	if _, err := os.Stat(audioPath); err != nil {
		log.WithError(err).WithField("audio_path", audioPath).Warn("audio file missing")
		return Result{}, fmt.Errorf("%w: %s", ErrFileNotFound, audioPath)
	}

	backend, err := a.cache.Get(a.model)
	if err != nil {
		log.WithError(err).Error("model load failed")
		return Result{}, fmt.Errorf("%w: model %q unavailable", ErrTranscriptionFailed, a.model)
	}

	res, err := backend.Transcribe(ctx, audioPath)
	if err != nil {
		// Full detail stays in the log; callers get the generic kind.
		// Context errors pass through so deadlines stay distinguishable.
		log.WithError(err).WithField("audio_path", audioPath).Error("inference failed")
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return Result{}, fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
		}
		return Result{}, ErrTranscriptionFailed
	}

	log.WithField("language", res.Language).
		WithField("duration_sec", res.Duration).
		WithField("text_len", len(res.Text)).
		Info("transcription completed")
	return res, nil
}
