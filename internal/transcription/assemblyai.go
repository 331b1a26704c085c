package transcription

import (
	"context"
	"fmt"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

// assemblyAIBackend uploads the local file to AssemblyAI and waits for
// the hosted transcription to finish.
type assemblyAIBackend struct {
	client       *aai.Client
	pollInterval time.Duration
}

// NewAssemblyAIBackend builds a transcriber on the official SDK client.
func NewAssemblyAIBackend(apiKey string) Transcriber {
	return &assemblyAIBackend{
		client:       aai.NewClient(apiKey),
		pollInterval: 3 * time.Second,
	}
}

func (b *assemblyAIBackend) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return Result{}, fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	uploadURL, err := b.client.Upload(ctx, file)
	if err != nil {
		return Result{}, fmt.Errorf("upload to assemblyai: %w", err)
	}

	params := &aai.TranscriptOptionalParams{
		LanguageDetection: aai.Bool(true),
	}
	transcript, err := b.client.Transcripts.TranscribeFromURL(ctx, uploadURL, params)
	if err != nil {
		return Result{}, fmt.Errorf("submit transcription: %w", err)
	}

	// TranscribeFromURL waits for a terminal status; the loop below
	// only runs if the job is still queued or processing.
	for transcript.Status != aai.TranscriptStatusCompleted && transcript.Status != aai.TranscriptStatusError {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-time.After(b.pollInterval):
		}
		if transcript.ID == nil {
			return Result{}, fmt.Errorf("transcript has no id")
		}
		transcript, err = b.client.Transcripts.Get(ctx, *transcript.ID)
		if err != nil {
			return Result{}, fmt.Errorf("poll transcription: %w", err)
		}
	}

	if transcript.Status == aai.TranscriptStatusError {
		reason := "unknown"
		if transcript.Error != nil {
			reason = *transcript.Error
		}
		return Result{}, fmt.Errorf("assemblyai transcription failed: %s", reason)
	}

	res := Result{Language: "unknown"}
	if transcript.Text != nil {
		res.Text = *transcript.Text
	}
	if transcript.LanguageCode != "" {
		res.Language = string(transcript.LanguageCode)
	}
	if transcript.AudioDuration != nil {
		res.Duration = *transcript.AudioDuration
	}
	return res, nil
}
