package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/config"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/extractor"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/fileutil"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/llm"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/logger"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/pipeline"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/refine"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/render"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/report"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/transcription"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "meeting-summarizer").Info("starting service")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	llmClient := llm.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.LLMTimeout)
	ext := extractor.New(llmClient, cfg.OpenAIModel, cfg.OpenAITemperature)

	cache := transcription.NewCache(func(model string) (transcription.Transcriber, error) {
		if cfg.TranscribeProvider == config.ProviderAssemblyAI {
			return transcription.NewAssemblyAIBackend(cfg.AssemblyAIAPIKey), nil
		}
		return transcription.NewWhisperBackend(cfg.TranscribeBaseURL, cfg.OpenAIAPIKey, model, cfg.TranscribeTimeout), nil
	})
	modelKey := cfg.WhisperModel
	if cfg.TranscribeProvider == config.ProviderAssemblyAI {
		modelKey = config.ProviderAssemblyAI
	}
	adapter := transcription.NewAdapter(cache, modelKey)

	opts := []pipeline.Option{
		pipeline.WithTimeouts(cfg.TranscribeTimeout, cfg.LLMTimeout),
	}
	if cfg.RefineTranscript {
		opts = append(opts, pipeline.WithRefiner(refine.Refine))
	}
	pipe := pipeline.New(adapter, ext, render.Markdown, opts...)

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// summarize endpoint: streams the run's events as NDJSON
	mux.HandleFunc("/summarize", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "summarize")
		reqLog.Info("summarize request received")

		audioPath := r.URL.Query().Get("audio_path")
		if audioPath == "" {
			reqLog.Warn("missing audio_path")
			http.Error(w, "missing audio_path", http.StatusBadRequest)
			return
		}
		if err := fileutil.ValidateAudioFile(audioPath, cfg.MaxFileSize, cfg.SupportedFormats); err != nil {
			reqLog.WithError(err).Warn("input validation failed")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		exportPath := r.URL.Query().Get("export_path")

		w.Header().Set("Content-Type", "application/x-ndjson")
		flusher, _ := w.(http.Flusher)

		start := time.Now()
		enc := json.NewEncoder(w)
		for ev := range pipe.Run(r.Context(), audioPath) {
			if ev.State == pipeline.StateDone && exportPath != "" && ev.Summary != nil {
				if err := report.WriteXLSX(exportPath, *ev.Summary); err != nil {
					reqLog.WithError(err).Error("report export failed")
				} else {
					reqLog.WithField("export_path", exportPath).Info("report exported")
				}
			}
			if err := enc.Encode(ev); err != nil {
				reqLog.WithError(err).Error("failed to write event")
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).Info("summarize finished")
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
