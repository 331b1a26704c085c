package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Transcription providers understood by the adapter.
const (
	ProviderWhisper    = "whisper"
	ProviderAssemblyAI = "assemblyai"
)

// Settings holds every knob the pipeline reads from the environment.
// The environment is the single configuration surface; the .env file is
// loaded by main before this is built.
type Settings struct {
	// LLM
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	OpenAITemperature float64

	// Transcription
	TranscribeProvider string
	TranscribeBaseURL  string
	WhisperModel       string
	AssemblyAIAPIKey   string

	// Input constraints, enforced by the caller before the pipeline runs
	MaxFileSize      int64 // bytes
	SupportedFormats []string

	// Pipeline
	RefineTranscript  bool
	LLMTimeout        time.Duration
	TranscribeTimeout time.Duration

	Port string
}

// Load reads settings from the environment, applying defaults.
func Load() Settings {
	return Settings{
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:       envOr("OPENAI_MODEL", "gpt-4o"),
		OpenAITemperature: envFloat("OPENAI_TEMPERATURE", 0.2),

		TranscribeProvider: envOr("TRANSCRIBE_PROVIDER", ProviderWhisper),
		TranscribeBaseURL:  envOr("TRANSCRIBE_BASE_URL", "https://api.openai.com/v1"),
		WhisperModel:       envOr("WHISPER_MODEL", "whisper-1"),
		AssemblyAIAPIKey:   os.Getenv("ASSEMBLYAI_API_KEY"),

		MaxFileSize:      envInt64("MAX_FILE_SIZE", 50) * 1024 * 1024,
		SupportedFormats: []string{".mp3", ".wav", ".m4a"},

		RefineTranscript:  strings.EqualFold(os.Getenv("REFINE_TRANSCRIPT"), "true"),
		LLMTimeout:        envDuration("LLM_TIMEOUT", 60*time.Second),
		TranscribeTimeout: envDuration("TRANSCRIBE_TIMEOUT", 120*time.Second),

		Port: envOr("PORT", "8080"),
	}
}

// Validate fails fast when a mandatory credential is missing, before
// any pipeline can start.
func (s Settings) Validate() error {
	if s.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY not set")
	}
	switch s.TranscribeProvider {
	case ProviderWhisper:
	case ProviderAssemblyAI:
		if s.AssemblyAIAPIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY not set")
		}
	default:
		return fmt.Errorf("unknown TRANSCRIBE_PROVIDER: %q", s.TranscribeProvider)
	}
	if s.OpenAITemperature < 0 || s.OpenAITemperature > 2 {
		return fmt.Errorf("OPENAI_TEMPERATURE out of range: %v", s.OpenAITemperature)
	}
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func envInt64(k string, def int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
