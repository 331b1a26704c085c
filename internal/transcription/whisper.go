package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// whisperBackend speaks the OpenAI-compatible /audio/transcriptions
// protocol, which both the hosted API and local whisper servers expose.
type whisperBackend struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewWhisperBackend builds a whisper transcriber for one model id.
func NewWhisperBackend(baseURL, apiKey, model string, timeout time.Duration) Transcriber {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &whisperBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: timeout},
	}
}

// verbose_json carries language and duration next to the text.
type whisperResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

func (w *whisperBackend) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return Result{}, fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return Result{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return Result{}, fmt.Errorf("copy audio into form: %w", err)
	}
	_ = mw.WriteField("model", w.model)
	_ = mw.WriteField("response_format", "verbose_json")
	if err := mw.Close(); err != nil {
		return Result{}, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", w.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if w.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+w.apiKey)
	}

	resp, err := w.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("transcription API error %d: %s", resp.StatusCode, string(raw))
	}

	var parsed whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, fmt.Errorf("decode transcription response: %w", err)
	}

	lang := parsed.Language
	if lang == "" {
		lang = "unknown"
	}
	return Result{Text: parsed.Text, Language: lang, Duration: parsed.Duration}, nil
}
