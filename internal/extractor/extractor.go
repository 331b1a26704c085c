// Package extractor turns free-form transcript text into a validated
// MeetingSummary by constraining a chat model to a fixed JSON schema.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/llm"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/logger"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/types"
)

// ErrInvalidOutput marks a model response that could not be parsed or
// did not conform to the MeetingSummary schema.
var ErrInvalidOutput = errors.New("invalid model output")

const systemPromptTemplate = `You are a meeting summarizer. You will be given a meeting transcript.
Your task is to generate a strict JSON summary of the meeting, following this JSON schema exactly:

%s

If a schema field has no evidence in the transcript, return null for string fields and [] for array fields.
Respond with valid JSON only. Do not include any explanation, markdown, or commentary and do not ask further questions. Do not wrap the JSON in code blocks. Only the raw JSON object should be returned.`

// Extractor sends the schema-constrained instruction to the model and
// validates the response. The llm client handle is injected at
// construction; one extractor serves concurrent runs.
type Extractor struct {
	llm         *llm.Client
	model       string
	temperature float64
	log         *logger.Logger
}

func New(client *llm.Client, model string, temperature float64) *Extractor {
	return &Extractor{
		llm:         client,
		model:       model,
		temperature: temperature,
		log:         logger.New(),
	}
}

// Extract returns either a MeetingSummary with every declared field
// populated (scalar-or-nil, sequence-or-empty) or ErrInvalidOutput.
// No retry happens here; retry policy belongs to the caller.
func (e *Extractor) Extract(ctx context.Context, transcript string) (types.MeetingSummary, error) {
	log := e.log.WithField("component", "extractor").WithField("model", e.model)

	system := fmt.Sprintf(systemPromptTemplate, schemaJSON())
	user := "Here is the meeting transcript: " + transcript

	raw, err := e.llm.ChatCompletion(ctx, e.model, e.temperature, system, user)
	if err != nil {
		return types.MeetingSummary{}, fmt.Errorf("model invocation: %w", err)
	}

	payload, err := parsePayload(raw)
	if err != nil {
		// The raw response is the thing to diagnose; keep it in the log.
		log.WithError(err).WithField("raw_response", raw).Error("model output is not a JSON object")
		return types.MeetingSummary{}, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	summary, err := validate(normalize(payload))
	if err != nil {
		log.WithError(err).WithField("raw_response", raw).Error("model output failed schema validation")
		return types.MeetingSummary{}, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	log.Info("summary extracted")
	return summary, nil
}

// parsePayload trims whitespace, strips one surrounding markdown fence
// pair if present, and requires the remainder to be a single JSON
// object. Anything else is rejected outright; no substring guessing.
func parsePayload(raw string) (map[string]any, error) {
	s := strings.TrimSpace(raw)
	s = stripFence(s)
	if s == "" {
		return nil, fmt.Errorf("empty response")
	}

	dec := json.NewDecoder(strings.NewReader(s))
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse JSON: %v", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing content after JSON object")
	}
	return payload, nil
}

// stripFence removes a leading ```/```json line and a trailing ```
// line when both are present. Fences are the most common way models
// violate the raw-JSON mandate.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return s
	}
	body := strings.TrimSpace(s[i+1:])
	if !strings.HasSuffix(body, "```") {
		return s
	}
	return strings.TrimSpace(strings.TrimSuffix(body, "```"))
}

// normalize unwraps the "properties" container some responses key the
// record under, so validation always sees the flat shape.
func normalize(payload map[string]any) map[string]any {
	inner, ok := payload["properties"].(map[string]any)
	if !ok {
		return payload
	}
	for _, f := range schemaFields {
		if _, present := inner[f.name]; present {
			return inner
		}
	}
	return payload
}

// validate checks every declared field: scalars must be string or
// null, collections must be sequences of strings; absent fields
// default to null and the empty sequence. Unknown fields are ignored;
// wrong types are rejected rather than dropped.
func validate(payload map[string]any) (types.MeetingSummary, error) {
	canonical := make(map[string]any, len(schemaFields))
	for _, f := range schemaFields {
		v, present := payload[f.name]
		switch f.kind {
		case kindScalar:
			if !present || v == nil {
				canonical[f.name] = nil
				continue
			}
			s, ok := v.(string)
			if !ok {
				return types.MeetingSummary{}, fmt.Errorf("field %q: expected string or null, got %T", f.name, v)
			}
			canonical[f.name] = s
		case kindList:
			if !present || v == nil {
				canonical[f.name] = []string{}
				continue
			}
			items, ok := v.([]any)
			if !ok {
				return types.MeetingSummary{}, fmt.Errorf("field %q: expected array of strings, got %T", f.name, v)
			}
			list := make([]string, 0, len(items))
			for i, item := range items {
				s, ok := item.(string)
				if !ok {
					return types.MeetingSummary{}, fmt.Errorf("field %q: element %d is %T, not string", f.name, i, item)
				}
				list = append(list, s)
			}
			canonical[f.name] = list
		}
	}

	data, err := json.Marshal(canonical)
	if err != nil {
		return types.MeetingSummary{}, fmt.Errorf("re-encode canonical record: %v", err)
	}
	var summary types.MeetingSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return types.MeetingSummary{}, fmt.Errorf("decode canonical record: %v", err)
	}
	return summary, nil
}
