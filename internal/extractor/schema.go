package extractor

import "encoding/json"

type fieldKind int

const (
	kindScalar fieldKind = iota // string or null
	kindList                    // ordered sequence of strings
)

type field struct {
	name string
	kind fieldKind
}

// schemaFields is the single source of truth for the MeetingSummary
// schema: it drives the instruction sent to the model and the
// validation of its response. Order matches types.MeetingSummary's
// original declaration.
var schemaFields = []field{
	{"agenda", kindList},
	{"location", kindScalar},
	{"date", kindScalar},
	{"time", kindScalar},
	{"duration", kindScalar},
	{"participants", kindList},
	{"topics", kindList},
	{"summary", kindScalar},
	{"key_points", kindList},
	{"action_items", kindList},
	{"next_steps", kindList},
	{"decisions", kindList},
	{"recommendations", kindList},
	{"follow_ups", kindList},
	{"questions", kindList},
	{"concerns", kindList},
	{"feedback", kindList},
	{"suggestions", kindList},
	{"improvements", kindList},
}

// schemaJSON serializes the field registry as a JSON-schema document
// for embedding in the model instruction. Deterministic output: keys
// are rendered in encoding/json's sorted order, required fields in
// declaration order.
func schemaJSON() string {
	properties := map[string]any{}
	required := make([]string, 0, len(schemaFields))
	for _, f := range schemaFields {
		switch f.kind {
		case kindScalar:
			properties[f.name] = map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string"},
					map[string]any{"type": "null"},
				},
			}
		case kindList:
			properties[f.name] = map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			}
		}
		required = append(required, f.name)
	}

	doc := map[string]any{
		"title":      "MeetingSummary",
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
	out, _ := json.MarshalIndent(doc, "", "  ")
	return string(out)
}
