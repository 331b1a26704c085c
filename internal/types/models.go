package types

// MeetingSummary is the canonical structured record extracted from a
// transcript. Every field is optional: a transcript that never mentions
// a location yields a nil Location, and a collection with no evidence
// is an empty (or nil) slice. Nil and empty collections mean the same
// thing everywhere downstream.
type MeetingSummary struct {
	Location *string `json:"location"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Duration *string `json:"duration"`
	Summary  *string `json:"summary"`

	Agenda          []string `json:"agenda"`
	Participants    []string `json:"participants"`
	Topics          []string `json:"topics"`
	KeyPoints       []string `json:"key_points"`
	ActionItems     []string `json:"action_items"`
	NextSteps       []string `json:"next_steps"`
	Decisions       []string `json:"decisions"`
	Recommendations []string `json:"recommendations"`
	FollowUps       []string `json:"follow_ups"`
	Questions       []string `json:"questions"`
	Concerns        []string `json:"concerns"`
	Feedback        []string `json:"feedback"`
	Suggestions     []string `json:"suggestions"`
	Improvements    []string `json:"improvements"`
}
