// Package render formats a validated MeetingSummary as a markdown
// document. Rendering is total: any valid record, including the
// all-empty one, produces a complete document.
package render

import (
	"fmt"
	"strings"

	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/types"
)

const notSpecified = "**Not Specified**"

type section struct {
	title string
	items func(types.MeetingSummary) []string
}

var sections = []section{
	{"Agenda", func(s types.MeetingSummary) []string { return s.Agenda }},
	{"Participants", func(s types.MeetingSummary) []string { return s.Participants }},
	{"Topics Discussed", func(s types.MeetingSummary) []string { return s.Topics }},
}

var trailingSections = []section{
	{"Key Points", func(s types.MeetingSummary) []string { return s.KeyPoints }},
	{"Action Items", func(s types.MeetingSummary) []string { return s.ActionItems }},
	{"Next Steps", func(s types.MeetingSummary) []string { return s.NextSteps }},
	{"Decisions", func(s types.MeetingSummary) []string { return s.Decisions }},
	{"Recommendations", func(s types.MeetingSummary) []string { return s.Recommendations }},
	{"Follow Ups", func(s types.MeetingSummary) []string { return s.FollowUps }},
	{"Questions", func(s types.MeetingSummary) []string { return s.Questions }},
	{"Concerns", func(s types.MeetingSummary) []string { return s.Concerns }},
	{"Feedback", func(s types.MeetingSummary) []string { return s.Feedback }},
	{"Suggestions", func(s types.MeetingSummary) []string { return s.Suggestions }},
	{"Improvements", func(s types.MeetingSummary) []string { return s.Improvements }},
}

// Markdown renders the record with a Not Specified placeholder for
// every empty scalar and every empty collection, never an empty
// section.
func Markdown(s types.MeetingSummary) string {
	var b strings.Builder

	b.WriteString("# Meeting Summary\n\n")
	fmt.Fprintf(&b, "**Date:** %s  \n", formatScalar(s.Date))
	fmt.Fprintf(&b, "**Location:** %s  \n", formatScalar(s.Location))
	fmt.Fprintf(&b, "**Time:** %s  \n", formatScalar(s.Time))
	fmt.Fprintf(&b, "**Duration:** %s\n\n", formatScalar(s.Duration))
	b.WriteString("---\n")

	for _, sec := range sections {
		writeSection(&b, sec.title, sec.items(s))
	}

	b.WriteString("\n## Summary\n")
	fmt.Fprintf(&b, "> %s\n", formatScalar(s.Summary))

	for _, sec := range trailingSections {
		writeSection(&b, sec.title, sec.items(s))
	}

	return b.String()
}

func writeSection(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "\n## %s\n", title)
	b.WriteString(formatList(items))
	b.WriteString("\n")
}

func formatScalar(v *string) string {
	if v == nil || *v == "" {
		return notSpecified
	}
	return *v
}

func formatList(items []string) string {
	if len(items) == 0 {
		return notSpecified
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
