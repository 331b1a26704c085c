// Package report exports a MeetingSummary as a spreadsheet for sharing
// outside the service.
package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/types"
)

const sheetName = "Summary"

// WriteXLSX renders the record into a two-column workbook, one row per
// field, collection items joined as lines within the cell. Empty
// fields carry the same Not Specified placeholder the markdown
// renderer uses.
func WriteXLSX(path string, s types.MeetingSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	rows := [][2]string{
		{"Field", "Value"},
		{"Date", scalarCell(s.Date)},
		{"Location", scalarCell(s.Location)},
		{"Time", scalarCell(s.Time)},
		{"Duration", scalarCell(s.Duration)},
		{"Summary", scalarCell(s.Summary)},
		{"Agenda", listCell(s.Agenda)},
		{"Participants", listCell(s.Participants)},
		{"Topics", listCell(s.Topics)},
		{"Key Points", listCell(s.KeyPoints)},
		{"Action Items", listCell(s.ActionItems)},
		{"Next Steps", listCell(s.NextSteps)},
		{"Decisions", listCell(s.Decisions)},
		{"Recommendations", listCell(s.Recommendations)},
		{"Follow Ups", listCell(s.FollowUps)},
		{"Questions", listCell(s.Questions)},
		{"Concerns", listCell(s.Concerns)},
		{"Feedback", listCell(s.Feedback)},
		{"Suggestions", listCell(s.Suggestions)},
		{"Improvements", listCell(s.Improvements)},
	}

	for i, row := range rows {
		cellA, _ := excelize.CoordinatesToCellName(1, i+1)
		cellB, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(sheetName, cellA, row[0]); err != nil {
			return fmt.Errorf("write cell %s: %w", cellA, err)
		}
		if err := f.SetCellValue(sheetName, cellB, row[1]); err != nil {
			return fmt.Errorf("write cell %s: %w", cellB, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func scalarCell(v *string) string {
	if v == nil || *v == "" {
		return "Not Specified"
	}
	return *v
}

func listCell(items []string) string {
	if len(items) == 0 {
		return "Not Specified"
	}
	return strings.Join(items, "\n")
}
