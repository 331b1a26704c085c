package report

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/types"
)

func strptr(s string) *string { return &s }

func TestWriteXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	s := types.MeetingSummary{
		Date:         strptr("2026-03-02"),
		Summary:      strptr("Planning session."),
		Participants: []string{"Ana", "Ben"},
	}

	if err := WriteXLSX(path, s); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 20 {
		t.Fatalf("got %d rows, want header + 19 fields", len(rows))
	}

	cell := func(name string) string {
		for _, row := range rows {
			if len(row) >= 2 && row[0] == name {
				return row[1]
			}
		}
		t.Fatalf("row %q missing", name)
		return ""
	}

	if got := cell("Date"); got != "2026-03-02" {
		t.Fatalf("Date = %q", got)
	}
	if got := cell("Participants"); got != "Ana\nBen" {
		t.Fatalf("Participants = %q", got)
	}
	if got := cell("Agenda"); got != "Not Specified" {
		t.Fatalf("empty Agenda = %q", got)
	}
}

func TestWriteXLSXAllEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := WriteXLSX(path, types.MeetingSummary{}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range rows[1:] {
		if len(row) < 2 || row[1] != "Not Specified" {
			t.Fatalf("row %v should carry the placeholder", row)
		}
	}
}
