package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fieldops/planboard/core/model"
)

func TestWriteRoute(t *testing.T) {
	route := []model.Assignment{
		{
			ID:           "a1",
			TargetID:     "m1",
			TechnicianID: "t1",
			Date:         time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC),
			StartHour:    8,
			Duration:     4,
			Status:       model.StatusPlanned,
		},
	}

	var buf bytes.Buffer
	if err := writeRoute(&buf, route, "csv"); err != nil {
		t.Fatalf("csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want header and one row, got %d lines", len(lines))
	}
	if lines[1] != "a1,m1,false,2024-06-17,8,4,planned" {
		t.Fatalf("unexpected row %q", lines[1])
	}

	buf.Reset()
	if err := writeRoute(&buf, route, "json"); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(buf.String(), `"id":"a1"`) {
		t.Fatalf("json output missing assignment: %s", buf.String())
	}

	if err := writeRoute(&buf, route, "xml"); err == nil {
		t.Fatal("want error for unknown format")
	}
}
