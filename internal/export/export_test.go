package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anhofer/smartime/internal/store"
)

func sampleProps() []store.Property {
	start := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	dur := int64(45)
	return []store.Property{
		{
			ID:          "p1",
			Name:        "Haus A",
			Street:      "Bahnhofstrasse",
			HouseNumber: "12",
			City:        "Zuerich",
			TimeEntries: []store.TimeEntry{
				{StartTime: start.Add(2 * time.Hour), Date: "2026-08-31"}, // open
				{StartTime: start, EndTime: &end, Duration: &dur, Date: "2026-08-31"},
			},
		},
		{
			ID:          "p2",
			Name:        "Haus B",
			Street:      "Seeweg",
			HouseNumber: "3",
			City:        "Bern",
			TimeEntries: []store.TimeEntry{},
		},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(sampleProps(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Header plus one row per entry; B has none.
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Property" || rows[0][5] != "Duration (min)" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	open := rows[1]
	if open[4] != "" || open[5] != "" {
		t.Fatalf("open entry should have blank end and duration: %v", open)
	}
	closed := rows[2]
	if closed[1] != "Bahnhofstrasse 12, Zuerich" {
		t.Fatalf("address column: %q", closed[1])
	}
	if closed[3] != "2026-08-31T09:00:00Z" || closed[5] != "45" {
		t.Fatalf("closed entry row: %v", closed)
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "Property,") {
		t.Fatal("header should still be written")
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(sampleProps(), filepath.Join(t.TempDir(), "no", "such", "dir.csv")); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(sampleProps(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Count      int `json:"count"`
		Properties []struct {
			Name        string `json:"name"`
			TimeEntries []struct {
				StartTime string `json:"start_time"`
				EndTime   string `json:"end_time"`
				Duration  *int64 `json:"duration_minutes"`
			} `json:"time_entries"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 2 || len(got.Properties) != 2 {
		t.Fatalf("unexpected export: %+v", got)
	}
	entries := got.Properties[0].TimeEntries
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].EndTime != "" || entries[0].Duration != nil {
		t.Fatal("open entry must omit end time and duration")
	}
	if entries[1].Duration == nil || *entries[1].Duration != 45 {
		t.Fatalf("closed entry duration: %v", entries[1].Duration)
	}
	if got.Properties[1].TimeEntries == nil {
		t.Fatal("property without entries should export an empty list, not null")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, filepath.Join(t.TempDir(), "no", "such", "dir.json")); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	doc := "<!DOCTYPE html>\n<html><body>Zeiterfassung</body></html>\n"
	if err := WriteHTML(doc, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != doc {
		t.Fatal("document must be written verbatim")
	}
}

func TestWriteHTMLBadPath(t *testing.T) {
	if err := WriteHTML("x", filepath.Join(t.TempDir(), "no", "such", "dir.html")); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
