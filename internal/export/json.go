package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/anhofer/smartime/internal/store"
)

type jsonExport struct {
	ExportedAt string         `json:"exported_at"`
	Count      int            `json:"count"`
	Properties []jsonProperty `json:"properties"`
}

type jsonProperty struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Street      string      `json:"street"`
	HouseNumber string      `json:"house_number"`
	City        string      `json:"city"`
	TimeEntries []jsonEntry `json:"time_entries"`
}

type jsonEntry struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time,omitempty"`
	Duration  *int64 `json:"duration_minutes,omitempty"`
	Date      string `json:"date"`
}

func ToJSON(props []store.Property, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(props),
		Properties: []jsonProperty{},
	}

	for _, p := range props {
		jp := jsonProperty{
			ID:          p.ID,
			Name:        p.Name,
			Street:      p.Street,
			HouseNumber: p.HouseNumber,
			City:        p.City,
			TimeEntries: []jsonEntry{},
		}
		for _, e := range p.TimeEntries {
			je := jsonEntry{
				StartTime: e.StartTime.UTC().Format(time.RFC3339),
				Duration:  e.Duration,
				Date:      e.Date,
			}
			if e.EndTime != nil {
				je.EndTime = e.EndTime.UTC().Format(time.RFC3339)
			}
			jp.TimeEntries = append(jp.TimeEntries, je)
		}
		out.Properties = append(out.Properties, jp)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
