package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/anhofer/smartime/internal/store"
)

func ToCSV(props []store.Property, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Property", "Address", "Date", "Start", "End", "Duration (min)"}); err != nil {
		return err
	}

	for _, p := range props {
		for _, e := range p.TimeEntries {
			endStr := ""
			durStr := ""
			if e.EndTime != nil {
				endStr = e.EndTime.UTC().Format(time.RFC3339)
			}
			if e.Duration != nil {
				durStr = fmt.Sprintf("%d", *e.Duration)
			}
			row := []string{
				p.Name,
				p.Address(),
				e.Date,
				e.StartTime.UTC().Format(time.RFC3339),
				endStr,
				durStr,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}
