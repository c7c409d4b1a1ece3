package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/anhofer/smartime/internal/export"
	"github.com/anhofer/smartime/internal/report"
	"github.com/anhofer/smartime/internal/store"
)

var (
	exportPeriod   string
	exportOffset   int
	exportProperty string
	exportFormat   string
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a period report without opening the UI",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportPeriod, "period", "month", "Period: day, week, month, year")
	exportCmd.Flags().IntVar(&exportOffset, "offset", 0, "Shift the period backwards (-1 = previous) or forwards")
	exportCmd.Flags().StringVar(&exportProperty, "property", "", "Restrict to one property id (HTML gains entry detail)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "html", "Output format: html, csv, json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output path (default: export dir from config)")
}

func periodWindow(period string, ref time.Time) (report.Window, error) {
	switch period {
	case "day":
		return report.DayWindow(ref), nil
	case "week":
		return report.WeekWindow(ref), nil
	case "month":
		return report.MonthWindow(ref), nil
	case "year":
		return report.YearWindow(ref), nil
	default:
		return report.Window{}, fmt.Errorf("unknown period %q (want day, week, month or year)", period)
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	window, err := periodWindow(exportPeriod, time.Now())
	if err != nil {
		return err
	}
	window = window.Shift(exportOffset)

	t, s, cfg, err := open()
	if err != nil {
		return err
	}
	defer s.Close()

	props, err := t.Properties()
	if err != nil {
		return err
	}

	if exportProperty != "" {
		p, err := t.Get(exportProperty)
		if err != nil {
			return err
		}
		props = []store.Property{p}
	}

	path := exportOut
	if path == "" {
		path = filepath.Join(cfg.ExportDir,
			fmt.Sprintf("smartime-bericht-%s.%s", window.Start.Format("2006-01-02"), exportFormat))
	}

	switch exportFormat {
	case "html":
		var doc string
		if exportProperty != "" {
			p := props[0]
			doc = report.PropertyDocument(p, window.Label(),
				report.DetailRows(p, window), report.SumProperty(p, window))
		} else {
			doc = report.SummaryDocument(window.Label(),
				report.SummaryRows(report.SumAll(props, window)))
		}
		if err := export.WriteHTML(doc, path); err != nil {
			return err
		}
	case "csv":
		if err := export.ToCSV(props, path); err != nil {
			return err
		}
	case "json":
		if err := export.ToJSON(props, path); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want html, csv or json)", exportFormat)
	}

	fmt.Printf("Exportiert: %s (%s)\n", path, window.Label())
	return nil
}
