package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/anhofer/smartime/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all properties with entry counts and month totals",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	t, s, _, err := open()
	if err != nil {
		return err
	}
	defer s.Close()

	props, err := t.Properties()
	if err != nil {
		return err
	}
	if len(props) == 0 {
		fmt.Println("Keine Liegenschaften erfasst.")
		return nil
	}

	active, err := t.Active()
	if err != nil {
		return err
	}

	month := report.MonthWindow(time.Now())
	fmt.Printf("%-36s  %-24s  %-30s  %9s  %12s\n", "ID", "Name", "Adresse", "Eintraege", month.Label())
	for _, p := range props {
		marker := " "
		if active != nil && active.PropertyID == p.ID {
			marker = "●"
		}
		fmt.Printf("%-36s  %-24s  %-30s  %9d  %12s %s\n",
			p.ID, p.Name, p.Address(), len(p.TimeEntries),
			report.FmtMin(report.SumProperty(p, month)), marker)
	}
	return nil
}
