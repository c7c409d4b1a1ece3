package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/anhofer/smartime/internal/config"
	"github.com/anhofer/smartime/internal/store"
	"github.com/anhofer/smartime/internal/tracker"
	"github.com/anhofer/smartime/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "smartime",
	Short: "smartime – Zeiterfassung fuer Liegenschaften",
	Long: `smartime tracks time spent at properties ("Liegenschaften"):
check in on arrival, check out on departure, and export period reports.
Running without a subcommand opens the interactive terminal UI.`,
	RunE: runTUI,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
}

// open loads the configuration and opens the store. The caller owns the
// returned store and must Close it.
func open() (*tracker.Tracker, *store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, config.Config{}, fmt.Errorf("load config: %w", err)
	}
	s, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, nil, config.Config{}, fmt.Errorf("open database: %w", err)
	}
	return tracker.New(s, s), s, cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	t, s, cfg, err := open()
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(t, cfg.ExportDir)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
