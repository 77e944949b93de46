package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ozdmrel/studyquest/internal/clock"
	"github.com/ozdmrel/studyquest/internal/config"
	"github.com/ozdmrel/studyquest/internal/sound"
	"github.com/ozdmrel/studyquest/internal/store"
	"github.com/ozdmrel/studyquest/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "studyquest",
	Short: "Terminal study tracker with missions, streaks and quiz battles",
	Long: "Studyquest tracks focused study time with a pausable focus/break timer,\n" +
		"awards XP and levels, generates daily missions, and keeps a perfect-day streak.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYQUEST_DB env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the STUDYQUEST_DB env var, then the default path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return store.DefaultDBPath()
}

func runApp(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return err
	}

	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	var signal sound.Signal = sound.NewBell()
	if cfg.NoSound {
		signal = sound.Silent{}
	}

	app := tui.NewApp(s, clock.System{}, signal)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
