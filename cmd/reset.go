package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ozdmrel/studyquest/internal/config"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the local database (all progress, missions, streaks, battles)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to delete without --yes")
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return err
		}
		if err := os.Remove(dbPath); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("nothing to reset")
				return nil
			}
			return fmt.Errorf("remove database: %w", err)
		}
		fmt.Printf("deleted %s\n", dbPath)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm deletion")
}
