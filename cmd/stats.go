package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/ozdmrel/studyquest/internal/app"
	"github.com/ozdmrel/studyquest/internal/clock"
	"github.com/ozdmrel/studyquest/internal/config"
	"github.com/ozdmrel/studyquest/internal/ledger"
	"github.com/ozdmrel/studyquest/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a progression summary without entering the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		clk := clock.System{}
		a := app.New(s, clk, rand.New(rand.NewSource(time.Now().UnixNano())))

		progress, err := a.Ledger.Current()
		if err != nil {
			return err
		}
		streakRec, err := a.Streak.Load()
		if err != nil {
			return err
		}
		todayFocus, err := s.GetTodayFocusMinutes(clk.Today())
		if err != nil {
			return err
		}

		fmt.Printf("Level %d (%s)\n", progress.Level, progress.Title)
		fmt.Printf("XP: %d (%.0f%% to level %d)\n", progress.XP, ledger.ProgressPercent(progress.XP), progress.Level+1)
		fmt.Printf("Streak: %d days (longest %d)\n", streakRec.CurrentStreak, streakRec.LongestStreak)
		fmt.Printf("Today: %d focus minutes\n", todayFocus)
		fmt.Printf("Battles: %d (%d wins), %d/%d answers correct\n",
			progress.TotalBattles, progress.TotalBattleWins,
			progress.TotalCorrectAnswers, progress.TotalQuestionsAnswered)
		return nil
	},
}
