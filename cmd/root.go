package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/devfort/behabitual/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "behabitual",
	Short: "Track habits over flexible time periods",
	Long: `
	Behabitual tracks recurring habits against daily, weekday, weekend,
	weekly or monthly schedules, keeping streaks and backlogs so you can
	see how you are doing and catch up when you fall behind.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.LoadOrDefault("config.yaml")
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
