package cmd

import (
	"github.com/spf13/cobra"

	"github.com/devfort/behabitual/internal/apiclient"
	"github.com/devfort/behabitual/pkg/habit"
)

var showCmd = &cobra.Command{
	Use:   "show <habit-id>",
	Short: "Show a habit with its streaks and backlog",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		show(cmd, args[0])
	},
}

func show(cmd *cobra.Command, id string) {
	client := apiclient.New(cfg.APIBaseURL)

	got, err := client.GetHabit(cmd.Context(), id)
	if err != nil {
		cmd.Println("Error fetching habit:", err)
		return
	}
	h := got.Habit

	cmd.Printf("%s\n", h.Description)
	cmd.Printf("  resolution: %s, since %s, target %d per period\n",
		h.Resolution, habit.FormatDate(h.Start), h.TargetValue)
	if h.Archived {
		cmd.Println("  archived")
	}

	streaks, err := client.GetStreaks(cmd.Context(), id)
	if err != nil {
		cmd.Println("Error fetching streaks:", err)
		return
	}
	cmd.Printf("  streaks (most recent first): %v\n", streaks)

	if got.UpToDate {
		cmd.Println("  up to date")
		return
	}
	backlog, err := client.GetBacklog(cmd.Context(), id)
	if err != nil {
		cmd.Println("Error fetching backlog:", err)
		return
	}
	cmd.Println("  missing entries for:")
	for _, p := range backlog {
		cmd.Printf("    %s\n", p.Label)
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
