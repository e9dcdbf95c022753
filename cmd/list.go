package cmd

import (
	"github.com/spf13/cobra"

	"github.com/devfort/behabitual/internal/apiclient"
	"github.com/devfort/behabitual/pkg/habit"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	Long:  `The "list" command lets you list your tracked habits.`,
	Run: func(cmd *cobra.Command, args []string) {
		list(cmd)
	},
}

func list(cmd *cobra.Command) {
	client := apiclient.New(cfg.APIBaseURL)
	habits, err := client.ListHabits(cmd.Context())
	if err != nil {
		cmd.Println("Error fetching habits:", err)
		return
	}

	for _, h := range habits {
		cmd.Printf("%s  %-10s since %s  %s\n",
			h.ID, h.Resolution, habit.FormatDate(h.Start), h.Description)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
