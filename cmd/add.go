package cmd

import (
	"github.com/spf13/cobra"

	"github.com/devfort/behabitual/internal/apiclient"
	"github.com/devfort/behabitual/internal/server"
)

var (
	addStart      string
	addResolution string
	addTarget     int
)

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a new habit",
	Long: `The "add" command creates a new habit. The resolution controls how
often the habit recurs: day, weekday, weekendday, week or month.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		add(cmd, args[0])
	},
}

func add(cmd *cobra.Command, description string) {
	client := apiclient.New(cfg.APIBaseURL)
	h, err := client.CreateHabit(cmd.Context(), server.CreateHabitRequest{
		Description: description,
		Start:       addStart,
		Resolution:  addResolution,
		TargetValue: addTarget,
	})
	if err != nil {
		cmd.Println("Error creating habit:", err)
		return
	}
	cmd.Printf("Added habit %s (%s, every %s)\n", h.ID, h.Description, h.Resolution)
}

func init() {
	addCmd.Flags().StringVar(&addStart, "start", "", "start date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addResolution, "resolution", "day", "how often the habit recurs")
	addCmd.Flags().IntVar(&addTarget, "target", 1, "value per period that counts as success")
	rootCmd.AddCommand(addCmd)
}
