package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/devfort/behabitual/internal/apiclient"
)

var recordDate string

var recordCmd = &cobra.Command{
	Use:   "record <habit-id> <value>",
	Short: "Record a value against a habit",
	Long: `The "record" command adds a value to the habit's current time period,
or to the period containing --date. Values accumulate: recording twice in
the same period sums them.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		record(cmd, args[0], args[1])
	},
}

func record(cmd *cobra.Command, id, rawValue string) {
	value, err := strconv.Atoi(rawValue)
	if err != nil {
		cmd.Println("Value must be an integer:", err)
		return
	}

	client := apiclient.New(cfg.APIBaseURL)
	resp, err := client.Record(cmd.Context(), id, recordDate, value)
	if err != nil {
		cmd.Println("Error recording value:", err)
		return
	}
	cmd.Printf("Recorded %d for %s (%s)\n", resp.Value, resp.HabitID, resp.Period.Label)
	if resp.Encouragement != "" {
		cmd.Println(resp.Encouragement)
	}
}

func init() {
	recordCmd.Flags().StringVar(&recordDate, "date", "", "date to record against (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(recordCmd)
}
