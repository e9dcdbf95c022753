package cmd

import (
	"github.com/spf13/cobra"

	"github.com/devfort/behabitual/internal/apiclient"
)

var unarchive bool

var archiveCmd = &cobra.Command{
	Use:   "archive <habit-id>",
	Short: "Archive a habit",
	Long: `The "archive" command hides a habit from listings and stops its
reminders. Its recorded history is kept and it can be unarchived later
with --undo.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		archive(cmd, args[0])
	},
}

func archive(cmd *cobra.Command, id string) {
	client := apiclient.New(cfg.APIBaseURL)
	if err := client.Archive(cmd.Context(), id, !unarchive); err != nil {
		cmd.Println("Error archiving habit:", err)
		return
	}
	if unarchive {
		cmd.Printf("Unarchived %s\n", id)
	} else {
		cmd.Printf("Archived %s\n", id)
	}
}

func init() {
	archiveCmd.Flags().BoolVar(&unarchive, "undo", false, "restore an archived habit")
	rootCmd.AddCommand(archiveCmd)
}
