package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/devfort/behabitual/internal/engine"
	"github.com/devfort/behabitual/internal/remind"
	"github.com/devfort/behabitual/internal/remind/resend"
	"github.com/devfort/behabitual/internal/storage/bolt"
	"github.com/devfort/behabitual/pkg/habit"
)

var (
	resendAPIKey string
	notifyEmail  string
	collectOnly  bool
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send scheduled reminder emails",
	Long: `The "remind" command sends reminder emails for habits whose schedule
matches the current weekday and hour, and data-collection prompts for
habits with unentered periods. Meant to run hourly from cron.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if resendAPIKey = os.Getenv("HABITS_RESEND_API_KEY"); resendAPIKey == "" {
			return fmt.Errorf("HABITS_RESEND_API_KEY environment variable is not set")
		}

		notifyEmail = cfg.NotifyEmail
		if env := os.Getenv("HABITS_NOTIFY_EMAIL"); env != "" {
			notifyEmail = env
		}
		if notifyEmail == "" {
			return fmt.Errorf("no notify email: set notify_email in config.yaml or HABITS_NOTIFY_EMAIL")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendReminders()
	},
}

func sendReminders() error {
	store, err := bolt.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	n := &resend.Notifier{
		APIKey: resendAPIKey,
		Email:  notifyEmail,
	}
	now := time.Now()

	if !collectOnly {
		if err := remind.SendPending(store, n, now); err != nil {
			return err
		}
	}
	return remind.SendDataCollections(store, engine.New(store), n, habit.ToDate(now))
}

func init() {
	remindCmd.Flags().BoolVar(&collectOnly, "collect-only", false, "skip reminders, only send data-collection prompts")
	rootCmd.AddCommand(remindCmd)
}
