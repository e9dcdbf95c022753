package cmd

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/devfort/behabitual/internal/logger"
	"github.com/devfort/behabitual/internal/server"
	"github.com/devfort/behabitual/internal/storage/bolt"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return startServer()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func startServer() error {
	store, err := bolt.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	s := server.New(store)
	logger.Info("Starting server", "addr", cfg.ListenAddr, "db", cfg.DBPath)
	return http.ListenAndServe(cfg.ListenAddr, s.Router())
}
