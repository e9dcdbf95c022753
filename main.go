package main

import (
	"log/slog"

	"github.com/devfort/behabitual/cmd"
	"github.com/devfort/behabitual/internal/logger"
)

func main() {
	logger.Init(slog.LevelInfo)
	cmd.Execute()
}
