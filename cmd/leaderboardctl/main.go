package main

import (
	"os"

	"github.com/riskibarqy/tournament-leaderboard/internal/app"
	"github.com/riskibarqy/tournament-leaderboard/internal/config"
	"github.com/riskibarqy/tournament-leaderboard/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewConsole(os.Stderr, cfg.LogLevel)
	defer func() {
		_ = logger.Sync()
	}()

	build := func() (*app.Services, error) {
		return app.BuildServices(cfg, logger)
	}
	if err := newCLI(build, os.Stdout).Run(os.Args); err != nil {
		logger.Error("leaderboardctl failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}
