package main

import (
	"log/slog"
	"os"

	"github.com/ayoisaiah/slumber/app"
	"github.com/ayoisaiah/slumber/internal/logger"
	"github.com/ayoisaiah/slumber/internal/pathutil"
	"github.com/ayoisaiah/slumber/report"
)

func run(args []string) error {
	err := pathutil.Initialize()
	if err != nil {
		return err
	}

	closer, err := logger.Init(pathutil.LogFilePath(), slog.LevelDebug)
	if err != nil {
		return err
	}

	defer closer.Close()

	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		report.Error(err)
		os.Exit(1)
	}
}
