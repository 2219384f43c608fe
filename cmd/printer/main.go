package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"message-printer/application"
	"message-printer/config"
	"message-printer/container"
	"message-printer/pkg"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.GetConfig()
	logger := pkg.NewLogger(pkg.LoggerConfig{ServiceName: cfg.App.Name, LogPath: cfg.Log.Path, Level: cfg.Log.Level})

	father, cancel := context.WithCancel(context.Background())
	father = pkg.LoggerWithCtx(father, logger)
	defer cancel()

	app := application.NewApp(father, container.BuildContainer(father, logger, cfg, os.Stdout), logger)
	app.Start(cancel)
	defer app.Stop()
	defer app.RegisterRecovers()()

	app.RegisterShutdown("logger", func() {
		// stderr sync fails on some terminals, nothing to do about it
		_ = logger.Sync()
	}, 101)

	err := app.Container().Invoke(func(res container.Resources) error {
		for name, fn := range res.GetRegisteredShutdowns() {
			app.RegisterShutdown(name, fn, 100)
		}

		if cfg.App.Schedule == "" {
			return res.Printer.PrintMessage(father)
		}

		if err := res.Scheduler.AddSchedule(father, cfg.App.Schedule, "print_message", res.Printer.PrintMessage); err != nil {
			return err
		}
		res.Scheduler.Start()
		app.RegisterShutdown(pkg.CronPackage, res.Scheduler.ShutdownFunc, 1)
		logger.Info("printing on schedule", zap.String("schedule", cfg.App.Schedule))

		app.Run()
		return nil
	})
	if err != nil {
		logger.Error(fmt.Sprintf("failed to print message: %v", err))
		return 1
	}

	return 0
}
