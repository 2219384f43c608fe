package main

import (
	"context"
	"fmt"
	"os"

	"message-printer/application"
	"message-printer/config"
	"message-printer/container"
	"message-printer/internal/http_handler"
	"message-printer/pkg"
	"message-printer/server"
)

func main() {
	cfg := config.GetConfig()
	logger := pkg.NewLogger(pkg.LoggerConfig{ServiceName: cfg.App.Name + "_http", LogPath: cfg.Log.Path, Level: cfg.Log.Level})

	father, cancel := context.WithCancel(context.Background())
	father = pkg.LoggerWithCtx(father, logger)
	defer cancel()

	app := application.NewApp(father, container.BuildContainer(father, logger, cfg, os.Stdout), logger)
	app.Start(cancel)
	defer app.Stop()
	defer app.RegisterRecovers()()

	app.RegisterShutdown("logger", func() {
		_ = logger.Sync()
	}, 101)

	err := app.Container().Invoke(func(res container.Resources) {
		for name, fn := range res.GetRegisteredShutdowns() {
			app.RegisterShutdown(name, fn, 100)
		}

		handlers := http_handler.NewHandlers(res.Printer, res.Source, res.Prometheus, cfg.Source.Kind, res.Registry, logger)
		simpleHttpServerShutdownFunction := server.CreateHttpServer(
			logger,
			handlers.HandlerList(),
			":"+cfg.HTTP.Port,
			server.RequestIDMiddleware,
			server.LoggerContextMiddleware(logger),
			server.RecoverMiddleware,
			server.LoggingMiddleware,
			server.MetricsMiddleware(res.Prometheus),
		)
		app.RegisterShutdown("simple_http_server", simpleHttpServerShutdownFunction, 1)
	})
	if err != nil {
		logger.Error(fmt.Sprintf("failed to start DI: %v", err))
		return
	}

	app.Run()
}
