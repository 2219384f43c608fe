package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type SimpleHTTPServer struct {
	port   string
	Router *mux.Router
	logger *zap.Logger
}

func NewSimpleHTTPServer(port string, logger *zap.Logger) *SimpleHTTPServer {
	return &SimpleHTTPServer{
		Router: mux.NewRouter(),
		port:   port,
		logger: logger,
	}
}

// CreateHttpServer configures routes, starts serving in the background and
// returns the shutdown func.
func CreateHttpServer(
	logger *zap.Logger,
	handlers func(simple *SimpleHTTPServer),
	port string,
	mwf ...mux.MiddlewareFunc,
) func() {
	simple := NewSimpleHTTPServer(port, logger)
	simple.ToConfigureHandlers(handlers)
	return simple.RunSimpleHTTPServer(mwf...)
}

// RunSimpleHTTPServer runs a simple HTTP server on the given port.
func (simple *SimpleHTTPServer) RunSimpleHTTPServer(mwf ...mux.MiddlewareFunc) func() {
	simple.Router.Use(mwf...)

	server := &http.Server{
		Addr:              simple.port,
		Handler:           simple.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		simple.logger.Info("server is running", zap.String("addr", simple.port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			simple.logger.Fatal("server stopped by error", zap.Error(err))
		}
		simple.logger.Info("server has stopped", zap.String("addr", simple.port))
	}()

	return simple.Shutdown(server)
}

func (simple *SimpleHTTPServer) ToConfigureHandlers(configure func(simple *SimpleHTTPServer)) {
	configure(simple)
}

func (simple *SimpleHTTPServer) Shutdown(server *http.Server) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			simple.logger.Error("server shutdown failed", zap.Error(err))
		}
	}
}
