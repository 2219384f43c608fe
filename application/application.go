package application

import (
	"context"
	"os"
	"os/signal"
	"runtime/debug"
	"sort"
	"sync"
	"syscall"

	"go.uber.org/dig"
	"go.uber.org/zap"
)

type shutdownHook struct {
	priority int
	name     string
	fn       func()
}

type App struct {
	ctx         context.Context
	shutdownMu  sync.Mutex
	shutdowns   []shutdownHook
	logger      *zap.Logger
	container   *dig.Container
	sig         chan os.Signal
	stopOnce    sync.Once
	signalsDone chan struct{}
}

func NewApp(ctx context.Context, container *dig.Container, logger *zap.Logger) *App {
	return &App{
		logger:      logger,
		ctx:         ctx,
		container:   container,
		sig:         make(chan os.Signal, 1),
		signalsDone: make(chan struct{}),
	}
}

// RegisterShutdown registers a shutdown function with a priority.
// priority 0 runs first; equal priorities run in registration order.
func (app *App) RegisterShutdown(name string, fn func(), priority int) {
	app.shutdownMu.Lock()
	defer app.shutdownMu.Unlock()

	i := sort.Search(len(app.shutdowns), func(i int) bool {
		return app.shutdowns[i].priority > priority
	})
	app.shutdowns = append(app.shutdowns, shutdownHook{})
	copy(app.shutdowns[i+1:], app.shutdowns[i:])
	app.shutdowns[i] = shutdownHook{priority: priority, name: name, fn: fn}
}

// ShutdownByName runs and removes the first hook registered under name.
func (app *App) ShutdownByName(name string) bool {
	app.shutdownMu.Lock()
	defer app.shutdownMu.Unlock()

	for i, hook := range app.shutdowns {
		if hook.name != name {
			continue
		}
		app.shutdowns = append(app.shutdowns[:i], app.shutdowns[i+1:]...)
		hook.fn()
		return true
	}
	return false
}

func (app *App) shutdownAll() {
	app.shutdownMu.Lock()
	hooks := app.shutdowns
	app.shutdowns = nil
	app.shutdownMu.Unlock()

	for _, hook := range hooks {
		hook.fn()
		app.logger.Debug("shutdown func done", zap.String("name", hook.name), zap.Int("priority", hook.priority))
	}
}

// Stop runs every registered hook once, in priority order.
func (app *App) Stop() {
	app.stopOnce.Do(func() {
		app.logger.Info("stopping application")
		signal.Stop(app.sig)
		close(app.signalsDone)
		app.shutdownAll()
	})
}

// Start cancels the application context on SIGINT or SIGTERM.
func (app *App) Start(cancel context.CancelFunc) {
	signal.Notify(app.sig, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case s := <-app.sig:
			app.logger.Info("signal received, shutting down", zap.String("signal", s.String()))
			cancel()
		case <-app.signalsDone:
		}
	}()
}

// RegisterRecovers is deferred in main: a panic is logged and turned into
// a shutdown signal.
func (app *App) RegisterRecovers() func() {
	return func() {
		if r := recover(); r != nil {
			app.logger.Error("panic in application",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
			)
			select {
			case app.sig <- syscall.SIGTERM:
			default:
			}
		}
	}
}

func (app *App) Container() *dig.Container {
	return app.container
}

func (app *App) Context() context.Context {
	return app.ctx
}

// Run blocks until the application context is done.
func (app *App) Run() {
	<-app.ctx.Done()
}
