package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"message-printer/pkg"
)

const MessagePrinterService = "message_printer"

type Option func(p *MessagePrinter)

// WithMetrics counts printed lines and failures under the given source label.
func WithMetrics(prom *pkg.Prometheus, sourceLabel string) Option {
	return func(p *MessagePrinter) {
		p.prom = prom
		p.sourceLabel = sourceLabel
	}
}

// MessagePrinter asks its MessageSource for a message and writes it as a
// single line. It is safe for concurrent use.
type MessagePrinter struct {
	sourceMu sync.RWMutex
	source   MessageSource

	outMu sync.Mutex
	out   io.Writer

	logger      *zap.Logger
	prom        *pkg.Prometheus
	sourceLabel string
}

// NewMessagePrinter returns a printer with no source. A nil out writes to
// os.Stdout.
func NewMessagePrinter(out io.Writer, logger *zap.Logger, opts ...Option) *MessagePrinter {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &MessagePrinter{
		out:    out,
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewMessagePrinterWithSource returns a printer that is configured from the
// start.
func NewMessagePrinterWithSource(out io.Writer, logger *zap.Logger, source MessageSource, opts ...Option) (*MessagePrinter, error) {
	p := NewMessagePrinter(out, logger, opts...)
	if err := p.SetMessageSource(source); err != nil {
		return nil, err
	}
	return p, nil
}

// SetMessageSource replaces the current source. A nil source is rejected
// and the previous one is kept.
func (p *MessagePrinter) SetMessageSource(source MessageSource) error {
	if isNil(source) {
		return fmt.Errorf("%w: message source is nil", ErrInvalidArgument)
	}

	p.sourceMu.Lock()
	p.source = source
	p.sourceMu.Unlock()

	return nil
}

func (p *MessagePrinter) Configured() bool {
	p.sourceMu.RLock()
	defer p.sourceMu.RUnlock()
	return p.source != nil
}

// PrintMessage writes "<message>\n". Nothing is written when the source
// fails.
func (p *MessagePrinter) PrintMessage(ctx context.Context) error {
	p.sourceMu.RLock()
	source := p.source
	p.sourceMu.RUnlock()

	if source == nil {
		return ErrNotConfigured
	}

	message, err := source.GetMessage(ctx)
	if err != nil {
		p.observe(err)
		p.logger.Error("failed to get message", zap.String("source", p.sourceLabel), zap.Error(err))
		return fmt.Errorf("get message: %w", err)
	}

	p.outMu.Lock()
	_, err = io.WriteString(p.out, message+"\n")
	p.outMu.Unlock()
	if err != nil {
		p.observe(err)
		p.logger.Error("failed to write message", zap.Error(err))
		return fmt.Errorf("write message: %w", err)
	}

	p.observe(nil)
	p.logger.Debug("message printed", zap.String("source", p.sourceLabel), zap.Int("length", len(message)))

	return nil
}

func (p *MessagePrinter) observe(err error) {
	if p.prom == nil {
		return
	}
	if err != nil {
		p.prom.PrintErrors.WithLabelValues(p.sourceLabel).Inc()
		return
	}
	p.prom.Printed.WithLabelValues(p.sourceLabel).Inc()
}

// isNil also catches typed nil pointers and funcs stored in the interface.
func isNil(source MessageSource) bool {
	if source == nil {
		return true
	}
	v := reflect.ValueOf(source)
	switch v.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
