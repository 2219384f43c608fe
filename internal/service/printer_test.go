package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"message-printer/pkg"
)

type fixedSource struct {
	message string
	calls   int
}

func (s *fixedSource) GetMessage(context.Context) (string, error) {
	s.calls++
	return s.message, nil
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPrintMessage(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{name: "employee greeting", message: "Hello, Employee!", expected: "Hello, Employee!\n"},
		{name: "empty message", message: "", expected: "\n"},
		{name: "message with spaces", message: "  padded  ", expected: "  padded  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			printer := NewMessagePrinter(out, zap.NewNop())
			require.NoError(t, printer.SetMessageSource(&fixedSource{message: tt.message}))

			require.NoError(t, printer.PrintMessage(context.Background()))
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestPrintMessageNotConfigured(t *testing.T) {
	out := &bytes.Buffer{}
	printer := NewMessagePrinter(out, zap.NewNop())

	assert.False(t, printer.Configured())
	err := printer.PrintMessage(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, out.String())
}

func TestSetMessageSourceRejectsNil(t *testing.T) {
	var typedNil *fixedSource
	var nilFunc MessageSourceFunc

	for name, source := range map[string]MessageSource{
		"untyped nil": nil,
		"typed nil":   typedNil,
		"nil func":    nilFunc,
	} {
		t.Run(name, func(t *testing.T) {
			out := &bytes.Buffer{}
			printer := NewMessagePrinter(out, zap.NewNop())

			err := printer.SetMessageSource(source)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.False(t, printer.Configured())
		})
	}
}

func TestSetMessageSourceNilKeepsPrevious(t *testing.T) {
	out := &bytes.Buffer{}
	printer := NewMessagePrinter(out, zap.NewNop())
	require.NoError(t, printer.SetMessageSource(&fixedSource{message: "first"}))

	assert.ErrorIs(t, printer.SetMessageSource(nil), ErrInvalidArgument)

	require.NoError(t, printer.PrintMessage(context.Background()))
	assert.Equal(t, "first\n", out.String())
}

func TestSetMessageSourceReplaces(t *testing.T) {
	out := &bytes.Buffer{}
	printer := NewMessagePrinter(out, zap.NewNop())
	require.NoError(t, printer.SetMessageSource(&fixedSource{message: "first"}))
	require.NoError(t, printer.SetMessageSource(&fixedSource{message: "second"}))

	require.NoError(t, printer.PrintMessage(context.Background()))
	assert.Equal(t, "second\n", out.String())
}

func TestPrintMessageIsRepeatable(t *testing.T) {
	out := &bytes.Buffer{}
	source := &fixedSource{message: "Hello, Employee!"}
	printer, err := NewMessagePrinterWithSource(out, zap.NewNop(), source)
	require.NoError(t, err)

	require.NoError(t, printer.PrintMessage(context.Background()))
	first := out.String()
	require.NoError(t, printer.PrintMessage(context.Background()))

	assert.Equal(t, first+first, out.String())
	assert.Equal(t, 2, source.calls)
}

func TestPrintMessageSourceError(t *testing.T) {
	out := &bytes.Buffer{}
	sourceErr := errors.New("connection refused")
	printer, err := NewMessagePrinterWithSource(out, zap.NewNop(), MessageSourceFunc(func(context.Context) (string, error) {
		return "partial", sourceErr
	}))
	require.NoError(t, err)

	err = printer.PrintMessage(context.Background())
	assert.ErrorIs(t, err, sourceErr)
	assert.Empty(t, out.String())
}

func TestPrintMessageWriteError(t *testing.T) {
	printer, err := NewMessagePrinterWithSource(failingWriter{}, zap.NewNop(), &fixedSource{message: "x"})
	require.NoError(t, err)

	assert.ErrorContains(t, printer.PrintMessage(context.Background()), "disk full")
}

func TestNewMessagePrinterWithSourceRejectsNil(t *testing.T) {
	printer, err := NewMessagePrinterWithSource(&bytes.Buffer{}, zap.NewNop(), nil)
	assert.Nil(t, printer)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPrintMessageMetrics(t *testing.T) {
	prom := pkg.NewPrometheus()
	printer, err := NewMessagePrinterWithSource(&bytes.Buffer{}, zap.NewNop(), &fixedSource{message: "x"}, WithMetrics(prom, "static"))
	require.NoError(t, err)

	require.NoError(t, printer.PrintMessage(context.Background()))
	require.NoError(t, printer.SetMessageSource(MessageSourceFunc(func(context.Context) (string, error) {
		return "", errors.New("boom")
	})))
	assert.Error(t, printer.PrintMessage(context.Background()))

	assert.Equal(t, 1.0, testutil.ToFloat64(prom.Printed.WithLabelValues("static")))
	assert.Equal(t, 1.0, testutil.ToFloat64(prom.PrintErrors.WithLabelValues("static")))
}

func TestPrintMessageConcurrentLinesDoNotInterleave(t *testing.T) {
	out := &bytes.Buffer{}
	printer, err := NewMessagePrinterWithSource(out, zap.NewNop(), MessageSourceFunc(func(context.Context) (string, error) {
		return "Hello, Employee!", nil
	}))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, printer.PrintMessage(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, strings.Repeat("Hello, Employee!\n", 50), out.String())
}
