package http_handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"message-printer/internal/repository"
	"message-printer/internal/service"
	"message-printer/pkg"
)

// MessageHandler writes the message line into the response body.
func (h *Handlers) MessageHandler(w http.ResponseWriter, r *http.Request) {
	l := pkg.LoggerFromCtx(r.Context())

	body := &bytes.Buffer{}
	printer, err := service.NewMessagePrinterWithSource(body, l, h.source, service.WithMetrics(h.prom, h.sourceLabel))
	if err == nil {
		err = printer.PrintMessage(r.Context())
	}
	if err != nil {
		l.Warn("message is not available", zap.Error(err))
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body.Bytes())
}

// PrintHandler prints the message to the process output.
func (h *Handlers) PrintHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.printer.PrintMessage(r.Context()); err != nil {
		pkg.LoggerFromCtx(r.Context()).Warn("print failed", zap.Error(err))
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotConfigured), errors.Is(err, service.ErrInvalidArgument):
		return http.StatusInternalServerError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusServiceUnavailable
	}
}
