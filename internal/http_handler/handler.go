package http_handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"message-printer/internal/service"
	"message-printer/pkg"
	"message-printer/server"
)

type Handlers struct {
	printer     *service.MessagePrinter
	source      service.MessageSource
	prom        *pkg.Prometheus
	sourceLabel string
	registry    *prometheus.Registry
	logger      *zap.Logger
}

// NewHandlers serves the shared printer and its source. printer writes to
// the process output; source backs per-request printers, counted in prom
// under sourceLabel.
func NewHandlers(
	printer *service.MessagePrinter,
	source service.MessageSource,
	prom *pkg.Prometheus,
	sourceLabel string,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		printer:     printer,
		source:      source,
		prom:        prom,
		sourceLabel: sourceLabel,
		registry:    registry,
		logger:      logger,
	}
}

func (h *Handlers) HandlerList() func(simple *server.SimpleHTTPServer) {
	return func(simple *server.SimpleHTTPServer) {
		simple.Router.Handle("/message", http.HandlerFunc(h.MessageHandler)).Methods(http.MethodGet)
		simple.Router.Handle("/message/print", http.HandlerFunc(h.PrintHandler)).Methods(http.MethodPost)
		simple.Router.Handle("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
}
