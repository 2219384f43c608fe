package pkg

import "github.com/prometheus/client_golang/prometheus"

type Prometheus struct {
	Http        *prometheus.CounterVec
	Printed     *prometheus.CounterVec
	PrintErrors *prometheus.CounterVec
}

func NewPrometheus() *Prometheus {
	return &Prometheus{
		Http: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Number of HTTP requests.",
			},
			[]string{"path"},
		),
		Printed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_printed_total",
				Help: "Number of messages written to the output.",
			},
			[]string{"source"},
		),
		PrintErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "message_print_errors_total",
				Help: "Number of failed print attempts.",
			},
			[]string{"source"},
		),
	}
}

func (p *Prometheus) Register(registerer prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{p.Http, p.Printed, p.PrintErrors} {
		if err := registerer.Register(c); err != nil {
			return err
		}
	}
	return nil
}
