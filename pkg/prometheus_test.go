package pkg

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRegister(t *testing.T) {
	registry := prometheus.NewRegistry()
	prom := NewPrometheus()
	require.NoError(t, prom.Register(registry))

	prom.Printed.WithLabelValues("static").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(prom.Printed.WithLabelValues("static")))

	assert.Error(t, prom.Register(registry), "double registration must fail")
}
