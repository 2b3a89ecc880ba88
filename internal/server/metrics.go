package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conversion outcomes used as the result label.
const (
	resultOK      = "ok"
	resultInvalid = "invalid"
	resultError   = "error"
)

// Metrics holds the conversion collectors.
type Metrics struct {
	conversions *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics registers the conversion collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "xlsxcsv_conversions_total",
			Help: "Workbook conversions by result.",
		}, []string{"result"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "xlsxcsv_conversion_duration_seconds",
			Help:    "Time spent converting a workbook.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
