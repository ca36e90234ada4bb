// Package metrics регистрирует метрики Prometheus дашборда.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "irrigation_dashboard_"

var (
	registerOnce sync.Once

	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec

	screenLoads *prometheus.CounterVec
	healthState prometheus.Gauge
	sessions    prometheus.Gauge
)

// Init регистрирует метрики в глобальном реестре. Повторный вызов ничего не делает.
func Init() {
	registerOnce.Do(func() {
		upstreamRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "upstream_requests_total",
				Help: "Total requests to the irrigation API by method and outcome",
			},
			[]string{"method", "outcome"},
		)
		upstreamLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "upstream_request_duration_seconds",
				Help:    "Irrigation API request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		)
		screenLoads = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "screen_loads_total",
				Help: "Screen page loads by screen, transition and result",
			},
			[]string{"screen", "transition", "result"},
		)
		healthState = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "upstream_up",
			Help: "1 when the last health probe of the irrigation API succeeded",
		})
		sessions = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "active_sessions",
			Help: "Authenticated sessions held in memory",
		})

		prometheus.MustRegister(upstreamRequests, upstreamLatency, screenLoads, healthState, sessions)
	})
}

func ObserveUpstream(method, outcome string, duration time.Duration) {
	if upstreamRequests != nil {
		upstreamRequests.WithLabelValues(method, outcome).Inc()
	}
	if upstreamLatency != nil {
		upstreamLatency.WithLabelValues(method).Observe(duration.Seconds())
	}
}

func IncScreenLoad(screen, transition, result string) {
	if screenLoads != nil {
		screenLoads.WithLabelValues(screen, transition, result).Inc()
	}
}

func SetUpstreamUp(up bool) {
	if healthState == nil {
		return
	}
	if up {
		healthState.Set(1)
		return
	}
	healthState.Set(0)
}

func SetActiveSessions(count int) {
	if sessions != nil {
		sessions.Set(float64(count))
	}
}
