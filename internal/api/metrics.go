package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chainstat/walletstat/internal/registry"
)

// newMetricsHandler exposes the analysis counters on a dedicated Prometheus
// registry, keeping the endpoint free of default process collectors.
func newMetricsHandler(counters *registry.Registry) http.Handler {
	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "walletstat_wallets_analyzed_total",
			Help: "Lifetime number of completed wallet analyses.",
		}, func() float64 { return float64(counters.Stats().WalletsAnalyzed) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "walletstat_tokens_ingested_total",
			Help: "Lifetime number of token holdings ingested.",
		}, func() float64 { return float64(counters.Stats().TokensIngested) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "walletstat_events_emitted_total",
			Help: "Lifetime number of ledger events delivered.",
		}, func() float64 { return float64(counters.Stats().EventsEmitted) }),
	)
	return promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})
}
