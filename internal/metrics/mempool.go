package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/chainexec/internal/chain/mempool"
)

// RegisterMempool exposes depth gauges for the pool on the default
// registerer. Call at most once per process.
func RegisterMempool(pool *mempool.Pool) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "chainexec",
		Subsystem: "mempool",
		Name:      "pending_transactions",
		Help:      "Raw transactions waiting to be sealed into a collection.",
	}, func() float64 {
		pending, _ := pool.Stats()
		return float64(pending)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "chainexec",
		Subsystem: "mempool",
		Name:      "sealed_collections",
		Help:      "Collections sealed and not yet removed.",
	}, func() float64 {
		_, collections := pool.Stats()
		return float64(collections)
	})
}
