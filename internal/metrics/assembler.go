// Package metrics implements Prometheus instrumentation for chainexec
// services.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/chainexec/internal/chain/assembler"
)

var (
	assemblerFetchCollectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainexec",
		Subsystem: "assembler",
		Name:      "fetch_collections_total",
		Help:      "Count of attempts to fetch collections for a block.",
	}, []string{"status"})

	assemblerFetchCollectionsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chainexec",
		Subsystem: "assembler",
		Name:      "fetch_collections_duration_seconds",
		Help:      "Duration of fetching collections for a block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	assemblerBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chainexec",
		Subsystem: "assembler",
		Name:      "blocks_total",
		Help:      "Count of finalized blocks.",
	})

	assemblerBlockDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "chainexec",
		Subsystem: "assembler",
		Name:      "block_duration_seconds",
		Help:      "Duration of assembling one block, polling included.",
		Buckets:   prometheus.DefBuckets,
	})

	assemblerBlockGasUsed = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "chainexec",
		Subsystem: "assembler",
		Name:      "block_gas_used",
		Help:      "Gas used per finalized block.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 16),
	})

	assemblerTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainexec",
		Subsystem: "assembler",
		Name:      "transactions_total",
		Help:      "Count of transactions offered to blocks, by outcome.",
	}, []string{"outcome"})

	assemblerResubmitTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainexec",
		Subsystem: "assembler",
		Name:      "resubmit_total",
		Help:      "Count of resubmission attempts for rejected transactions.",
	}, []string{"status"})

	assemblerResubmitTransactions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chainexec",
		Subsystem: "assembler",
		Name:      "resubmit_transactions_total",
		Help:      "Count of transactions pushed back to the mempool.",
	})
)

// Assembler tracks metrics for the block assembly pipeline.
type Assembler struct{}

// NewAssembler constructs an Assembler metrics recorder.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// ObserveFetchCollections records a collection fetch outcome and duration.
func (Assembler) ObserveFetchCollections(err error, started time.Time) {
	status := statusOf(err)
	assemblerFetchCollectionsTotal.WithLabelValues(status).Inc()
	assemblerFetchCollectionsDuration.WithLabelValues(status).
		Observe(time.Since(started).Seconds())
}

// ObserveBlock records a finalized block and the fate of its candidates.
func (Assembler) ObserveBlock(report assembler.Report, started time.Time) {
	assemblerBlocksTotal.Inc()
	assemblerBlockDuration.Observe(time.Since(started).Seconds())
	assemblerBlockGasUsed.Observe(float64(report.Block.GasUsed))
	assemblerTransactionsTotal.WithLabelValues("accepted").
		Add(float64(len(report.Block.Transactions)))
	assemblerTransactionsTotal.WithLabelValues("invalid").Add(float64(report.Invalid))
	assemblerTransactionsTotal.WithLabelValues("overflow").Add(float64(report.Overflow))
	assemblerTransactionsTotal.WithLabelValues("malformed").Add(float64(report.Malformed))
}

// ObserveResubmit records an attempt to push rejected transactions back.
func (Assembler) ObserveResubmit(err error, count int) {
	assemblerResubmitTotal.WithLabelValues(statusOf(err)).Inc()
	if err == nil {
		assemblerResubmitTransactions.Add(float64(count))
	}
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
