package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pipelineBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tgi",
		Subsystem: "pipeline",
		Name:      "batch_total",
		Help:      "Count of committed or failed units of work.",
	}, []string{"source", "network", "status"})

	pipelineBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tgi",
		Subsystem: "pipeline",
		Name:      "batch_duration_seconds",
		Help:      "Duration of a unit of work including its transaction.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source", "network", "status"})

	pipelineBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tgi",
		Subsystem: "pipeline",
		Name:      "batch_size",
		Help:      "Number of blocks written per unit of work.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"source", "network"})

	pipelineBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tgi",
		Subsystem: "pipeline",
		Name:      "blocks_total",
		Help:      "Count of classified blocks by kind.",
	}, []string{"kind", "network"})

	pipelineReorgTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tgi",
		Subsystem: "pipeline",
		Name:      "reorg_total",
		Help:      "Count of selected chain reorganizations.",
	}, []string{"network", "status"})

	pipelineReorgDepth = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tgi",
		Subsystem: "pipeline",
		Name:      "reorg_depth",
		Help:      "Number of chain blocks abandoned per reorganization.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"network"})

	pipelineRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tgi",
		Subsystem: "pipeline",
		Name:      "retries_total",
		Help:      "Count of retried operations.",
	}, []string{"operation", "network"})

	pipelineCursorHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tgi",
		Subsystem: "pipeline",
		Name:      "cursor_height",
		Help:      "Height of the block the sync cursor points at.",
	}, []string{"network"})

	pipelineCursorDAAScore = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tgi",
		Subsystem: "pipeline",
		Name:      "cursor_daa_score",
		Help:      "DAA score of the block the sync cursor points at.",
	}, []string{"network"})
)

// Pipeline tracks metrics for the ingestion pipeline.
type Pipeline struct {
	network string
}

// NewPipeline constructs a Pipeline metrics collector.
func NewPipeline(network string) *Pipeline {
	if network == "" {
		network = "unknown"
	}
	return &Pipeline{network: network}
}

// ObserveBatch records a unit of work written by source ("sync", "live", "reorg").
func (m Pipeline) ObserveBatch(source string, err error, blocks int, started time.Time) {
	status := statusOf(err)
	pipelineBatchTotal.WithLabelValues(source, m.network, status).Inc()
	pipelineBatchDuration.WithLabelValues(source, m.network, status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		pipelineBatchSize.WithLabelValues(source, m.network).Observe(float64(blocks))
	}
}

// ObserveBlock counts a block by its classification.
func (m Pipeline) ObserveBlock(kind string) {
	pipelineBlocksTotal.WithLabelValues(kind, m.network).Inc()
}

// ObserveReorg records a selected chain reorganization.
func (m Pipeline) ObserveReorg(err error, abandoned int) {
	pipelineReorgTotal.WithLabelValues(m.network, statusOf(err)).Inc()
	if err == nil {
		pipelineReorgDepth.WithLabelValues(m.network).Observe(float64(abandoned))
	}
}

// ObserveRetry counts one retry of operation.
func (m Pipeline) ObserveRetry(operation string) {
	pipelineRetriesTotal.WithLabelValues(operation, m.network).Inc()
}

// SetCursor publishes the committed cursor position.
func (m Pipeline) SetCursor(height, daaScore uint64) {
	pipelineCursorHeight.WithLabelValues(m.network).Set(float64(height))
	pipelineCursorDAAScore.WithLabelValues(m.network).Set(float64(daaScore))
}
