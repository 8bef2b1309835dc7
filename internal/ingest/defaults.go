package ingest

// Batch sources reported to metrics.
const (
	sourceSync  = "sync"
	sourceLive  = "live"
	sourceChain = "chain"
	sourceReorg = "reorg"
	sourceRoot  = "root"
)

const (
	operationCommit = "commit"
	operationFetch  = "fetch_block"
)
