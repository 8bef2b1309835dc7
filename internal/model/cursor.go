package model

import "time"

// SyncCursor is the durable bookmark of the last block committed by the pipeline.
type SyncCursor struct {
	BlockID   int64
	Hash      string
	Height    uint64
	DAAScore  uint64
	UpdatedAt time.Time
}
