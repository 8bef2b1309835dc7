// Package node adapts the blockDAG node JSON-RPC service to the pipeline.
package node

import (
	"encoding/json"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RawClient issues raw JSON-RPC requests. *rpcclient.Client satisfies it.
	RawClient interface {
		RawRequest(method string, params []json.RawMessage) (json.RawMessage, error)
	}

	// RPCMetrics records metrics for RPC calls and notifications.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
		ObserveNotification(kind string)
	}
)
