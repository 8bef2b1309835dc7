package node

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const defaultPollInterval = time.Second

// Client is the pipeline-facing node client. Each call is rate limited,
// instrumented and bound to the caller context.
type Client struct {
	rpc          RawClient
	rpcMetrics   RPCMetrics
	limiter      ratelimit.Limiter
	relay        *Relay
	pollInterval time.Duration
	logger       *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithRateLimit limits outgoing requests to rps per second. Zero disables it.
func WithRateLimit(rps int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = ratelimit.New(rps)
		}
	}
}

// WithRelay makes Subscribe consume push notifications delivered to relay.
// Without a relay the client polls the node sink.
func WithRelay(relay *Relay) Option {
	return func(c *Client) {
		c.relay = relay
	}
}

// WithPollInterval sets the sink polling interval used without a relay.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// NewClient constructs a Client over rpc.
func NewClient(rpc RawClient, rpcMetrics RPCMetrics, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		rpc:          rpc,
		rpcMetrics:   rpcMetrics,
		limiter:      ratelimit.NewUnlimited(),
		pollInterval: defaultPollInterval,
		logger:       logger.Named("node_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetInfo returns the node status.
func (c *Client) GetInfo(ctx context.Context) (*model.NodeInfo, error) {
	var resp getInfoResponse
	if err := c.call(ctx, "getInfo", nil, &resp); err != nil {
		return nil, err
	}
	return &model.NodeInfo{
		P2PID:         resp.P2PID,
		ServerVersion: resp.ServerVersion,
		IsSynced:      resp.IsSynced,
		IsUtxoIndexed: resp.IsUtxoIndexed,
	}, nil
}

// GetBlockDAGInfo returns the DAG summary including the pruning point.
func (c *Client) GetBlockDAGInfo(ctx context.Context) (*model.DAGInfo, error) {
	var resp getBlockDAGInfoResponse
	if err := c.call(ctx, "getBlockDagInfo", nil, &resp); err != nil {
		return nil, err
	}
	info, err := resp.toModel()
	if err != nil {
		return nil, fmt.Errorf("getBlockDagInfo: %w: %v", ErrMalformedResponse, err)
	}
	return info, nil
}

// GetBlock returns the block with the given hash without transactions.
func (c *Client) GetBlock(ctx context.Context, hash string) (*model.NodeBlock, error) {
	hash, err := normalizeHash(hash)
	if err != nil {
		return nil, fmt.Errorf("getBlock: %w", err)
	}
	var resp getBlockResponse
	if err := c.call(ctx, "getBlock", []interface{}{hash, false}, &resp); err != nil {
		return nil, err
	}
	block, err := resp.Block.toModel()
	if err != nil {
		return nil, fmt.Errorf("getBlock %s: %w: %v", hash, ErrMalformedResponse, err)
	}
	return block, nil
}

// GetBlocks returns the hashes from lowHash to the node tips in topological order.
func (c *Client) GetBlocks(ctx context.Context, lowHash string) ([]string, error) {
	lowHash, err := normalizeHash(lowHash)
	if err != nil {
		return nil, fmt.Errorf("getBlocks: %w", err)
	}
	var resp getBlocksResponse
	if err := c.call(ctx, "getBlocks", []interface{}{lowHash, false, false}, &resp); err != nil {
		return nil, err
	}
	hashes, err := normalizeHashes(resp.BlockHashes)
	if err != nil {
		return nil, fmt.Errorf("getBlocks: %w: %v", ErrMalformedResponse, err)
	}
	return hashes, nil
}

// GetSink returns the hash of the node selected tip.
func (c *Client) GetSink(ctx context.Context) (string, error) {
	var resp getSinkResponse
	if err := c.call(ctx, "getSink", nil, &resp); err != nil {
		return "", err
	}
	sink, err := normalizeHash(resp.Sink)
	if err != nil {
		return "", fmt.Errorf("getSink: %w: %v", ErrMalformedResponse, err)
	}
	return sink, nil
}

// GetVirtualChainFromBlock returns the selected chain changes since startHash.
func (c *Client) GetVirtualChainFromBlock(ctx context.Context, startHash string) (*model.VirtualChainChange, error) {
	startHash, err := normalizeHash(startHash)
	if err != nil {
		return nil, fmt.Errorf("getVirtualChainFromBlock: %w", err)
	}
	var resp virtualChainResponse
	if err := c.call(ctx, "getVirtualChainFromBlock", []interface{}{startHash, false}, &resp); err != nil {
		return nil, err
	}
	change, err := resp.toModel()
	if err != nil {
		return nil, fmt.Errorf("getVirtualChainFromBlock: %w: %v", ErrMalformedResponse, err)
	}
	return change, nil
}

type rawResult struct {
	raw json.RawMessage
	err error
}

func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	rawParams := make([]json.RawMessage, 0, len(params))
	for _, p := range params {
		b, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("%s: marshal params: %w", method, err)
		}
		rawParams = append(rawParams, b)
	}

	c.limiter.Take()

	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe(method, err, started)
	}()

	// RawRequest does not take a context; the result is dropped when ctx ends first.
	done := make(chan rawResult, 1)
	go func() {
		raw, err := c.rpc.RawRequest(method, rawParams)
		done <- rawResult{raw: raw, err: err}
	}()

	var res rawResult
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res = <-done:
	}
	if res.err != nil {
		return mapError(method, res.err)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res.raw, out); err != nil {
		return fmt.Errorf("%s: %w: %v", method, ErrMalformedResponse, err)
	}
	return nil
}
