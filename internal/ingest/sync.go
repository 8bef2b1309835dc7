package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"github.com/goodnatureofminers/tgi-processing/internal/node"
	"github.com/goodnatureofminers/tgi-processing/pkg/workerpool"
	"go.uber.org/zap"
)

// Sync catches the store up with the node. It walks getBlocks from the sync
// cursor, or from the root after a resync request, until the node returns
// fewer than NearTipThreshold hashes, and then reconciles the selected chain
// with the node's virtual chain.
func (p *Pipeline) Sync(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	started := time.Now()
	low := p.root.Hash
	if cursor := p.tracker.State().Cursor; cursor != nil && !p.resyncPending {
		low = cursor.Hash
	}
	if low == "" {
		return errors.New("sync before start: no root block")
	}

	total := 0
	for {
		hashes, err := retryValue(ctx, p, "get_blocks", func(ctx context.Context) ([]string, error) {
			return p.node.GetBlocks(ctx, low)
		})
		if errors.Is(err, node.ErrNotFound) && low != p.root.Hash {
			p.logger.Warn("low hash unknown to node, syncing from root", zap.String("low_hash", low))
			low = p.root.Hash
			continue
		}
		if err != nil {
			return fmt.Errorf("get blocks from %s: %w", low, err)
		}
		p.resyncPending = false

		applied, err := p.syncHashes(ctx, hashes)
		if err != nil {
			return err
		}
		total += applied

		if len(hashes) < p.cfg.NearTipThreshold || hashes[len(hashes)-1] == low {
			break
		}
		low = hashes[len(hashes)-1]
	}

	if err := p.reconcile(ctx); err != nil {
		return err
	}
	if total > 0 {
		fields := []zap.Field{zap.Int("blocks", total), zap.Duration("elapsed", time.Since(started))}
		if tip := p.tracker.State().SelectedTip; tip != nil {
			fields = append(fields, zap.String("selected_tip", tip.Hash))
		}
		p.logger.Info("sync completed", fields...)
	}
	return nil
}

// syncHashes ingests the blocks among hashes that are not stored yet, in
// chunks of SyncBatchSize per transaction, and returns how many it applied.
func (p *Pipeline) syncHashes(ctx context.Context, hashes []string) (int, error) {
	applied := 0
	for start := 0; start < len(hashes); start += p.cfg.SyncBatchSize {
		chunk := hashes[start:min(start+p.cfg.SyncBatchSize, len(hashes))]

		stored, err := p.store.BlockRefsByHashes(ctx, chunk)
		if err != nil {
			return applied, fmt.Errorf("look up blocks: %w", err)
		}
		missing := make([]string, 0, len(chunk))
		for _, h := range chunk {
			if _, ok := stored[h]; !ok {
				missing = append(missing, h)
			}
		}
		if len(missing) == 0 {
			continue
		}

		blocks, err := workerpool.Map(ctx, p.cfg.PrefetchWorkers, missing,
			func(ctx context.Context, hash string) (model.NodeBlock, error) {
				b, err := p.fetchComplete(ctx, hash)
				if err != nil {
					return model.NodeBlock{}, err
				}
				return *b, nil
			},
		)
		if err != nil {
			return applied, err
		}
		collected, err := p.collect(ctx, blocks)
		if err != nil {
			return applied, err
		}
		if err := p.commit(ctx, sourceSync, collected, ""); err != nil {
			return applied, err
		}
		applied += len(collected)
	}
	return applied, nil
}

// reconcile aligns the selected tip with the node's sink.
func (p *Pipeline) reconcile(ctx context.Context) error {
	tip := p.tracker.State().SelectedTip
	if tip == nil {
		return nil
	}

	change, err := retryValue(ctx, p, "get_virtual_chain_from_block", func(ctx context.Context) (*model.VirtualChainChange, error) {
		return p.node.GetVirtualChainFromBlock(ctx, tip.Hash)
	})
	if err == nil {
		return p.applyChainChange(ctx, *change)
	}
	if !errors.Is(err, node.ErrNotFound) {
		return fmt.Errorf("get virtual chain from %s: %w", tip.Hash, err)
	}

	sink, err := retryValue(ctx, p, "get_sink", p.node.GetSink)
	if err != nil {
		return fmt.Errorf("get sink: %w", err)
	}
	return p.handleReorg(ctx, sourceReorg, sink)
}

// applyChainChange ingests the added chain blocks the store lacks and makes
// the last of them the selected tip.
func (p *Pipeline) applyChainChange(ctx context.Context, change model.VirtualChainChange) error {
	added := change.AddedChainBlockHashes
	if len(added) == 0 {
		return nil
	}

	stored, err := p.store.BlockRefsByHashes(ctx, added)
	if err != nil {
		return fmt.Errorf("look up chain blocks: %w", err)
	}
	var blocks []model.NodeBlock
	for _, h := range added {
		if _, ok := stored[h]; ok {
			continue
		}
		b, err := p.fetchComplete(ctx, h)
		if err != nil {
			return err
		}
		blocks = append(blocks, *b)
	}
	collected, err := p.collect(ctx, blocks)
	if err != nil {
		return err
	}
	return p.commit(ctx, sourceChain, collected, added[len(added)-1])
}
