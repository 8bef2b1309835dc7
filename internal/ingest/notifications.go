package ingest

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"go.uber.org/zap"
)

// Ingest stores a node-reported block together with its missing ancestors
// in one transaction. Stored blocks are ignored.
func (p *Pipeline) Ingest(ctx context.Context, block model.NodeBlock) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !block.Complete() {
		full, err := p.fetchComplete(ctx, block.Hash)
		if err != nil {
			return err
		}
		block = *full
	}
	blocks, err := p.collect(ctx, []model.NodeBlock{block})
	if err != nil {
		return err
	}
	return p.commit(ctx, sourceLive, blocks, "")
}

func (p *Pipeline) consume(ctx context.Context, notifications <-chan model.Notification) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n, ok := <-notifications:
			if !ok {
				p.logger.Info("notification stream closed, relying on catch-up")
				return nil
			}
			if err := p.handle(ctx, n); err != nil {
				if err := p.tolerate(ctx, fmt.Sprintf("handle %s notification", n.Kind), err); err != nil {
					return err
				}
			}
		}
	}
}

func (p *Pipeline) handle(ctx context.Context, n model.Notification) error {
	switch n.Kind {
	case model.NotificationBlockAdded:
		if n.Block == nil {
			return nil
		}
		return p.Ingest(ctx, *n.Block)
	case model.NotificationVirtualChainChanged:
		if n.ChainChange == nil {
			return nil
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.applyChainChange(ctx, *n.ChainChange)
	case model.NotificationTipChanged:
		return p.Sync(ctx)
	case model.NotificationReconnected:
		p.logger.Info("node reconnected, resuming from sync cursor")
		if err := p.refreshNodeVersion(ctx); err != nil {
			return err
		}
		return p.Sync(ctx)
	default:
		p.logger.Debug("ignoring notification", zap.String("kind", string(n.Kind)))
		return nil
	}
}
