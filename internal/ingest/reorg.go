package ingest

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"go.uber.org/zap"
)

// HandleReorg makes hash the selected tip. The block and its missing
// ancestors are ingested first when the store does not have them.
func (p *Pipeline) HandleReorg(ctx context.Context, hash string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.handleReorg(ctx, sourceReorg, hash)
}

func (p *Pipeline) handleReorg(ctx context.Context, source, hash string) error {
	if tip := p.tracker.State().SelectedTip; tip != nil && tip.Hash == hash {
		return nil
	}

	stored, err := p.store.BlockRefsByHashes(ctx, []string{hash})
	if err != nil {
		return fmt.Errorf("look up block %s: %w", hash, err)
	}
	var blocks []model.NodeBlock
	if _, ok := stored[hash]; !ok {
		block, err := p.fetchComplete(ctx, hash)
		if err != nil {
			return err
		}
		if blocks, err = p.collect(ctx, []model.NodeBlock{*block}); err != nil {
			return err
		}
	}
	return p.commit(ctx, source, blocks, hash)
}

func (p *Pipeline) reorgTo(ctx context.Context, u *unit, hash string) error {
	if tip := u.state.SelectedTip; tip != nil && tip.Hash == hash {
		return nil
	}
	target, err := p.store.BlockByHash(ctx, hash)
	if err != nil {
		return err
	}
	if target == nil {
		p.logger.Warn("reorg target is not stored", zap.String("hash", hash))
		return nil
	}
	return p.reorg(ctx, u, *target)
}

// reorg moves the selected chain to target. Chain blocks between the old
// tip and the fork point are abandoned and their merge sets turn gray; the
// new branch is then replayed from the fork point up to target.
func (p *Pipeline) reorg(ctx context.Context, u *unit, target model.Block) error {
	tip := u.state.SelectedTip
	if tip != nil && tip.ID == target.ID {
		return nil
	}

	var added []model.Block
	fork := target
	for !fork.IsChainBlock {
		added = append(added, fork)
		parent, err := p.selectedParent(ctx, fork)
		if err != nil {
			return err
		}
		fork = *parent
	}

	var removed []model.Block
	if tip != nil {
		current, err := p.store.BlockByID(ctx, tip.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: selected tip %s is not stored", ErrBrokenChain, tip.Hash)
		}
		for current.ID != fork.ID {
			if current.Height <= fork.Height {
				return fmt.Errorf("%w: selected tip %s does not descend from %s", ErrBrokenChain, tip.Hash, fork.Hash)
			}
			removed = append(removed, *current)
			if current, err = p.selectedParent(ctx, *current); err != nil {
				return err
			}
		}
	}

	if len(removed) > 0 {
		ids := make([]int64, 0, len(removed))
		var mergeSet []int64
		for _, b := range removed {
			ids = append(ids, b.ID)
			mergeSet = append(mergeSet, b.MergeSetBlueIDs...)
			mergeSet = append(mergeSet, b.MergeSetRedIDs...)
		}
		if err := p.store.SetChainMembership(ctx, ids, false); err != nil {
			return err
		}
		if len(mergeSet) > 0 {
			if err := p.store.UpdateColors(ctx, mergeSet, model.ColorGray); err != nil {
				return err
			}
		}
	}

	if len(added) > 0 {
		ids := make([]int64, 0, len(added))
		for _, b := range added {
			ids = append(ids, b.ID)
		}
		if err := p.store.SetChainMembership(ctx, ids, true); err != nil {
			return err
		}
		for i := len(added) - 1; i >= 0; i-- {
			if err := p.colorMergeSet(ctx, added[i]); err != nil {
				return err
			}
		}
	}

	if err := p.store.SetSelectedTip(ctx, target.ID); err != nil {
		return err
	}
	ref := target.Ref()
	u.state.SelectedTip = &ref
	u.reorgDepths = append(u.reorgDepths, len(removed))

	p.logger.Info("selected chain reorganized",
		zap.String("fork", fork.Hash),
		zap.String("new_tip", target.Hash),
		zap.Int("abandoned", len(removed)),
		zap.Int("added", len(added)),
	)
	return nil
}

func (p *Pipeline) selectedParent(ctx context.Context, b model.Block) (*model.Block, error) {
	if b.SelectedParentID == nil {
		return nil, fmt.Errorf("%w: block %s has no selected parent", ErrBrokenChain, b.Hash)
	}
	parent, err := p.store.BlockByID(ctx, *b.SelectedParentID)
	if err != nil {
		return nil, err
	}
	if parent == nil || parent.Height >= b.Height {
		return nil, fmt.Errorf("%w: invalid selected parent of %s", ErrBrokenChain, b.Hash)
	}
	return parent, nil
}
