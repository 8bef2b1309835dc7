package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tgi-processing/internal/chainstate"
	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"go.uber.org/zap"
)

// unit is the state of one transaction. It starts from the tracked state
// and replaces it only after the transaction committed.
type unit struct {
	state chainstate.State
	known map[string]model.BlockRef

	kinds         map[chainstate.Kind]int
	inserted      int
	reorgDepths   []int
	cursorChanged bool
}

func newUnit(state chainstate.State) *unit {
	return &unit{
		state: state,
		known: make(map[string]model.BlockRef),
		kinds: make(map[chainstate.Kind]int),
	}
}

func (u *unit) ids(hashes []string) []int64 {
	out := make([]int64, 0, len(hashes))
	for _, h := range hashes {
		if ref, ok := u.known[h]; ok {
			out = append(out, ref.ID)
		}
	}
	return out
}

// advanceCursor moves the cursor to b unless b lies below it by DAA score.
func (u *unit) advanceCursor(b model.Block) {
	if u.state.Cursor != nil && b.DAAScore < u.state.Cursor.DAAScore {
		return
	}
	cursor := cursorOf(b)
	u.state.Cursor = &cursor
	u.cursorChanged = true
}

// commit applies blocks parent-first in one transaction and, when reorgTo is
// set, makes that block the selected tip afterwards.
func (p *Pipeline) commit(ctx context.Context, source string, blocks []model.NodeBlock, reorgTo string) error {
	if len(blocks) == 0 && reorgTo == "" {
		return nil
	}
	started := time.Now()

	var u *unit
	err := p.runInTx(ctx, func(ctx context.Context) error {
		u = newUnit(p.tracker.State())
		if err := p.preload(ctx, u, blocks); err != nil {
			return err
		}
		for _, b := range blocks {
			if err := p.apply(ctx, u, b); err != nil {
				return fmt.Errorf("apply block %s: %w", b.Hash, err)
			}
		}
		if reorgTo != "" {
			if err := p.reorgTo(ctx, u, reorgTo); err != nil {
				return err
			}
		}
		if u.cursorChanged {
			if err := p.store.SaveSyncCursor(ctx, *u.state.Cursor); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		p.metrics.ObserveBatch(source, err, len(blocks), started)
		if reorgTo != "" {
			p.metrics.ObserveReorg(err, 0)
		}
		return err
	}

	p.tracker.Commit(u.state)
	for kind, n := range u.kinds {
		for i := 0; i < n; i++ {
			p.metrics.ObserveBlock(kind.String())
		}
	}
	for _, depth := range u.reorgDepths {
		p.metrics.ObserveReorg(nil, depth)
	}
	if u.cursorChanged {
		p.metrics.SetCursor(u.state.Cursor.Height, u.state.Cursor.DAAScore)
	}
	p.metrics.ObserveBatch(source, nil, u.inserted, started)

	if u.inserted > 0 || len(u.reorgDepths) > 0 {
		fields := []zap.Field{
			zap.String("source", source),
			zap.Int("inserted", u.inserted),
			zap.Int("reorgs", len(u.reorgDepths)),
		}
		if tip := u.state.SelectedTip; tip != nil {
			fields = append(fields, zap.String("selected_tip", tip.Hash), zap.Uint64("height", tip.Height))
		}
		p.logger.Debug("committed unit of work", fields...)
	}
	return nil
}

// preload resolves the stored blocks referenced by blocks.
func (p *Pipeline) preload(ctx context.Context, u *unit, blocks []model.NodeBlock) error {
	var hashes []string
	for _, b := range blocks {
		hashes = append(hashes, b.Hash)
		hashes = append(hashes, b.ParentHashes...)
		hashes = append(hashes, b.MergeSetBluesHashes...)
		hashes = append(hashes, b.MergeSetRedsHashes...)
	}
	if len(hashes) == 0 {
		return nil
	}
	refs, err := p.store.BlockRefsByHashes(ctx, hashes)
	if err != nil {
		return fmt.Errorf("preload block refs: %w", err)
	}
	for h, ref := range refs {
		u.known[h] = ref
	}
	return nil
}

func (p *Pipeline) apply(ctx context.Context, u *unit, nb model.NodeBlock) error {
	c := chainstate.Classify(u.state, chainstate.CandidateFromNode(nb), u.known)
	u.kinds[c.Kind]++

	switch c.Kind {
	case chainstate.KindStaleDuplicate:
		return nil
	case chainstate.KindGap:
		if len(c.Missing) == 0 {
			p.logger.Warn("skipping parentless block", zap.String("hash", nb.Hash))
			return nil
		}
		return fmt.Errorf("%w: missing %v", ErrMissingParent, c.Missing)
	}

	index, err := p.store.NextHeightGroupIndex(ctx, c.Height)
	if err != nil {
		return err
	}
	parentIDs := make([]int64, 0, len(c.Parents))
	for _, parent := range c.Parents {
		parentIDs = append(parentIDs, parent.ID)
	}
	block := model.Block{
		Hash:             nb.Hash,
		Timestamp:        nb.Timestamp,
		ParentIDs:        parentIDs,
		DAAScore:         nb.DAAScore,
		BlueScore:        nb.BlueScore,
		Height:           c.Height,
		HeightGroupIndex: index,
		Color:            model.ColorGray,
		IsChainBlock:     c.Kind == chainstate.KindExtendsTip,
		MergeSetBlueIDs:  u.ids(nb.MergeSetBluesHashes),
		MergeSetRedIDs:   u.ids(nb.MergeSetRedsHashes),
	}
	if c.SelectedParent != nil {
		id := c.SelectedParent.ID
		block.SelectedParentID = &id
	}
	if block.ID, err = p.store.InsertBlock(ctx, block); err != nil {
		return err
	}

	edges := make([]model.Edge, 0, len(c.Parents))
	for _, parent := range c.Parents {
		edges = append(edges, model.Edge{
			FromBlockID:          block.ID,
			ToBlockID:            parent.ID,
			FromHeight:           block.Height,
			ToHeight:             parent.Height,
			FromHeightGroupIndex: block.HeightGroupIndex,
			ToHeightGroupIndex:   parent.HeightGroupIndex,
		})
	}
	if len(edges) > 0 {
		if err := p.store.InsertEdges(ctx, edges); err != nil {
			return err
		}
	}
	if err := p.store.AddTip(ctx, block.ID, parentIDs); err != nil {
		return err
	}

	ref := block.Ref()
	u.known[block.Hash] = ref
	u.inserted++
	u.advanceCursor(block)

	switch c.Kind {
	case chainstate.KindExtendsTip:
		if err := p.colorMergeSet(ctx, block); err != nil {
			return err
		}
		if err := p.store.SetSelectedTip(ctx, block.ID); err != nil {
			return err
		}
		u.state.SelectedTip = &ref
	case chainstate.KindAltersSelectedTip:
		return p.reorg(ctx, u, block)
	}
	return nil
}

func (p *Pipeline) colorMergeSet(ctx context.Context, b model.Block) error {
	if len(b.MergeSetBlueIDs) > 0 {
		if err := p.store.UpdateColors(ctx, b.MergeSetBlueIDs, model.ColorBlue); err != nil {
			return err
		}
	}
	if len(b.MergeSetRedIDs) > 0 {
		if err := p.store.UpdateColors(ctx, b.MergeSetRedIDs, model.ColorRed); err != nil {
			return err
		}
	}
	return nil
}
