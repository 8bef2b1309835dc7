package ingest

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"go.uber.org/zap"
)

// collect returns the blocks that must be applied to store blocks: the
// unstored blocks themselves and their unstored ancestors, parent-first.
// Ancestors below the root's DAA score are out of scope and are removed
// from the parent lists, as are blocks left without any in-scope parent.
func (p *Pipeline) collect(ctx context.Context, blocks []model.NodeBlock) ([]model.NodeBlock, error) {
	if len(blocks) == 0 {
		return nil, nil
	}

	hashes := make([]string, 0, len(blocks))
	for _, b := range blocks {
		hashes = append(hashes, b.Hash)
	}
	stored, err := p.store.BlockRefsByHashes(ctx, hashes)
	if err != nil {
		return nil, fmt.Errorf("look up blocks: %w", err)
	}

	pending := make(map[string]model.NodeBlock, len(blocks))
	roots := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if _, ok := stored[b.Hash]; ok {
			continue
		}
		if _, ok := pending[b.Hash]; ok {
			continue
		}
		pending[b.Hash] = b
		roots = append(roots, b.Hash)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	outOfScope := make(map[string]struct{})
	fetched := 0
	frontier := roots
	for len(frontier) > 0 {
		var wanted []string
		seen := make(map[string]struct{})
		for _, h := range frontier {
			for _, parent := range pending[h].ParentHashes {
				if _, ok := pending[parent]; ok {
					continue
				}
				if _, ok := outOfScope[parent]; ok {
					continue
				}
				if _, ok := seen[parent]; ok {
					continue
				}
				seen[parent] = struct{}{}
				wanted = append(wanted, parent)
			}
		}
		if len(wanted) == 0 {
			break
		}

		known, err := p.store.BlockRefsByHashes(ctx, wanted)
		if err != nil {
			return nil, fmt.Errorf("look up parents: %w", err)
		}
		frontier = nil
		for _, h := range wanted {
			if _, ok := known[h]; ok {
				continue
			}
			fetched++
			if fetched > p.cfg.MaxMissingDependencies {
				return nil, fmt.Errorf("%w: more than %d missing ancestors", ErrOutOfSync, p.cfg.MaxMissingDependencies)
			}
			ancestor, err := p.fetchComplete(ctx, h)
			if err != nil {
				return nil, err
			}
			if ancestor.DAAScore < p.rootDAAScore {
				outOfScope[h] = struct{}{}
				continue
			}
			pending[h] = *ancestor
			frontier = append(frontier, h)
		}
	}
	if fetched > 0 {
		p.logger.Debug("fetched missing ancestors",
			zap.Int("count", fetched),
			zap.Int("out_of_scope", len(outOfScope)),
		)
	}

	ordered := topologicalOrder(roots, pending)
	out := make([]model.NodeBlock, 0, len(ordered))
	for _, b := range ordered {
		if len(b.ParentHashes) > 0 {
			b = withoutHashes(b, outOfScope)
			if len(b.ParentHashes) == 0 {
				outOfScope[b.Hash] = struct{}{}
				p.logger.Debug("block has no parent in scope", zap.String("hash", b.Hash))
				continue
			}
		}
		out = append(out, b)
	}
	return out, nil
}

// topologicalOrder orders pending blocks reachable from roots so every block
// follows its pending parents. Among independent blocks roots keep their order.
func topologicalOrder(roots []string, pending map[string]model.NodeBlock) []model.NodeBlock {
	out := make([]model.NodeBlock, 0, len(pending))
	visited := make(map[string]bool, len(pending))

	type frame struct {
		hash string
		next int
	}
	for _, root := range roots {
		if visited[root] {
			continue
		}
		visited[root] = true
		stack := []frame{{hash: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			parents := pending[top.hash].ParentHashes
			if top.next < len(parents) {
				parent := parents[top.next]
				top.next++
				if _, ok := pending[parent]; ok && !visited[parent] {
					visited[parent] = true
					stack = append(stack, frame{hash: parent})
				}
				continue
			}
			out = append(out, pending[top.hash])
			stack = stack[:len(stack)-1]
		}
	}
	return out
}

func withoutHashes(b model.NodeBlock, drop map[string]struct{}) model.NodeBlock {
	if len(drop) == 0 {
		return b
	}
	filter := func(in []string) []string {
		out := make([]string, 0, len(in))
		for _, h := range in {
			if _, ok := drop[h]; !ok {
				out = append(out, h)
			}
		}
		return out
	}
	b.ParentHashes = filter(b.ParentHashes)
	b.MergeSetBluesHashes = filter(b.MergeSetBluesHashes)
	b.MergeSetRedsHashes = filter(b.MergeSetRedsHashes)
	if _, ok := drop[b.SelectedParentHash]; ok {
		b.SelectedParentHash = ""
	}
	return b
}
