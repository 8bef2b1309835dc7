// Package chainstate tracks the committed chain state of the pipeline and
// classifies incoming blocks against it.
package chainstate

import "github.com/goodnatureofminers/tgi-processing/internal/model"

// Kind is the outcome of classifying a block against the tracked state.
type Kind int

const (
	// KindExtendsTip marks a block whose selected parent is the selected tip.
	KindExtendsTip Kind = iota + 1
	// KindAltersSelectedTip marks a block that outweighs the selected tip on another branch.
	KindAltersSelectedTip
	// KindForksSideBranch marks a block stored on a branch that does not become selected.
	KindForksSideBranch
	// KindStaleDuplicate marks a block that is already stored.
	KindStaleDuplicate
	// KindGap marks a block with parents missing from the store.
	KindGap
)

func (k Kind) String() string {
	switch k {
	case KindExtendsTip:
		return "extends_tip"
	case KindAltersSelectedTip:
		return "alters_selected_tip"
	case KindForksSideBranch:
		return "forks_side_branch"
	case KindStaleDuplicate:
		return "stale_duplicate"
	case KindGap:
		return "gap"
	default:
		return "unknown"
	}
}

// Candidate is a node-reported block prepared for classification.
type Candidate struct {
	Hash               string
	ParentHashes       []string
	SelectedParentHash string
	BlueScore          uint64
}

// CandidateFromNode builds a Candidate from a node block.
func CandidateFromNode(b model.NodeBlock) Candidate {
	return Candidate{
		Hash:               b.Hash,
		ParentHashes:       b.ParentHashes,
		SelectedParentHash: b.SelectedParentHash,
		BlueScore:          b.BlueScore,
	}
}

// Classification describes how a candidate relates to the tracked state.
type Classification struct {
	Kind Kind
	// Height is the height the candidate gets when stored.
	Height uint64
	// Existing is the stored block for KindStaleDuplicate.
	Existing *model.BlockRef
	// SelectedParent is nil only for a root block.
	SelectedParent *model.BlockRef
	Parents        []model.BlockRef
	// Missing lists unknown parents for KindGap. An empty list with KindGap
	// means the block has no parents while the store already has a root.
	Missing []string
}

// Classify compares a candidate with the tracked state. known maps hashes of
// stored blocks among the candidate and its parents to their references.
func Classify(state State, c Candidate, known map[string]model.BlockRef) Classification {
	if ref, ok := known[c.Hash]; ok {
		return Classification{Kind: KindStaleDuplicate, Existing: &ref, Height: ref.Height}
	}

	parents := make([]model.BlockRef, 0, len(c.ParentHashes))
	var missing []string
	for _, h := range c.ParentHashes {
		ref, ok := known[h]
		if !ok {
			missing = append(missing, h)
			continue
		}
		parents = append(parents, ref)
	}
	if len(missing) > 0 {
		return Classification{Kind: KindGap, Parents: parents, Missing: missing}
	}

	if len(parents) == 0 {
		if state.Empty() {
			return Classification{Kind: KindExtendsTip}
		}
		return Classification{Kind: KindGap}
	}

	var height uint64
	for _, p := range parents {
		if p.Height+1 > height {
			height = p.Height + 1
		}
	}
	selected := selectedParent(c, parents)
	out := Classification{
		Height:         height,
		SelectedParent: &selected,
		Parents:        parents,
	}

	self := model.BlockRef{Hash: c.Hash, Height: height, BlueScore: c.BlueScore}
	tip := state.SelectedTip
	switch {
	case tip == nil, selected.Hash == tip.Hash:
		out.Kind = KindExtendsTip
	case self.Outweighs(*tip):
		out.Kind = KindAltersSelectedTip
	default:
		out.Kind = KindForksSideBranch
	}
	return out
}

// selectedParent returns the node-designated selected parent, falling back to
// the heaviest parent when the node did not supply one.
func selectedParent(c Candidate, parents []model.BlockRef) model.BlockRef {
	best := parents[0]
	for _, p := range parents {
		if c.SelectedParentHash != "" && p.Hash == c.SelectedParentHash {
			return p
		}
		if p.Outweighs(best) {
			best = p
		}
	}
	return best
}
