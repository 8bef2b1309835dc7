// Package model defines domain models of the processing tier.
package model

// Color is the coloring of a block relative to the selected chain.
type Color string

const (
	// ColorGray marks a block not yet colored by any chain block merge set.
	ColorGray Color = "gray"
	// ColorBlue marks a block in the blue merge set of a chain block.
	ColorBlue Color = "blue"
	// ColorRed marks a block in the red merge set of a chain block.
	ColorRed Color = "red"
)

// Block represents a block row persisted to PostgreSQL.
type Block struct {
	ID               int64
	Hash             string
	Timestamp        int64
	ParentIDs        []int64
	DAAScore         uint64
	BlueScore        uint64
	Height           uint64
	HeightGroupIndex uint32
	SelectedParentID *int64
	Color            Color
	IsChainBlock     bool
	Abandoned        bool
	MergeSetRedIDs   []int64
	MergeSetBlueIDs  []int64
}

// Ref returns the chain-state identity of the block.
func (b Block) Ref() BlockRef {
	return BlockRef{
		ID:               b.ID,
		Hash:             b.Hash,
		Height:           b.Height,
		BlueScore:        b.BlueScore,
		HeightGroupIndex: b.HeightGroupIndex,
	}
}

// BlockRef identifies a stored block together with its chain weight.
type BlockRef struct {
	ID               int64
	Hash             string
	Height           uint64
	BlueScore        uint64
	HeightGroupIndex uint32
}

// Outweighs reports whether r is heavier than other, comparing blue score first
// and height second.
func (r BlockRef) Outweighs(other BlockRef) bool {
	if r.BlueScore != other.BlueScore {
		return r.BlueScore > other.BlueScore
	}
	return r.Height > other.Height
}

// Edge links a block to one of its direct parents.
type Edge struct {
	FromBlockID          int64
	ToBlockID            int64
	FromHeight           uint64
	ToHeight             uint64
	FromHeightGroupIndex uint32
	ToHeightGroupIndex   uint32
}

// HeightGroup counts the blocks stored at a height.
type HeightGroup struct {
	Height uint64
	Size   uint32
}
