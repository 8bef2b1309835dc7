package node

import (
	"fmt"

	"github.com/goodnatureofminers/tgi-processing/internal/model"
)

type getInfoResponse struct {
	P2PID         string `json:"p2pId"`
	ServerVersion string `json:"serverVersion"`
	IsSynced      bool   `json:"isSynced"`
	IsUtxoIndexed bool   `json:"isUtxoIndexed"`
}

type getBlockDAGInfoResponse struct {
	NetworkName         string   `json:"networkName"`
	BlockCount          uint64   `json:"blockCount"`
	HeaderCount         uint64   `json:"headerCount"`
	TipHashes           []string `json:"tipHashes"`
	VirtualParentHashes []string `json:"virtualParentHashes"`
	PruningPointHash    string   `json:"pruningPointHash"`
	VirtualDAAScore     uint64   `json:"virtualDaaScore"`
	Sink                string   `json:"sink"`
}

type rpcBlockLevelParents struct {
	ParentHashes []string `json:"parentHashes"`
}

type rpcBlockHeader struct {
	Hash      string                 `json:"hash"`
	Parents   []rpcBlockLevelParents `json:"parents"`
	Timestamp int64                  `json:"timestamp"`
	DAAScore  uint64                 `json:"daaScore"`
	BlueScore uint64                 `json:"blueScore"`
}

type rpcBlockVerboseData struct {
	Hash                string   `json:"hash"`
	IsHeaderOnly        bool     `json:"isHeaderOnly"`
	SelectedParentHash  string   `json:"selectedParentHash"`
	MergeSetBluesHashes []string `json:"mergeSetBluesHashes"`
	MergeSetRedsHashes  []string `json:"mergeSetRedsHashes"`
}

type rpcBlock struct {
	Header      rpcBlockHeader       `json:"header"`
	VerboseData *rpcBlockVerboseData `json:"verboseData"`
}

type getBlockResponse struct {
	Block rpcBlock `json:"block"`
}

type getBlocksResponse struct {
	BlockHashes []string `json:"blockHashes"`
}

type getSinkResponse struct {
	Sink string `json:"sink"`
}

type virtualChainResponse struct {
	RemovedChainBlockHashes []string `json:"removedChainBlockHashes"`
	AddedChainBlockHashes   []string `json:"addedChainBlockHashes"`
}

type blockAddedNotification struct {
	Block rpcBlock `json:"block"`
}

func (r getBlockDAGInfoResponse) toModel() (*model.DAGInfo, error) {
	pruningPoint, err := normalizeHash(r.PruningPointHash)
	if err != nil {
		return nil, fmt.Errorf("pruning point: %w", err)
	}
	tips, err := normalizeHashes(r.TipHashes)
	if err != nil {
		return nil, fmt.Errorf("tips: %w", err)
	}
	virtualParents, err := normalizeHashes(r.VirtualParentHashes)
	if err != nil {
		return nil, fmt.Errorf("virtual parents: %w", err)
	}
	info := &model.DAGInfo{
		NetworkName:         r.NetworkName,
		BlockCount:          r.BlockCount,
		HeaderCount:         r.HeaderCount,
		TipHashes:           tips,
		VirtualParentHashes: virtualParents,
		PruningPointHash:    pruningPoint,
		VirtualDAAScore:     r.VirtualDAAScore,
	}
	if r.Sink != "" {
		if info.Sink, err = normalizeHash(r.Sink); err != nil {
			return nil, fmt.Errorf("sink: %w", err)
		}
	}
	return info, nil
}

func (b rpcBlock) toModel() (*model.NodeBlock, error) {
	hash := b.Header.Hash
	if hash == "" && b.VerboseData != nil {
		hash = b.VerboseData.Hash
	}
	hash, err := normalizeHash(hash)
	if err != nil {
		return nil, fmt.Errorf("block hash: %w", err)
	}

	// Only the first level holds the direct parents.
	var direct []string
	if len(b.Header.Parents) > 0 {
		direct = b.Header.Parents[0].ParentHashes
	}
	parents, err := normalizeHashes(direct)
	if err != nil {
		return nil, fmt.Errorf("block %s parents: %w", hash, err)
	}

	out := &model.NodeBlock{
		Hash:         hash,
		ParentHashes: parents,
		Timestamp:    b.Header.Timestamp,
		DAAScore:     b.Header.DAAScore,
		BlueScore:    b.Header.BlueScore,
	}
	if v := b.VerboseData; v != nil {
		out.HasVerboseData = true
		out.IsHeaderOnly = v.IsHeaderOnly
		if v.SelectedParentHash != "" {
			if out.SelectedParentHash, err = normalizeHash(v.SelectedParentHash); err != nil {
				return nil, fmt.Errorf("block %s selected parent: %w", hash, err)
			}
		}
		if out.MergeSetBluesHashes, err = normalizeHashes(v.MergeSetBluesHashes); err != nil {
			return nil, fmt.Errorf("block %s merge set blues: %w", hash, err)
		}
		if out.MergeSetRedsHashes, err = normalizeHashes(v.MergeSetRedsHashes); err != nil {
			return nil, fmt.Errorf("block %s merge set reds: %w", hash, err)
		}
	}
	return out, nil
}

func (r virtualChainResponse) toModel() (*model.VirtualChainChange, error) {
	removed, err := normalizeHashes(r.RemovedChainBlockHashes)
	if err != nil {
		return nil, fmt.Errorf("removed chain blocks: %w", err)
	}
	added, err := normalizeHashes(r.AddedChainBlockHashes)
	if err != nil {
		return nil, fmt.Errorf("added chain blocks: %w", err)
	}
	return &model.VirtualChainChange{
		RemovedChainBlockHashes: removed,
		AddedChainBlockHashes:   added,
	}, nil
}
