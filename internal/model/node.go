package model

// NodeInfo is the node status returned by getInfo.
type NodeInfo struct {
	P2PID         string
	ServerVersion string
	IsSynced      bool
	IsUtxoIndexed bool
}

// DAGInfo is the DAG summary returned by getBlockDagInfo.
type DAGInfo struct {
	NetworkName         string
	BlockCount          uint64
	HeaderCount         uint64
	TipHashes           []string
	VirtualParentHashes []string
	PruningPointHash    string
	VirtualDAAScore     uint64
	Sink                string
}

// NodeBlock is a block as reported by the node.
type NodeBlock struct {
	Hash         string
	ParentHashes []string
	Timestamp    int64
	DAAScore     uint64
	BlueScore    uint64

	// Verbose fields are only meaningful when HasVerboseData is set.
	HasVerboseData      bool
	IsHeaderOnly        bool
	SelectedParentHash  string
	MergeSetBluesHashes []string
	MergeSetRedsHashes  []string
}

// Complete reports whether the node supplied the consensus data of the block.
func (b NodeBlock) Complete() bool {
	return b.HasVerboseData && !b.IsHeaderOnly
}

// VirtualChainChange lists chain blocks removed from and added to the selected chain.
type VirtualChainChange struct {
	RemovedChainBlockHashes []string
	AddedChainBlockHashes   []string
}

// NotificationKind enumerates node notifications consumed by the pipeline.
type NotificationKind string

const (
	// NotificationBlockAdded carries a newly accepted block.
	NotificationBlockAdded NotificationKind = "block_added"
	// NotificationVirtualChainChanged carries a selected chain change.
	NotificationVirtualChainChanged NotificationKind = "virtual_chain_changed"
	// NotificationTipChanged signals that the node sink moved without a payload.
	NotificationTipChanged NotificationKind = "tip_changed"
	// NotificationReconnected signals that the RPC connection was re-established.
	NotificationReconnected NotificationKind = "reconnected"
)

// Notification is a single event received from the node.
type Notification struct {
	Kind        NotificationKind
	Block       *NodeBlock
	ChainChange *VirtualChainChange
}
