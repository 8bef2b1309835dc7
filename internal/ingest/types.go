package ingest

import (
	"context"
	"time"

	"github.com/goodnatureofminers/tgi-processing/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store persists the indexed DAG. Methods called with the context passed
	// to RunInTx's fn join that transaction.
	Store interface {
		RunInTx(ctx context.Context, fn func(ctx context.Context) error) error

		SyncCursor(ctx context.Context) (*model.SyncCursor, error)
		SaveSyncCursor(ctx context.Context, cursor model.SyncCursor) error
		SelectedTip(ctx context.Context) (*model.BlockRef, error)
		SetSelectedTip(ctx context.Context, blockID int64) error
		AddTip(ctx context.Context, blockID int64, parentIDs []int64) error

		AppConfig(ctx context.Context) (*model.AppConfig, error)
		UpsertAppConfig(ctx context.Context, cfg model.AppConfig) error
		Clear(ctx context.Context) error

		BlockByID(ctx context.Context, id int64) (*model.Block, error)
		BlockByHash(ctx context.Context, hash string) (*model.Block, error)
		BlockRefsByHashes(ctx context.Context, hashes []string) (map[string]model.BlockRef, error)
		InsertBlock(ctx context.Context, b model.Block) (int64, error)
		NextHeightGroupIndex(ctx context.Context, height uint64) (uint32, error)
		InsertEdges(ctx context.Context, edges []model.Edge) error
		SetChainMembership(ctx context.Context, blockIDs []int64, inChain bool) error
		UpdateColors(ctx context.Context, blockIDs []int64, color model.Color) error
	}

	// NodeClient is the view of the node used by the pipeline.
	NodeClient interface {
		GetInfo(ctx context.Context) (*model.NodeInfo, error)
		GetBlockDAGInfo(ctx context.Context) (*model.DAGInfo, error)
		GetBlock(ctx context.Context, hash string) (*model.NodeBlock, error)
		GetBlocks(ctx context.Context, lowHash string) ([]string, error)
		GetSink(ctx context.Context) (string, error)
		GetVirtualChainFromBlock(ctx context.Context, startHash string) (*model.VirtualChainChange, error)
		Subscribe(ctx context.Context) (<-chan model.Notification, error)
	}

	// Metrics records pipeline activity.
	Metrics interface {
		ObserveBatch(source string, err error, blocks int, started time.Time)
		ObserveBlock(kind string)
		ObserveReorg(err error, abandoned int)
		ObserveRetry(operation string)
		SetCursor(height, daaScore uint64)
	}
)
