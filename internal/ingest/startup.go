package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/tgi-processing/internal/chainstate"
	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"go.uber.org/zap"
)

// Start checks the node, registers the app config, waits for the node to
// finish IBD and resolves the resume point. The store is cleared and seeded
// with the pruning point when requested or when the pruning point is unknown.
func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	info, err := retryValue(ctx, p, "get_info", p.node.GetInfo)
	if err != nil {
		return fmt.Errorf("get node info: %w", err)
	}
	p.nodeVersion = info.ServerVersion
	p.logger.Info("connected to node",
		zap.String("server_version", info.ServerVersion),
		zap.Bool("is_synced", info.IsSynced),
		zap.Bool("is_utxo_indexed", info.IsUtxoIndexed),
	)

	dag, err := retryValue(ctx, p, "get_block_dag_info", p.node.GetBlockDAGInfo)
	if err != nil {
		return fmt.Errorf("get block dag info: %w", err)
	}
	if dag.NetworkName != "" && !sameNetwork(dag.NetworkName, p.cfg.Network) {
		return fmt.Errorf("%w: node network %q, configured %q", ErrIncompatible, dag.NetworkName, p.cfg.Network)
	}

	if err := p.registerAppConfig(ctx); err != nil {
		return err
	}
	if err := p.waitForNodeSync(ctx); err != nil {
		return err
	}

	// The pruning point may move while the node finishes IBD.
	dag, err = retryValue(ctx, p, "get_block_dag_info", p.node.GetBlockDAGInfo)
	if err != nil {
		return fmt.Errorf("get block dag info: %w", err)
	}

	resume, err := p.tracker.ResumePoint(ctx)
	if err != nil {
		return err
	}
	stored, err := p.store.BlockByHash(ctx, dag.PruningPointHash)
	if err != nil {
		return fmt.Errorf("look up pruning point %s: %w", dag.PruningPointHash, err)
	}

	if p.cfg.ClearDB || stored == nil {
		p.logger.Info("seeding store with pruning point",
			zap.String("pruning_point", dag.PruningPointHash),
			zap.Bool("clear_db", p.cfg.ClearDB),
			zap.Bool("genesis", resume.Genesis),
		)
		root, err := retryValue(ctx, p, "get_block", func(ctx context.Context) (*model.NodeBlock, error) {
			return p.node.GetBlock(ctx, dag.PruningPointHash)
		})
		if err != nil {
			return fmt.Errorf("get pruning point %s: %w", dag.PruningPointHash, err)
		}
		return p.initRoot(ctx, *root)
	}

	p.root = stored.Ref()
	p.rootDAAScore = stored.DAAScore
	fields := []zap.Field{zap.String("root", p.root.Hash)}
	if resume.Cursor != nil {
		fields = append(fields,
			zap.String("cursor", resume.Cursor.Hash),
			zap.Uint64("cursor_height", resume.Cursor.Height),
		)
		p.metrics.SetCursor(resume.Cursor.Height, resume.Cursor.DAAScore)
	}
	p.logger.Info("resuming ingestion", fields...)
	return nil
}

func (p *Pipeline) initRoot(ctx context.Context, nb model.NodeBlock) error {
	started := time.Now()

	var state chainstate.State
	var root model.Block
	err := p.runInTx(ctx, func(ctx context.Context) error {
		if err := p.store.Clear(ctx); err != nil {
			return fmt.Errorf("clear store: %w", err)
		}
		index, err := p.store.NextHeightGroupIndex(ctx, 0)
		if err != nil {
			return err
		}
		root = model.Block{
			Hash:             nb.Hash,
			Timestamp:        nb.Timestamp,
			DAAScore:         nb.DAAScore,
			BlueScore:        nb.BlueScore,
			HeightGroupIndex: index,
			Color:            model.ColorGray,
			IsChainBlock:     true,
		}
		if root.ID, err = p.store.InsertBlock(ctx, root); err != nil {
			return err
		}
		if err := p.store.AddTip(ctx, root.ID, nil); err != nil {
			return err
		}
		if err := p.store.SetSelectedTip(ctx, root.ID); err != nil {
			return err
		}
		cursor := cursorOf(root)
		if err := p.store.SaveSyncCursor(ctx, cursor); err != nil {
			return err
		}
		ref := root.Ref()
		state = chainstate.State{Cursor: &cursor, SelectedTip: &ref}
		return nil
	})
	p.metrics.ObserveBatch(sourceRoot, err, 1, started)
	if err != nil {
		return fmt.Errorf("seed root %s: %w", nb.Hash, err)
	}

	p.tracker.Commit(state)
	p.root = root.Ref()
	p.rootDAAScore = root.DAAScore
	p.resyncPending = false
	p.metrics.SetCursor(root.Height, root.DAAScore)
	return nil
}

func (p *Pipeline) registerAppConfig(ctx context.Context) error {
	stored, err := p.store.AppConfig(ctx)
	if err != nil {
		return fmt.Errorf("load app config: %w", err)
	}
	if stored != nil && stored.Network != p.cfg.Network && !p.cfg.ClearDB {
		return fmt.Errorf("%w: store holds network %q, configured %q", ErrIncompatible, stored.Network, p.cfg.Network)
	}

	want := model.AppConfig{
		TondidVersion:     p.nodeVersion,
		ProcessingVersion: p.cfg.ProcessingVersion,
		Network:           p.cfg.Network,
	}
	if stored != nil && *stored == want {
		return nil
	}
	if err := p.runInTx(ctx, func(ctx context.Context) error {
		return p.store.UpsertAppConfig(ctx, want)
	}); err != nil {
		return fmt.Errorf("register app config: %w", err)
	}
	p.logger.Info("registered app config",
		zap.String("tondid_version", want.TondidVersion),
		zap.String("processing_version", want.ProcessingVersion),
	)
	return nil
}

// refreshNodeVersion records a node version change in the app config.
func (p *Pipeline) refreshNodeVersion(ctx context.Context) error {
	info, err := retryValue(ctx, p, "get_info", p.node.GetInfo)
	if err != nil {
		return fmt.Errorf("get node info: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if info.ServerVersion == p.nodeVersion {
		return nil
	}
	p.logger.Info("node version changed",
		zap.String("previous", p.nodeVersion),
		zap.String("current", info.ServerVersion),
	)
	p.nodeVersion = info.ServerVersion
	return p.registerAppConfig(ctx)
}

func (p *Pipeline) waitForNodeSync(ctx context.Context) error {
	for attempt := 0; ; attempt++ {
		info, err := retryValue(ctx, p, "get_info", p.node.GetInfo)
		if err != nil {
			return fmt.Errorf("get node info: %w", err)
		}
		if info.IsSynced {
			return nil
		}
		if attempt == 0 {
			p.logger.Info("Waiting for the node to finish IBD")
		}
		if err := p.sleep(ctx, p.cfg.NodeSyncPollInterval); err != nil {
			return err
		}
	}
}

// sameNetwork compares network names ignoring case, dashes and the tondi prefix,
// so tondi-testnet-10 matches tondi-testnet10.
func sameNetwork(a, b string) bool {
	normalize := func(s string) string {
		s = strings.ReplaceAll(strings.ToLower(s), "-", "")
		return strings.TrimPrefix(s, "tondi")
	}
	return normalize(a) == normalize(b)
}

func cursorOf(b model.Block) model.SyncCursor {
	return model.SyncCursor{
		BlockID:  b.ID,
		Hash:     b.Hash,
		Height:   b.Height,
		DAAScore: b.DAAScore,
	}
}
