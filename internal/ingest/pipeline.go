// Package ingest implements the ingestion pipeline that copies the node's
// block DAG into the store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/tgi-processing/internal/chainstate"
	"github.com/goodnatureofminers/tgi-processing/internal/clock"
	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pipeline ingests blocks reported by the node. Catch-up and notification
// handling may run concurrently; every write is serialized through mu.
type Pipeline struct {
	cfg     Config
	store   Store
	node    NodeClient
	metrics Metrics
	logger  *zap.Logger
	tracker *chainstate.Tracker
	sleep   func(ctx context.Context, d time.Duration) error

	mu            sync.Mutex
	root          model.BlockRef
	rootDAAScore  uint64
	nodeVersion   string
	resyncPending bool
}

func NewPipeline(
	cfg Config,
	store Store,
	node NodeClient,
	metrics Metrics,
	logger *zap.Logger,
) (*Pipeline, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:           cfg,
		store:         store,
		node:          node,
		metrics:       metrics,
		logger:        logger.Named("pipeline").With(zap.String("network", cfg.Network)),
		tracker:       chainstate.NewTracker(store),
		sleep:         clock.SleepWithContext,
		resyncPending: cfg.Resync,
	}, nil
}

// State returns the committed chain state.
func (p *Pipeline) State() chainstate.State {
	return p.tracker.State()
}

// Run prepares the store, performs the initial sync and then follows the
// node until ctx is canceled or a fatal error occurs.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.Start(ctx); err != nil {
		return err
	}
	if err := p.Sync(ctx); err != nil {
		if err := p.tolerate(ctx, "initial sync", err); err != nil {
			return err
		}
	}

	notifications, err := p.node.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to node notifications: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.consume(gctx, notifications)
	})
	g.Go(func() error {
		return p.catchUpLoop(gctx)
	})
	return g.Wait()
}

func (p *Pipeline) catchUpLoop(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.CatchUpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := p.refreshNodeVersion(ctx); err != nil {
			if err := p.tolerate(ctx, "refresh node version", err); err != nil {
				return err
			}
		}
		if err := p.Sync(ctx); err != nil {
			if err := p.tolerate(ctx, "catch-up sync", err); err != nil {
				return err
			}
		}
	}
}

// tolerate returns err when it must stop the pipeline and logs it otherwise.
func (p *Pipeline) tolerate(ctx context.Context, what string, err error) error {
	if IsFatal(err) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	p.logger.Warn(what+" failed", zap.Error(err))
	return nil
}
