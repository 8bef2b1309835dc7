package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/tgi-processing/internal/clock"
	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"github.com/goodnatureofminers/tgi-processing/internal/node"
	"go.uber.org/zap"
)

// retryValue retries fn with exponential backoff until it succeeds, fails
// permanently or ctx is canceled.
func retryValue[T any](ctx context.Context, p *Pipeline, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := backoff.RetryNotify(
		func() error {
			v, err := fn(ctx)
			if err != nil {
				if node.IsPermanent(err) || ctx.Err() != nil {
					return backoff.Permanent(err)
				}
				return err
			}
			out = v
			return nil
		},
		clock.NewBackOff(ctx, p.cfg.RPCInitialBackoff, p.cfg.RPCMaxBackoff, 0),
		func(err error, next time.Duration) {
			p.metrics.ObserveRetry(operation)
			p.logger.Warn("node request failed, retrying",
				zap.String("operation", operation),
				zap.Duration("backoff", next),
				zap.Error(err),
			)
		},
	)
	return out, err
}

func (p *Pipeline) getBlock(ctx context.Context, hash string) (*model.NodeBlock, error) {
	return retryValue(ctx, p, "get_block", func(ctx context.Context) (*model.NodeBlock, error) {
		return p.node.GetBlock(ctx, hash)
	})
}

// fetchComplete fetches a block with its consensus data. A node that does not
// know the block, or returns it without consensus data, is asked again up to
// AncestorMaxRetries times.
func (p *Pipeline) fetchComplete(ctx context.Context, hash string) (*model.NodeBlock, error) {
	var attempts uint64
	for {
		block, err := p.getBlock(ctx, hash)
		switch {
		case err == nil && block.Complete():
			return block, nil
		case errors.Is(err, node.ErrRejected), errors.Is(err, node.ErrInvalidHash):
			return nil, fmt.Errorf("%w: %s: %w", ErrAncestorUnavailable, hash, err)
		case err != nil && !errors.Is(err, node.ErrNotFound):
			return nil, err
		}

		attempts++
		if attempts > p.cfg.AncestorMaxRetries {
			return nil, fmt.Errorf("%w: %s after %d attempts", ErrAncestorUnavailable, hash, attempts)
		}
		p.metrics.ObserveRetry(operationFetch)
		p.logger.Warn("ancestor not available yet",
			zap.String("hash", hash),
			zap.Uint64("attempt", attempts),
			zap.Error(err),
		)
		if err := p.sleep(ctx, p.cfg.RPCInitialBackoff); err != nil {
			return nil, err
		}
	}
}

// runInTx runs fn in a store transaction, retrying failed attempts up to
// DBMaxRetries times. fn must be safe to rerun. Attempts run on a context
// detached from ctx so shutdown lets an in-flight commit finish within
// CommitTimeout.
func (p *Pipeline) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.cfg.DBRetryInterval), uint64(p.cfg.DBMaxRetries)),
		ctx,
	)
	err := backoff.RetryNotify(
		func() error {
			txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cfg.CommitTimeout)
			defer cancel()

			err := p.store.RunInTx(txCtx, fn)
			if err != nil && IsFatal(err) {
				return backoff.Permanent(err)
			}
			return err
		},
		b,
		func(err error, next time.Duration) {
			p.metrics.ObserveRetry(operationCommit)
			p.logger.Warn("transaction failed, retrying",
				zap.Duration("backoff", next),
				zap.Error(err),
			)
		},
	)
	switch {
	case err == nil:
		return nil
	case IsFatal(err):
		return err
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}
