package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"github.com/goodnatureofminers/tgi-processing/pkg/safe"
	"github.com/jackc/pgx/v5"
)

// SyncCursor returns the stored cursor or nil before the first commit.
func (r *Repository) SyncCursor(ctx context.Context) (cursor *model.SyncCursor, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("sync_cursor", err, start)
	}()

	const query = `SELECT block_id, block_hash, height, daa_score, updated_at FROM sync_cursor WHERE id`

	var (
		c                model.SyncCursor
		height, daaScore int64
	)
	err = r.db(ctx).QueryRow(ctx, query).Scan(&c.BlockID, &c.Hash, &height, &daaScore, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select sync cursor: %w", err)
	}
	if c.Height, err = safe.Uint64(height); err != nil {
		return nil, fmt.Errorf("cursor height: %w", err)
	}
	if c.DAAScore, err = safe.Uint64(daaScore); err != nil {
		return nil, fmt.Errorf("cursor daa score: %w", err)
	}
	return &c, nil
}

// SaveSyncCursor replaces the singleton cursor row.
func (r *Repository) SaveSyncCursor(ctx context.Context, cursor model.SyncCursor) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("save_sync_cursor", err, start)
	}()

	height, err := safe.Int64(cursor.Height)
	if err != nil {
		return fmt.Errorf("cursor height: %w", err)
	}
	daaScore, err := safe.Int64(cursor.DAAScore)
	if err != nil {
		return fmt.Errorf("cursor daa score: %w", err)
	}
	updatedAt := cursor.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	const query = `
INSERT INTO sync_cursor (id, block_id, block_hash, height, daa_score, updated_at)
VALUES (TRUE, $1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
	block_id = EXCLUDED.block_id,
	block_hash = EXCLUDED.block_hash,
	height = EXCLUDED.height,
	daa_score = EXCLUDED.daa_score,
	updated_at = EXCLUDED.updated_at`

	if _, err = r.db(ctx).Exec(ctx, query, cursor.BlockID, cursor.Hash, height, daaScore, updatedAt); err != nil {
		return fmt.Errorf("save sync cursor: %w", err)
	}
	return nil
}
