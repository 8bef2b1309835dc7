package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"github.com/jackc/pgx/v5"
)

// ChainTip is a row of the tip set.
type ChainTip struct {
	BlockID    int64
	IsSelected bool
}

// AddTip records blockID as a tip and removes its parents from the tip set.
// The selected tip row is kept until SetSelectedTip moves the flag.
func (r *Repository) AddTip(ctx context.Context, blockID int64, parentIDs []int64) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("add_tip", err, start)
	}()

	db := r.db(ctx)
	if len(parentIDs) > 0 {
		const deleteParents = `DELETE FROM chain_tips WHERE block_id = ANY($1) AND NOT is_selected`
		if _, err = db.Exec(ctx, deleteParents, parentIDs); err != nil {
			return fmt.Errorf("remove parent tips: %w", err)
		}
	}

	const insertTip = `INSERT INTO chain_tips (block_id) VALUES ($1) ON CONFLICT (block_id) DO NOTHING`
	if _, err = db.Exec(ctx, insertTip, blockID); err != nil {
		return fmt.Errorf("insert tip %d: %w", blockID, err)
	}
	return nil
}

// SetSelectedTip moves the selected flag to blockID. A demoted tip that
// already has stored children leaves the tip set.
func (r *Repository) SetSelectedTip(ctx context.Context, blockID int64) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("set_selected_tip", err, start)
	}()

	db := r.db(ctx)
	const unset = `UPDATE chain_tips SET is_selected = FALSE WHERE is_selected AND block_id <> $1`
	if _, err = db.Exec(ctx, unset, blockID); err != nil {
		return fmt.Errorf("unset selected tip: %w", err)
	}

	const prune = `
DELETE FROM chain_tips t
WHERE NOT t.is_selected
  AND t.block_id <> $1
  AND EXISTS (SELECT 1 FROM edges e WHERE e.to_block_id = t.block_id)`
	if _, err = db.Exec(ctx, prune, blockID); err != nil {
		return fmt.Errorf("prune demoted tips: %w", err)
	}

	const set = `
INSERT INTO chain_tips (block_id, is_selected)
VALUES ($1, TRUE)
ON CONFLICT (block_id) DO UPDATE SET is_selected = TRUE`
	if _, err = db.Exec(ctx, set, blockID); err != nil {
		return fmt.Errorf("set selected tip %d: %w", blockID, err)
	}
	return nil
}

// SelectedTip returns the selected tip or nil when none is stored.
func (r *Repository) SelectedTip(ctx context.Context) (tip *model.BlockRef, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("selected_tip", err, start)
	}()

	const query = `
SELECT b.id, b.block_hash, b.height, b.blue_score, b.height_group_index
FROM chain_tips t
JOIN blocks b ON b.id = t.block_id
WHERE t.is_selected`

	ref, err := scanBlockRef(r.db(ctx).QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select selected tip: %w", err)
	}
	return &ref, nil
}

// ChainTips returns the whole tip set ordered by block id.
func (r *Repository) ChainTips(ctx context.Context) (tips []ChainTip, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("chain_tips", err, start)
	}()

	rows, err := r.db(ctx).Query(ctx, `SELECT block_id, is_selected FROM chain_tips ORDER BY block_id`)
	if err != nil {
		return nil, fmt.Errorf("query chain tips: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tip ChainTip
		if err = rows.Scan(&tip.BlockID, &tip.IsSelected); err != nil {
			return nil, fmt.Errorf("scan chain tip: %w", err)
		}
		tips = append(tips, tip)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chain tips: %w", err)
	}
	return tips, nil
}
