package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"github.com/goodnatureofminers/tgi-processing/pkg/safe"
	"github.com/jackc/pgx/v5"
)

// InsertEdges stores parent links. Known edges are skipped.
func (r *Repository) InsertEdges(ctx context.Context, edges []model.Edge) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_edges", err, start)
	}()

	if len(edges) == 0 {
		return nil
	}

	const query = `
INSERT INTO edges (
	from_block_id,
	to_block_id,
	from_height,
	to_height,
	from_height_group_index,
	to_height_group_index
) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (from_block_id, to_block_id) DO NOTHING`

	batch := &pgx.Batch{}
	for _, e := range edges {
		fromHeight, convErr := safe.Int64(e.FromHeight)
		if convErr != nil {
			return fmt.Errorf("edge from height: %w", convErr)
		}
		toHeight, convErr := safe.Int64(e.ToHeight)
		if convErr != nil {
			return fmt.Errorf("edge to height: %w", convErr)
		}
		fromIndex, convErr := safe.Int32(e.FromHeightGroupIndex)
		if convErr != nil {
			return fmt.Errorf("edge from group index: %w", convErr)
		}
		toIndex, convErr := safe.Int32(e.ToHeightGroupIndex)
		if convErr != nil {
			return fmt.Errorf("edge to group index: %w", convErr)
		}
		batch.Queue(query, e.FromBlockID, e.ToBlockID, fromHeight, toHeight, fromIndex, toIndex)
	}

	results := r.db(ctx).SendBatch(ctx, batch)
	defer func() {
		if closeErr := results.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close edges batch: %w", closeErr)
		}
	}()
	for range edges {
		if _, err = results.Exec(); err != nil {
			return fmt.Errorf("insert edge: %w", err)
		}
	}
	return nil
}

// EdgesFrom returns the parent links of a block.
func (r *Repository) EdgesFrom(ctx context.Context, blockID int64) (edges []model.Edge, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("edges_from", err, start)
	}()

	const query = `
SELECT from_block_id, to_block_id, from_height, to_height, from_height_group_index, to_height_group_index
FROM edges
WHERE from_block_id = $1
ORDER BY to_block_id`

	rows, err := r.db(ctx).Query(ctx, query, blockID)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e                    model.Edge
			fromHeight, toHeight int64
			fromIndex, toIndex   int32
		)
		if err = rows.Scan(&e.FromBlockID, &e.ToBlockID, &fromHeight, &toHeight, &fromIndex, &toIndex); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		if e.FromHeight, err = safe.Uint64(fromHeight); err != nil {
			return nil, err
		}
		if e.ToHeight, err = safe.Uint64(toHeight); err != nil {
			return nil, err
		}
		if e.FromHeightGroupIndex, err = safe.Uint32(fromIndex); err != nil {
			return nil, err
		}
		if e.ToHeightGroupIndex, err = safe.Uint32(toIndex); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edges: %w", err)
	}
	return edges, nil
}
