package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"github.com/goodnatureofminers/tgi-processing/pkg/safe"
)

// NextHeightGroupIndex reserves a position at height and returns it. The
// first block at a height gets index 0.
func (r *Repository) NextHeightGroupIndex(ctx context.Context, height uint64) (index uint32, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("next_height_group_index", err, start)
	}()

	h, err := safe.Int64(height)
	if err != nil {
		return 0, fmt.Errorf("height: %w", err)
	}

	const query = `
INSERT INTO height_groups (height, size)
VALUES ($1, 1)
ON CONFLICT (height) DO UPDATE SET size = height_groups.size + 1
RETURNING size - 1`

	var reserved int32
	if err = r.db(ctx).QueryRow(ctx, query, h).Scan(&reserved); err != nil {
		return 0, fmt.Errorf("reserve height group index at %d: %w", height, err)
	}
	if index, err = safe.Uint32(reserved); err != nil {
		return 0, fmt.Errorf("height group index: %w", err)
	}
	return index, nil
}

// HeightGroup returns the group stored at height, or nil.
func (r *Repository) HeightGroup(ctx context.Context, height uint64) (group *model.HeightGroup, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("height_group", err, start)
	}()

	h, err := safe.Int64(height)
	if err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}

	rows, err := r.db(ctx).Query(ctx, `SELECT size FROM height_groups WHERE height = $1`, h)
	if err != nil {
		return nil, fmt.Errorf("query height group: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var size int32
	if err = rows.Scan(&size); err != nil {
		return nil, fmt.Errorf("scan height group: %w", err)
	}
	group = &model.HeightGroup{Height: height}
	if group.Size, err = safe.Uint32(size); err != nil {
		return nil, fmt.Errorf("height group size: %w", err)
	}
	return group, nil
}
