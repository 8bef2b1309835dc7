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

const blockColumns = `
	id,
	block_hash,
	timestamp,
	parent_ids,
	daa_score,
	blue_score,
	height,
	height_group_index,
	selected_parent_id,
	color,
	is_in_virtual_selected_parent_chain,
	abandoned,
	merge_set_red_ids,
	merge_set_blue_ids`

// InsertBlock stores b and returns its id. Inserting a known hash returns
// the id of the stored row and leaves it unchanged.
func (r *Repository) InsertBlock(ctx context.Context, b model.Block) (id int64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_block", err, start)
	}()

	daaScore, err := safe.Int64(b.DAAScore)
	if err != nil {
		return 0, fmt.Errorf("daa score: %w", err)
	}
	blueScore, err := safe.Int64(b.BlueScore)
	if err != nil {
		return 0, fmt.Errorf("blue score: %w", err)
	}
	height, err := safe.Int64(b.Height)
	if err != nil {
		return 0, fmt.Errorf("height: %w", err)
	}
	groupIndex, err := safe.Int32(b.HeightGroupIndex)
	if err != nil {
		return 0, fmt.Errorf("height group index: %w", err)
	}
	color := b.Color
	if color == "" {
		color = model.ColorGray
	}

	const query = `
INSERT INTO blocks (
	block_hash,
	timestamp,
	parent_ids,
	daa_score,
	blue_score,
	height,
	height_group_index,
	selected_parent_id,
	color,
	is_in_virtual_selected_parent_chain,
	abandoned,
	merge_set_red_ids,
	merge_set_blue_ids
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (block_hash) DO UPDATE SET block_hash = EXCLUDED.block_hash
RETURNING id`

	err = r.db(ctx).QueryRow(ctx, query,
		b.Hash,
		b.Timestamp,
		ids(b.ParentIDs),
		daaScore,
		blueScore,
		height,
		groupIndex,
		b.SelectedParentID,
		string(color),
		b.IsChainBlock,
		b.Abandoned,
		ids(b.MergeSetRedIDs),
		ids(b.MergeSetBlueIDs),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert block %s: %w", b.Hash, err)
	}
	return id, nil
}

// BlockByHash returns the stored block with hash or nil when it is unknown.
func (r *Repository) BlockByHash(ctx context.Context, hash string) (block *model.Block, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_by_hash", err, start)
	}()

	query := `SELECT` + blockColumns + ` FROM blocks WHERE block_hash = $1`
	block, err = scanBlock(r.db(ctx).QueryRow(ctx, query, hash))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select block %s: %w", hash, err)
	}
	return block, nil
}

// BlockByID returns the stored block with id.
func (r *Repository) BlockByID(ctx context.Context, id int64) (block *model.Block, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_by_id", err, start)
	}()

	query := `SELECT` + blockColumns + ` FROM blocks WHERE id = $1`
	block, err = scanBlock(r.db(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("select block %d: %w", id, err)
	}
	return block, nil
}

// BlockRefsByHashes returns references of the stored blocks among hashes.
func (r *Repository) BlockRefsByHashes(ctx context.Context, hashes []string) (refs map[string]model.BlockRef, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_refs_by_hashes", err, start)
	}()

	refs = make(map[string]model.BlockRef, len(hashes))
	if len(hashes) == 0 {
		return refs, nil
	}

	const query = `
SELECT id, block_hash, height, blue_score, height_group_index
FROM blocks
WHERE block_hash = ANY($1)`

	rows, err := r.db(ctx).Query(ctx, query, hashes)
	if err != nil {
		return nil, fmt.Errorf("query block refs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		ref, scanErr := scanBlockRef(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		refs[ref.Hash] = ref
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate block refs: %w", err)
	}
	return refs, nil
}

// SetChainMembership marks blocks as members of the selected chain, or
// removes them from it and tombstones them as abandoned.
func (r *Repository) SetChainMembership(ctx context.Context, blockIDs []int64, inChain bool) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("set_chain_membership", err, start)
	}()

	if len(blockIDs) == 0 {
		return nil
	}

	const query = `
UPDATE blocks
SET is_in_virtual_selected_parent_chain = $2,
    abandoned = NOT $2
WHERE id = ANY($1)`

	if _, err = r.db(ctx).Exec(ctx, query, blockIDs, inChain); err != nil {
		return fmt.Errorf("update chain membership: %w", err)
	}
	return nil
}

// UpdateColors sets color on the given blocks. Blue and red blocks are in the
// past of the selected chain, so they lose the abandoned mark.
func (r *Repository) UpdateColors(ctx context.Context, blockIDs []int64, color model.Color) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("update_colors", err, start)
	}()

	if len(blockIDs) == 0 {
		return nil
	}

	const query = `
UPDATE blocks
SET color = $2,
    abandoned = abandoned AND $3
WHERE id = ANY($1)`

	if _, err = r.db(ctx).Exec(ctx, query, blockIDs, string(color), color == model.ColorGray); err != nil {
		return fmt.Errorf("update colors: %w", err)
	}
	return nil
}

func scanBlock(row pgx.Row) (*model.Block, error) {
	var (
		b                           model.Block
		daaScore, blueScore, height int64
		groupIndex                  int32
		color                       string
	)
	if err := row.Scan(
		&b.ID,
		&b.Hash,
		&b.Timestamp,
		&b.ParentIDs,
		&daaScore,
		&blueScore,
		&height,
		&groupIndex,
		&b.SelectedParentID,
		&color,
		&b.IsChainBlock,
		&b.Abandoned,
		&b.MergeSetRedIDs,
		&b.MergeSetBlueIDs,
	); err != nil {
		return nil, err
	}

	var err error
	if b.DAAScore, err = safe.Uint64(daaScore); err != nil {
		return nil, fmt.Errorf("daa score: %w", err)
	}
	if b.BlueScore, err = safe.Uint64(blueScore); err != nil {
		return nil, fmt.Errorf("blue score: %w", err)
	}
	if b.Height, err = safe.Uint64(height); err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}
	if b.HeightGroupIndex, err = safe.Uint32(groupIndex); err != nil {
		return nil, fmt.Errorf("height group index: %w", err)
	}
	b.Color = model.Color(color)
	return &b, nil
}

func scanBlockRef(row pgx.Row) (model.BlockRef, error) {
	var (
		ref               model.BlockRef
		height, blueScore int64
		groupIndex        int32
	)
	if err := row.Scan(&ref.ID, &ref.Hash, &height, &blueScore, &groupIndex); err != nil {
		return model.BlockRef{}, fmt.Errorf("scan block ref: %w", err)
	}

	var err error
	if ref.Height, err = safe.Uint64(height); err != nil {
		return model.BlockRef{}, fmt.Errorf("height: %w", err)
	}
	if ref.BlueScore, err = safe.Uint64(blueScore); err != nil {
		return model.BlockRef{}, fmt.Errorf("blue score: %w", err)
	}
	if ref.HeightGroupIndex, err = safe.Uint32(groupIndex); err != nil {
		return model.BlockRef{}, fmt.Errorf("height group index: %w", err)
	}
	return ref, nil
}

// ids returns a non-nil slice so NOT NULL array columns receive '{}'.
func ids(in []int64) []int64 {
	if in == nil {
		return []int64{}
	}
	return in
}
