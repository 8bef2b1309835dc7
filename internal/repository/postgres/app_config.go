package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"github.com/jackc/pgx/v5"
)

// AppConfig returns the stored application config or nil.
func (r *Repository) AppConfig(ctx context.Context) (cfg *model.AppConfig, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("app_config", err, start)
	}()

	const query = `SELECT tondid_version, processing_version, network FROM app_config WHERE id`

	var c model.AppConfig
	err = r.db(ctx).QueryRow(ctx, query).Scan(&c.TondidVersion, &c.ProcessingVersion, &c.Network)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select app config: %w", err)
	}
	return &c, nil
}

// UpsertAppConfig creates the singleton config row or updates it.
func (r *Repository) UpsertAppConfig(ctx context.Context, cfg model.AppConfig) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("upsert_app_config", err, start)
	}()

	const query = `
INSERT INTO app_config (id, tondid_version, processing_version, network)
VALUES (TRUE, $1, $2, $3)
ON CONFLICT (id) DO UPDATE SET
	tondid_version = EXCLUDED.tondid_version,
	processing_version = EXCLUDED.processing_version,
	network = EXCLUDED.network`

	if _, err = r.db(ctx).Exec(ctx, query, cfg.TondidVersion, cfg.ProcessingVersion, cfg.Network); err != nil {
		return fmt.Errorf("upsert app config: %w", err)
	}
	return nil
}
