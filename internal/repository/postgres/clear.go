package postgres

import (
	"context"
	"fmt"
	"time"
)

// Clear removes every indexed block together with the rows referencing it.
// AppConfig is kept.
func (r *Repository) Clear(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("clear", err, start)
	}()

	const query = `TRUNCATE TABLE sync_cursor, chain_tips, edges, height_groups, blocks RESTART IDENTITY CASCADE`
	if _, err = r.db(ctx).Exec(ctx, query); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}
