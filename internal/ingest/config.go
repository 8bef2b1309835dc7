package ingest

import (
	"fmt"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Config tunes the pipeline. Zero values are replaced by the defaults below.
type Config struct {
	// Network is the configured network name, e.g. tondi-mainnet.
	Network           string `validate:"required"`
	ProcessingVersion string `default:"dev" validate:"required"`

	// Resync restarts the first sync from the pruning point instead of the cursor.
	Resync bool
	// ClearDB truncates the store on startup.
	ClearDB bool

	MaxMissingDependencies int    `default:"600" validate:"min=1"`
	AncestorMaxRetries     uint64 `default:"5" validate:"min=1"`
	DBMaxRetries           int    `default:"5" validate:"min=1"`
	SyncBatchSize          int    `default:"100" validate:"min=1"`
	NearTipThreshold       int    `default:"100" validate:"min=1"`
	PrefetchWorkers        int    `default:"8" validate:"min=1"`

	CatchUpInterval      time.Duration `default:"30s" validate:"gt=0"`
	NodeSyncPollInterval time.Duration `default:"3s" validate:"gt=0"`
	CommitTimeout        time.Duration `default:"30s" validate:"gt=0"`
	DBRetryInterval      time.Duration `default:"500ms" validate:"gt=0"`
	RPCInitialBackoff    time.Duration `default:"200ms" validate:"gt=0"`
	RPCMaxBackoff        time.Duration `default:"30s" validate:"gtefield=RPCInitialBackoff"`
}

// withDefaults returns a copy of c with defaults applied and validated.
func (c Config) withDefaults() (Config, error) {
	if err := defaults.Set(&c); err != nil {
		return Config{}, fmt.Errorf("apply config defaults: %w", err)
	}
	if err := validator.New().Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid pipeline config: %w", err)
	}
	return c, nil
}
