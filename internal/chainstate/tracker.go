package chainstate

import (
	"context"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/tgi-processing/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// StateReader loads the committed chain state from the store.
type StateReader interface {
	SyncCursor(ctx context.Context) (*model.SyncCursor, error)
	SelectedTip(ctx context.Context) (*model.BlockRef, error)
}

// State is the tracked view of committed chain state. Values are treated as
// immutable: updates replace the pointers instead of mutating them.
type State struct {
	Cursor      *model.SyncCursor
	SelectedTip *model.BlockRef
}

// Empty reports whether nothing has been committed yet.
func (s State) Empty() bool {
	return s.SelectedTip == nil
}

// ResumePoint is where ingestion continues after a restart.
type ResumePoint struct {
	Cursor      *model.SyncCursor
	SelectedTip *model.BlockRef
	// Genesis is set when the store is empty and ingestion starts from the root.
	Genesis bool
}

// Tracker holds the committed chain state shared by the pipeline paths.
type Tracker struct {
	reader StateReader

	mu    sync.RWMutex
	state State
}

// NewTracker constructs a Tracker reading from reader.
func NewTracker(reader StateReader) *Tracker {
	return &Tracker{reader: reader}
}

// ResumePoint loads the sync cursor and selected tip from the store and
// replaces the tracked state with them.
func (t *Tracker) ResumePoint(ctx context.Context) (ResumePoint, error) {
	cursor, err := t.reader.SyncCursor(ctx)
	if err != nil {
		return ResumePoint{}, fmt.Errorf("load sync cursor: %w", err)
	}
	tip, err := t.reader.SelectedTip(ctx)
	if err != nil {
		return ResumePoint{}, fmt.Errorf("load selected tip: %w", err)
	}

	t.Commit(State{Cursor: cursor, SelectedTip: tip})
	return ResumePoint{
		Cursor:      cursor,
		SelectedTip: tip,
		Genesis:     tip == nil,
	}, nil
}

// State returns a snapshot of the tracked state.
func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Commit replaces the tracked state. Callers invoke it only after the store
// committed the corresponding transaction.
func (t *Tracker) Commit(s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = s
}

// Classify classifies c against the current snapshot.
func (t *Tracker) Classify(c Candidate, known map[string]model.BlockRef) Classification {
	return Classify(t.State(), c, known)
}
