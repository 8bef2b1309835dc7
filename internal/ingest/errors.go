package ingest

import (
	"errors"
)

var (
	// ErrOutOfSync is returned when a block depends on more missing
	// ancestors than the pipeline is allowed to backfill.
	ErrOutOfSync = errors.New("store is out of sync with the node")
	// ErrAncestorUnavailable is returned when the node cannot supply a
	// missing ancestor.
	ErrAncestorUnavailable = errors.New("ancestor unavailable from node")
	// ErrPersistence is returned when a unit of work failed after all retries.
	ErrPersistence = errors.New("persistence failure")
	// ErrIncompatible is returned when the node or the store belongs to
	// another network.
	ErrIncompatible = errors.New("incompatible node or store")
	// ErrBrokenChain is returned when stored selected-parent links do not
	// lead to the selected chain.
	ErrBrokenChain = errors.New("broken selected parent chain")
	// ErrMissingParent is returned when a block is applied before its parents.
	ErrMissingParent = errors.New("block parent not stored")
)

// IsFatal reports whether err must stop the process.
func IsFatal(err error) bool {
	for _, target := range []error{
		ErrOutOfSync,
		ErrAncestorUnavailable,
		ErrPersistence,
		ErrIncompatible,
		ErrBrokenChain,
		ErrMissingParent,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
