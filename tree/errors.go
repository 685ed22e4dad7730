package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrSelfDrop is a drop of a node onto itself
	ErrSelfDrop = errors.New("cannot move a node onto itself")
	// ErrDescendant is a drop of a node into its own subtree
	ErrDescendant = errors.New("cannot move a node into its own descendant")
	// ErrSourceNotFound indicates a stale source path
	ErrSourceNotFound = errors.New("source not found")
	// ErrTargetNotFound indicates a stale target path
	ErrTargetNotFound = errors.New("target not found")
	// ErrTargetNotDir indicates a drop onto a file
	ErrTargetNotDir = errors.New("target is not a directory")
	// ErrParentMismatch indicates the source parent does not list the source
	ErrParentMismatch = errors.New("source parent does not contain source")
	// ErrSameParent is a drop back onto the directory already holding the node
	ErrSameParent = errors.New("source is already in target")
	// ErrNameConflict indicates the target already has a child of that name
	ErrNameConflict = errors.New("target already contains a node with that name")
)

// MoveError reports a rejected move along with the paths involved.
type MoveError struct {
	Op     string
	Source string
	Target string
	Err    error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s %s -> %s: %v", e.Op, e.Source, e.Target, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// IsRejected reports whether err is a move rejection rather than some
// other failure.
func IsRejected(err error) bool {
	var me *MoveError
	return errors.As(err, &me)
}
