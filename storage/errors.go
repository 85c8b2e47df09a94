package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolved is wrapped by every UnresolvedReferenceError
	ErrUnresolved = errors.New("unresolved reference")

	// ErrDuplicateKey is wrapped by every DuplicateKeyError
	ErrDuplicateKey = errors.New("duplicate key")
)

// UnresolvedReferenceError reports a lookup of a node that is not in the
// store, either because its sentence comes later in the input or because the
// node does not exist.
type UnresolvedReferenceError struct {
	Sentence int
	Node     int
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("no span for sentence %d, node %d", e.Sentence, e.Node)
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return ErrUnresolved
}

// DuplicateKeyError reports a second insertion of the same node.
type DuplicateKeyError struct {
	Sentence int
	Node     int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("span for sentence %d, node %d already stored", e.Sentence, e.Node)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}
