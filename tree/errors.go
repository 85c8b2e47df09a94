package tree

import (
	"errors"
	"fmt"

	sent "github.com/revelaction/negracoref/sentence"
)

// ErrStructure is the sentinel wrapped by every StructureError.
var ErrStructure = errors.New("invalid tree")

// StructureError reports nodes that do not form a tree.
type StructureError struct {
	Sentence int
	Node     int
	Line     int
	Msg      string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("sentence %d, node %d (line %d): %s", e.Sentence, e.Node, e.Line, e.Msg)
}

func (e *StructureError) Unwrap() error {
	return ErrStructure
}

func (t *Tree) errorf(n *sent.Node, format string, args ...any) *StructureError {
	return &StructureError{
		Sentence: t.Sentence.Id,
		Node:     n.Id,
		Line:     n.Line,
		Msg:      fmt.Sprintf(format, args...),
	}
}
