package storage

import (
	sent "github.com/revelaction/negracoref/sentence"
)

// SpanReader defines read operations for the span store
type SpanReader interface {
	// Resolve returns the span of node nodeId of sentence sentenceId. It
	// fails with an *UnresolvedReferenceError if the node was never inserted.
	Resolve(sentenceId, nodeId int) (sent.Span, error)
}

// SpanWriter defines write operations for the span store
type SpanWriter interface {
	// Insert persists the span of a node. It fails with a
	// *DuplicateKeyError if the node is already stored.
	Insert(sentenceId, nodeId int, span sent.Span) error
}

// SpanRepository combines read and write operations
type SpanRepository interface {
	SpanReader
	SpanWriter
}

// WordWriter is implemented by stores that keep the surface forms of the
// sentences, for display purposes.
type WordWriter interface {
	WriteWords(sentenceId int, words []string) error
}

// Batcher is implemented by stores that can group the writes of one sentence,
// f.ex. in a transaction.
type Batcher interface {
	Batch(fn func(SpanWriter) error) error
}

// Browser defines the listing operations used by the inspect REPL.
type Browser interface {
	// Sentences returns the stored sentence ids, ascending.
	Sentences() ([]int, error)

	// Nodes returns the stored node ids of a sentence, ascending.
	Nodes(sentenceId int) ([]int, error)

	// Words returns the surface forms of a sentence, or nil if they were not
	// stored.
	Words(sentenceId int) ([]string, error)
}
