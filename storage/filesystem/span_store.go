package filesystem

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	sent "github.com/revelaction/negracoref/sentence"
	"github.com/revelaction/negracoref/storage"
)

// SpanStore keeps all spans in memory. If it has a path, Close writes it to
// that file as JSON Lines, one sentence per line.
type SpanStore struct {
	path string

	spans map[int]map[int]sent.Span
	words map[int][]string
}

var (
	_ storage.SpanRepository = (*SpanStore)(nil)
	_ storage.WordWriter     = (*SpanStore)(nil)
	_ storage.Browser        = (*SpanStore)(nil)
)

// record is the JSON line of one sentence
type record struct {
	Id    int               `json:"id"`
	Words []string          `json:"words,omitempty"`
	Spans map[int]sent.Span `json:"spans"`
}

// NewSpanStore creates an empty store. An empty path keeps the store in
// memory only.
func NewSpanStore(path string) *SpanStore {
	return &SpanStore{
		path:  path,
		spans: make(map[int]map[int]sent.Span),
		words: make(map[int][]string),
	}
}

// OpenSpanStore reads a store previously written by Close. The returned store
// is not written back.
func OpenSpanStore(path string) (*SpanStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	h := NewSpanStore("")
	dec := json.NewDecoder(bufio.NewReader(f))
	for dec.More() {
		var rec record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("JSON decoding error in %s: %w", path, err)
		}
		for id, sp := range rec.Spans {
			if err := h.Insert(rec.Id, id, sp); err != nil {
				return nil, err
			}
		}
		if rec.Words != nil {
			h.words[rec.Id] = rec.Words
		}
	}

	return h, nil
}

func (h *SpanStore) Insert(sentenceId, nodeId int, span sent.Span) error {
	nodes, ok := h.spans[sentenceId]
	if !ok {
		nodes = make(map[int]sent.Span)
		h.spans[sentenceId] = nodes
	}
	if _, ok := nodes[nodeId]; ok {
		return &storage.DuplicateKeyError{Sentence: sentenceId, Node: nodeId}
	}
	nodes[nodeId] = span
	return nil
}

func (h *SpanStore) Resolve(sentenceId, nodeId int) (sent.Span, error) {
	sp, ok := h.spans[sentenceId][nodeId]
	if !ok {
		return nil, &storage.UnresolvedReferenceError{Sentence: sentenceId, Node: nodeId}
	}
	return sp, nil
}

func (h *SpanStore) WriteWords(sentenceId int, words []string) error {
	h.words[sentenceId] = words
	return nil
}

func (h *SpanStore) Sentences() ([]int, error) {
	ids := make([]int, 0, len(h.spans))
	for id := range h.spans {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (h *SpanStore) Nodes(sentenceId int) ([]int, error) {
	nodes, ok := h.spans[sentenceId]
	if !ok {
		return nil, fmt.Errorf("sentence not found: %d", sentenceId)
	}
	ids := make([]int, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (h *SpanStore) Words(sentenceId int) ([]string, error) {
	return h.words[sentenceId], nil
}

// Len returns the number of stored spans.
func (h *SpanStore) Len() int {
	n := 0
	for _, nodes := range h.spans {
		n += len(nodes)
	}
	return n
}

// Close writes the store to its file, if it has one.
func (h *SpanStore) Close() error {
	if h.path == "" {
		return nil
	}

	f, err := os.Create(h.path)
	if err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	ids, _ := h.Sentences()
	for _, id := range ids {
		if err := enc.Encode(record{Id: id, Words: h.words[id], Spans: h.spans[id]}); err != nil {
			f.Close()
			return fmt.Errorf("JSON encoding error: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("IO error: %w", err)
	}
	return f.Close()
}
