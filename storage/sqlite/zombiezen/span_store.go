package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	sent "github.com/revelaction/negracoref/sentence"
	"github.com/revelaction/negracoref/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// SpanStore keeps the spans in a SQLite database, so that they outlive the
// run and can be inspected later.
type SpanStore struct {
	pool *sqlitex.Pool
}

var (
	_ storage.SpanRepository = (*SpanStore)(nil)
	_ storage.WordWriter     = (*SpanStore)(nil)
	_ storage.Batcher        = (*SpanStore)(nil)
	_ storage.Browser        = (*SpanStore)(nil)
)

func NewSpanStore(pool *sqlitex.Pool) *SpanStore {
	return &SpanStore{pool: pool}
}

// Reset deletes all spans and words.
func (h *SpanStore) Reset() (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	if err = sqlitex.Execute(conn, "DELETE FROM spans", nil); err != nil {
		return fmt.Errorf("failed to delete spans: %w", err)
	}
	if err = sqlitex.Execute(conn, "DELETE FROM words", nil); err != nil {
		return fmt.Errorf("failed to delete words: %w", err)
	}
	return nil
}

func (h *SpanStore) Insert(sentenceId, nodeId int, span sent.Span) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	return connWriter{conn}.Insert(sentenceId, nodeId, span)
}

func (h *SpanStore) WriteWords(sentenceId int, words []string) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	return connWriter{conn}.WriteWords(sentenceId, words)
}

// Batch runs fn in a single transaction. The transaction is rolled back if fn
// fails.
func (h *SpanStore) Batch(fn func(storage.SpanWriter) error) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	err = fn(connWriter{conn})
	return err
}

func (h *SpanStore) Resolve(sentenceId, nodeId int) (sent.Span, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var span sent.Span
	found := false

	err = sqlitex.Execute(conn, "SELECT span FROM spans WHERE sentence_id = ? AND node_id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{sentenceId, nodeId},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			return json.Unmarshal([]byte(stmt.ColumnText(0)), &span)
		},
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &storage.UnresolvedReferenceError{Sentence: sentenceId, Node: nodeId}
	}

	return span, nil
}

func (h *SpanStore) Sentences() ([]int, error) {
	return h.ints("SELECT DISTINCT sentence_id FROM spans ORDER BY sentence_id")
}

func (h *SpanStore) Nodes(sentenceId int) ([]int, error) {
	ids, err := h.ints("SELECT node_id FROM spans WHERE sentence_id = ? ORDER BY node_id", sentenceId)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("sentence not found: %d", sentenceId)
	}
	return ids, nil
}

func (h *SpanStore) Words(sentenceId int) ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var words []string
	err = sqlitex.Execute(conn, "SELECT data FROM words WHERE sentence_id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{sentenceId},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			return json.Unmarshal([]byte(stmt.ColumnText(0)), &words)
		},
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

func (h *SpanStore) ints(query string, args ...interface{}) ([]int, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var ids []int
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			ids = append(ids, stmt.ColumnInt(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// connWriter writes on an already taken connection.
type connWriter struct {
	conn *sqlite.Conn
}

func (w connWriter) Insert(sentenceId, nodeId int, span sent.Span) error {
	exists := false
	err := sqlitex.Execute(w.conn, "SELECT 1 FROM spans WHERE sentence_id = ? AND node_id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{sentenceId, nodeId},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			exists = true
			return nil
		},
	})
	if err != nil {
		return err
	}
	if exists {
		return &storage.DuplicateKeyError{Sentence: sentenceId, Node: nodeId}
	}

	data, err := json.Marshal(span)
	if err != nil {
		return err
	}

	err = sqlitex.Execute(w.conn, "INSERT INTO spans (sentence_id, node_id, span) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{sentenceId, nodeId, string(data)},
	})
	if err != nil {
		return fmt.Errorf("failed to insert span: %w", err)
	}
	return nil
}

func (w connWriter) WriteWords(sentenceId int, words []string) error {
	data, err := json.Marshal(words)
	if err != nil {
		return err
	}

	err = sqlitex.Execute(w.conn, "INSERT OR REPLACE INTO words (sentence_id, data) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{sentenceId, string(data)},
	})
	if err != nil {
		return fmt.Errorf("failed to insert words: %w", err)
	}
	return nil
}
