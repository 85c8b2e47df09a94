package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/revelaction/negracoref/internal/logging"
	"github.com/revelaction/negracoref/storage"
	"github.com/revelaction/negracoref/storage/filesystem"
	"github.com/revelaction/negracoref/storage/sqlite/zombiezen"
)

// isSQLite reports whether path names a SQLite span database.
func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// NewSpanRepository returns an empty span store for a conversion. An empty
// path keeps the spans in memory, a SQLite path is created or emptied, any
// other path is written as JSON Lines when the store is closed.
func NewSpanRepository(p *Pool, path string) (storage.SpanRepository, error) {
	if path == "" || !isSQLite(path) {
		logging.Debug("span_store", "backend", "memory", "path", path)
		return filesystem.NewSpanStore(path), nil
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	if err := zombiezen.CreateSchemas(pool, zombiezen.SpanSchema); err != nil {
		return nil, fmt.Errorf("failed to create spans table: %w", err)
	}

	st := zombiezen.NewSpanStore(pool)
	if err := st.Reset(); err != nil {
		return nil, err
	}
	logging.Debug("span_store", "backend", "sqlite", "path", path)
	return st, nil
}

// spanStore is a store the inspect REPL can browse
type spanStore interface {
	storage.SpanRepository
	storage.Browser
}

// OpenSpanRepository opens a span store written by a previous conversion.
func OpenSpanRepository(p *Pool, path string) (spanStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("span store not found: %s", path)
	}

	logging.Info("span_store_opened", "path", path)
	if !isSQLite(path) {
		return filesystem.OpenSpanStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewSpanStore(pool), nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
