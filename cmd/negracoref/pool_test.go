package main

import (
	"path/filepath"
	"testing"
)

func TestPoolOpen(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "spans.db")

	var p Pool
	defer p.Close()

	first, err := p.Open(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Open(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected the same pool for the same path")
	}

	if _, err := p.Open(filepath.Join(dir, "other.db")); err == nil {
		t.Errorf("expected error for a second span store")
	}

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("expected second close to be a no-op, got %v", err)
	}
}
