package zombiezen

import (
	"context"
	"path/filepath"
	"testing"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func TestNewPoolPragmas(t *testing.T) {
	pool, err := NewPool(filepath.Join(t.TempDir(), "spans.db"))
	if err != nil {
		t.Fatalf("failed to open pool: %v", err)
	}
	defer pool.Close()

	conn, err := pool.Take(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer pool.Put(conn)

	tests := []struct {
		pragma string
		want   int
	}{
		{"PRAGMA synchronous", 1},
		{"PRAGMA temp_store", 2},
	}
	for _, tt := range tests {
		got := -1
		err := sqlitex.ExecuteTransient(conn, tt.pragma, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				got = stmt.ColumnInt(0)
				return nil
			},
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.pragma, err)
		}
		if got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.pragma, tt.want, got)
		}
	}
}
