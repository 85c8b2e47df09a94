package file

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
)

const content = "#BOS 1\nEr er PPER nsm3 ON 0\n#EOS 1\n"

func readAll(t *testing.T, path string) (*Input, string) {
	t.Helper()
	in, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return in, string(data)
}

func TestOpenPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.export")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	in, got := readAll(t, path)
	if got != content {
		t.Errorf("expected %q, got %q", content, got)
	}
	if in.Size != int64(len(content)) || in.Consumed() != in.Size {
		t.Errorf("expected size and consumed %d, got %d and %d", len(content), in.Size, in.Consumed())
	}
}

func TestOpenXz(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.export.xz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := xz.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(w, content)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	in, got := readAll(t, path)
	if got != content {
		t.Errorf("expected %q, got %q", content, got)
	}
	if in.Consumed() != in.Size {
		t.Errorf("expected the whole file to be consumed, got %d of %d", in.Consumed(), in.Size)
	}
}

func TestOpenGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.export.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := gzip.NewWriter(f)
	io.WriteString(w, content)
	w.Close()
	f.Close()

	_, got := readAll(t, path)
	if got != content {
		t.Errorf("expected %q, got %q", content, got)
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(filepath.Join(dir, "missing.export")); err == nil {
		t.Errorf("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.xz")
	os.WriteFile(bad, []byte("not xz"), 0o644)
	if _, err := Open(bad); err == nil {
		t.Errorf("expected error for invalid xz data")
	}
}

func TestOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.conll")

	o, err := Create(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	io.WriteString(o, "data\n")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file before commit")
	}
	if err := o.Commit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o.Discard()

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "data\n" {
		t.Errorf("unexpected committed file %q, %v", data, err)
	}

	o, err = Create(filepath.Join(dir, "discarded.conll"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o.Discard()
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the committed file, got %d entries", len(entries))
	}
}
