// Package file opens the corpus input, decompressing it if needed, and
// creates output files that only appear once they are complete.
package file

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/ulikunitz/xz"
)

// Stdin is the path that reads from standard input.
const Stdin = "-"

// Input is an open corpus file. Read returns the decompressed bytes.
type Input struct {
	r io.Reader
	f *os.File

	// Size of the file on disk, 0 for stdin
	Size int64

	consumed atomic.Int64
}

// Open opens path for reading. Files ending in .xz or .gz are decompressed.
// An empty path or "-" reads from stdin.
func Open(path string) (*Input, error) {
	in := &Input{}

	if path == "" || path == Stdin {
		in.r = bufio.NewReader(os.Stdin)
		return in, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("IO error: %w", err)
	}

	in.f = f
	in.Size = info.Size()

	raw := bufio.NewReader(&counter{r: f, n: &in.consumed})

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xz":
		in.r, err = xz.NewReader(raw)
	case ".gz":
		in.r, err = gzip.NewReader(raw)
	default:
		in.r = raw
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}

	return in, nil
}

func (in *Input) Read(p []byte) (int, error) {
	return in.r.Read(p)
}

// Consumed returns the bytes read so far from the file on disk. It is safe
// for concurrent use.
func (in *Input) Consumed() int64 {
	return in.consumed.Load()
}

func (in *Input) Close() error {
	if in.f == nil {
		return nil
	}
	return in.f.Close()
}

type counter struct {
	r io.Reader
	n *atomic.Int64
}

func (c *counter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

// Output is a file that is written under a temporary name and renamed to its
// path by Commit.
type Output struct {
	*os.File

	path string
	done bool
}

// Create creates a temporary file in the directory of path.
func Create(path string) (*Output, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	return &Output{File: f, path: path}, nil
}

// Commit closes the temporary file and renames it to the final path.
func (o *Output) Commit() error {
	if err := o.File.Close(); err != nil {
		os.Remove(o.File.Name())
		return fmt.Errorf("IO error: %w", err)
	}
	if err := os.Rename(o.File.Name(), o.path); err != nil {
		os.Remove(o.File.Name())
		return fmt.Errorf("IO error: %w", err)
	}
	o.done = true
	return nil
}

// Discard removes the temporary file, unless it was committed.
func (o *Output) Discard() {
	if o.done {
		return
	}
	o.File.Close()
	os.Remove(o.File.Name())
}
