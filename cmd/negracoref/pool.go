package main

import (
	"fmt"

	"github.com/revelaction/negracoref/storage/sqlite/zombiezen"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Pool opens the span database of a command at most once.
type Pool struct {
	p    *sqlitex.Pool
	path string
}

// Open returns the pool of path. A command works on a single span
// database, so opening a second path is an error.
func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if p.p != nil {
		if path != p.path {
			return nil, fmt.Errorf("span store already open at %s, can not open %s", p.path, path)
		}
		return p.p, nil
	}
	pool, err := zombiezen.NewPool(path)
	if err != nil {
		return nil, err
	}
	p.p, p.path = pool, path
	return p.p, nil
}

func (p *Pool) Close() error {
	if p.p == nil {
		return nil
	}
	err := p.p.Close()
	p.p, p.path = nil, ""
	return err
}
