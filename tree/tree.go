// Package tree builds the syntax tree of a sentence from the parent ids of its
// nodes and computes the span of every node.
package tree

import (
	"slices"

	sent "github.com/revelaction/negracoref/sentence"
)

// Tree is the node arena of one sentence. The virtual root has id
// sent.RootId and is not part of the node map.
type Tree struct {
	Sentence *sent.Sentence

	nodes    map[int]*sent.Node
	children map[int][]int
	spans    map[int]sent.Span
}

// Build resolves the parent ids of the sentence nodes and computes all spans.
func Build(s *sent.Sentence) (*Tree, error) {
	t := &Tree{
		Sentence: s,
		nodes:    make(map[int]*sent.Node, len(s.Terminals)+len(s.Nonterminals)),
		children: make(map[int][]int),
		spans:    make(map[int]sent.Span, len(s.Terminals)+len(s.Nonterminals)+1),
	}

	if err := t.index(s.Terminals); err != nil {
		return nil, err
	}
	if err := t.index(s.Nonterminals); err != nil {
		return nil, err
	}

	if err := t.link(s.Terminals); err != nil {
		return nil, err
	}
	if err := t.link(s.Nonterminals); err != nil {
		return nil, err
	}

	if err := t.checkCycles(); err != nil {
		return nil, err
	}

	t.span(sent.RootId)
	return t, nil
}

func (t *Tree) index(nodes []sent.Node) error {
	for i := range nodes {
		n := &nodes[i]
		if n.Id == sent.RootId {
			return t.errorf(n, "node id %d is reserved for the root", n.Id)
		}
		if _, ok := t.nodes[n.Id]; ok {
			return t.errorf(n, "duplicate node id %d", n.Id)
		}
		t.nodes[n.Id] = n
	}
	return nil
}

// link fills the children adjacency list. Terminals are linked first, so
// children lists keep surface order for terminals followed by nonterminals in
// line order.
func (t *Tree) link(nodes []sent.Node) error {
	for i := range nodes {
		n := &nodes[i]
		if n.Parent != sent.RootId {
			p, ok := t.nodes[n.Parent]
			if !ok {
				return t.errorf(n, "unknown parent id %d", n.Parent)
			}
			if p.IsTerminal() {
				return t.errorf(n, "parent %d is a terminal", n.Parent)
			}
		}
		t.children[n.Parent] = append(t.children[n.Parent], n.Id)
	}
	return nil
}

// checkCycles follows the parent chain of every node. A chain longer than the
// number of nodes can not reach the root.
func (t *Tree) checkCycles() error {
	limit := len(t.nodes)
	reaches := make(map[int]bool, limit)

	for _, id := range t.ids() {
		n := t.nodes[id]
		cur := n.Id
		var path []int
		for steps := 0; cur != sent.RootId && !reaches[cur]; steps++ {
			if steps > limit {
				return t.errorf(n, "parent chain of node %d does not reach the root", n.Id)
			}
			path = append(path, cur)
			cur = t.nodes[cur].Parent
		}
		for _, p := range path {
			reaches[p] = true
		}
	}
	return nil
}

// span computes the spans of id and its descendants in post-order.
func (t *Tree) span(id int) sent.Span {
	if n, ok := t.nodes[id]; ok && n.IsTerminal() {
		sp := sent.Span{n.Index}
		t.spans[id] = sp
		return sp
	}

	var sp sent.Span
	for _, c := range t.children[id] {
		sp = append(sp, t.span(c)...)
	}
	slices.Sort(sp)
	if sp == nil {
		sp = sent.Span{}
	}
	t.spans[id] = sp
	return sp
}

// Span returns the span of the node id.
func (t *Tree) Span(id int) (sent.Span, bool) {
	sp, ok := t.spans[id]
	return sp, ok
}

// Node returns the node id. The root has no node.
func (t *Tree) Node(id int) (*sent.Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Children returns the direct children of the node id.
func (t *Tree) Children(id int) []int {
	return t.children[id]
}

// Ancestors returns the node id followed by its ancestors, up to but
// excluding the root.
func (t *Tree) Ancestors(id int) []*sent.Node {
	var chain []*sent.Node
	for cur := id; cur != sent.RootId; {
		n, ok := t.nodes[cur]
		if !ok {
			break
		}
		chain = append(chain, n)
		cur = n.Parent
	}
	return chain
}

// Terminals returns the terminals in surface order.
func (t *Tree) Terminals() []*sent.Node {
	terms := make([]*sent.Node, len(t.Sentence.Terminals))
	for i := range t.Sentence.Terminals {
		terms[i] = &t.Sentence.Terminals[i]
	}
	return terms
}

// Each calls fn with every node id, the root included, in ascending order,
// and its span. It stops at the first error.
func (t *Tree) Each(fn func(id int, sp sent.Span) error) error {
	ids := append([]int{sent.RootId}, t.ids()...)
	for _, id := range ids {
		if err := fn(id, t.spans[id]); err != nil {
			return err
		}
	}
	return nil
}

// Nodes returns the nodes in ascending id order. The root has no node.
func (t *Tree) Nodes() []*sent.Node {
	ids := t.ids()
	nodes := make([]*sent.Node, len(ids))
	for i, id := range ids {
		nodes[i] = t.nodes[id]
	}
	return nodes
}

// Len returns the number of nodes, the root excluded.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) ids() []int {
	ids := make([]int, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
