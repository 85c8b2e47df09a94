package coref

import (
	"fmt"

	sent "github.com/revelaction/negracoref/sentence"
	"github.com/revelaction/negracoref/storage"
	"github.com/revelaction/negracoref/tree"
)

// Annotator resolves the directives dominating each token against a span
// store.
type Annotator struct {
	store     storage.SpanReader
	extractor *Extractor
}

func NewAnnotator(store storage.SpanReader, e *Extractor) *Annotator {
	return &Annotator{store: store, extractor: e}
}

// Annotate returns the tokens of the tree in surface order. The references of
// a token follow its ancestor chain from the token itself up to the root, and
// the comment order within a node. Any unresolved directive fails the whole
// sentence.
func (a *Annotator) Annotate(t *tree.Tree) ([]sent.Token, error) {
	sid := t.Sentence.Id

	// references per node, so that shared ancestors are resolved once
	resolved := map[int][]sent.Reference{}

	terminals := t.Terminals()
	tokens := make([]sent.Token, len(terminals))

	for i, term := range terminals {
		var refs []sent.Reference
		for _, n := range t.Ancestors(term.Id) {
			nodeRefs, ok := resolved[n.Id]
			if !ok {
				var err error
				nodeRefs, err = a.resolve(sid, n)
				if err != nil {
					return nil, err
				}
				resolved[n.Id] = nodeRefs
			}
			refs = append(refs, nodeRefs...)
		}

		tokens[i] = sent.Token{Node: *term, Corefs: refs}
	}

	return tokens, nil
}

func (a *Annotator) resolve(sentenceId int, n *sent.Node) ([]sent.Reference, error) {
	var refs []sent.Reference
	for _, d := range a.extractor.Extract(sentenceId, n) {
		sp, err := a.store.Resolve(d.Sentence, d.Node)
		if err != nil {
			return nil, fmt.Errorf("sentence %d, node %d (line %d): %w", sentenceId, n.Id, n.Line, err)
		}
		refs = append(refs, sent.Reference{Sentence: d.Sentence, Span: sp})
	}
	return refs, nil
}

// Directives returns every directive of the sentence tree, in node id order.
// Malformed parts are not logged again.
func (a *Annotator) Directives(t *tree.Tree) []sent.Directive {
	var all []sent.Directive
	for _, n := range t.Nodes() {
		all = append(all, a.extractor.extract(t.Sentence.Id, n, false)...)
	}
	return all
}
