// Package coref reads coreference directives from node comments and
// annotates every token with the spans of the antecedents dominating it.
package coref

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/revelaction/negracoref/internal/logging"
	sent "github.com/revelaction/negracoref/sentence"
)

// DefaultRelation is the relation extracted when no other is configured.
const DefaultRelation = "coreferential"

// R=<relation>.<sentence>:<node>
var reDirective = regexp.MustCompile(`^R=([A-Za-z_-]+)\.(\d+):(\d+)$`)

// Extractor finds the directives of a configured set of relations in node
// comments.
type Extractor struct {
	relations map[string]bool
}

// NewExtractor returns an Extractor for the given relations, or for
// DefaultRelation if none is given.
func NewExtractor(relations ...string) *Extractor {
	if len(relations) == 0 {
		relations = []string{DefaultRelation}
	}
	e := &Extractor{relations: make(map[string]bool, len(relations))}
	for _, r := range relations {
		e.relations[r] = true
	}
	return e
}

// Extract returns the directives of the node comment, in comment order.
// Comment parts that are not directives are ignored. The target is not
// checked here.
func (e *Extractor) Extract(sentenceId int, n *sent.Node) []sent.Directive {
	return e.extract(sentenceId, n, true)
}

func (e *Extractor) extract(sentenceId int, n *sent.Node, warn bool) []sent.Directive {
	if n.Comment == "" {
		return nil
	}

	var directives []sent.Directive
	for _, part := range strings.Fields(n.Comment) {
		if !strings.HasPrefix(part, "R=") {
			continue
		}

		m := reDirective.FindStringSubmatch(part)
		if m == nil {
			if warn && e.names(part) {
				logging.MalformedDirective(sentenceId, n.Id, part)
			}
			continue
		}

		if !e.relations[m[1]] {
			continue
		}

		sid, err1 := strconv.Atoi(m[2])
		nid, err2 := strconv.Atoi(m[3])
		if err1 != nil || err2 != nil {
			// out of int range
			if warn {
				logging.MalformedDirective(sentenceId, n.Id, part)
			}
			continue
		}

		directives = append(directives, sent.Directive{
			Source:   n.Id,
			Relation: m[1],
			Sentence: sid,
			Node:     nid,
		})
	}

	return directives
}

// names reports whether the part starts with one of the configured relations.
func (e *Extractor) names(part string) bool {
	for r := range e.relations {
		if strings.HasPrefix(part, "R="+r) {
			return true
		}
	}
	return false
}
