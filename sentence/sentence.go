package sentence

import (
	"strconv"
	"strings"
)

// RootId is the node id of the virtual root every sentence hangs from.
const RootId = 0

type Kind int

const (
	Terminal Kind = iota
	Nonterminal
)

func (k Kind) String() string {
	if k == Terminal {
		return "terminal"
	}
	return "nonterminal"
}

// Sentence is one #BOS ... #EOS record of a NEGRA export file.
type Sentence struct {
	Id int

	// Line number of the #BOS line
	Line int

	// Comment of the #BOS line, if any
	Comment string

	// The export format version the sentence was read with (3 or 4)
	Format int

	// Terminals in surface order
	Terminals []Node

	Nonterminals []Node
}

// Words returns the surface forms of the terminals, in order.
func (s *Sentence) Words() []string {
	words := make([]string, len(s.Terminals))
	for i, t := range s.Terminals {
		words[i] = t.Form
	}
	return words
}

// Node is a terminal or a nonterminal of the sentence tree.
type Node struct {
	Kind Kind

	// The node id. For terminals it is Index+1, for nonterminals the #NNN
	// number of the export line.
	Id int

	// The parent node id, RootId for top nodes
	Parent int

	// The edge label to the parent
	Edge string

	// The free text after %%, if any
	Comment string

	// Line number in the export file
	Line int

	// The position of the terminal in the sentence, starting at 0.
	Index int

	// The unmodified word
	Form string

	// The lemma, only present in format 4 files
	Lemma string

	Pos   string
	Morph string

	// Syntactic category of a nonterminal
	Category string
}

func (n *Node) IsTerminal() bool {
	return n.Kind == Terminal
}

// TerminalId returns the node id of the terminal at position index.
func TerminalId(index int) int {
	return index + 1
}

// Span is the ascending list of terminal positions dominated by a node.
type Span []int

// String renders the span as [i,j,...]
func (s Span) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, idx := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	b.WriteByte(']')
	return b.String()
}

// Contains reports whether the terminal position idx is in the span.
func (s Span) Contains(idx int) bool {
	for _, i := range s {
		if i == idx {
			return true
		}
		if i > idx {
			return false
		}
	}
	return false
}

// Directive is a reference from the node carrying the comment (Source) to
// the antecedent node Node of sentence Sentence.
type Directive struct {
	Source   int
	Relation string
	Sentence int
	Node     int
}

// Reference is a resolved Directive.
type Reference struct {
	Sentence int  `json:"sent"`
	Span     Span `json:"span"`
}

// Token is a terminal annotated with the references of every directive
// dominating it.
type Token struct {
	Node

	Corefs []Reference
}
