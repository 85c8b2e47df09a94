package render

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	sent "github.com/revelaction/negracoref/sentence"
)

const (
	// empty column
	Empty = "_"

	// NEGRA empty value
	negraEmpty = "--"
)

// ConllRenderer writes tokens as tab separated CoNLL-X lines with an
// additional coreference column:
//
//	ID FORM LEMMA CPOSTAG POSTAG FEATS HEAD DEPREL PHEAD PDEPREL COREF
//
// Sentences are separated by a blank line.
type ConllRenderer struct {
	W io.Writer

	// KeepComments appends the terminal comment to the coreference column
	KeepComments bool
}

var _ Renderer = (*ConllRenderer)(nil)

func NewConllRenderer(w io.Writer) *ConllRenderer {
	return &ConllRenderer{W: w}
}

func (r *ConllRenderer) Render(s *sent.Sentence, tokens []sent.Token) error {
	bw := bufio.NewWriter(r.W)
	for i := range tokens {
		bw.WriteString(r.line(&tokens[i]))
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')

	return bw.Flush()
}

func (r *ConllRenderer) line(t *sent.Token) string {
	cols := []string{
		strconv.Itoa(t.Index + 1),
		t.Form,
		column(t.Lemma),
		column(t.Pos),
		column(t.Pos),
		column(t.Morph),
		Empty,
		column(t.Edge),
		Empty,
		Empty,
		r.coref(t),
	}
	return strings.Join(cols, "\t")
}

func (r *ConllRenderer) coref(t *sent.Token) string {
	var str strings.Builder
	if len(t.Corefs) > 0 {
		str.WriteString(Coref(t.Corefs))
	}

	if r.KeepComments && t.Comment != "" {
		str.WriteString("comment:")
		str.WriteString(strings.ReplaceAll(t.Comment, "\t", " "))
	}

	if str.Len() == 0 {
		return Empty
	}
	return str.String()
}

// Coref renders the references as coref:[(sid,[i,j]),...]|
func Coref(refs []sent.Reference) string {
	var str strings.Builder
	str.WriteString("coref:[")
	for i, ref := range refs {
		if i > 0 {
			str.WriteByte(',')
		}
		str.WriteByte('(')
		str.WriteString(strconv.Itoa(ref.Sentence))
		str.WriteByte(',')
		str.WriteString(ref.Span.String())
		str.WriteByte(')')
	}
	str.WriteString("]|")
	return str.String()
}

func column(v string) string {
	if v == "" || v == negraEmpty {
		return Empty
	}
	return v
}
