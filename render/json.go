package render

import (
	"encoding/json"
	"io"

	sent "github.com/revelaction/negracoref/sentence"
)

// JSONRenderer writes each sentence as one JSON line.
type JSONRenderer struct {
	W io.Writer

	KeepComments bool
}

type jsonSentence struct {
	Id     int         `json:"id"`
	Tokens []jsonToken `json:"tokens"`
}

type jsonToken struct {
	Index   int              `json:"index"`
	Form    string           `json:"form"`
	Lemma   string           `json:"lemma,omitempty"`
	Pos     string           `json:"pos"`
	Morph   string           `json:"morph"`
	Edge    string           `json:"edge"`
	Coref   []sent.Reference `json:"coref"`
	Comment string           `json:"comment,omitempty"`
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the sentence tokens as a JSON object followed by a
// newline.
func (r *JSONRenderer) Render(s *sent.Sentence, tokens []sent.Token) error {
	js := jsonSentence{Id: s.Id, Tokens: make([]jsonToken, len(tokens))}
	for i, t := range tokens {
		jt := jsonToken{
			Index: t.Index,
			Form:  t.Form,
			Pos:   t.Pos,
			Morph: t.Morph,
			Edge:  t.Edge,
			Coref: t.Corefs,
		}
		if t.Lemma != negraEmpty {
			jt.Lemma = t.Lemma
		}
		if jt.Coref == nil {
			jt.Coref = []sent.Reference{}
		}
		if r.KeepComments {
			jt.Comment = t.Comment
		}
		js.Tokens[i] = jt
	}

	return json.NewEncoder(r.W).Encode(js)
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
