package render

import (
	"bytes"
	"strings"
	"testing"

	sent "github.com/revelaction/negracoref/sentence"
)

func token(idx int, form string, refs ...sent.Reference) sent.Token {
	return sent.Token{
		Node: sent.Node{
			Kind:  sent.Terminal,
			Index: idx,
			Id:    sent.TerminalId(idx),
			Form:  form,
			Lemma: strings.ToLower(form),
			Pos:   "NN",
			Morph: "--",
			Edge:  "HD",
		},
		Corefs: refs,
	}
}

func TestCoref(t *testing.T) {
	refs := []sent.Reference{
		{Sentence: 226, Span: sent.Span{6, 7}},
		{Sentence: 226, Span: sent.Span{5, 6, 7}},
	}
	got := Coref(refs)
	want := "coref:[(226,[6,7]),(226,[5,6,7])]|"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConllRender(t *testing.T) {
	s := &sent.Sentence{Id: 1}
	tokens := []sent.Token{
		token(0, "Der"),
		token(1, "Mann", sent.Reference{Sentence: 0, Span: sent.Span{0, 1, 2, 3}}),
	}

	var buf bytes.Buffer
	if err := NewConllRenderer(&buf).Render(s, tokens); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "1\tDer\tder\tNN\tNN\t_\t_\tHD\t_\t_\t_\n" +
		"2\tMann\tmann\tNN\tNN\t_\t_\tHD\t_\t_\tcoref:[(0,[0,1,2,3])]|\n" +
		"\n"
	if buf.String() != want {
		t.Errorf("expected\n%q\ngot\n%q", want, buf.String())
	}
}

func TestConllRenderColumns(t *testing.T) {
	var buf bytes.Buffer
	tok := token(4, "lacht")
	tok.Lemma = "--"
	tok.Morph = "3sis"
	if err := NewConllRenderer(&buf).Render(&sent.Sentence{}, []sent.Token{tok}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	cols := strings.Split(lines[0], "\t")
	if len(cols) != 11 {
		t.Fatalf("expected 11 columns, got %d: %q", len(cols), lines[0])
	}
	if cols[0] != "5" || cols[2] != "_" || cols[5] != "3sis" {
		t.Errorf("unexpected columns %q", cols)
	}
}

func TestConllKeepComments(t *testing.T) {
	tok := token(0, "Er", sent.Reference{Sentence: 2, Span: sent.Span{1}})
	tok.Comment = "R=coreferential.2:2 checked"
	plain := token(1, "lacht")
	plain.Comment = "note"

	var buf bytes.Buffer
	r := &ConllRenderer{W: &buf, KeepComments: true}
	if err := r.Render(&sent.Sentence{}, []sent.Token{tok, plain, token(2, ".")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	last := func(line string) string {
		cols := strings.Split(line, "\t")
		return cols[len(cols)-1]
	}
	if got := last(lines[0]); got != "coref:[(2,[1])]|comment:R=coreferential.2:2 checked" {
		t.Errorf("unexpected coref column %q", got)
	}
	if got := last(lines[1]); got != "comment:note" {
		t.Errorf("unexpected coref column %q", got)
	}
	if got := last(lines[2]); got != Empty {
		t.Errorf("unexpected coref column %q", got)
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	for _, f := range SupportedFormats() {
		if _, err := New(f, &buf, false); err != nil {
			t.Errorf("format %s: unexpected error: %v", f, err)
		}
	}
	if _, err := New("xml", &buf, false); err == nil {
		t.Errorf("expected error for unknown format")
	}
}

func TestHighlight(t *testing.T) {
	var buf bytes.Buffer
	Highlight(&buf, []string{"Der", "alte", "Mann", "lacht"}, sent.Span{1, 2}, false)
	if buf.String() != "Der [alte] [Mann] lacht\n" {
		t.Errorf("unexpected highlight %q", buf.String())
	}

	buf.Reset()
	Highlight(&buf, []string{"Er", "lacht"}, sent.Span{0}, true)
	if buf.String() != Green256+"Er"+Off+" lacht\n" {
		t.Errorf("unexpected highlight %q", buf.String())
	}
}
