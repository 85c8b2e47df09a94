// Package render writes annotated sentences, and highlights spans for the
// inspect REPL.
package render

import (
	"fmt"
	"io"
	"strings"

	sent "github.com/revelaction/negracoref/sentence"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

const (
	FormatConll = "conll"
	FormatJSON  = "json"
)

func SupportedFormats() []string {
	return []string{FormatConll, FormatJSON}
}

// Renderer writes one annotated sentence.
type Renderer interface {
	Render(s *sent.Sentence, tokens []sent.Token) error
}

// New returns the Renderer for format, writing to w.
func New(format string, w io.Writer, keepComments bool) (Renderer, error) {
	switch format {
	case FormatConll, "":
		return &ConllRenderer{W: w, KeepComments: keepComments}, nil
	case FormatJSON:
		return &JSONRenderer{W: w, KeepComments: keepComments}, nil
	}
	return nil, fmt.Errorf("unknown output format %q, supported: %s", format, strings.Join(SupportedFormats(), ", "))
}

// Highlight writes the words of a sentence in one line, coloring the words
// at the span positions. Without color the span words are put in brackets.
func Highlight(w io.Writer, words []string, span sent.Span, hasColor bool) {
	var str strings.Builder
	for i, word := range words {
		if i > 0 {
			str.WriteByte(' ')
		}

		if !span.Contains(i) {
			str.WriteString(word)
			continue
		}

		if hasColor {
			str.WriteString(Green256 + word + Off)
		} else {
			str.WriteString("[" + word + "]")
		}
	}

	fmt.Fprintln(w, str.String())
}
