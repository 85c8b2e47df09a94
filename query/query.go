// Package query implements the inspect REPL over a span store.
package query

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/negracoref/render"
	sent "github.com/revelaction/negracoref/sentence"
	"github.com/revelaction/negracoref/storage"
)

const (
	completionThreshold = 1

	// maximal number of sentence ids suggested
	maxSuggestions = 50
)

// Store is a span store that can be browsed
type Store interface {
	storage.SpanReader
	storage.Browser
}

type Handler struct {
	Store    Store
	Out      io.Writer
	HasColor bool
}

func NewHandler(st Store, out io.Writer, hasColor bool) *Handler {
	return &Handler{
		Store:    st,
		Out:      out,
		HasColor: hasColor,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintln(h.Out, "🔑 <sentence>:<node> shows a span, <sentence> lists its nodes, 🔧 quit")

	sentences, err := h.Store.Sentences()
	if err != nil {
		return err
	}

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer(sentences),
			prompt.OptionTitle("negracoref inspect"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
		)

		in = strings.TrimSpace(in)
		if in == "quit" {
			return nil
		}
		if in == "" {
			continue
		}

		history = append(history, in)
		if err := h.Execute(in); err != nil {
			fmt.Fprintf(h.Out, "Error: %v\n", err)
		}
	}
}

// Execute answers one REPL line.
func (h *Handler) Execute(in string) error {
	sentenceId, nodeId, hasNode, err := parse(in)
	if err != nil {
		return err
	}

	words, err := h.Store.Words(sentenceId)
	if err != nil {
		return err
	}

	if hasNode {
		return h.span(sentenceId, nodeId, words)
	}

	nodes, err := h.Store.Nodes(sentenceId)
	if err != nil {
		return err
	}
	for _, id := range nodes {
		if err := h.span(sentenceId, id, words); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) span(sentenceId, nodeId int, words []string) error {
	sp, err := h.Store.Resolve(sentenceId, nodeId)
	if err != nil {
		return err
	}

	fmt.Fprintf(h.Out, "%5d:%-4d %-20s ", sentenceId, nodeId, sp)
	if words == nil {
		fmt.Fprintln(h.Out)
		return nil
	}
	render.Highlight(h.Out, words, sp, h.HasColor)
	return nil
}

func (h *Handler) completer(sentences []int) func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {

		s := []prompt.Suggest{}
		befCursor := in.TextBeforeCursor()

		if len(befCursor) < completionThreshold {
			return s
		}

		sid, _, found := strings.Cut(befCursor, ":")
		if found {
			return h.completeNode(sid, befCursor)
		}

		for _, id := range sentences {
			text := strconv.Itoa(id)
			if strings.HasPrefix(text, befCursor) {
				s = append(s, prompt.Suggest{Text: text, Description: "🔖 sentence"})
			}
			if len(s) == maxSuggestions {
				break
			}
		}

		return s
	}
}

func (h *Handler) completeNode(sid, befCursor string) (s []prompt.Suggest) {
	id, err := strconv.Atoi(sid)
	if err != nil {
		return s
	}
	nodes, err := h.Store.Nodes(id)
	if err != nil {
		return s
	}

	for _, n := range nodes {
		text := sid + ":" + strconv.Itoa(n)
		if strings.HasPrefix(text, befCursor) {
			s = append(s, prompt.Suggest{Text: text, Description: nodeKind(n)})
		}
	}
	return s
}

func nodeKind(id int) string {
	switch {
	case id == sent.RootId:
		return "root"
	case id >= 500:
		return "nonterminal"
	}
	return "terminal"
}

// parse reads "S:N" or "S".
func parse(in string) (sentenceId, nodeId int, hasNode bool, err error) {
	sid, nid, hasNode := strings.Cut(strings.TrimSpace(in), ":")

	sentenceId, err = strconv.Atoi(sid)
	if err != nil || sentenceId < 0 {
		return 0, 0, false, errors.New("sentence id must be a non-negative integer")
	}

	if !hasNode {
		return sentenceId, 0, false, nil
	}

	nodeId, err = strconv.Atoi(nid)
	if err != nil || nodeId < 0 {
		return 0, 0, false, errors.New("node id must be a non-negative integer")
	}

	return sentenceId, nodeId, true, nil
}
