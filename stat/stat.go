// Package stat aggregates counts over the converted sentences.
package stat

import (
	sent "github.com/revelaction/negracoref/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences    int
	NumTokens       int
	NumNonterminals int

	// directives resolved, one per node comment directive
	NumDirectives int

	// tokens with at least one reference
	NumAnnotatedTokens int

	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TokensPerSentenceDis: map[int]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the sentence and its annotated tokens to the counts.
func (h *Handler) Aggregate(s *sent.Sentence, tokens []sent.Token, directives int) {
	h.stats.NumSentences++
	h.stats.NumTokens += len(tokens)
	h.stats.NumNonterminals += len(s.Nonterminals)
	h.stats.NumDirectives += directives
	h.stats.TokensPerSentenceDis[len(tokens)]++

	for _, t := range tokens {
		if len(t.Corefs) > 0 {
			h.stats.NumAnnotatedTokens++
		}
	}

	h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
}
