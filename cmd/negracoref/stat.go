package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/revelaction/negracoref/coref"
	"github.com/revelaction/negracoref/file"
	"github.com/revelaction/negracoref/negra"
	"github.com/revelaction/negracoref/pipeline"
	"github.com/revelaction/negracoref/storage/filesystem"
)

func statCommand(ctx context.Context, opts StatOptions, ui UI) error {
	in, err := file.Open(opts.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	conv := pipeline.NewConverter(filesystem.NewSpanStore(""), coref.NewExtractor(opts.Relations...), nil)
	if err := conv.Run(ctx, negra.NewReader(in)); err != nil {
		return err
	}

	stats := conv.Stats.Get()
	fmt.Fprintf(ui.Out, "Num sentences %d, num tokens %d, num nonterminals %d\n", stats.NumSentences, stats.NumTokens, stats.NumNonterminals)
	fmt.Fprintf(ui.Out, "Num directives %d, num annotated tokens %d\n", stats.NumDirectives, stats.NumAnnotatedTokens)
	fmt.Fprintf(ui.Out, "Num tokens per sentence %d\n", stats.TokensPerSentenceMean)

	lengths := make([]int, 0, len(stats.TokensPerSentenceDis))
	for l := range stats.TokensPerSentenceDis {
		lengths = append(lengths, l)
	}
	slices.Sort(lengths)
	for _, l := range lengths {
		fmt.Fprintf(ui.Out, "%5d tokens: %d\n", l, stats.TokensPerSentenceDis[l])
	}

	return nil
}
