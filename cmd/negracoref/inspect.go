package main

import (
	"context"

	"github.com/revelaction/negracoref/coref"
	"github.com/revelaction/negracoref/file"
	"github.com/revelaction/negracoref/negra"
	"github.com/revelaction/negracoref/pipeline"
	"github.com/revelaction/negracoref/query"
	"github.com/revelaction/negracoref/storage/filesystem"
)

// Inspect command
func inspectCommand(ctx context.Context, opts InspectOptions, ui UI) error {
	var st query.Store

	if opts.Store != "" {
		var p Pool
		defer p.Close()

		s, err := OpenSpanRepository(&p, opts.Store)
		if err != nil {
			return err
		}
		st = s
	} else {
		s, err := loadSpans(ctx, opts)
		if err != nil {
			return err
		}
		st = s
	}

	// now present the REPL
	h := query.NewHandler(st, ui.Out, !opts.NoColor && isTerminal(ui.Out))
	return h.Run()
}

// loadSpans converts the input corpus into an in memory store, without
// output.
func loadSpans(ctx context.Context, opts InspectOptions) (*filesystem.SpanStore, error) {
	in, err := file.Open(opts.Input)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	st := filesystem.NewSpanStore("")
	conv := pipeline.NewConverter(st, coref.NewExtractor(opts.Relations...), nil)
	if err := conv.Run(ctx, negra.NewReader(in)); err != nil {
		return nil, err
	}
	return st, nil
}
