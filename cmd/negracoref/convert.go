package main

import (
	"context"
	"encoding/hex"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/revelaction/negracoref/coref"
	"github.com/revelaction/negracoref/file"
	"github.com/revelaction/negracoref/internal/logging"
	"github.com/revelaction/negracoref/negra"
	"github.com/revelaction/negracoref/pipeline"
	"github.com/revelaction/negracoref/render"
)

// Convert command
func convertCommand(ctx context.Context, opts ConvertOptions, ui UI) (err error) {
	start := time.Now()
	ctx = logging.WithRunID(ctx, uuid.NewString())

	defer func() {
		if err != nil {
			logging.ErrorContext(ctx, "run_failed", "error", err)
		}
	}()

	in, err := file.Open(opts.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	var p Pool
	defer func() {
		if err := p.Close(); err != nil {
			logging.Error("span_store_close_failed", "error", err)
		}
	}()

	store, err := NewSpanRepository(&p, opts.Store)
	if err != nil {
		return err
	}

	out := ui.Out
	var dst *file.Output
	if opts.Output != "" && opts.Output != file.Stdin {
		dst, err = file.Create(opts.Output)
		if err != nil {
			return err
		}
		defer dst.Discard()
		out = dst
	}

	hasher := blake3.New()
	r, err := render.New(opts.Format, io.MultiWriter(out, hasher), opts.KeepComments)
	if err != nil {
		return err
	}

	conv := pipeline.NewConverter(store, coref.NewExtractor(opts.Relations...), r)

	showProgress := in.Size > 0 && isTerminal(ui.Err)
	if opts.Progress != nil {
		showProgress = *opts.Progress && in.Size > 0
	}
	if showProgress {
		pr := newProgress(ui.Err, in)
		conv.OnSentence = pr.Update
		defer pr.Stop()
	}

	logging.InfoContext(ctx, "run_started", "input", opts.Input, "output", opts.Output, "store", opts.Store, "format", opts.Format)

	if err := conv.Run(ctx, negra.NewReader(in)); err != nil {
		return err
	}

	if c, ok := store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}

	if dst != nil {
		if err := dst.Commit(); err != nil {
			return err
		}
	}

	stats := conv.Stats.Get()
	logging.RunFinished(ctx, stats.NumSentences, stats.NumTokens, stats.NumDirectives, hex.EncodeToString(hasher.Sum(nil)), time.Since(start))
	return nil
}
