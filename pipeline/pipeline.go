// Package pipeline drives the conversion of a NEGRA corpus, one sentence at a
// time, in input order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/revelaction/negracoref/coref"
	"github.com/revelaction/negracoref/internal/logging"
	"github.com/revelaction/negracoref/negra"
	"github.com/revelaction/negracoref/render"
	sent "github.com/revelaction/negracoref/sentence"
	"github.com/revelaction/negracoref/stat"
	"github.com/revelaction/negracoref/storage"
	"github.com/revelaction/negracoref/tree"
)

type Converter struct {
	Store     storage.SpanRepository
	Annotator *coref.Annotator

	// Renderer writes the annotated sentences. A nil Renderer only fills
	// the store and the stats.
	Renderer render.Renderer

	Stats *stat.Handler

	// OnSentence, if set, is called after every converted sentence.
	OnSentence func(s *sent.Sentence)
}

func NewConverter(store storage.SpanRepository, e *coref.Extractor, r render.Renderer) *Converter {
	return &Converter{
		Store:     store,
		Annotator: coref.NewAnnotator(store, e),
		Renderer:  r,
		Stats:     stat.NewHandler(),
	}
}

// Run converts every sentence of the reader. It stops at the first error, or
// when ctx is done, before the next sentence is read. A failing sentence
// produces no output.
func (c *Converter) Run(ctx context.Context, r *negra.Reader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := c.Convert(ctx, s); err != nil {
			return err
		}
	}
}

// Convert stores the spans of the sentence, annotates its tokens and renders
// them.
func (c *Converter) Convert(ctx context.Context, s *sent.Sentence) error {
	t, err := tree.Build(s)
	if err != nil {
		return err
	}

	if err := c.store(t); err != nil {
		return fmt.Errorf("failed to store spans of sentence %d: %w", s.Id, err)
	}

	tokens, err := c.Annotator.Annotate(t)
	if err != nil {
		return err
	}

	if c.Renderer != nil {
		if err := c.Renderer.Render(s, tokens); err != nil {
			return fmt.Errorf("failed to write sentence %d: %w", s.Id, err)
		}
	}

	refs := 0
	for _, tk := range tokens {
		refs += len(tk.Corefs)
	}

	if c.Stats != nil {
		c.Stats.Aggregate(s, tokens, len(c.Annotator.Directives(t)))
	}

	logging.SentenceDone(ctx, s.Id, len(tokens), refs)

	if c.OnSentence != nil {
		c.OnSentence(s)
	}

	return nil
}

// store inserts the span of every node, root included, and the words of the
// sentence if the store keeps them. Stores that support it get all writes of
// the sentence in one batch.
func (c *Converter) store(t *tree.Tree) error {
	write := func(w storage.SpanWriter) error {
		err := t.Each(func(id int, sp sent.Span) error {
			return w.Insert(t.Sentence.Id, id, sp)
		})
		if err != nil {
			return err
		}

		if ww, ok := w.(storage.WordWriter); ok {
			return ww.WriteWords(t.Sentence.Id, t.Sentence.Words())
		}
		return nil
	}

	if b, ok := c.Store.(storage.Batcher); ok {
		return b.Batch(write)
	}
	return write(c.Store)
}
