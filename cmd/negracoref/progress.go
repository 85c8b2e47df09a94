package main

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/negracoref/file"
	sent "github.com/revelaction/negracoref/sentence"
)

// progress draws the bytes read from the input file as a bar.
type progress struct {
	p   *uiprogress.Progress
	bar *uiprogress.Bar
	in  *file.Input

	// read by the render goroutine of the bar
	sentence atomic.Int64
}

func newProgress(w io.Writer, in *file.Input) *progress {
	pr := &progress{p: uiprogress.New(), in: in}
	pr.p.SetOut(w)

	pr.bar = pr.p.AddBar(int(in.Size))
	pr.bar.AppendCompleted()
	pr.bar.PrependElapsed()
	// Append the last sentence id to the progress bar
	pr.bar.AppendFunc(func(b *uiprogress.Bar) string {
		return fmt.Sprintf("#BOS %d", pr.sentence.Load())
	})

	pr.p.Start()
	return pr
}

// Update is called after every converted sentence.
func (pr *progress) Update(s *sent.Sentence) {
	pr.sentence.Store(int64(s.Id))
	pr.bar.Set(int(pr.in.Consumed()))
}

func (pr *progress) Stop() {
	pr.bar.Set(int(pr.in.Consumed()))
	pr.p.Stop()
}
