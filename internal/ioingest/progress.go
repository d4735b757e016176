package ioingest

import (
	"github.com/cheggaaa/pb/v3"
)

// progress shows how many rows went through the pipeline.
type progress interface {
	add(n int)
	finish()
}

// newProgress creates a progress bar. The number of rows is not known in
// advance, so the bar works as a counter. A quiet run gets a no-op.
func newProgress(quiet bool) progress {
	if quiet {
		return noProgress{}
	}

	bar := pb.Full.Start(0)
	bar.Set("prefix", "Ingesting records: ")
	bar.Set(pb.CleanOnFinish, true)
	return &barProgress{bar: bar}
}

type barProgress struct {
	bar *pb.ProgressBar
}

func (p *barProgress) add(n int) {
	p.bar.Add(n)
}

func (p *barProgress) finish() {
	p.bar.Finish()
}

type noProgress struct{}

func (noProgress) add(int) {}

func (noProgress) finish() {}
