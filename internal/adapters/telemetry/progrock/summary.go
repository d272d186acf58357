package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
)

var _ progrock.Writer = (*SummaryWriter)(nil)

// SummaryWriter renders one line per finished vertex.
type SummaryWriter struct {
	mu   sync.Mutex
	out  io.Writer
	done map[string]bool
}

// NewSummaryWriter creates a SummaryWriter printing to out.
func NewSummaryWriter(out io.Writer) *SummaryWriter {
	return &SummaryWriter{out: out, done: make(map[string]bool)}
}

// WriteStatus prints vertices the first time they are seen completed.
func (w *SummaryWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.GetVertexes() {
		if v.GetCompleted() == nil || w.done[v.GetId()] {
			continue
		}
		w.done[v.GetId()] = true

		var err error
		switch {
		case v.Error != nil:
			_, err = fmt.Fprintf(w.out, "✗ %s: %s\n", v.GetName(), v.GetError())
		case v.GetCanceled():
			_, err = fmt.Fprintf(w.out, "- %s (canceled)\n", v.GetName())
		case v.GetCached():
			_, err = fmt.Fprintf(w.out, "● %s (cached)\n", v.GetName())
		default:
			_, err = fmt.Fprintf(w.out, "✓ %s\n", v.GetName())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Close implements progrock.Writer.
func (w *SummaryWriter) Close() error {
	return nil
}
