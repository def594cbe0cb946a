package display

import (
	"context"
	"io"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
)

// WriterPanel streams every write to w, one line per write, and keeps the
// latest content readable.
type WriterPanel struct {
	mu    sync.Mutex
	w     io.Writer
	panel Panel
}

func NewWriterPanel(w io.Writer) *WriterPanel {
	return &WriterPanel{w: w}
}

func (p *WriterPanel) WriteOutput(_ context.Context, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.panel = Panel{Content: content, Version: p.panel.Version + 1, UpdatedAt: time.Now().UTC()}
	if p.w == nil {
		return nil
	}
	if _, err := io.WriteString(p.w, content+"\n"); err != nil {
		return crerr.Wrap(err, "write panel output")
	}
	return nil
}

func (p *WriterPanel) Read(_ context.Context) (Panel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.panel, nil
}
