package display

import (
	"context"
	"sync"
	"time"
)

type MemoryPanel struct {
	mu    sync.RWMutex
	panel Panel
	now   func() time.Time
}

func NewMemoryPanel() *MemoryPanel {
	return &MemoryPanel{now: time.Now}
}

func (p *MemoryPanel) WriteOutput(_ context.Context, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.panel = Panel{
		Content:   content,
		Version:   p.panel.Version + 1,
		UpdatedAt: p.now().UTC(),
	}
	return nil
}

func (p *MemoryPanel) Read(_ context.Context) (Panel, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.panel, nil
}
