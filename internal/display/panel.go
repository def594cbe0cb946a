package display

import (
	"context"
	"time"
)

// Panel is the current content of the display surface.
type Panel struct {
	Content   string    `json:"content"`
	Version   uint64    `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Loaded reports whether anything has been written yet.
func (p Panel) Loaded() bool {
	return p.Version > 0
}

// Surface is the single output element. Every write replaces the whole
// content; concurrent writers race and the last one wins.
type Surface interface {
	WriteOutput(ctx context.Context, content string) error
	Read(ctx context.Context) (Panel, error)
}
