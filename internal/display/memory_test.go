package display

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryPanel_LastWriteWins(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	panel := NewMemoryPanel()
	panel.now = func() time.Time { return fixed }

	ctx := context.Background()
	if got, _ := panel.Read(ctx); got.Loaded() {
		t.Fatalf("expected empty panel, got %+v", got)
	}

	_ = panel.WriteOutput(ctx, "loading")
	_ = panel.WriteOutput(ctx, "card")

	got, err := panel.Read(ctx)
	if err != nil {
		t.Fatalf("read panel: %v", err)
	}
	if got.Content != "card" {
		t.Fatalf("expected last content, got %q", got.Content)
	}
	if got.Version != 2 {
		t.Fatalf("expected version 2, got %d", got.Version)
	}
	if !got.UpdatedAt.Equal(fixed) {
		t.Fatalf("unexpected updated_at %s", got.UpdatedAt)
	}
}

func TestMemoryPanel_ConcurrentWriters(t *testing.T) {
	t.Parallel()

	panel := NewMemoryPanel()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = panel.WriteOutput(context.Background(), "x")
		}()
	}
	wg.Wait()

	got, _ := panel.Read(context.Background())
	if got.Version != 50 {
		t.Fatalf("expected 50 writes, got %d", got.Version)
	}
}

func TestWriterPanel_StreamsEveryWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	panel := NewWriterPanel(&buf)
	_ = panel.WriteOutput(context.Background(), "loading")
	_ = panel.WriteOutput(context.Background(), "card")

	if buf.String() != "loading\ncard\n" {
		t.Fatalf("unexpected stream %q", buf.String())
	}
	got, _ := panel.Read(context.Background())
	if got.Content != "card" || got.Version != 2 {
		t.Fatalf("unexpected panel %+v", got)
	}
}
