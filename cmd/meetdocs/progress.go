package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/phrazzld/meetdocs/internal/events"
)

// progressPrinter renders task events as one line each.
type progressPrinter struct {
	mu  sync.Mutex
	out io.Writer
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	return &progressPrinter{out: out}
}

// HandleEvent implements events.EventHandler.
func (p *progressPrinter) HandleEvent(_ context.Context, e *events.TaskEvent) error {
	var line string
	switch e.Type {
	case events.TaskStarted:
		line = fmt.Sprintf("  ... %s (%s)", e.Key, e.Provider)
	case events.TaskRetrying:
		line = fmt.Sprintf("  ~ %s (%s) attempt %d failed: %s, retrying", e.Key, e.Provider, e.Attempt, e.FailureKind)
	case events.TaskCompleted:
		line = fmt.Sprintf("  ok %s (%s) in %s", e.Key, e.Provider, e.Elapsed.Round(time.Millisecond))
	case events.TaskFailed:
		line = fmt.Sprintf("  FAILED %s (%s): %s", e.Key, e.Provider, e.FailureKind)
	default:
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintln(p.out, line)
	return err
}
