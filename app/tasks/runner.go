package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

// Run starts t and executes it. Failures are returned, not logged; the
// caller reports them once.
func Run(ctx context.Context, t TaskInterface) error {
	t.Start()

	slog.Debug("Task started", "id", t.GetID(), "type", t.GetType(), "source", t.GetSource())

	if err := t.Execute(ctx); err != nil {
		return fmt.Errorf("%s task %s on %s failed after %s: %w",
			t.GetType(), t.GetID(), t.GetSource(), t.GetDuration(), err)
	}

	return nil
}
