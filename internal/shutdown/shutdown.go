// Package shutdown ties process lifetime to termination signals.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// New returns a context canceled on SIGINT or SIGTERM. The returned func
// releases the signal handler.
func New() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
