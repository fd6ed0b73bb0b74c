package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// signalContext derives a context that is canceled on SIGTERM or SIGINT.
// onSignal, when set, runs before cancellation so the command can log
// that a partial run is being abandoned.
func signalContext(parent context.Context, onSignal func(os.Signal)) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			if onSignal != nil {
				onSignal(sig)
			}
			cancel()
		case <-ctx.Done():
			// Canceled elsewhere
		}
	}()

	return ctx, cancel
}
