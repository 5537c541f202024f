package cmd

import (
	"context"
	"os/signal"
)

// setupShutdownHandler returns a context cancelled by the first shutdown
// signal. Later signals get the default behaviour again.
func setupShutdownHandler() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ctx, stop
}
