// Command httpcat looks up HTTP status codes in the http.cat catalog, fetches
// their pictures and serves them over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
