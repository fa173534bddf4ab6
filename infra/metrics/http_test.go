package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/fieldops/planboard/core/logger"
)

func TestStartPromServerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- StartPromServer(ctx, "127.0.0.1:0", &logger.NopLogger{})
	}()
	// Give the server a moment to bind before shutting it down.
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("server returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}
