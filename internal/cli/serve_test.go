package cli

import (
	"context"
	"io"
	"testing"
	"time"
)

func TestServeStopsOnCancel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- c.runServe(ctx, serveOpts{
			addr:    "127.0.0.1:0",
			metrics: true,
			cache:   cacheFlags{noCache: true},
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runServe() = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeBadConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	err := c.runServe(context.Background(), serveOpts{configPath: "webgraph.ini"})
	if err == nil {
		t.Error("runServe() accepted an unsupported config file")
	}
}
